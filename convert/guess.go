package convert

import (
	"strconv"
	"strings"
)

// Guess converts a token with no declared type, inferring the value from its
// shape: a digit-only string becomes an int, digits with a dot (and at most
// one leading minus) become a float, "none" becomes nil, "true"/"false"
// become bools, a quoted string is unquoted, and anything else stays a
// string.
func Guess(s string) (any, error) {
	s = strings.Trim(s, " ")
	lower := strings.ToLower(s)
	switch {
	case isDigits(s):
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, &ConversionError{Value: s, Target: "int", Err: err}
		}
		return n, nil
	case isFloatShaped(s):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &ConversionError{Value: s, Target: "float", Err: err}
		}
		return f, nil
	case lower == "none":
		return nil, nil
	case lower == "true", lower == "false":
		return ParseBool(s)
	case strings.HasPrefix(s, `'`), strings.HasPrefix(s, `"`):
		return strings.Trim(s, `"'`), nil
	default:
		return s, nil
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isFloatShaped reports whether s consists only of digits and dots, with at
// most one optional leading minus.
func isFloatShaped(s string) bool {
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return false
	}
	for i := 0; i < len(body); i++ {
		if body[i] != '.' && (body[i] < '0' || body[i] > '9') {
			return false
		}
	}
	return true
}
