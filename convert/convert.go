package convert

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/elliotchance/orderedmap/v2"

	"github.com/braincorp/auto-argparser/textsplit"
	"github.com/braincorp/auto-argparser/typespec"
)

// Func converts a single command-line token into a typed value.
type Func func(string) (any, error)

// Resolve returns the converter for t. Resolution is a recursive,
// side-effect-free match over the descriptor tree: the same descriptor
// always resolves to an equivalent converter. A nil descriptor resolves to
// Guess. Duplicate keys in a mapping value do not fail; the last write wins
// while the key keeps its first-encounter position.
func Resolve(t *typespec.Type) Func {
	if t == nil {
		return Guess
	}
	switch t.Kind() {
	case typespec.KindMapping:
		return mappingConverter(t)
	case typespec.KindSequence:
		return sequenceConverter(t)
	case typespec.KindSet:
		return setConverter(t)
	case typespec.KindTuple:
		return tupleConverter(t)
	case typespec.KindUnion:
		return unionConverter(t)
	case typespec.KindOptional:
		return optionalConverter(t)
	case typespec.KindTime:
		return timeConverter(t)
	case typespec.KindBool:
		return boolConverter(t)
	case typespec.KindInt, typespec.KindIntEnum:
		return intConverter(t)
	case typespec.KindFloat:
		return floatConverter(t)
	case typespec.KindString:
		return stringConverter(t)
	case typespec.KindNone:
		return noneConverter
	case typespec.KindAny:
		return Guess
	case typespec.KindRecord:
		return recordConverter(t)
	default:
		// Unrecognized descriptors degrade to identity.
		return func(s string) (any, error) { return s, nil }
	}
}

// Value converts s against the descriptor t in one shot.
func Value(s string, t *typespec.Type) (any, error) {
	return Resolve(t)(s)
}

var truthy = map[string]bool{"yes": true, "true": true, "t": true, "y": true, "1": true}
var falsy = map[string]bool{"no": true, "false": true, "f": true, "n": true, "0": true}

// ParseBool converts a human-readable boolean token, accepting yes/true/t/y/1
// and no/false/f/n/0 in any case.
func ParseBool(s string) (bool, error) {
	switch lower := strings.ToLower(s); {
	case truthy[lower]:
		return true, nil
	case falsy[lower]:
		return false, nil
	default:
		return false, &ConversionError{Value: s, Target: "bool", Detail: "expected one of yes/no, true/false, t/f, y/n, 1/0"}
	}
}

func boolConverter(t *typespec.Type) Func {
	return func(s string) (any, error) {
		v, err := ParseBool(s)
		if err != nil {
			return nil, err
		}
		return materialize(v, t.GoType()), nil
	}
}

func intConverter(t *typespec.Type) Func {
	return func(s string) (any, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &ConversionError{Value: s, Target: t.FriendlyName(), Err: err}
		}
		if t.GoType() != nil {
			return reflect.ValueOf(n).Convert(t.GoType()).Interface(), nil
		}
		return int(n), nil
	}
}

func floatConverter(t *typespec.Type) Func {
	return func(s string) (any, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &ConversionError{Value: s, Target: "float", Err: err}
		}
		return materialize(f, t.GoType()), nil
	}
}

func stringConverter(t *typespec.Type) Func {
	return func(s string) (any, error) {
		return materialize(s, t.GoType()), nil
	}
}

func timeConverter(t *typespec.Type) Func {
	return func(s string) (any, error) {
		when, err := dateparse.ParseAny(s)
		if err != nil {
			return nil, &ConversionError{Value: s, Target: "time", Err: err}
		}
		return when, nil
	}
}

func noneConverter(s string) (any, error) {
	if s == "None" {
		return nil, nil
	}
	return nil, &ConversionError{Value: s, Target: "none", Detail: `only the literal "None" is accepted`}
}

func optionalConverter(t *typespec.Type) Func {
	inner := Resolve(t.Elem())
	return func(s string) (any, error) {
		if s == "None" {
			if rt := t.GoType(); rt != nil {
				return reflect.Zero(rt).Interface(), nil
			}
			return nil, nil
		}
		v, err := inner(s)
		if err != nil {
			return nil, err
		}
		if rt := t.GoType(); rt != nil && rt.Kind() == reflect.Pointer {
			ptr := reflect.New(rt.Elem())
			ptr.Elem().Set(materializeValue(v, rt.Elem()))
			return ptr.Interface(), nil
		}
		return v, nil
	}
}

func unionConverter(t *typespec.Type) Func {
	arms := t.Variants()
	return func(s string) (any, error) {
		if s == "None" && unionAcceptsNone(arms) {
			return nil, nil
		}
		for _, arm := range arms {
			if v, err := Resolve(arm)(s); err == nil {
				return v, nil
			}
		}
		return nil, &ConversionError{
			Value:  s,
			Target: t.FriendlyName(),
			Detail: fmt.Sprintf("no union arm matched (tried %s)", armNames(arms)),
		}
	}
}

func unionAcceptsNone(arms []*typespec.Type) bool {
	for _, arm := range arms {
		if arm.Kind() == typespec.KindNone || arm.Kind() == typespec.KindOptional {
			return true
		}
	}
	return false
}

func armNames(arms []*typespec.Type) string {
	names := make([]string, len(arms))
	for i, arm := range arms {
		names[i] = arm.FriendlyName()
	}
	return strings.Join(names, ", ")
}

func sequenceConverter(t *typespec.Type) Func {
	elem := Resolve(t.Elem())
	return func(s string) (any, error) {
		parts, err := textsplit.Bracketed(s, ',', textsplit.WithStripBrackets())
		if err != nil {
			return nil, err
		}
		if rt := t.GoType(); rt != nil {
			out := reflect.MakeSlice(rt, 0, len(parts))
			for _, part := range parts {
				v, err := elem(part)
				if err != nil {
					return nil, err
				}
				out = reflect.Append(out, materializeValue(v, rt.Elem()))
			}
			return out.Interface(), nil
		}
		out := make([]any, 0, len(parts))
		for _, part := range parts {
			v, err := elem(part)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}

func setConverter(t *typespec.Type) Func {
	elem := Resolve(t.Elem())
	return func(s string) (any, error) {
		parts, err := textsplit.Bracketed(s, ',', textsplit.WithStripBrackets())
		if err != nil {
			return nil, err
		}
		out := make(map[any]struct{}, len(parts))
		for _, part := range parts {
			v, err := elem(part)
			if err != nil {
				return nil, err
			}
			out[v] = struct{}{}
		}
		return out, nil
	}
}

func tupleConverter(t *typespec.Type) Func {
	members := t.Variants()
	return func(s string) (any, error) {
		parts := strings.Split(s, ",")
		if len(parts) != len(members) {
			return nil, &ConversionError{
				Value:  s,
				Target: t.FriendlyName(),
				Detail: fmt.Sprintf("expected %d comma-separated values for (%s), got %d: %q", len(members), armNames(members), len(parts), parts),
			}
		}
		rt := t.GoType()
		if rt != nil && rt.Kind() == reflect.Array {
			out := reflect.New(rt).Elem()
			for i, part := range parts {
				v, err := Resolve(members[i])(part)
				if err != nil {
					return nil, err
				}
				out.Index(i).Set(materializeValue(v, rt.Elem()))
			}
			return out.Interface(), nil
		}
		out := make([]any, len(parts))
		for i, part := range parts {
			v, err := Resolve(members[i])(part)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
}

func mappingConverter(t *typespec.Type) Func {
	key := Resolve(t.Key())
	value := Resolve(t.Elem())
	return func(s string) (any, error) {
		pairs, err := textsplit.Bracketed(s, ',')
		if err != nil {
			return nil, err
		}
		type kv struct{ k, v any }
		entries := make([]kv, 0, len(pairs))
		for _, pair := range pairs {
			halves, err := textsplit.Bracketed(pair, ':', textsplit.WithStripBrackets(), textsplit.WithMaxSplits(1))
			if err != nil {
				return nil, err
			}
			if len(halves) != 2 {
				return nil, &ConversionError{
					Value:  s,
					Target: t.FriendlyName(),
					Detail: fmt.Sprintf(`expected colon-separated pairs like "key1:val1,key2:val2", but %q does not split into two parts`, pair),
				}
			}
			k, err := key(halves[0])
			if err != nil {
				return nil, err
			}
			v, err := value(halves[1])
			if err != nil {
				return nil, err
			}
			entries = append(entries, kv{k, v})
		}
		if rt := t.GoType(); rt != nil {
			out := reflect.MakeMapWithSize(rt, len(entries))
			for _, e := range entries {
				out.SetMapIndex(materializeValue(e.k, rt.Key()), materializeValue(e.v, rt.Elem()))
			}
			return out.Interface(), nil
		}
		out := orderedmap.NewOrderedMap[any, any]()
		for _, e := range entries {
			out.Set(e.k, e.v)
		}
		return out, nil
	}
}

func recordConverter(t *typespec.Type) Func {
	return func(s string) (any, error) {
		return nil, &ConversionError{
			Value:  s,
			Target: t.FriendlyName(),
			Detail: "structured record arguments are routed through a nested parser, not converted from a single token",
		}
	}
}

// materialize adapts v to the backing Go type when one is known.
func materialize(v any, rt reflect.Type) any {
	if rt == nil || v == nil {
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Type() == rt {
		return v
	}
	if rv.Type().ConvertibleTo(rt) {
		return rv.Convert(rt).Interface()
	}
	return v
}

// materializeValue is materialize for reflect call sites; nil becomes the
// zero value of rt.
func materializeValue(v any, rt reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(rt)
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != rt && rv.Type().ConvertibleTo(rt) {
		return rv.Convert(rt)
	}
	return rv
}
