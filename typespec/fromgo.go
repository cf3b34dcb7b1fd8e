package typespec

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"
)

var timeType = reflect.TypeOf(time.Time{})

// FromGo derives a type descriptor from a Go type. Pointers become Optional,
// slices become Sequence, arrays become fixed-arity Tuples, maps become
// Mapping, structs become Record and named integer types become IntEnum. The
// returned descriptor carries rt so converted values materialize as concrete
// Go values.
func FromGo(rt reflect.Type) (*Type, error) {
	if rt == timeType {
		return Time.WithGoType(rt), nil
	}
	switch rt.Kind() {
	case reflect.Bool:
		return Bool.WithGoType(rt), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rt.PkgPath() != "" {
			return EnumOf(rt), nil
		}
		return Int.WithGoType(rt), nil
	case reflect.Float32, reflect.Float64:
		return Float.WithGoType(rt), nil
	case reflect.String:
		return String.WithGoType(rt), nil
	case reflect.Pointer:
		elem, err := FromGo(rt.Elem())
		if err != nil {
			return nil, err
		}
		return OptionalOf(elem).WithGoType(rt), nil
	case reflect.Slice:
		elem, err := FromGo(rt.Elem())
		if err != nil {
			return nil, err
		}
		return SequenceOf(elem).WithGoType(rt), nil
	case reflect.Array:
		elem, err := FromGo(rt.Elem())
		if err != nil {
			return nil, err
		}
		members := make([]*Type, rt.Len())
		for i := range members {
			members[i] = elem
		}
		return TupleOf(members...).WithGoType(rt), nil
	case reflect.Map:
		key, err := FromGo(rt.Key())
		if err != nil {
			return nil, err
		}
		value, err := FromGo(rt.Elem())
		if err != nil {
			return nil, err
		}
		return MappingOf(key, value).WithGoType(rt), nil
	case reflect.Struct:
		fields, err := recordFields(rt)
		if err != nil {
			return nil, err
		}
		return RecordOf(fields...).WithGoType(rt), nil
	case reflect.Interface:
		if rt.NumMethod() == 0 {
			return Any.WithGoType(rt), nil
		}
		return nil, fmt.Errorf("cannot describe non-empty interface type %s", rt)
	default:
		return nil, fmt.Errorf("cannot describe Go type %s as an argument type", rt)
	}
}

func recordFields(rt reflect.Type) ([]Field, error) {
	var fields []Field
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() || FieldName(sf) == "" {
			continue
		}
		ft, err := FromGo(sf.Type)
		if err != nil {
			return nil, fmt.Errorf("in field %s of %s: %w", sf.Name, rt, err)
		}
		fields = append(fields, Field{Name: FieldName(sf), Type: ft})
	}
	return fields, nil
}

// FieldName returns the argument name for a struct field: the first element
// of its `arg` tag when present, otherwise the field name in snake case. An
// `arg:"-"` tag hides a field, reported as the empty name.
func FieldName(sf reflect.StructField) string {
	tag, ok := sf.Tag.Lookup("arg")
	if ok {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return snakeCase(sf.Name)
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
