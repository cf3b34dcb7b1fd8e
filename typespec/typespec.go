package typespec

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind enumerates the variants of the type-descriptor tree.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindTime
	KindIntEnum
	KindNone
	KindAny
	KindOptional
	KindUnion
	KindSequence
	KindSet
	KindTuple
	KindMapping
	KindRecord
)

// Type describes the shape of a single argument: a primitive, a collection,
// a union, or a structured record. Types built from Go declarations also
// carry the backing reflect.Type so converted values can be materialized as
// concrete Go values.
type Type struct {
	kind     Kind
	elem     *Type   // Optional, Sequence and Set element, Mapping value
	key      *Type   // Mapping key
	variants []*Type // Union arms and Tuple members, in declared order
	fields   []Field // Record fields, in declaration order
	goType   reflect.Type
}

// Field is one named field of a Record type.
type Field struct {
	Name string
	Type *Type
}

// Primitive and marker types.
var (
	Int    = &Type{kind: KindInt}
	Float  = &Type{kind: KindFloat}
	String = &Type{kind: KindString}
	Bool   = &Type{kind: KindBool}
	Time   = &Type{kind: KindTime}
	None   = &Type{kind: KindNone}
	Any    = &Type{kind: KindAny}
)

// OptionalOf wraps t so the literal "None" is also accepted.
func OptionalOf(t *Type) *Type { return &Type{kind: KindOptional, elem: t} }

// UnionOf describes a value matching any of the given arms, tried in order.
func UnionOf(arms ...*Type) *Type { return &Type{kind: KindUnion, variants: arms} }

// SequenceOf describes an ordered, comma-separated collection of t.
func SequenceOf(t *Type) *Type { return &Type{kind: KindSequence, elem: t} }

// SetOf describes an unordered, comma-separated collection of t.
func SetOf(t *Type) *Type { return &Type{kind: KindSet, elem: t} }

// TupleOf describes a fixed-arity comma-separated group, converted
// positionally.
func TupleOf(members ...*Type) *Type { return &Type{kind: KindTuple, variants: members} }

// MappingOf describes comma-separated "key:value" pairs.
func MappingOf(key, value *Type) *Type { return &Type{kind: KindMapping, key: key, elem: value} }

// RecordOf describes a structured type built from named fields. Record-typed
// arguments are routed to a nested parser rather than converted from a
// single token.
func RecordOf(fields ...Field) *Type { return &Type{kind: KindRecord, fields: fields} }

// EnumOf describes a named integer type, converted as int.
func EnumOf(goType reflect.Type) *Type { return &Type{kind: KindIntEnum, goType: goType} }

// Kind returns the variant of the tree node.
func (t *Type) Kind() Kind { return t.kind }

// Elem returns the element type of an Optional, Sequence or Set, or the
// value type of a Mapping.
func (t *Type) Elem() *Type { return t.elem }

// Key returns the key type of a Mapping.
func (t *Type) Key() *Type { return t.key }

// Variants returns the arms of a Union or the members of a Tuple.
func (t *Type) Variants() []*Type { return t.variants }

// Fields returns the named fields of a Record.
func (t *Type) Fields() []Field { return t.fields }

// GoType returns the backing Go type, or nil when the descriptor was not
// derived from a Go declaration.
func (t *Type) GoType() reflect.Type { return t.goType }

// WithGoType returns a copy of t carrying the given backing Go type.
func (t *Type) WithGoType(rt reflect.Type) *Type {
	cp := *t
	cp.goType = rt
	return &cp
}

// FriendlyName renders t using the same keywords understood by Parse.
func (t *Type) FriendlyName() string {
	if t == nil {
		return "any"
	}
	switch t.kind {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindNone:
		return "none"
	case KindAny:
		return "any"
	case KindIntEnum:
		if t.goType != nil {
			return t.goType.String()
		}
		return "int"
	case KindOptional:
		return fmt.Sprintf("optional(%s)", t.elem.FriendlyName())
	case KindUnion:
		return "union(" + joinNames(t.variants) + ")"
	case KindSequence:
		return fmt.Sprintf("list(%s)", t.elem.FriendlyName())
	case KindSet:
		return fmt.Sprintf("set(%s)", t.elem.FriendlyName())
	case KindTuple:
		return "tuple(" + joinNames(t.variants) + ")"
	case KindMapping:
		return fmt.Sprintf("map(%s, %s)", t.key.FriendlyName(), t.elem.FriendlyName())
	case KindRecord:
		parts := make([]string, len(t.fields))
		for i, f := range t.fields {
			parts[i] = f.Name + "=" + f.Type.FriendlyName()
		}
		return "object({" + strings.Join(parts, ", ") + "})"
	default:
		return "invalid"
	}
}

func (t *Type) String() string { return t.FriendlyName() }

func joinNames(types []*Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.FriendlyName()
	}
	return strings.Join(parts, ", ")
}
