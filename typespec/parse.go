// This file parses textual type expressions (e.g. `string`, `list(number)`,
// `map(string, int)`, `object({name=string})`) into type descriptors. The
// expression grammar is HCL's, so object shapes can lean on the upstream
// typeexpr extension and the cty type system.

package typespec

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Parse converts a type expression into a type descriptor. Alongside the
// core HCL type keywords and constructors (string, number, bool, any, list,
// set, map, tuple, object) it understands int, float, time, none,
// optional(T) and union(T1, ..., Tn). Descriptors built this way carry no
// backing Go type, so converted collections materialize generically
// ([]any, ordered maps and map[any]struct{} sets).
func Parse(src string) (*Type, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<type>", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid type expression %q: %s", src, diags.Error())
	}
	return fromExpr(expr)
}

// MustParse is Parse for statically known expressions; it panics on error.
func MustParse(src string) *Type {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

func fromExpr(expr hclsyntax.Expression) (*Type, error) {
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		switch v.Name {
		case "optional":
			if len(v.Args) != 1 {
				return nil, fmt.Errorf("optional() requires exactly one argument, got %d", len(v.Args))
			}
			inner, err := fromExpr(v.Args[0])
			if err != nil {
				return nil, err
			}
			return OptionalOf(inner), nil
		case "union":
			if len(v.Args) < 2 {
				return nil, fmt.Errorf("union() requires at least two arms, got %d", len(v.Args))
			}
			arms := make([]*Type, len(v.Args))
			for i, arg := range v.Args {
				arm, err := fromExpr(arg)
				if err != nil {
					return nil, err
				}
				arms[i] = arm
			}
			return UnionOf(arms...), nil
		case "tuple":
			members := make([]*Type, len(v.Args))
			for i, arg := range v.Args {
				m, err := fromExpr(arg)
				if err != nil {
					return nil, err
				}
				members[i] = m
			}
			return TupleOf(members...), nil
		case "list", "sequence":
			if len(v.Args) != 1 {
				return nil, fmt.Errorf("%s() requires exactly one argument, got %d", v.Name, len(v.Args))
			}
			elem, err := fromExpr(v.Args[0])
			if err != nil {
				return nil, err
			}
			return SequenceOf(elem), nil
		case "set":
			if len(v.Args) != 1 {
				return nil, fmt.Errorf("set() requires exactly one argument, got %d", len(v.Args))
			}
			elem, err := fromExpr(v.Args[0])
			if err != nil {
				return nil, err
			}
			return SetOf(elem), nil
		case "map":
			switch len(v.Args) {
			case 1:
				value, err := fromExpr(v.Args[0])
				if err != nil {
					return nil, err
				}
				return MappingOf(String, value), nil
			case 2:
				key, err := fromExpr(v.Args[0])
				if err != nil {
					return nil, err
				}
				value, err := fromExpr(v.Args[1])
				if err != nil {
					return nil, err
				}
				return MappingOf(key, value), nil
			default:
				return nil, fmt.Errorf("map() requires one or two arguments, got %d", len(v.Args))
			}
		case "object":
			// Object definitions follow HCL's own type-constraint grammar,
			// so delegate to the upstream parser and bridge from cty.
			ct, diags := typeexpr.TypeConstraint(expr)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid object type: %s", diags.Error())
			}
			return FromCty(ct)
		default:
			return nil, fmt.Errorf("unknown type constructor %q", v.Name)
		}
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return nil, fmt.Errorf("invalid type keyword: not a single identifier")
		}
		switch name := v.Traversal.RootName(); name {
		case "string":
			return String, nil
		case "int":
			return Int, nil
		case "float", "number":
			return Float, nil
		case "bool":
			return Bool, nil
		case "time":
			return Time, nil
		case "none":
			return None, nil
		case "any":
			return Any, nil
		default:
			return nil, fmt.Errorf("unknown type keyword %q", name)
		}
	default:
		return nil, fmt.Errorf("unsupported expression in type definition: %T", expr)
	}
}

// FromCty bridges a cty type into its descriptor equivalent. cty numbers map
// to float, and object attributes (unordered in cty) are sorted by name.
func FromCty(ct cty.Type) (*Type, error) {
	switch {
	case ct == cty.DynamicPseudoType:
		return Any, nil
	case ct.Equals(cty.String):
		return String, nil
	case ct.Equals(cty.Number):
		return Float, nil
	case ct.Equals(cty.Bool):
		return Bool, nil
	case ct.IsListType():
		elem, err := FromCty(ct.ElementType())
		if err != nil {
			return nil, err
		}
		return SequenceOf(elem), nil
	case ct.IsSetType():
		elem, err := FromCty(ct.ElementType())
		if err != nil {
			return nil, err
		}
		return SetOf(elem), nil
	case ct.IsMapType():
		value, err := FromCty(ct.ElementType())
		if err != nil {
			return nil, err
		}
		return MappingOf(String, value), nil
	case ct.IsTupleType():
		elems := ct.TupleElementTypes()
		members := make([]*Type, len(elems))
		for i, et := range elems {
			m, err := FromCty(et)
			if err != nil {
				return nil, err
			}
			members[i] = m
		}
		return TupleOf(members...), nil
	case ct.IsObjectType():
		attrs := ct.AttributeTypes()
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]Field, len(names))
		for i, name := range names {
			ft, err := FromCty(attrs[name])
			if err != nil {
				return nil, fmt.Errorf("in object attribute %q: %w", name, err)
			}
			fields[i] = Field{Name: name, Type: ft}
		}
		return RecordOf(fields...), nil
	default:
		return nil, fmt.Errorf("unsupported cty type %s", ct.FriendlyName())
	}
}
