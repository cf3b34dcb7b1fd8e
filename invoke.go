package autoarg

import (
	"context"
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// invoke calls the callable with the merged keyword arguments.
func (p *Parser) invoke(kwargs map[string]any) (any, error) {
	switch p.mode {
	case modeRecord:
		out := reflect.New(p.sig.Input())
		if err := p.fillStruct(out.Elem(), kwargs); err != nil {
			return nil, err
		}
		return out.Interface(), nil

	case modeStruct:
		in := reflect.New(p.sig.Input())
		if err := p.fillStruct(in.Elem(), kwargs); err != nil {
			return nil, err
		}
		arg := in
		if !p.inputIsPtr {
			arg = in.Elem()
		}
		callArgs := make([]reflect.Value, 0, 2)
		if p.wantsCtx {
			callArgs = append(callArgs, reflect.ValueOf(context.Background()))
		}
		return splitReturns(p.fn.Call(append(callArgs, arg)))

	default: // modeFunc
		ft := p.fn.Type()
		offset := 0
		callArgs := make([]reflect.Value, 0, ft.NumIn())
		if p.wantsCtx {
			callArgs = append(callArgs, reflect.ValueOf(context.Background()))
			offset = 1
		}
		for i := range p.sig.Args {
			arg := &p.sig.Args[i]
			paramType := ft.In(i + offset)
			v, ok := kwargs[arg.Name]
			if !ok {
				return nil, fmt.Errorf("internal: no value for parameter %q", arg.Name)
			}
			slot := reflect.New(paramType).Elem()
			if err := assignValue(slot, v); err != nil {
				return nil, fmt.Errorf("argument %q: %w", arg.Name, err)
			}
			callArgs = append(callArgs, slot)
		}
		return splitReturns(p.fn.Call(callArgs))
	}
}

func (p *Parser) fillStruct(dst reflect.Value, kwargs map[string]any) error {
	for i := range p.sig.Args {
		arg := &p.sig.Args[i]
		if arg.FieldIndex == nil {
			continue
		}
		v, ok := kwargs[arg.Name]
		if !ok {
			continue
		}
		if err := assignValue(dst.FieldByIndex(arg.FieldIndex), v); err != nil {
			return fmt.Errorf("argument %q: %w", arg.Name, err)
		}
	}
	return nil
}

// assignValue places v into dst, unwrapping pointers produced by nested
// record construction and converting compatible kinds.
func assignValue(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(dst.Type()):
		dst.Set(rv)
	case rv.Kind() == reflect.Pointer && rv.Type().Elem().AssignableTo(dst.Type()):
		dst.Set(rv.Elem())
	case dst.Kind() == reflect.Pointer && rv.Type().AssignableTo(dst.Type().Elem()):
		ptr := reflect.New(dst.Type().Elem())
		ptr.Elem().Set(rv)
		dst.Set(ptr)
	// Integer-to-string conversion would produce a rune string, never what a
	// caller wants from a default override.
	case rv.Type().ConvertibleTo(dst.Type()) && (dst.Kind() != reflect.String || rv.Kind() == reflect.String):
		dst.Set(rv.Convert(dst.Type()))
	default:
		return fmt.Errorf("cannot assign %T to %s", v, dst.Type())
	}
	return nil
}

func splitReturns(outs []reflect.Value) (any, error) {
	var err error
	if len(outs) > 0 && outs[len(outs)-1].Type().Implements(errType) {
		if e, _ := outs[len(outs)-1].Interface().(error); e != nil {
			err = e
		}
		outs = outs[:len(outs)-1]
	}
	switch len(outs) {
	case 0:
		return nil, err
	case 1:
		return outs[0].Interface(), err
	default:
		vals := make([]any, len(outs))
		for i, out := range outs {
			vals[i] = out.Interface()
		}
		return vals, err
	}
}
