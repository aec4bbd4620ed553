package reconcile

import (
	"reflect"
	"time"
)

// Equal reports whether a and b are structurally equal.
//
// Dispatch order matters, most specific first:
//  1. Sets: same cardinality and every element of a is a member of b.
//     Membership is shallow (Go ==), so only comparable elements match.
//  2. String-keyed maps: same cardinality and every key of a is present
//     in b with an Equal value.
//  3. Slices and arrays: same length and Equal element by element.
//  4. Structs of the same type: every exported field Equal.
//  5. Everything else: numbers by numeric value (integers exactly, floats
//     only when either side is a float), time.Time by instant, remaining
//     values by ==.
//
// Inputs must be acyclic.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return isNil(a) && isNil(b)
	}

	if sa, ok := a.(Set); ok {
		if sb, ok := b.(Set); ok {
			return equalSets(sa, sb)
		}
		return false
	}
	if _, ok := b.(Set); ok {
		return false
	}

	if ma, ok := toStringMap(a); ok {
		if mb, ok := toStringMap(b); ok {
			return equalMaps(ma, mb)
		}
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)

	if isList(va) && isList(vb) {
		if va.Len() != vb.Len() {
			return false
		}
		for i := 0; i < va.Len(); i++ {
			if !Equal(va.Index(i).Interface(), vb.Index(i).Interface()) {
				return false
			}
		}
		return true
	}

	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}

	if va.Kind() == reflect.Pointer && vb.Kind() == reflect.Pointer {
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return Equal(va.Elem().Interface(), vb.Elem().Interface())
	}

	if va.Kind() == reflect.Struct && vb.Kind() == reflect.Struct {
		if va.Type() != vb.Type() {
			return false
		}
		for i := 0; i < va.NumField(); i++ {
			if !va.Type().Field(i).IsExported() {
				continue
			}
			if !Equal(va.Field(i).Interface(), vb.Field(i).Interface()) {
				return false
			}
		}
		return true
	}

	if isNumber(va) || isNumber(vb) {
		return equalNumbers(va, vb)
	}

	if va.Type() != vb.Type() || !va.Type().Comparable() {
		return false
	}
	return a == b
}

func equalSets(a, b Set) bool {
	if len(a) != len(b) {
		return false
	}
	for e := range a {
		if !b.Has(e) {
			return false
		}
	}
	return true
}

func equalMaps(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

// toStringMap returns v as a map[string]any when v is any map keyed by strings.
func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func isList(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isNumber(v reflect.Value) bool {
	return isSigned(v) || isUnsigned(v) || isFloat(v)
}

func isSigned(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

// equalNumbers compares two numeric values. Integer pairs are compared
// exactly, since widening to float64 loses precision above 2^53.
func equalNumbers(a, b reflect.Value) bool {
	if !isNumber(a) || !isNumber(b) {
		return false
	}
	if isFloat(a) || isFloat(b) {
		return toFloat(a) == toFloat(b)
	}
	switch {
	case isSigned(a) && isSigned(b):
		return a.Int() == b.Int()
	case isUnsigned(a) && isUnsigned(b):
		return a.Uint() == b.Uint()
	case isSigned(a):
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	default:
		return b.Int() >= 0 && uint64(b.Int()) == a.Uint()
	}
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isSigned(v):
		return float64(v.Int())
	case isUnsigned(v):
		return float64(v.Uint())
	}
	return v.Float()
}
