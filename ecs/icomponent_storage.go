package ecs

import (
	"iter"
	"reflect"
)

// iComponentStorage is one type-erased archetype column.
type iComponentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Compact() map[int]int
	Iter() iter.Seq[int]
}

// componentTypeOf returns the value type of a component passed either by
// value or by pointer.
func componentTypeOf(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
