package inspector

import (
	"reflect"

	"github.com/jinzhu/copier"
	"github.com/plus3/dodeca/ecs"
)

// Capability is implemented by every component type that can be shown in the
// inspector. Implementations are usually pointer receivers on the component
// itself so Render edits the stored value in place.
type Capability interface {
	// Name is the section label. It must not depend on the component's value.
	Name() string
	// CloneOnto queues a copy of the current value onto target. The source is
	// left untouched.
	CloneOnto(target *ecs.EntityCommands)
	// Remove queues detaching this component type from target.
	Remove(target *ecs.EntityCommands)
	// Render draws the value into ui and writes user edits back to it. It may
	// only touch the component and edit.
	Render(edit *EditState, ui Surface)
}

// Handle is one capability found on an entity.
type Handle struct {
	Type reflect.Type
	Capability
}

// CloneValue returns a copy of *src that shares no slices, maps or pointers
// with it. Plain value types are copied directly. Unexported struct fields
// are copied shallow.
func CloneValue[T any](src *T) (T, error) {
	if !holdsReferences(reflect.TypeFor[T](), nil) {
		return *src, nil
	}

	var dst T
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		return *src, err
	}
	copyUnexported(reflect.ValueOf(&dst).Elem(), reflect.ValueOf(src).Elem())
	return dst, nil
}

// copyUnexported assigns the unexported top-level fields of src to dst.
func copyUnexported(dst, src reflect.Value) {
	if dst.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < dst.NumField(); i++ {
		if dst.Type().Field(i).IsExported() {
			continue
		}
		to, from := dst.Field(i), src.Field(i)
		reflect.NewAt(to.Type(), to.Addr().UnsafePointer()).Elem().
			Set(reflect.NewAt(from.Type(), from.Addr().UnsafePointer()).Elem())
	}
}

func holdsReferences(t reflect.Type, seen map[reflect.Type]bool) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	case reflect.Array:
		return holdsReferences(t.Elem(), seen)
	case reflect.Struct:
		if seen == nil {
			seen = make(map[reflect.Type]bool)
		}
		if seen[t] {
			return false
		}
		seen[t] = true
		for i := 0; i < t.NumField(); i++ {
			if holdsReferences(t.Field(i).Type, seen) {
				return true
			}
		}
	}
	return false
}

// Insert queues a deep copy of *src onto target. If the deep copy fails the
// value is inserted shallow.
func Insert[T any](target *ecs.EntityCommands, src *T) {
	value, _ := CloneValue(src)
	target.Insert(value)
}

// Share queues *src onto target as a plain value copy, so pointer fields keep
// referring to the same data. Asset handles clone this way.
func Share[T any](target *ecs.EntityCommands, src *T) {
	target.Insert(*src)
}

// Detach queues removal of T from target.
func Detach[T any](target *ecs.EntityCommands) {
	target.Remove(reflect.TypeFor[T]())
}
