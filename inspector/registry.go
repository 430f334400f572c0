package inspector

import (
	"fmt"
	"reflect"

	"github.com/plus3/dodeca/ecs"
)

type registration struct {
	typ  reflect.Type
	wrap func(component any) Capability
}

// Registry maps component types to their capability. Registration happens at
// startup; the first inspection pass seals the registry.
type Registry struct {
	entries []registration
	index   map[reflect.Type]int
	sealed  bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[reflect.Type]int)}
}

// Register makes T inspectable through its own pointer methods.
func Register[T any, P interface {
	*T
	Capability
}](r *Registry) error {
	return RegisterFunc(r, func(c *T) Capability { return P(c) })
}

// RegisterFunc makes T inspectable through an adapter built around the stored
// component.
func RegisterFunc[T any](r *Registry, wrap func(*T) Capability) error {
	t := reflect.TypeFor[T]()
	if r.sealed {
		return fmt.Errorf("%w: cannot add %s", ErrRegistrySealed, t)
	}
	if _, ok := r.index[t]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, t)
	}

	r.index[t] = len(r.entries)
	r.entries = append(r.entries, registration{
		typ: t,
		wrap: func(component any) Capability {
			return wrap(component.(*T))
		},
	})
	return nil
}

// MustRegister is Register that panics on error.
func MustRegister[T any, P interface {
	*T
	Capability
}](r *Registry) {
	if err := Register[T, P](r); err != nil {
		panic(err)
	}
}

// MustRegisterFunc is RegisterFunc that panics on error.
func MustRegisterFunc[T any](r *Registry, wrap func(*T) Capability) {
	if err := RegisterFunc(r, wrap); err != nil {
		panic(err)
	}
}

// Len is the number of registered types.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Types lists registered types in registration order.
func (r *Registry) Types() []reflect.Type {
	types := make([]reflect.Type, len(r.entries))
	for i, e := range r.entries {
		types[i] = e.typ
	}
	return types
}

// Registered reports whether t has a capability.
func (r *Registry) Registered(t reflect.Type) bool {
	_, ok := r.index[t]
	return ok
}

// Seal rejects further registrations.
func (r *Registry) Seal() {
	r.sealed = true
}

// CapabilitiesOf returns one handle per registered type attached to the
// entity, in registration order. Attached types without a registration are
// skipped. The handles point at the stored components and stay valid until
// the entity next changes archetype.
func (r *Registry) CapabilitiesOf(reader ecs.ComponentReader, id ecs.EntityId) []Handle {
	var handles []Handle
	for _, e := range r.entries {
		component := reader.GetComponent(id, e.typ)
		if component == nil {
			continue
		}
		handles = append(handles, Handle{Type: e.typ, Capability: e.wrap(component)})
	}
	return handles
}
