package curve

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
)

// Constructor creates an empty curve of a registered type, ready to have its
// fields decoded into. It must return a pointer.
type Constructor func() Curve

// Registry maps type names to curve constructors. It is safe for
// concurrent use.
type Registry struct {
	mx    sync.RWMutex
	types *treemap.Map // string → Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: treemap.NewWithStringComparator()}
}

// DefaultRegistry knows all built-in curve types.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.mustRegister(TypeLine, func() Curve { return &Line{} })
	r.mustRegister(TypeQuadraticBezier, func() Curve { return &QuadraticBezier{} })
	r.mustRegister(TypeCubicBezier, func() Curve { return &CubicBezier{} })
	r.mustRegister(TypeCatmullRom, func() Curve { return NewCatmullRom(nil, false) })
	r.mustRegister(TypeHobby, func() Curve { return &Hobby{Tension: 1} })
	return r
}

// Register adds a curve type to the default registry.
func Register(name string, ctor Constructor) error {
	return DefaultRegistry.Register(name, ctor)
}

// Register adds a curve type. Names must be unique.
func (r *Registry) Register(name string, ctor Constructor) error {
	if name == "" || ctor == nil {
		return fmt.Errorf("cannot register curve type %q without constructor", name)
	}
	r.mx.Lock()
	defer r.mx.Unlock()
	if _, found := r.types.Get(name); found {
		return fmt.Errorf("%w: %s", ErrDuplicateCurveType, name)
	}
	r.types.Put(name, ctor)
	tracer().Debugf("registered curve type %s", name)
	return nil
}

func (r *Registry) mustRegister(name string, ctor Constructor) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Lookup finds the constructor for a type name.
func (r *Registry) Lookup(name string) (Constructor, error) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if v, found := r.types.Get(name); found {
		return v.(Constructor), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCurveType, name)
}

// New creates an empty curve of a registered type.
func (r *Registry) New(name string) (Curve, error) {
	ctor, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return ctor(), nil
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	keys := r.types.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}
