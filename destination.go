package pilot

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Destination describes a navigable screen. Concrete types carry whatever
// data the screen needs; the coordinator relies only on identity and the
// ability to produce a view on demand.
type Destination interface {
	// DestinationID returns a stable identifier assigned at construction
	// and never reassigned. Two destinations of the same concrete type
	// are equal iff their identifiers are equal. Identifier uniqueness is
	// per type by convention; the coordinator does not enforce it.
	DestinationID() string

	// MakeView lazily produces the screen's model. It is never called at
	// push or present time, only when the destination is displayed.
	MakeView() tea.Model
}

// Presentable is implemented by destinations that carry their own
// presentation metadata. An explicit configuration passed to
// Coordinator.Present takes precedence over it.
type Presentable interface {
	Presentation() Presentation
}

// NewID returns a fresh destination identifier.
func NewID() string { return uuid.NewString() }

// Kind identifies a concrete destination type at runtime. It is the
// handle used by type-based stack searches and dismissal targeting.
type Kind struct {
	t reflect.Type
}

// KindOf builds the Kind for a concrete destination type.
func KindOf[T Destination]() Kind {
	return Kind{t: reflect.TypeOf((*T)(nil)).Elem()}
}

func (k Kind) String() string {
	if k.t == nil {
		return "<none>"
	}
	return k.t.String()
}

// AnyDestination is a type-erased box over a concrete Destination so the
// stack and modal slots can hold heterogeneous destination types in one
// container. Erasure preserves identity, equality and late-bound
// rendering; anything beyond that requires a deliberate downcast of the
// value returned by Unwrap.
type AnyDestination struct {
	id     string
	kind   reflect.Type
	value  Destination
	render func() tea.Model
}

// Erase wraps a concrete destination, copying its identifier out for
// fast comparison.
func Erase(d Destination) AnyDestination {
	return AnyDestination{
		id:     d.DestinationID(),
		kind:   reflect.TypeOf(d),
		value:  d,
		render: d.MakeView,
	}
}

// ID returns the wrapped destination's identifier.
func (a AnyDestination) ID() string { return a.id }

// Equals reports whether both boxes wrap the same concrete type and the
// wrapped values compare equal by identifier. Distinct concrete types
// never compare equal, even when identifiers coincide.
func (a AnyDestination) Equals(other AnyDestination) bool {
	return a.kind != nil && a.kind == other.kind && a.id == other.id
}

// Is reports whether the wrapped value's runtime type matches k.
func (a AnyDestination) Is(k Kind) bool {
	return a.kind != nil && a.kind == k.t
}

// Render invokes the wrapped destination's MakeView.
func (a AnyDestination) Render() tea.Model { return a.render() }

// Unwrap returns the original concrete value for deliberate downcasts.
func (a AnyDestination) Unwrap() Destination { return a.value }
