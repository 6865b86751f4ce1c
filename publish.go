package pilot

// Op identifies the mutating operation behind a change notification.
type Op int

const (
	OpPush Op = iota
	OpPop
	OpPresent
	OpDismiss
	OpDismissAll
	OpSetRoot
)

func (o Op) String() string {
	switch o {
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpPresent:
		return "present"
	case OpDismiss:
		return "dismiss"
	case OpDismissAll:
		return "dismissAll"
	case OpSetRoot:
		return "setRoot"
	default:
		return "unknown"
	}
}

// Change is emitted after every operation that actually mutated
// coordinator state. Rejected requests (kind not found, index out of
// bounds) publish nothing.
type Change struct {
	Op Op
}

// Publisher receives change notifications so the render layer can
// repaint. It is invoked synchronously, after the operation's state
// transition and dismissal callbacks have completed.
type Publisher interface {
	Publish(Change)
}

// PublisherFunc adapts a plain function to the Publisher interface.
type PublisherFunc func(Change)

func (f PublisherFunc) Publish(c Change) { f(c) }
