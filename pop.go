package pilot

// PopTarget selects how far Pop unwinds the stack. The set of variants
// is closed; construct them with ToRoot, Back, ToKind, ToIndex or
// ToFinder.
type PopTarget interface {
	isPopTarget()
}

// Finder maps the current ordered pushed destinations to the number of
// entries to keep. Returning ok == false aborts the pop. A finder that
// located the entry at slice index i and wants to land on it returns
// i + 1.
type Finder func(pages []Destination) (keep int, ok bool)

type popRoot struct{}
type popBack struct{}
type popKind struct{ kind Kind }
type popIndex struct{ keep int }
type popFinder struct{ find Finder }

func (popRoot) isPopTarget()   {}
func (popBack) isPopTarget()   {}
func (popKind) isPopTarget()   {}
func (popIndex) isPopTarget()  {}
func (popFinder) isPopTarget() {}

// ToRoot unwinds the whole stack. Pending dismissal callbacks of the
// removed entries are discarded without being invoked.
func ToRoot() PopTarget { return popRoot{} }

// Back removes the top entry and invokes its dismissal callback. On a
// stack of depth one this lands on root.
func Back() PopTarget { return popBack{} }

// ToKind unwinds to the topmost entry of kind k. The matched entry is
// kept; everything above it is removed. A kind not on the stack is a
// logged no-op.
func ToKind(k Kind) PopTarget { return popKind{kind: k} }

// ToIndex unwinds so that the first keep pushed entries remain; zero
// lands on root. Out-of-range values are logged no-ops.
func ToIndex(keep int) PopTarget { return popIndex{keep: keep} }

// ToFinder unwinds to the position chosen by find, with the same
// truncation semantics as ToIndex.
func ToFinder(find Finder) PopTarget { return popFinder{find: find} }
