package pilot

import (
	"io"

	"github.com/charmbracelet/log"
)

// Coordinator is the per-navigation-context state machine. It owns the
// push stack above a root destination, the sheet and full-screen modal
// slots with their dismissal callbacks, and an optional non-owning link
// to the parent context it was presented from.
//
// Coordinators are UI-thread-confined: there is no internal locking, no
// operation suspends, and dismissal callbacks run synchronously before
// the triggering operation returns. A re-entrant call made from inside a
// callback observes fully-updated state.
type Coordinator struct {
	root  Destination
	stack []AnyDestination

	sheet      *AnyDestination
	fullScreen *AnyDestination

	// presentations is keyed by destination identifier and populated at
	// present time. Stale entries are never purged.
	presentations map[string]Presentation

	pushCallbacks       []func()
	sheetCallbacks      []func()
	fullScreenCallbacks []func()

	// lastPresented disambiguates which modal channel Dismiss targets.
	lastPresented string

	// parent is set once at construction and never mutated afterwards.
	// The parent does not own the child.
	parent *Coordinator

	publisher Publisher
	logger    *log.Logger
}

// Option configures a Coordinator at construction.
type Option func(*Coordinator)

// WithParent links the coordinator to the context that presented it. The
// reference is non-owning; the caller guarantees the parent outlives the
// child.
func WithParent(parent *Coordinator) Option {
	return func(c *Coordinator) { c.parent = parent }
}

// WithPublisher sets the change-notification sink consulted after every
// effective mutation.
func WithPublisher(p Publisher) Option {
	return func(c *Coordinator) { c.publisher = p }
}

// WithLogger sets the logger used to report rejected navigation
// requests. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// New creates a coordinator rooted at root.
func New(root Destination, opts ...Option) *Coordinator {
	c := &Coordinator{
		root:                root,
		stack:               make([]AnyDestination, 0),
		presentations:       make(map[string]Presentation),
		pushCallbacks:       make([]func(), 0),
		sheetCallbacks:      make([]func(), 0),
		fullScreenCallbacks: make([]func(), 0),
		logger:              log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push appends destination to the stack. onDismiss, when non-nil, runs
// exactly once if the entry is later removed by a non-root pop. Pushing
// a duplicate identifier is permitted and yields an independent entry.
func (c *Coordinator) Push(d Destination, onDismiss func()) {
	c.stack = append(c.stack, Erase(d))
	c.pushCallbacks = append(c.pushCallbacks, orNoop(onDismiss))
	c.publish(OpPush)
}

// Pop unwinds the stack according to target and reports whether any
// entry was removed. Invalid targets (kind not on the stack, index out
// of range, finder declining) leave state untouched and are logged.
func (c *Coordinator) Pop(target PopTarget) bool {
	switch t := target.(type) {
	case popRoot:
		return c.popToRoot()
	case popBack:
		if len(c.stack) == 0 {
			c.logger.Debug("pop back on empty stack")
			return false
		}
		return c.truncateTo(len(c.stack) - 1)
	case popKind:
		i := c.topIndexOf(t.kind)
		if i < 0 {
			c.logger.Warn("pop: kind not on stack", "kind", t.kind)
			return false
		}
		return c.truncateTo(i + 1)
	case popIndex:
		return c.popToIndex(t.keep)
	case popFinder:
		keep, ok := t.find(c.destinations())
		if !ok {
			c.logger.Debug("pop: finder declined")
			return false
		}
		return c.popToIndex(keep)
	default:
		return false
	}
}

// Present shows destination in a modal channel. cfg, when non-nil, wins
// over metadata attached to the destination itself; with neither the
// default sheet configuration applies. Presenting into an occupied
// channel replaces that occupant without touching the other channel, so
// a sheet and a full-screen cover can be active simultaneously.
func (c *Coordinator) Present(d Destination, cfg *Presentation, onDismiss func()) {
	effective := c.resolvePresentation(d, cfg)
	erased := Erase(d)
	c.presentations[erased.id] = effective
	c.lastPresented = erased.id
	switch effective.Mode {
	case ModeFullScreen:
		c.fullScreen = &erased
		c.fullScreenCallbacks = append(c.fullScreenCallbacks, orNoop(onDismiss))
	default:
		c.sheet = &erased
		c.sheetCallbacks = append(c.sheetCallbacks, orNoop(onDismiss))
	}
	c.publish(OpPresent)
}

// Dismiss removes the most recently presented modal, determined by the
// identity recorded at present time. When that identity matches neither
// slot the call is delegated to the parent coordinator; with no parent
// it falls back to popping the stack. The slot is cleared and the
// callback queue popped before the callback body runs.
func (c *Coordinator) Dismiss() {
	if c.fullScreen != nil && c.fullScreen.id == c.lastPresented {
		c.clearFullScreen(true)
		c.retarget()
		c.publish(OpDismiss)
		return
	}
	if c.sheet != nil && c.sheet.id == c.lastPresented {
		c.clearSheet(true)
		c.retarget()
		c.publish(OpDismiss)
		return
	}
	if c.parent != nil {
		c.parent.Dismiss()
		return
	}
	c.Pop(Back())
}

// DismissAll clears both modal channels, full-screen first, invoking
// their callbacks, then walks the parent chain doing the same. Every
// coordinator up to the root context ends with empty modal slots.
func (c *Coordinator) DismissAll() {
	changed := c.fullScreen != nil || c.sheet != nil
	c.clearFullScreen(true)
	c.clearSheet(true)
	c.lastPresented = ""
	if changed {
		c.publish(OpDismissAll)
	}
	if c.parent != nil {
		c.parent.DismissAll()
	}
}

// SetRoot replaces the base destination. With popAll the stack is also
// unwound root-style, discarding pending callbacks without invoking
// them.
func (c *Coordinator) SetRoot(d Destination, popAll bool) {
	c.root = d
	if popAll {
		c.stack = c.stack[:0]
		c.pushCallbacks = c.pushCallbacks[:0]
	}
	c.publish(OpSetRoot)
}

// ContainsKind reports whether any stack entry or modal occupant is of
// kind k. Screens use it to avoid duplicate navigation.
func (c *Coordinator) ContainsKind(k Kind) bool {
	for _, e := range c.stack {
		if e.Is(k) {
			return true
		}
	}
	return c.IsPresentingKind(k)
}

// IsPresentingKind reports whether either modal slot holds kind k.
func (c *Coordinator) IsPresentingKind(k Kind) bool {
	if c.sheet != nil && c.sheet.Is(k) {
		return true
	}
	return c.fullScreen != nil && c.fullScreen.Is(k)
}

// Contains is the generic form of Coordinator.ContainsKind.
func Contains[T Destination](c *Coordinator) bool {
	return c.ContainsKind(KindOf[T]())
}

// IsPresenting is the generic form of Coordinator.IsPresentingKind.
func IsPresenting[T Destination](c *Coordinator) bool {
	return c.IsPresentingKind(KindOf[T]())
}

// PagesCount returns the number of pushed entries. The root is not
// counted.
func (c *Coordinator) PagesCount() int { return len(c.stack) }

// HasPresentedView reports whether either modal slot is occupied.
func (c *Coordinator) HasPresentedView() bool {
	return c.sheet != nil || c.fullScreen != nil
}

// Root returns the base destination.
func (c *Coordinator) Root() Destination { return c.root }

// Parent returns the presenting coordinator, or nil at the top of the
// hierarchy.
func (c *Coordinator) Parent() *Coordinator { return c.parent }

// Stack returns a copy of the erased push stack in navigation order.
func (c *Coordinator) Stack() []AnyDestination {
	out := make([]AnyDestination, len(c.stack))
	copy(out, c.stack)
	return out
}

// Top returns the erased top-of-stack entry.
func (c *Coordinator) Top() (AnyDestination, bool) {
	if len(c.stack) == 0 {
		return AnyDestination{}, false
	}
	return c.stack[len(c.stack)-1], true
}

// SheetItem returns the sheet slot occupant.
func (c *Coordinator) SheetItem() (AnyDestination, bool) {
	if c.sheet == nil {
		return AnyDestination{}, false
	}
	return *c.sheet, true
}

// FullScreenItem returns the full-screen slot occupant.
func (c *Coordinator) FullScreenItem() (AnyDestination, bool) {
	if c.fullScreen == nil {
		return AnyDestination{}, false
	}
	return *c.fullScreen, true
}

// PresentationFor returns the configuration recorded when the
// destination with the given identifier was presented.
func (c *Coordinator) PresentationFor(id string) (Presentation, bool) {
	p, ok := c.presentations[id]
	return p, ok
}

func (c *Coordinator) resolvePresentation(d Destination, cfg *Presentation) Presentation {
	if cfg != nil {
		return *cfg
	}
	if p, ok := d.(Presentable); ok {
		return p.Presentation()
	}
	return DefaultPresentation()
}

// popToRoot empties the stack without invoking any pending callback.
func (c *Coordinator) popToRoot() bool {
	if len(c.stack) == 0 {
		return false
	}
	c.stack = c.stack[:0]
	c.pushCallbacks = c.pushCallbacks[:0]
	c.publish(OpPop)
	return true
}

func (c *Coordinator) popToIndex(keep int) bool {
	n := len(c.stack)
	if keep < 0 || keep > n {
		c.logger.Warn("pop: index out of bounds", "keep", keep, "pages", n)
		return false
	}
	if keep == n {
		return false
	}
	return c.truncateTo(keep)
}

// truncateTo keeps the first n entries, invoking the removed entries'
// callbacks most-recently-pushed first. The stack is fully truncated
// before any callback runs.
func (c *Coordinator) truncateTo(n int) bool {
	if n >= len(c.stack) {
		return false
	}
	removed := make([]func(), len(c.pushCallbacks)-n)
	copy(removed, c.pushCallbacks[n:])
	c.stack = c.stack[:n]
	c.pushCallbacks = c.pushCallbacks[:n]
	for i := len(removed) - 1; i >= 0; i-- {
		removed[i]()
	}
	c.publish(OpPop)
	return true
}

func (c *Coordinator) clearSheet(invoke bool) {
	if c.sheet == nil {
		return
	}
	c.sheet = nil
	var cb func()
	if n := len(c.sheetCallbacks); n > 0 {
		cb = c.sheetCallbacks[n-1]
		c.sheetCallbacks = c.sheetCallbacks[:n-1]
	}
	if invoke && cb != nil {
		cb()
	}
}

func (c *Coordinator) clearFullScreen(invoke bool) {
	if c.fullScreen == nil {
		return
	}
	c.fullScreen = nil
	var cb func()
	if n := len(c.fullScreenCallbacks); n > 0 {
		cb = c.fullScreenCallbacks[n-1]
		c.fullScreenCallbacks = c.fullScreenCallbacks[:n-1]
	}
	if invoke && cb != nil {
		cb()
	}
}

// retarget repoints lastPresented at the surviving modal, if any, so a
// subsequent Dismiss targets it instead of falling through to the
// parent.
func (c *Coordinator) retarget() {
	switch {
	case c.fullScreen != nil:
		c.lastPresented = c.fullScreen.id
	case c.sheet != nil:
		c.lastPresented = c.sheet.id
	default:
		c.lastPresented = ""
	}
}

func (c *Coordinator) topIndexOf(k Kind) int {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i].Is(k) {
			return i
		}
	}
	return -1
}

func (c *Coordinator) destinations() []Destination {
	out := make([]Destination, len(c.stack))
	for i, e := range c.stack {
		out[i] = e.value
	}
	return out
}

func (c *Coordinator) publish(op Op) {
	if c.publisher != nil {
		c.publisher.Publish(Change{Op: op})
	}
}

func orNoop(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}
