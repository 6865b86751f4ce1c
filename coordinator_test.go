package pilot

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type nullModel struct{}

func (nullModel) Init() tea.Cmd                         { return nil }
func (m nullModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (nullModel) View() string                          { return "" }

type home struct{ id string }

func (d home) DestinationID() string { return d.id }
func (d home) MakeView() tea.Model   { return nullModel{} }

type detail struct{ id string }

func (d detail) DestinationID() string { return d.id }
func (d detail) MakeView() tea.Model   { return nullModel{} }

type listing struct{ id string }

func (d listing) DestinationID() string { return d.id }
func (d listing) MakeView() tea.Model   { return nullModel{} }

// settings carries its own presentation metadata.
type settings struct{ id string }

func (d settings) DestinationID() string      { return d.id }
func (d settings) MakeView() tea.Model        { return nullModel{} }
func (d settings) Presentation() Presentation { return FullScreen(true) }

type recorder struct {
	changes []Change
}

func (r *recorder) Publish(c Change) { r.changes = append(r.changes, c) }

func newTestCoordinator(opts ...Option) *Coordinator {
	return New(home{id: "root"}, opts...)
}

func TestPushPopCounts(t *testing.T) {
	c := newTestCoordinator()
	c.Push(detail{id: "d1"}, nil)
	c.Push(detail{id: "d2"}, nil)
	c.Push(listing{id: "l1"}, nil)
	if c.PagesCount() != 3 {
		t.Fatalf("pages = %d, want 3", c.PagesCount())
	}
	if !c.Pop(Back()) {
		t.Fatal("pop back should remove an entry")
	}
	if c.PagesCount() != 2 {
		t.Fatalf("pages = %d, want 2", c.PagesCount())
	}
}

func TestPopToRootDiscardsCallbacks(t *testing.T) {
	c := newTestCoordinator()
	invoked := 0
	c.Push(detail{id: "d1"}, func() { invoked++ })
	c.Push(detail{id: "d2"}, func() { invoked++ })
	if !c.Pop(ToRoot()) {
		t.Fatal("pop to root should report removal")
	}
	if c.PagesCount() != 0 {
		t.Fatalf("pages = %d, want 0", c.PagesCount())
	}
	if invoked != 0 {
		t.Fatalf("root pop must discard callbacks, got %d invocations", invoked)
	}
	if c.Pop(ToRoot()) {
		t.Fatal("pop to root on empty stack should be a no-op")
	}
}

func TestPopBackOnDepthOneLandsOnRoot(t *testing.T) {
	c := newTestCoordinator()
	invoked := 0
	c.Push(detail{id: "only"}, func() { invoked++ })
	if !c.Pop(Back()) {
		t.Fatal("pop back should remove the only entry")
	}
	if c.PagesCount() != 0 {
		t.Fatalf("pages = %d, want 0", c.PagesCount())
	}
	if invoked != 1 {
		t.Fatalf("callback invoked %d times, want 1", invoked)
	}
	if c.Pop(Back()) {
		t.Fatal("pop back on empty stack should be a no-op")
	}
}

func TestPopToIndexAtCurrentDepthIsNoop(t *testing.T) {
	c := newTestCoordinator()
	c.Push(detail{id: "d1"}, func() { t.Fatal("callback must not run") })
	c.Push(detail{id: "d2"}, func() { t.Fatal("callback must not run") })
	if c.Pop(ToIndex(2)) {
		t.Fatal("keeping the whole stack should be a no-op")
	}
	if c.PagesCount() != 2 {
		t.Fatalf("pages = %d, want 2", c.PagesCount())
	}
}

func TestPopToIndexOutOfRange(t *testing.T) {
	c := newTestCoordinator()
	c.Push(detail{id: "d1"}, func() { t.Fatal("callback must not run") })
	if c.Pop(ToIndex(-1)) {
		t.Fatal("negative index should be a no-op")
	}
	if c.Pop(ToIndex(5)) {
		t.Fatal("index beyond depth should be a no-op")
	}
	if c.PagesCount() != 1 {
		t.Fatalf("pages = %d, want 1", c.PagesCount())
	}
}

func TestPopToIndexInvokesRemovedTopFirst(t *testing.T) {
	c := newTestCoordinator()
	var order []string
	c.Push(detail{id: "b"}, func() { order = append(order, "b") })
	c.Push(detail{id: "c"}, func() { order = append(order, "c") })
	c.Push(detail{id: "d"}, func() { order = append(order, "d") })
	if !c.Pop(ToIndex(1)) {
		t.Fatal("pop should remove two entries")
	}
	if c.PagesCount() != 1 {
		t.Fatalf("pages = %d, want 1", c.PagesCount())
	}
	if len(order) != 2 || order[0] != "d" || order[1] != "c" {
		t.Fatalf("callback order = %v, want [d c]", order)
	}
}

func TestPopToKindKeepsTopmostMatch(t *testing.T) {
	c := newTestCoordinator()
	var order []string
	c.Push(listing{id: "l1"}, func() { order = append(order, "l1") })
	c.Push(detail{id: "d1"}, func() { order = append(order, "d1") })
	c.Push(listing{id: "l2"}, func() { order = append(order, "l2") })
	c.Push(detail{id: "d2"}, func() { order = append(order, "d2") })
	c.Push(detail{id: "d3"}, func() { order = append(order, "d3") })

	if !c.Pop(ToKind(KindOf[listing]())) {
		t.Fatal("pop to kind should remove entries")
	}
	if c.PagesCount() != 3 {
		t.Fatalf("pages = %d, want 3 (topmost listing kept)", c.PagesCount())
	}
	top, ok := c.Top()
	if !ok || top.ID() != "l2" {
		t.Fatalf("top = %v, want l2", top.ID())
	}
	if len(order) != 2 || order[0] != "d3" || order[1] != "d2" {
		t.Fatalf("callback order = %v, want [d3 d2]", order)
	}
}

func TestPopToKindNotFound(t *testing.T) {
	c := newTestCoordinator()
	c.Push(detail{id: "d1"}, func() { t.Fatal("callback must not run") })
	if c.Pop(ToKind(KindOf[settings]())) {
		t.Fatal("missing kind should be a no-op")
	}
	if c.PagesCount() != 1 {
		t.Fatalf("pages = %d, want 1", c.PagesCount())
	}
}

func TestPopFinder(t *testing.T) {
	c := newTestCoordinator()
	c.Push(detail{id: "d1"}, nil)
	c.Push(detail{id: "d2"}, nil)

	if c.Pop(ToFinder(func(pages []Destination) (int, bool) { return 0, false })) {
		t.Fatal("declining finder should be a no-op")
	}

	popped := c.Pop(ToFinder(func(pages []Destination) (int, bool) {
		for i, p := range pages {
			if p.DestinationID() == "d1" {
				return i + 1, true
			}
		}
		return 0, false
	}))
	if !popped {
		t.Fatal("finder pop should remove entries")
	}
	if c.PagesCount() != 1 {
		t.Fatalf("pages = %d, want 1", c.PagesCount())
	}
}

func TestPresentSheetAndDismiss(t *testing.T) {
	c := newTestCoordinator()
	invoked := 0
	sheet := Sheet(false)
	c.Present(detail{id: "x"}, &sheet, func() { invoked++ })

	if !c.HasPresentedView() {
		t.Fatal("sheet should be presented")
	}
	item, ok := c.SheetItem()
	if !ok || item.ID() != "x" {
		t.Fatalf("sheet item = %v, want x", item.ID())
	}

	c.Dismiss()
	if c.HasPresentedView() {
		t.Fatal("sheet should be gone after dismiss")
	}
	if invoked != 1 {
		t.Fatalf("dismiss callback invoked %d times, want 1", invoked)
	}
}

func TestPresentResolvesConfiguration(t *testing.T) {
	c := newTestCoordinator()

	// no config anywhere: default sheet
	c.Present(detail{id: "plain"}, nil, nil)
	if _, ok := c.SheetItem(); !ok {
		t.Fatal("default presentation should land in the sheet slot")
	}
	p, ok := c.PresentationFor("plain")
	if !ok || p.Mode != ModeSheet || p.AllowsNestedNavigation {
		t.Fatalf("recorded presentation = %+v, want default sheet", p)
	}

	// destination metadata: settings declares a full-screen cover
	c.Present(settings{id: "s"}, nil, nil)
	if _, ok := c.FullScreenItem(); !ok {
		t.Fatal("Presentable metadata should route to the full-screen slot")
	}

	// explicit config wins over metadata
	sheet := Sheet(false, DetentLarge)
	c.Present(settings{id: "s2"}, &sheet, nil)
	item, ok := c.SheetItem()
	if !ok || item.ID() != "s2" {
		t.Fatal("explicit config should win over destination metadata")
	}
}

func TestSheetAndCoverCoexist(t *testing.T) {
	c := newTestCoordinator()
	sheet := Sheet(false)
	cover := FullScreen(false)
	c.Present(detail{id: "x"}, &sheet, nil)
	c.Present(listing{id: "y"}, &cover, nil)

	s, ok := c.SheetItem()
	if !ok || s.ID() != "x" {
		t.Fatal("presenting a cover must not evict the sheet")
	}
	f, ok := c.FullScreenItem()
	if !ok || f.ID() != "y" {
		t.Fatal("cover should occupy the full-screen slot")
	}
}

func TestDismissTargetsMostRecentThenSurvivor(t *testing.T) {
	c := newTestCoordinator()
	var order []string
	sheet := Sheet(false)
	cover := FullScreen(false)
	c.Present(detail{id: "x"}, &sheet, func() { order = append(order, "sheet") })
	c.Present(listing{id: "y"}, &cover, func() { order = append(order, "cover") })

	c.Dismiss() // most recent first: the cover
	if _, ok := c.FullScreenItem(); ok {
		t.Fatal("cover should be dismissed first")
	}
	if _, ok := c.SheetItem(); !ok {
		t.Fatal("sheet should survive the first dismiss")
	}

	c.Dismiss() // then the surviving sheet
	if c.HasPresentedView() {
		t.Fatal("second dismiss should clear the sheet")
	}
	if len(order) != 2 || order[0] != "cover" || order[1] != "sheet" {
		t.Fatalf("callback order = %v, want [cover sheet]", order)
	}
}

func TestDismissDelegatesToParent(t *testing.T) {
	parent := newTestCoordinator()
	invoked := 0
	cover := FullScreen(true)
	parent.Present(settings{id: "s"}, &cover, func() { invoked++ })

	child := New(settings{id: "s"}, WithParent(parent))
	child.Dismiss()

	if parent.HasPresentedView() {
		t.Fatal("child dismiss should clear the parent's cover")
	}
	if invoked != 1 {
		t.Fatalf("parent callback invoked %d times, want 1", invoked)
	}
}

func TestDismissFallsBackToPopBack(t *testing.T) {
	c := newTestCoordinator()
	invoked := 0
	c.Push(detail{id: "d1"}, func() { invoked++ })
	c.Dismiss()
	if c.PagesCount() != 0 {
		t.Fatalf("pages = %d, want 0", c.PagesCount())
	}
	if invoked != 1 {
		t.Fatalf("push callback invoked %d times, want 1", invoked)
	}
}

func TestDismissWithNothingPresentedIsNoop(t *testing.T) {
	c := newTestCoordinator()
	invoked := 0
	sheet := Sheet(false)
	c.Present(detail{id: "x"}, &sheet, func() { invoked++ })
	c.Dismiss()
	c.Dismiss() // nothing left: falls through, must not re-invoke
	if invoked != 1 {
		t.Fatalf("stale callback invoked %d times, want 1", invoked)
	}
}

func TestDismissAllWalksParentChain(t *testing.T) {
	parent := newTestCoordinator()
	cover := FullScreen(false)
	parent.Present(listing{id: "cover"}, &cover, nil)

	child := New(settings{id: "s"}, WithParent(parent))
	sheet := Sheet(false)
	child.Present(detail{id: "sheet"}, &sheet, nil)

	child.DismissAll()
	if child.HasPresentedView() {
		t.Fatal("child should have empty slots")
	}
	if parent.HasPresentedView() {
		t.Fatal("parent should have empty slots")
	}
}

func TestSetRoot(t *testing.T) {
	c := newTestCoordinator()
	invoked := 0
	c.Push(detail{id: "d1"}, func() { invoked++ })
	c.SetRoot(listing{id: "newroot"}, false)
	if c.PagesCount() != 1 {
		t.Fatal("setRoot without popAll should keep the stack")
	}
	c.SetRoot(home{id: "root2"}, true)
	if c.PagesCount() != 0 {
		t.Fatal("setRoot with popAll should empty the stack")
	}
	if invoked != 0 {
		t.Fatal("popAll discards callbacks without invoking them")
	}
	if c.Root().DestinationID() != "root2" {
		t.Fatalf("root = %s, want root2", c.Root().DestinationID())
	}
}

func TestContainsAndIsPresenting(t *testing.T) {
	c := newTestCoordinator()
	c.Push(detail{id: "d1"}, nil)
	sheet := Sheet(false)
	c.Present(settings{id: "s"}, &sheet, nil)

	if !Contains[detail](c) {
		t.Fatal("stack entry should be found")
	}
	if !Contains[settings](c) {
		t.Fatal("modal occupant counts as contained")
	}
	if Contains[listing](c) {
		t.Fatal("absent kind should not be found")
	}
	if !IsPresenting[settings](c) {
		t.Fatal("sheet occupant should be reported as presenting")
	}
	if IsPresenting[detail](c) {
		t.Fatal("stack entries are not presented")
	}
}

func TestReentrantCallbackSeesUpdatedState(t *testing.T) {
	c := newTestCoordinator()
	c.Push(detail{id: "d1"}, nil)
	c.Push(detail{id: "d2"}, func() {
		if c.PagesCount() != 1 {
			t.Fatalf("callback saw pages = %d, want 1 (already truncated)", c.PagesCount())
		}
		c.Push(listing{id: "pushed-from-callback"}, nil)
	})
	c.Pop(Back())
	if c.PagesCount() != 2 {
		t.Fatalf("pages = %d, want 2 after re-entrant push", c.PagesCount())
	}

	sheet := Sheet(false)
	c.Present(detail{id: "x"}, &sheet, func() {
		if c.HasPresentedView() {
			t.Fatal("callback should see the slot already cleared")
		}
	})
	c.Dismiss()
}

func TestPublisherNotifiedOncePerMutation(t *testing.T) {
	rec := &recorder{}
	c := New(home{id: "root"}, WithPublisher(rec))

	c.Push(detail{id: "d1"}, nil)
	c.Pop(Back())
	c.Pop(Back()) // no-op: empty stack
	sheet := Sheet(false)
	c.Present(detail{id: "x"}, &sheet, nil)
	c.Dismiss()
	c.SetRoot(listing{id: "r"}, false)
	c.Pop(ToKind(KindOf[settings]())) // no-op: not found

	want := []Op{OpPush, OpPop, OpPresent, OpDismiss, OpSetRoot}
	if len(rec.changes) != len(want) {
		t.Fatalf("published %d changes, want %d", len(rec.changes), len(want))
	}
	for i, w := range want {
		if rec.changes[i].Op != w {
			t.Fatalf("change %d = %s, want %s", i, rec.changes[i].Op, w)
		}
	}
}

// Mirrors the walkthrough: root = A, push B and C, pop back, then pop to
// root-adjacent index zero.
func TestNavigationWalkthrough(t *testing.T) {
	c := newTestCoordinator()
	var order []string
	c.Push(detail{id: "B"}, func() { order = append(order, "B") })
	c.Push(detail{id: "C"}, func() { order = append(order, "C") })
	if c.PagesCount() != 2 {
		t.Fatalf("pages = %d, want 2", c.PagesCount())
	}

	c.Pop(Back())
	if c.PagesCount() != 1 {
		t.Fatalf("pages = %d, want 1", c.PagesCount())
	}
	if len(order) != 1 || order[0] != "C" {
		t.Fatalf("order = %v, want [C]", order)
	}

	c.Pop(ToIndex(0))
	if c.PagesCount() != 0 {
		t.Fatalf("pages = %d, want 0", c.PagesCount())
	}
	if len(order) != 2 || order[1] != "B" {
		t.Fatalf("order = %v, want [C B]", order)
	}
}

func TestDuplicateIdentifiersAreIndependent(t *testing.T) {
	c := newTestCoordinator()
	invoked := 0
	c.Push(detail{id: "dup"}, func() { invoked++ })
	c.Push(detail{id: "dup"}, func() { invoked++ })
	if c.PagesCount() != 2 {
		t.Fatalf("pages = %d, want 2", c.PagesCount())
	}
	c.Pop(Back())
	c.Pop(Back())
	if invoked != 2 {
		t.Fatalf("callbacks invoked %d times, want 2", invoked)
	}
}
