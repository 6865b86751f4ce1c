package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vetrek/pilot"
)

// NavChangedMsg flows through the program when coordinator state was
// mutated outside the update loop, for example from a command's
// completion handler.
type NavChangedMsg struct {
	Change pilot.Change
}

// Styles controls the host's chrome.
type Styles struct {
	// Sheet frames sheet presentations. Width and height are set by the
	// host at render time.
	Sheet lipgloss.Style
}

// DefaultStyles returns the stock sheet frame.
func DefaultStyles() Styles {
	return Styles{
		Sheet: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
	}
}

// NavAware is implemented by screen models that navigate. The host
// injects the coordinator of the navigation context the model is
// rendered in; for a modal with nested navigation that is the child
// context, not the presenting one.
type NavAware interface {
	WithNavigator(*pilot.Coordinator) tea.Model
}

// HostOption configures a Host at construction.
type HostOption func(*Host)

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) HostOption { return func(h *Host) { h.keys = k } }

// WithStyles replaces the default chrome.
func WithStyles(s Styles) HostOption { return func(h *Host) { h.styles = s } }

// WithCoordinatorOptions forwards extra options (logger, parent) to the
// coordinator the host constructs.
func WithCoordinatorOptions(opts ...pilot.Option) HostOption {
	return func(h *Host) { h.coordOpts = opts }
}

// WithDefaultDetent sets the sheet height used when a presentation
// carries no detents.
func WithDefaultDetent(d pilot.Detent) HostOption {
	return func(h *Host) { h.defaultDetent = d }
}

// Host renders one coordinator's navigation state. It implements
// tea.Model and acts as the coordinator's publisher. Views are
// instantiated lazily, the first time their destination is displayed,
// and dropped once the destination leaves the coordinator.
type Host struct {
	coord     *pilot.Coordinator
	keys      KeyMap
	styles    Styles
	coordOpts []pilot.Option

	views         map[string]tea.Model
	children      map[string]*Host
	pending       []tea.Cmd
	defaultDetent pilot.Detent

	width  int
	height int

	send   func(tea.Msg)
	parent *Host
}

// NewHost builds a host together with its coordinator, rooted at root.
// The coordinator is reachable via Coordinator for screens that need to
// navigate.
func NewHost(root pilot.Destination, opts ...HostOption) *Host {
	h := &Host{
		keys:          DefaultKeyMap(),
		styles:        DefaultStyles(),
		views:         make(map[string]tea.Model),
		children:      make(map[string]*Host),
		defaultDetent: pilot.DetentMedium,
	}
	for _, opt := range opts {
		opt(h)
	}
	copts := append([]pilot.Option{pilot.WithPublisher(h)}, h.coordOpts...)
	h.coord = pilot.New(root, copts...)
	return h
}

// Coordinator returns the navigation context this host renders.
func (h *Host) Coordinator() *pilot.Coordinator { return h.coord }

// UseProgram wires the host to a running program so changes published
// from outside the update loop trigger a repaint.
func (h *Host) UseProgram(p *tea.Program) { h.send = p.Send }

// Publish implements pilot.Publisher.
func (h *Host) Publish(c pilot.Change) {
	if h.send != nil {
		h.send(NavChangedMsg{Change: c})
		return
	}
	if h.parent != nil {
		h.parent.Publish(c)
	}
}

func (h *Host) Init() tea.Cmd { return nil }

func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
		return h, h.broadcast(msg)
	case NavChangedMsg:
		h.prune()
		return h, h.drainPending()
	case tea.KeyMsg:
		if key.Matches(msg, h.keys.Quit) {
			return h, tea.Quit
		}
		if key.Matches(msg, h.keys.Back) {
			h.back()
			h.prune()
			return h, h.drainPending()
		}
		cmd := h.routeKey(msg)
		h.prune()
		return h, tea.Batch(cmd, h.drainPending())
	default:
		return h, tea.Batch(h.broadcast(msg), h.drainPending())
	}
}

func (h *Host) View() string {
	if h.width <= 0 || h.height <= 0 {
		return ""
	}
	if e, ok := h.coord.FullScreenItem(); ok {
		return h.renderEntry(e)
	}
	base := h.baseView()
	if e, ok := h.coord.SheetItem(); ok {
		base = h.overlaySheet(base, e)
	}
	return base
}

// back routes the dismissal gesture to the deepest visible context: a
// modal hosting nested navigation pops its own stack before the modal
// itself is dismissed. With nothing presented and nothing pushed, the
// gesture walks up to whatever presented this context.
func (h *Host) back() {
	if e, ok := h.topmostModal(); ok {
		if child := h.childFor(e); child != nil {
			child.back()
			child.prune()
			return
		}
		h.coord.Dismiss()
		return
	}
	if h.coord.Pop(pilot.Back()) {
		return
	}
	if h.coord.Parent() != nil {
		h.coord.Dismiss()
	}
}

func (h *Host) topmostModal() (pilot.AnyDestination, bool) {
	if e, ok := h.coord.FullScreenItem(); ok {
		return e, true
	}
	return h.coord.SheetItem()
}

// routeKey delivers a key to the topmost visible screen: full-screen
// cover, then sheet, then stack top, then root.
func (h *Host) routeKey(msg tea.KeyMsg) tea.Cmd {
	if e, ok := h.coord.FullScreenItem(); ok {
		return h.updateEntry(e, msg)
	}
	if e, ok := h.coord.SheetItem(); ok {
		return h.updateEntry(e, msg)
	}
	if e, ok := h.coord.Top(); ok {
		return h.updateEntry(e, msg)
	}
	return h.updateEntry(pilot.Erase(h.coord.Root()), msg)
}

func (h *Host) updateEntry(e pilot.AnyDestination, msg tea.Msg) tea.Cmd {
	if child := h.childFor(e); child != nil {
		_, cmd := child.Update(msg)
		return cmd
	}
	m := h.viewFor(e)
	next, cmd := m.Update(msg)
	h.views[e.ID()] = next
	return cmd
}

// childFor returns the nested host for a modal whose presentation allows
// nested navigation, creating the child coordinator on first use.
// Entries without such a presentation return nil.
func (h *Host) childFor(e pilot.AnyDestination) *Host {
	p, ok := h.coord.PresentationFor(e.ID())
	if !ok || !p.AllowsNestedNavigation {
		return nil
	}
	if child, ok := h.children[e.ID()]; ok {
		return child
	}
	child := &Host{
		keys:          h.keys,
		styles:        h.styles,
		views:         make(map[string]tea.Model),
		children:      make(map[string]*Host),
		width:         h.width,
		height:        h.height,
		parent:        h,
		defaultDetent: h.defaultDetent,
	}
	child.coord = pilot.New(e.Unwrap(), pilot.WithParent(h.coord), pilot.WithPublisher(child))
	h.children[e.ID()] = child
	return child
}

// viewFor lazily instantiates the entry's model, feeding it the current
// window size and queueing its Init command for the next update.
func (h *Host) viewFor(e pilot.AnyDestination) tea.Model {
	if m, ok := h.views[e.ID()]; ok {
		return m
	}
	m := e.Render()
	if na, ok := m.(NavAware); ok {
		m = na.WithNavigator(h.coord)
	}
	if cmd := m.Init(); cmd != nil {
		h.pending = append(h.pending, cmd)
	}
	if h.width > 0 {
		m, _ = m.Update(tea.WindowSizeMsg{Width: h.width, Height: h.height})
	}
	h.views[e.ID()] = m
	return m
}

func (h *Host) baseView() string {
	if e, ok := h.coord.Top(); ok {
		return h.renderEntry(e)
	}
	return h.renderEntry(pilot.Erase(h.coord.Root()))
}

func (h *Host) renderEntry(e pilot.AnyDestination) string {
	if child := h.childFor(e); child != nil {
		return child.View()
	}
	return h.viewFor(e).View()
}

// overlaySheet frames the sheet's content and composites it onto the
// base view, bottom-anchored and horizontally centered. The sheet's
// height comes from its detents.
func (h *Host) overlaySheet(base string, e pilot.AnyDestination) string {
	p, _ := h.coord.PresentationFor(e.ID())
	frameH := sheetHeight(p, h.height, h.defaultDetent)
	frameW := h.width - 4
	if frameW < 10 {
		frameW = h.width
	}
	innerW := frameW - h.styles.Sheet.GetHorizontalFrameSize()
	innerH := frameH - h.styles.Sheet.GetVerticalFrameSize()
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	content := lipgloss.NewStyle().
		MaxWidth(innerW).
		MaxHeight(innerH).
		Render(h.renderEntry(e))
	frame := h.styles.Sheet.Width(innerW).Height(innerH).Render(content)

	x := (h.width - lipgloss.Width(frame)) / 2
	if x < 0 {
		x = 0
	}
	y := h.height - lipgloss.Height(frame)
	if y < 0 {
		y = 0
	}
	return composite(padHeight(base, h.height), frame, x, y, h.width, h.height)
}

// broadcast forwards a message to every live view and child host.
func (h *Host) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for id, m := range h.views {
		next, cmd := m.Update(msg)
		h.views[id] = next
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	for _, child := range h.children {
		if _, cmd := child.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// prune drops cached views and child hosts for destinations no longer
// reachable from the coordinator.
func (h *Host) prune() {
	live := map[string]bool{h.coord.Root().DestinationID(): true}
	for _, e := range h.coord.Stack() {
		live[e.ID()] = true
	}
	if e, ok := h.coord.SheetItem(); ok {
		live[e.ID()] = true
	}
	if e, ok := h.coord.FullScreenItem(); ok {
		live[e.ID()] = true
	}
	for id := range h.views {
		if !live[id] {
			delete(h.views, id)
		}
	}
	for id := range h.children {
		if !live[id] {
			delete(h.children, id)
		}
	}
}

func (h *Host) drainPending() tea.Cmd {
	if len(h.pending) == 0 {
		return nil
	}
	cmds := h.pending
	h.pending = nil
	return tea.Batch(cmds...)
}
