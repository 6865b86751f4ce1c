package pilot

// Mode selects the modal channel a destination is presented into.
type Mode int

const (
	// ModeSheet overlays the base content without replacing it.
	ModeSheet Mode = iota
	// ModeFullScreen replaces the base content entirely.
	ModeFullScreen
)

func (m Mode) String() string {
	switch m {
	case ModeSheet:
		return "sheet"
	case ModeFullScreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// Detent is a sizing hint for sheet presentations, expressed as a
// fraction of the available height.
type Detent float64

const (
	DetentMedium Detent = 0.5
	DetentLarge  Detent = 0.9
)

// Presentation describes how a destination is shown when presented
// modally. Destinations that are pushed inline never consult it.
type Presentation struct {
	Mode Mode

	// AllowsNestedNavigation asks the render layer to host the presented
	// destination inside its own child coordinator, so it can push and
	// pop independently of the presenting context.
	AllowsNestedNavigation bool

	// Detents applies to sheets only. Empty means the renderer's default
	// height.
	Detents []Detent
}

// Sheet builds a sheet presentation with optional sizing hints.
func Sheet(nested bool, detents ...Detent) Presentation {
	return Presentation{Mode: ModeSheet, AllowsNestedNavigation: nested, Detents: detents}
}

// FullScreen builds a full-screen cover presentation.
func FullScreen(nested bool) Presentation {
	return Presentation{Mode: ModeFullScreen, AllowsNestedNavigation: nested}
}

// DefaultPresentation is used when neither the Present call nor the
// destination itself supplies a configuration.
func DefaultPresentation() Presentation { return Sheet(false) }
