package opf

// Overflow describes how reading systems should handle content overflow.
type Overflow string

const (
	OverflowAuto      Overflow = "auto"
	OverflowPaginated Overflow = "paginated"
	OverflowScrolled  Overflow = "scrolled"
)

// Layout describes whether content is pre-paginated or reflowable.
type Layout string

const (
	LayoutReflowable Layout = "reflowable"
	LayoutFixed      Layout = "fixed"
)

// Orientation describes the intended device orientation.
type Orientation string

const (
	OrientationAuto      Orientation = "auto"
	OrientationLandscape Orientation = "landscape"
	OrientationPortrait  Orientation = "portrait"
)

// Spread describes when a synthetic two-page spread is allowed.
type Spread string

const (
	SpreadAuto      Spread = "auto"
	SpreadNone      Spread = "none"
	SpreadLandscape Spread = "landscape"
	SpreadBoth      Spread = "both"
)

// Presentation collects the rendition hints declared in the metadata.
// Zero-value-like defaults ("auto"/reflowable/non-continuous) apply when a
// hint is absent; use defaultPresentation for a fully-defaulted value.
type Presentation struct {
	// Overflow derives from rendition:flow.
	Overflow Overflow

	// Continuous reports whether scrolled content flows without breaks
	// between documents (rendition:flow = "scrolled-continuous").
	Continuous bool

	// Layout derives from rendition:layout, or from the legacy iBooks
	// display options for EPUB 2 files.
	Layout Layout

	// Orientation derives from rendition:orientation.
	Orientation Orientation

	// Spread derives from rendition:spread.
	Spread Spread
}

func defaultPresentation() Presentation {
	return Presentation{
		Overflow:    OverflowAuto,
		Continuous:  false,
		Layout:      LayoutReflowable,
		Orientation: OrientationAuto,
		Spread:      SpreadAuto,
	}
}
