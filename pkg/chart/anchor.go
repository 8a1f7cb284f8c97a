package chart

// Anchor is the display collaborator a chart is bound to. The engine
// reads the anchor's size on every render; it never pushes a resize.
type Anchor interface {
	// ID uniquely identifies the anchor. An empty ID makes the chart
	// generate one.
	ID() string

	// Size returns the anchor's current width and height.
	Size() (width, height int)
}

// StaticAnchor is an Anchor with a fixed identity and size, for charts
// whose surface does not resize, and for tests.
type StaticAnchor struct {
	AnchorID string
	Width    int
	Height   int
}

func (a *StaticAnchor) ID() string { return a.AnchorID }

func (a *StaticAnchor) Size() (int, int) { return a.Width, a.Height }
