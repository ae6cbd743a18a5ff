package console

// Surface is the presentation layer a console draws on. Offsets are in the
// surface's own units (lines, pixels); the console only compares and restores them.
type Surface interface {
	// SetDocument replaces the rendered markup.
	SetDocument(doc string)
	// ScrollOffset reports the current scroll position.
	ScrollOffset() int
	// ScrollMax reports the scroll range maximum.
	ScrollMax() int
	// VisibleExtent reports how much of the range is visible at once.
	VisibleExtent() int
	// SetScrollOffset moves the view.
	SetScrollOffset(offset int)
}

type nopSurface struct{}

func (nopSurface) SetDocument(string)   {}
func (nopSurface) ScrollOffset() int    { return 0 }
func (nopSurface) ScrollMax() int       { return 0 }
func (nopSurface) VisibleExtent() int   { return 0 }
func (nopSurface) SetScrollOffset(int)  {}
