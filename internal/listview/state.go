package listview

// Inputs are the externally supplied values the window is derived from.
type Inputs struct {
	Source          DataSource
	InitialListSize int
}

// WindowState is the render window cursor plus the inputs it was derived
// from. Cursor counts flattened rows (items and section headers).
type WindowState struct {
	Cursor int

	source      DataSource
	sourceID    identity
	initialSize int
}

// NewWindowState builds the state for the first render.
func NewWindowState(in Inputs) WindowState {
	return WindowState{
		Cursor:      min(max(in.InitialListSize, 0), TotalCount(in.Source)),
		source:      in.Source,
		sourceID:    in.Source.identity(),
		initialSize: in.InitialListSize,
	}
}

// Source returns the data source the state was derived from.
func (s WindowState) Source() DataSource { return s.source }

// Total returns the total row count of the current source.
func (s WindowState) Total() int { return TotalCount(s.source) }

// Exhausted reports whether the window covers every row.
func (s WindowState) Exhausted() bool { return s.Cursor == s.Total() }

// Derive returns the state for new inputs. When the data, the category
// list or the initial size changed, the window grows by one page, capped at
// the new total; it never resets to the initial size. Unchanged inputs
// return prev and false.
func Derive(prev WindowState, in Inputs, pageSize int) (WindowState, bool) {
	id := in.Source.identity()
	if id == prev.sourceID && in.InitialListSize == prev.initialSize {
		return prev, false
	}
	return WindowState{
		Cursor:      min(prev.Cursor+pageSize, TotalCount(in.Source)),
		source:      in.Source,
		sourceID:    id,
		initialSize: in.InitialListSize,
	}, true
}

// grow advances the cursor by one page within the current source.
func (s WindowState) grow(pageSize int) WindowState {
	s.Cursor = min(s.Cursor+pageSize, s.Total())
	return s
}
