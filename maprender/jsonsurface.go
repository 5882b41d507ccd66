package maprender

// Overlay is the serializable overlay document served to dashboard clients
// and pushed over the live hub. Its content exactly matches the last redraw.
type Overlay struct {
	Center   SurfaceConfig `json:"map"`
	Markers  []PointMarker `json:"markers"`
	Lines    []Line        `json:"lines"`
	Position *PointMarker  `json:"position,omitempty"`
}

// Count is the total number of overlay objects
func (o Overlay) Count() int {
	n := len(o.Markers) + len(o.Lines)
	if o.Position != nil {
		n++
	}
	return n
}

// JSONSurface implements Surface by accumulating an Overlay document
type JSONSurface struct {
	overlay Overlay
}

// NewJSONSurface returns an empty JSON surface
func NewJSONSurface() *JSONSurface {
	return &JSONSurface{}
}

// Init records the map setup values
func (s *JSONSurface) Init(cfg SurfaceConfig) error {
	s.overlay.Center = cfg
	return nil
}

// Clear drops all overlay objects, keeping the map setup
func (s *JSONSurface) Clear() {
	s.overlay.Markers = nil
	s.overlay.Lines = nil
	s.overlay.Position = nil
}

// AddPointMarker appends a marker
func (s *JSONSurface) AddPointMarker(m PointMarker) {
	s.overlay.Markers = append(s.overlay.Markers, m)
}

// AddLine appends a polyline
func (s *JSONSurface) AddLine(l Line) {
	s.overlay.Lines = append(s.overlay.Lines, l)
}

// AddHighlightedMarker sets the top-most position marker, last wins
func (s *JSONSurface) AddHighlightedMarker(m PointMarker) {
	s.overlay.Position = &m
}

// Overlay returns the accumulated document
func (s *JSONSurface) Overlay() Overlay {
	return s.overlay
}
