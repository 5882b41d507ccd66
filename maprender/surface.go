// Package maprender projects the current session snapshot onto a map
// overlay. The third-party mapping capability sits behind the narrow
// Surface interface so the rendering logic is testable without a real
// map.
package maprender

import "github.com/georeconexion/campo-api/models"

// Marker colors, matching the dashboard accent palette
const (
	ColorGreen   = "#10b981"
	ColorRed     = "#ef4444"
	ColorAmber   = "#f59e0b"
	ColorPrimary = "#61abd7"
)

// PathPalette is cycled by group enumeration order when drawing operator
// trails. The same operator may land on a different color across redraws;
// redraws are full replacements, not incremental updates.
var PathPalette = []string{"#61abd7", "#10b981", "#f59e0b", "#a855f7", "#ec4899"}

// SurfaceConfig carries the one-time map setup values
type SurfaceConfig struct {
	Center  models.Coordinate `json:"center"`
	Zoom    int               `json:"zoom"`
	TileURL string            `json:"tileUrl"`
}

// PointMarker is one overlay marker
type PointMarker struct {
	At    models.Coordinate `json:"at"`
	Color string            `json:"color"`
	Label string            `json:"label"`
	Pulse bool              `json:"pulse,omitempty"`
}

// Line is one overlay polyline
type Line struct {
	Points []models.Coordinate `json:"points"`
	Color  string              `json:"color"`
	Label  string              `json:"label"`
}

// Surface is the narrow contract the renderer needs from a map
// implementation. Highlighted markers render above everything else.
type Surface interface {
	Init(cfg SurfaceConfig) error
	Clear()
	AddPointMarker(m PointMarker)
	AddLine(l Line)
	AddHighlightedMarker(m PointMarker)
}
