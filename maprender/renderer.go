package maprender

import (
	"errors"
	"fmt"

	"github.com/georeconexion/campo-api/geotrack"
	"github.com/georeconexion/campo-api/models"
)

// ErrNotReady is returned by Redraw before the surface has been initialized
var ErrNotReady = errors.New("maprender: surface not initialized")

// Snapshot is the read-only state a redraw projects onto the map
type Snapshot struct {
	Points     []models.SurveyPoint
	Activities []models.Activity
	ShowPaths  bool
	Position   *models.Coordinate
}

// Renderer owns a map surface. It has exactly two states: uninitialized and
// ready. Init transitions once and never reverses for the renderer's
// lifetime.
type Renderer struct {
	surface Surface
	ready   bool
}

// New wraps a surface in a renderer
func New(surface Surface) *Renderer {
	return &Renderer{surface: surface}
}

// Init creates the map surface. Repeated calls are no-ops.
func (r *Renderer) Init(cfg SurfaceConfig) error {
	if r.ready {
		return nil
	}
	if err := r.surface.Init(cfg); err != nil {
		return err
	}
	r.ready = true
	return nil
}

// Ready reports whether the surface has been created
func (r *Renderer) Ready() bool {
	return r.ready
}

// SupportColor is the visual encoding of a support classification
func SupportColor(s models.Support) string {
	switch s {
	case models.SupportUnfavorable:
		return ColorRed
	case models.SupportUndecided:
		return ColorAmber
	default:
		return ColorGreen
	}
}

// AttendanceColor is the visual encoding of an attendance outcome
func AttendanceColor(a models.Attendance) string {
	switch a {
	case models.AttendanceYes:
		return ColorGreen
	case models.AttendanceNo:
		return ColorRed
	default:
		return ColorAmber
	}
}

// Redraw replaces the whole overlay with the snapshot: clear, then survey
// markers, operator trails (groups of 2+ only), activity markers, and at
// most one highlighted current-position marker on top.
func (r *Renderer) Redraw(s Snapshot) error {
	if !r.ready {
		return ErrNotReady
	}
	r.surface.Clear()

	for _, p := range s.Points {
		r.surface.AddPointMarker(PointMarker{
			At:    p.Coordinate(),
			Color: SupportColor(p.Support),
			Label: fmt.Sprintf("%s / Mz. %s / %s", p.Zone, p.Block, p.Support),
		})
	}

	if s.ShowPaths {
		colorIdx := 0
		for _, path := range geotrack.BuildPaths(s.Points) {
			if !path.Drawable() {
				continue
			}
			r.surface.AddLine(Line{
				Points: path.Coordinates,
				Color:  PathPalette[colorIdx%len(PathPalette)],
				Label:  fmt.Sprintf("Ruta de: %s", path.Operator),
			})
			colorIdx++
		}
	}

	for _, a := range s.Activities {
		r.surface.AddPointMarker(PointMarker{
			At:    a.Coordinate(),
			Color: AttendanceColor(a.ActualAttendance),
			Label: fmt.Sprintf("Actividad: %s / Asistencia: %s", a.Name, a.ActualAttendance),
		})
	}

	if s.Position != nil {
		r.surface.AddHighlightedMarker(PointMarker{
			At:    *s.Position,
			Color: ColorPrimary,
			Label: "Ubicación Actual",
			Pulse: true,
		})
	}
	return nil
}
