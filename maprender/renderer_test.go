package maprender

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/georeconexion/campo-api/models"
)

// recordingSurface captures every call so tests can assert the exact draw
// sequence without a real map.
type recordingSurface struct {
	inits       int
	clears      int
	initErr     error
	markers     []PointMarker
	lines       []Line
	highlighted []PointMarker
}

func (r *recordingSurface) Init(cfg SurfaceConfig) error {
	r.inits++
	return r.initErr
}

func (r *recordingSurface) Clear() {
	r.clears++
	r.markers = nil
	r.lines = nil
	r.highlighted = nil
}

func (r *recordingSurface) AddPointMarker(m PointMarker)       { r.markers = append(r.markers, m) }
func (r *recordingSurface) AddLine(l Line)                     { r.lines = append(r.lines, l) }
func (r *recordingSurface) AddHighlightedMarker(m PointMarker) { r.highlighted = append(r.highlighted, m) }

func surveyPoint(operator string, minute int, support models.Support) models.SurveyPoint {
	return models.SurveyPoint{
		SurveyorName: operator,
		CapturedAt:   time.Date(2026, 3, 14, 9, minute, 0, 0, time.UTC),
		Lat:          -11.87,
		Lng:          -77.12,
		Zone:         "ZONA 2",
		Block:        "5",
		Support:      support,
	}
}

func TestRenderer_RedrawBeforeInit(t *testing.T) {
	r := New(&recordingSurface{})
	err := r.Redraw(Snapshot{})
	assert.ErrorIs(t, err, ErrNotReady)
	assert.False(t, r.Ready())
}

func TestRenderer_InitIsIdempotent(t *testing.T) {
	surface := &recordingSurface{}
	r := New(surface)

	assert.NoError(t, r.Init(SurfaceConfig{Zoom: 14}))
	assert.NoError(t, r.Init(SurfaceConfig{Zoom: 16}))
	assert.NoError(t, r.Init(SurfaceConfig{Zoom: 18}))

	assert.Equal(t, 1, surface.inits)
	assert.True(t, r.Ready())
}

func TestRenderer_InitFailureStaysUninitialized(t *testing.T) {
	surface := &recordingSurface{initErr: errors.New("no container")}
	r := New(surface)

	assert.Error(t, r.Init(SurfaceConfig{}))
	assert.False(t, r.Ready())

	surface.initErr = nil
	assert.NoError(t, r.Init(SurfaceConfig{}))
	assert.True(t, r.Ready())
}

func TestRenderer_RedrawLeavesNoResidue(t *testing.T) {
	surface := &recordingSurface{}
	r := New(surface)
	assert.NoError(t, r.Init(SurfaceConfig{}))

	first := Snapshot{
		Points: []models.SurveyPoint{
			surveyPoint("Maria", 0, models.SupportFavorable),
			surveyPoint("Maria", 1, models.SupportUnfavorable),
			surveyPoint("Jose", 2, models.SupportUndecided),
		},
		Activities: []models.Activity{{Name: "Mitin", ActualAttendance: models.AttendancePending}},
		ShowPaths:  true,
	}
	assert.NoError(t, r.Redraw(first))
	assert.Len(t, surface.markers, 4)
	assert.Len(t, surface.lines, 1)

	second := Snapshot{Points: []models.SurveyPoint{surveyPoint("Maria", 3, models.SupportFavorable)}}
	assert.NoError(t, r.Redraw(second))

	assert.Equal(t, 2, surface.clears)
	assert.Len(t, surface.markers, 1)
	assert.Empty(t, surface.lines)
	assert.Empty(t, surface.highlighted)
}

func TestRenderer_PointMarkerEncoding(t *testing.T) {
	surface := &recordingSurface{}
	r := New(surface)
	assert.NoError(t, r.Init(SurfaceConfig{}))

	assert.NoError(t, r.Redraw(Snapshot{
		Points: []models.SurveyPoint{surveyPoint("Maria", 0, models.SupportUnfavorable)},
	}))

	assert.Len(t, surface.markers, 1)
	assert.Equal(t, ColorRed, surface.markers[0].Color)
	assert.Equal(t, "ZONA 2 / Mz. 5 / NO", surface.markers[0].Label)
}

func TestRenderer_SkipsSinglePointTrails(t *testing.T) {
	surface := &recordingSurface{}
	r := New(surface)
	assert.NoError(t, r.Init(SurfaceConfig{}))

	assert.NoError(t, r.Redraw(Snapshot{
		Points: []models.SurveyPoint{
			surveyPoint("Solo", 0, models.SupportFavorable),
			surveyPoint("Maria", 1, models.SupportFavorable),
			surveyPoint("Maria", 2, models.SupportFavorable),
		},
		ShowPaths: true,
	}))

	assert.Len(t, surface.lines, 1)
	assert.Equal(t, "Ruta de: Maria", surface.lines[0].Label)
}

func TestRenderer_PaletteCyclesOverDrawnTrailsOnly(t *testing.T) {
	surface := &recordingSurface{}
	r := New(surface)
	assert.NoError(t, r.Init(SurfaceConfig{}))

	var points []models.SurveyPoint
	// one single-point group wedged between drawable groups must not
	// consume a palette slot
	points = append(points,
		surveyPoint("A", 0, models.SupportFavorable),
		surveyPoint("A", 1, models.SupportFavorable),
		surveyPoint("Solo", 2, models.SupportFavorable),
		surveyPoint("B", 3, models.SupportFavorable),
		surveyPoint("B", 4, models.SupportFavorable),
	)
	assert.NoError(t, r.Redraw(Snapshot{Points: points, ShowPaths: true}))

	assert.Len(t, surface.lines, 2)
	assert.Equal(t, PathPalette[0], surface.lines[0].Color)
	assert.Equal(t, PathPalette[1], surface.lines[1].Color)
}

func TestRenderer_ActivityMarkersAndPosition(t *testing.T) {
	surface := &recordingSurface{}
	r := New(surface)
	assert.NoError(t, r.Init(SurfaceConfig{}))

	at := models.Coordinate{Lat: -11.9, Lng: -77.1}
	assert.NoError(t, r.Redraw(Snapshot{
		Activities: []models.Activity{
			{Name: "Mitin", ActualAttendance: models.AttendanceYes},
			{Name: "Volanteo", ActualAttendance: models.AttendanceNo},
			{Name: "Caravana", ActualAttendance: models.AttendancePending},
		},
		Position: &at,
	}))

	assert.Len(t, surface.markers, 3)
	assert.Equal(t, ColorGreen, surface.markers[0].Color)
	assert.Equal(t, ColorRed, surface.markers[1].Color)
	assert.Equal(t, ColorAmber, surface.markers[2].Color)
	assert.Equal(t, "Actividad: Mitin / Asistencia: SI", surface.markers[0].Label)

	assert.Len(t, surface.highlighted, 1)
	assert.Equal(t, at, surface.highlighted[0].At)
	assert.True(t, surface.highlighted[0].Pulse)
	assert.Equal(t, "Ubicación Actual", surface.highlighted[0].Label)
}

func TestSupportColor(t *testing.T) {
	assert.Equal(t, ColorGreen, SupportColor(models.SupportFavorable))
	assert.Equal(t, ColorRed, SupportColor(models.SupportUnfavorable))
	assert.Equal(t, ColorAmber, SupportColor(models.SupportUndecided))
}
