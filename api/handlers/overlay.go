package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/geotrack"
	"github.com/georeconexion/campo-api/maprender"
	"github.com/georeconexion/campo-api/models"
	"github.com/georeconexion/campo-api/store"
)

// Overlay exported for testing purposes
type Overlay struct {
	Store  *store.Store
	Config config.Config
}

func (o Overlay) build(showPaths bool, position *models.Coordinate) (maprender.Overlay, error) {
	surface := maprender.NewJSONSurface()
	renderer := maprender.New(surface)
	if err := renderer.Init(maprender.SurfaceConfig{
		Center:  o.Config.DefaultCenter(),
		Zoom:    o.Config.DefaultZoom,
		TileURL: o.Config.TileURL,
	}); err != nil {
		return maprender.Overlay{}, err
	}
	err := renderer.Redraw(maprender.Snapshot{
		Points:     o.Store.SurveyPoints(),
		Activities: o.Store.Activities(),
		ShowPaths:  showPaths,
		Position:   position,
	})
	if err != nil {
		return maprender.Overlay{}, err
	}
	return surface.Overlay(), nil
}

// OverlayHandler returns the full map overlay for the current snapshot.
// Query params: paths=true to include operator trails, lat/lng to mark the
// caller's current position.
func (o Overlay) OverlayHandler(w http.ResponseWriter, r *http.Request) {
	showPaths, _ := strconv.ParseBool(r.URL.Query().Get("paths"))

	var position *models.Coordinate
	latStr, lngStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil || !(models.Coordinate{Lat: lat, Lng: lng}).Valid() {
			config.ErrorStatus("invalid position", http.StatusBadRequest, w,
				&models.ValidationError{Field: "lat/lng", Reason: "position must be a valid coordinate"})
			return
		}
		position = &models.Coordinate{Lat: lat, Lng: lng}
	}

	overlay, err := o.build(showPaths, position)
	if err != nil {
		config.ErrorStatus("failed to render overlay", http.StatusInternalServerError, w, err)
		return
	}
	b, err := json.Marshal(overlay)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PathsHandler returns the reconstructed per-operator movement traces
func (o Overlay) PathsHandler(w http.ResponseWriter, r *http.Request) {
	paths := geotrack.BuildPaths(o.Store.SurveyPoints())
	if len(paths) == 0 {
		paths = []geotrack.OperatorPath{}
	}
	b, err := json.Marshal(paths)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
