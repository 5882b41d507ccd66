package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/geolocate"
	"github.com/georeconexion/campo-api/models"
	"github.com/georeconexion/campo-api/store"
)

// Survey exported for testing purposes
type Survey struct {
	Store   *store.Store
	Locator geolocate.Fallback
}

type createSurveyPointRequest struct {
	models.SurveyPointDraft
	// AutoLocate fills lat/lng from the positioning capability, falling
	// back to the configured default coordinate on failure
	AutoLocate bool `json:"autoLocate,omitempty"`
}

type createSurveyPointResponse struct {
	models.SurveyPoint
	Approximate bool `json:"approximate,omitempty"`
}

// CreateSurveyPointHandler registers a new field capture. The point is
// committed locally and returned immediately; persistence to the master
// backend runs in the background.
func (s Survey) CreateSurveyPointHandler(w http.ResponseWriter, r *http.Request) {
	var req createSurveyPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode survey point", http.StatusBadRequest, w, err)
		return
	}

	approximate := false
	if req.AutoLocate {
		fix := s.Locator.Fix(r.Context())
		req.Lat = fix.At.Lat
		req.Lng = fix.At.Lng
		approximate = fix.Approximate
	}

	point, err := s.Store.AddSurveyPoint(req.SurveyPointDraft)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			config.ErrorStatus("survey point rejected", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to add survey point", http.StatusInternalServerError, w, err)
		return
	}
	zap.S().Infow("survey point captured",
		"id", point.ID,
		"zone", point.Zone,
		"support", point.Support,
		"priority", point.Priority,
	)

	b, err := json.Marshal(createSurveyPointResponse{SurveyPoint: point, Approximate: approximate})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// SurveyPointsHandler returns all captured points in insertion order
func (s Survey) SurveyPointsHandler(w http.ResponseWriter, r *http.Request) {
	points := s.Store.SurveyPoints()
	if len(points) == 0 {
		points = []models.SurveyPoint{}
	}
	b, err := json.Marshal(points)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
