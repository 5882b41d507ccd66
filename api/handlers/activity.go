package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/models"
	"github.com/georeconexion/campo-api/store"
)

// Activity exported for testing purposes
type Activity struct {
	Store *store.Store
}

// CreateActivityHandler registers a new campaign activity
func (a Activity) CreateActivityHandler(w http.ResponseWriter, r *http.Request) {
	var draft models.ActivityDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		config.ErrorStatus("failed to decode activity", http.StatusBadRequest, w, err)
		return
	}

	activity, err := a.Store.AddActivity(draft)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			config.ErrorStatus("activity rejected", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to add activity", http.StatusInternalServerError, w, err)
		return
	}
	zap.S().Infow("activity scheduled", "id", activity.ID, "name", activity.Name, "zone", activity.Zone)

	b, err := json.Marshal(activity)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ActivitiesHandler returns all activities in insertion order
func (a Activity) ActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	activities := a.Store.Activities()
	if len(activities) == 0 {
		activities = []models.Activity{}
	}
	b, err := json.Marshal(activities)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type attendanceRequest struct {
	ActualAttendance models.Attendance `json:"asistenciaReal"`
}

// UpdateAttendanceHandler settles an activity's actual attendance. Only the
// one-way transition out of PENDIENTE is accepted.
func (a Activity) UpdateAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	activityID := mux.Vars(r)["activity_id"]

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode attendance", http.StatusBadRequest, w, err)
		return
	}
	if req.ActualAttendance != models.AttendanceYes && req.ActualAttendance != models.AttendanceNo {
		config.ErrorStatus("attendance outcome rejected", http.StatusBadRequest, w,
			&models.ValidationError{Field: "asistenciaReal", Reason: "outcome must be SI or NO"})
		return
	}

	changed := a.Store.SetActivityAttendance(activityID, req.ActualAttendance)
	b, _ := json.Marshal(map[string]bool{"updated": changed})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
