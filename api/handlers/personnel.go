package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/georeconexion/campo-api/config"
	"github.com/georeconexion/campo-api/models"
	"github.com/georeconexion/campo-api/store"
)

// Personnel exported for testing purposes
type Personnel struct {
	Store *store.Store
}

// UpsertPersonnelHandler creates or replaces one staff record, keyed by
// identifier
func (p Personnel) UpsertPersonnelHandler(w http.ResponseWriter, r *http.Request) {
	var record models.Personnel
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		config.ErrorStatus("failed to decode personnel", http.StatusBadRequest, w, err)
		return
	}

	saved, err := p.Store.UpsertPersonnel(record)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			config.ErrorStatus("personnel rejected", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to upsert personnel", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(saved)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PersonnelHandler returns all staff records
func (p Personnel) PersonnelHandler(w http.ResponseWriter, r *http.Request) {
	records := p.Store.Personnel()
	if len(records) == 0 {
		records = []models.Personnel{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
