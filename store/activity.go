package store

import (
	"github.com/google/uuid"

	"github.com/georeconexion/campo-api/gateway"
	"github.com/georeconexion/campo-api/models"
)

// AddActivity validates the draft and commits the activity locally with a
// fresh identifier, then schedules best-effort persistence
func (s *Store) AddActivity(draft models.ActivityDraft) (models.Activity, error) {
	if err := draft.Validate(); err != nil {
		return models.Activity{}, err
	}
	activity := draft.Build(uuid.New().String())

	s.mu.Lock()
	s.activities = append(s.activities, activity)
	s.mu.Unlock()
	s.notify()

	s.persistAsync(gateway.EndpointActivities, activity)
	return activity, nil
}

// SetActivityAttendance records the actual outcome of an activity. The
// transition is one-way out of PENDIENTE; unknown identifiers and repeat
// settles are no-ops. Returns whether a record changed.
func (s *Store) SetActivityAttendance(id string, outcome models.Attendance) bool {
	if outcome != models.AttendanceYes && outcome != models.AttendanceNo {
		return false
	}
	s.mu.Lock()
	changed := false
	for i := range s.activities {
		if s.activities[i].ID == id && s.activities[i].ActualAttendance == models.AttendancePending {
			s.activities[i].ActualAttendance = outcome
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
	return changed
}

// Activities returns a snapshot of all activities in insertion order
func (s *Store) Activities() []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}
