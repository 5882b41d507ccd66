package store

import (
	"github.com/google/uuid"

	"github.com/georeconexion/campo-api/gateway"
	"github.com/georeconexion/campo-api/models"
)

// AddSurveyPoint validates the draft, commits the point locally with a fresh
// identifier and capture timestamp, and returns it before any network
// confirmation. Persistence runs detached; its failure does not revert the
// append.
func (s *Store) AddSurveyPoint(draft models.SurveyPointDraft) (models.SurveyPoint, error) {
	if err := draft.Validate(); err != nil {
		return models.SurveyPoint{}, err
	}
	point := draft.Build(uuid.New().String(), s.now())

	s.mu.Lock()
	s.points = append(s.points, point)
	s.mu.Unlock()
	s.notify()

	s.persistAsync(gateway.EndpointSurveyPoints, point)
	return point, nil
}

// SurveyPoints returns a snapshot of all points in insertion order
func (s *Store) SurveyPoints() []models.SurveyPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SurveyPoint, len(s.points))
	copy(out, s.points)
	return out
}

// SeedSurveyPoints replaces the point collection, used when hydrating a
// session from the upstream listing at startup
func (s *Store) SeedSurveyPoints(points []models.SurveyPoint) {
	s.mu.Lock()
	s.points = append([]models.SurveyPoint(nil), points...)
	s.mu.Unlock()
	s.notify()
}
