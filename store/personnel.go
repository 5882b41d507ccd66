package store

import (
	"github.com/google/uuid"

	"github.com/georeconexion/campo-api/gateway"
	"github.com/georeconexion/campo-api/models"
)

// UpsertPersonnel replaces the record matching the identifier in place, or
// appends with a freshly generated identifier when the identifier is absent
// or unknown. Persistence is best-effort, same policy as field captures.
func (s *Store) UpsertPersonnel(record models.Personnel) (models.Personnel, error) {
	if err := record.Validate(); err != nil {
		return models.Personnel{}, err
	}

	s.mu.Lock()
	replaced := false
	if record.ID != "" {
		for i := range s.personnel {
			if s.personnel[i].ID == record.ID {
				s.personnel[i] = record
				replaced = true
				break
			}
		}
	}
	if !replaced {
		record.ID = uuid.New().String()
		s.personnel = append(s.personnel, record)
	}
	s.mu.Unlock()
	s.notify()

	s.persistAsync(gateway.EndpointPersonnel, record)
	return record, nil
}

// Personnel returns a snapshot of all personnel records
func (s *Store) Personnel() []models.Personnel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Personnel, len(s.personnel))
	copy(out, s.personnel)
	return out
}
