package models

import "time"

// Support is the tri-state political-support classification captured in the field
type Support string

// Support values, wire format shared with the master backend
const (
	SupportFavorable   Support = "SI"
	SupportUnfavorable Support = "NO"
	SupportUndecided   Support = "INDECISO"
)

// Valid reports whether s is one of the three known classifications
func (s Support) Valid() bool {
	return s == SupportFavorable || s == SupportUnfavorable || s == SupportUndecided
}

// Priority is the derived intervention priority of a survey point
type Priority string

// Priority values
const (
	PriorityHigh   Priority = "ALTA"
	PriorityMedium Priority = "MEDIA"
	PriorityLow    Priority = "BAJA"
)

// PriorityFor derives the intervention priority from the support classification.
// Unfavorable contacts are the highest-priority follow-up targets.
func PriorityFor(s Support) Priority {
	switch s {
	case SupportUnfavorable:
		return PriorityHigh
	case SupportUndecided:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// SurveyPoint is one field-captured citizen contact at a geographic location.
// Points are immutable once created; contact fields and the rejection reason
// are mutually exclusive by construction in SurveyPointDraft.Build.
type SurveyPoint struct {
	ID              string    `json:"id"`
	CapturedAt      time.Time `json:"fechaHora"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	Zone            string    `json:"zona"`
	Block           string    `json:"manzana"`
	Lot             string    `json:"lote,omitempty"`
	VoterCount      int       `json:"cantidadVotantes"`
	Support         Support   `json:"apoyo"`
	SharesContact   *bool     `json:"comparteDatos,omitempty"`
	DNI             string    `json:"dni,omitempty"`
	Phone           string    `json:"celular,omitempty"`
	WhatsApp        string    `json:"whatsapp,omitempty"`
	RejectionReason string    `json:"motivoRechazo,omitempty"`
	Priority        Priority  `json:"prioridad"`
	SurveyorID      string    `json:"encuestadorId"`
	SurveyorName    string    `json:"encuestadorName"`
}

// Coordinate returns the point's position
func (p SurveyPoint) Coordinate() Coordinate {
	return Coordinate{Lat: p.Lat, Lng: p.Lng}
}

// SurveyPointDraft is the operator-submitted form for a new survey point.
// ID, capture timestamp and priority are assigned by the store at submission.
type SurveyPointDraft struct {
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	Zone            string  `json:"zona"`
	Block           string  `json:"manzana"`
	Lot             string  `json:"lote,omitempty"`
	VoterCount      int     `json:"cantidadVotantes"`
	Support         Support `json:"apoyo"`
	SharesContact   *bool   `json:"comparteDatos,omitempty"`
	DNI             string  `json:"dni,omitempty"`
	Phone           string  `json:"celular,omitempty"`
	WhatsApp        string  `json:"whatsapp,omitempty"`
	RejectionReason string  `json:"motivoRechazo,omitempty"`
	SurveyorID      string  `json:"encuestadorId"`
	SurveyorName    string  `json:"encuestadorName"`
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate checks the draft before any store mutation is attempted
func (d SurveyPointDraft) Validate() error {
	if !(Coordinate{Lat: d.Lat, Lng: d.Lng}).Valid() {
		return &ValidationError{Field: "lat/lng", Reason: "coordinate out of range"}
	}
	if d.Zone == "" {
		return &ValidationError{Field: "zona", Reason: "zone is required"}
	}
	if d.Block == "" {
		return &ValidationError{Field: "manzana", Reason: "block is required"}
	}
	if d.VoterCount < 1 {
		return &ValidationError{Field: "cantidadVotantes", Reason: "voter count must be at least 1"}
	}
	if !d.Support.Valid() {
		return &ValidationError{Field: "apoyo", Reason: "support classification is required"}
	}
	switch d.Support {
	case SupportFavorable:
		if d.SharesContact == nil {
			return &ValidationError{Field: "comparteDatos", Reason: "consent flag is required for favorable contacts"}
		}
		if *d.SharesContact {
			if len(d.DNI) != 8 || !digitsOnly(d.DNI) {
				return &ValidationError{Field: "dni", Reason: "national ID must be 8 digits"}
			}
			if len(d.Phone) != 9 || !digitsOnly(d.Phone) {
				return &ValidationError{Field: "celular", Reason: "phone must be 9 digits"}
			}
			if len(d.WhatsApp) != 9 || !digitsOnly(d.WhatsApp) {
				return &ValidationError{Field: "whatsapp", Reason: "whatsapp must be 9 digits"}
			}
		}
	default:
		if d.RejectionReason == "" {
			return &ValidationError{Field: "motivoRechazo", Reason: "rejection reason is required"}
		}
	}
	if d.SurveyorID == "" || d.SurveyorName == "" {
		return &ValidationError{Field: "encuestador", Reason: "owning operator is required"}
	}
	return nil
}

// Build assembles the immutable point. Contact fields only survive for
// favorable contacts that consented; the rejection reason only for the rest.
func (d SurveyPointDraft) Build(id string, capturedAt time.Time) SurveyPoint {
	p := SurveyPoint{
		ID:           id,
		CapturedAt:   capturedAt,
		Lat:          d.Lat,
		Lng:          d.Lng,
		Zone:         d.Zone,
		Block:        d.Block,
		Lot:          d.Lot,
		VoterCount:   d.VoterCount,
		Support:      d.Support,
		Priority:     PriorityFor(d.Support),
		SurveyorID:   d.SurveyorID,
		SurveyorName: d.SurveyorName,
	}
	if d.Support == SupportFavorable {
		consent := d.SharesContact != nil && *d.SharesContact
		p.SharesContact = &consent
		if consent {
			p.DNI = d.DNI
			p.Phone = d.Phone
			p.WhatsApp = d.WhatsApp
		}
	} else {
		p.RejectionReason = d.RejectionReason
	}
	return p
}
