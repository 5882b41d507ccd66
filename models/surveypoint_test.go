package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		name     string
		support  Support
		expected Priority
	}{
		{name: "unfavorable maps to high", support: SupportUnfavorable, expected: PriorityHigh},
		{name: "undecided maps to medium", support: SupportUndecided, expected: PriorityMedium},
		{name: "favorable maps to low", support: SupportFavorable, expected: PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PriorityFor(tt.support))
		})
	}
}

func validDraft() SurveyPointDraft {
	return SurveyPointDraft{
		Lat:             -11.8751,
		Lng:             -77.1253,
		Zone:            "ZONA 3",
		Block:           "12",
		VoterCount:      3,
		Support:         SupportUnfavorable,
		RejectionReason: "INSEGURIDAD",
		SurveyorID:      "op-1",
		SurveyorName:    "Maria Quispe",
	}
}

func TestSurveyPointDraft_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *SurveyPointDraft)
		wantField string
	}{
		{
			name:   "valid unfavorable with rejection reason",
			mutate: func(d *SurveyPointDraft) {},
		},
		{
			name: "valid favorable with consent and contact data",
			mutate: func(d *SurveyPointDraft) {
				d.Support = SupportFavorable
				d.RejectionReason = ""
				d.SharesContact = boolPtr(true)
				d.DNI = "12345678"
				d.Phone = "987654321"
				d.WhatsApp = "987654321"
			},
		},
		{
			name: "valid favorable without consent needs no contact data",
			mutate: func(d *SurveyPointDraft) {
				d.Support = SupportFavorable
				d.RejectionReason = ""
				d.SharesContact = boolPtr(false)
			},
		},
		{
			name:      "latitude out of range",
			mutate:    func(d *SurveyPointDraft) { d.Lat = 91 },
			wantField: "lat/lng",
		},
		{
			name:      "zone required",
			mutate:    func(d *SurveyPointDraft) { d.Zone = "" },
			wantField: "zona",
		},
		{
			name:      "block required",
			mutate:    func(d *SurveyPointDraft) { d.Block = "" },
			wantField: "manzana",
		},
		{
			name:      "voter count below one",
			mutate:    func(d *SurveyPointDraft) { d.VoterCount = 0 },
			wantField: "cantidadVotantes",
		},
		{
			name:      "unknown support classification",
			mutate:    func(d *SurveyPointDraft) { d.Support = "TAL VEZ" },
			wantField: "apoyo",
		},
		{
			name: "favorable requires consent flag",
			mutate: func(d *SurveyPointDraft) {
				d.Support = SupportFavorable
				d.RejectionReason = ""
			},
			wantField: "comparteDatos",
		},
		{
			name: "consented contact requires 8 digit national id",
			mutate: func(d *SurveyPointDraft) {
				d.Support = SupportFavorable
				d.RejectionReason = ""
				d.SharesContact = boolPtr(true)
				d.DNI = "1234567"
				d.Phone = "987654321"
				d.WhatsApp = "987654321"
			},
			wantField: "dni",
		},
		{
			name: "consented contact rejects non numeric phone",
			mutate: func(d *SurveyPointDraft) {
				d.Support = SupportFavorable
				d.RejectionReason = ""
				d.SharesContact = boolPtr(true)
				d.DNI = "12345678"
				d.Phone = "98765432a"
				d.WhatsApp = "987654321"
			},
			wantField: "celular",
		},
		{
			name:      "non favorable requires rejection reason",
			mutate:    func(d *SurveyPointDraft) { d.RejectionReason = "" },
			wantField: "motivoRechazo",
		},
		{
			name:      "owning operator required",
			mutate:    func(d *SurveyPointDraft) { d.SurveyorName = "" },
			wantField: "encuestador",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestSurveyPointDraft_BuildAssignsIdentityAndPriority(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	p := validDraft().Build("point-1", at)

	assert.Equal(t, "point-1", p.ID)
	assert.Equal(t, at, p.CapturedAt)
	assert.Equal(t, PriorityHigh, p.Priority)
	assert.Equal(t, "INSEGURIDAD", p.RejectionReason)
	assert.Empty(t, p.DNI)
	assert.Nil(t, p.SharesContact)
}

func TestSurveyPointDraft_BuildContactExclusivity(t *testing.T) {
	d := validDraft()
	d.Support = SupportFavorable
	d.SharesContact = boolPtr(true)
	d.DNI = "12345678"
	d.Phone = "987654321"
	d.WhatsApp = "987654321"
	// a stale rejection reason from a previous form state must not survive
	d.RejectionReason = "INSEGURIDAD"

	p := d.Build("point-2", time.Now())

	assert.Empty(t, p.RejectionReason)
	assert.Equal(t, "12345678", p.DNI)
	assert.NotNil(t, p.SharesContact)
	assert.True(t, *p.SharesContact)
	assert.Equal(t, PriorityLow, p.Priority)
}

func TestSurveyPointDraft_BuildDropsContactWithoutConsent(t *testing.T) {
	d := validDraft()
	d.Support = SupportFavorable
	d.RejectionReason = ""
	d.SharesContact = boolPtr(false)
	d.DNI = "12345678"
	d.Phone = "987654321"

	p := d.Build("point-3", time.Now())

	assert.Empty(t, p.DNI)
	assert.Empty(t, p.Phone)
	assert.NotNil(t, p.SharesContact)
	assert.False(t, *p.SharesContact)
}
