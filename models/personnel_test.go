package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPersonnel() Personnel {
	return Personnel{
		Active:          true,
		PaternalSurname: "Rojas",
		MaternalSurname: "Campos",
		GivenNames:      "Luis Alberto",
		DocType:         "DNI",
		DocNumber:       "45678912",
		Sex:             SexMale,
		ParentalStatus:  ParentalFather,
		Profession:      "ABOGADO",
		Occupation:      "DEPENDIENTE",
		Zone:            "ZONA 1",
	}
}

func TestPersonnel_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *Personnel)
		wantField string
	}{
		{
			name:   "valid male father",
			mutate: func(p *Personnel) {},
		},
		{
			name: "valid female not mother",
			mutate: func(p *Personnel) {
				p.Sex = SexFemale
				p.ParentalStatus = ParentalNotMother
			},
		},
		{
			name:      "given names required",
			mutate:    func(p *Personnel) { p.GivenNames = "" },
			wantField: "nombres",
		},
		{
			name:      "document number required",
			mutate:    func(p *Personnel) { p.DocNumber = "" },
			wantField: "numeroDoc",
		},
		{
			name:      "male cannot be MADRE",
			mutate:    func(p *Personnel) { p.ParentalStatus = ParentalMother },
			wantField: "esPadreMadre",
		},
		{
			name: "female cannot be NO PADRE",
			mutate: func(p *Personnel) {
				p.Sex = SexFemale
				p.ParentalStatus = ParentalNotFather
			},
			wantField: "esPadreMadre",
		},
		{
			name:      "unknown sex",
			mutate:    func(p *Personnel) { p.Sex = "X" },
			wantField: "sexo",
		},
		{
			name: "profession OTRO requires override",
			mutate: func(p *Personnel) {
				p.Profession = OtherValue
				p.ProfessionOther = ""
			},
			wantField: "profesionOtro",
		},
		{
			name: "occupation OTRO requires override",
			mutate: func(p *Personnel) {
				p.Occupation = OtherValue
				p.OccupationOther = ""
			},
			wantField: "ocupacionOtro",
		},
		{
			name: "profession OTRO with override is accepted",
			mutate: func(p *Personnel) {
				p.Profession = OtherValue
				p.ProfessionOther = "SOCIOLOGO"
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPersonnel()
			tt.mutate(&p)
			err := p.Validate()
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
