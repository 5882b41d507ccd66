package models

// Sex values for personnel records
const (
	SexMale   = "MASCULINO"
	SexFemale = "FEMENINO"
)

// Parental-status values, constrained by sex
const (
	ParentalFather    = "PADRE"
	ParentalNotFather = "NO PADRE"
	ParentalMother    = "MADRE"
	ParentalNotMother = "NO MADRE"
)

// OtherValue marks a profession/occupation answered with a free-text override
const OtherValue = "OTRO"

// Personnel is a party staff record managed by the HR module
type Personnel struct {
	ID              string `json:"id"`
	Active          bool   `json:"estado"`
	PaternalSurname string `json:"apellidoPaterno"`
	MaternalSurname string `json:"apellidoMaterno"`
	GivenNames      string `json:"nombres"`
	DocType         string `json:"tipoDoc"`
	DocNumber       string `json:"numeroDoc"`
	Phone           string `json:"telefono"`
	WhatsApp        string `json:"whatsapp"`
	BirthDate       string `json:"fechaNacimiento"`
	Sex             string `json:"sexo"`
	ParentalStatus  string `json:"esPadreMadre"`
	Email           string `json:"correo"`
	PartyRole       string `json:"cargoPartido"`
	Profession      string `json:"profesion"`
	ProfessionOther string `json:"profesionOtro,omitempty"`
	Occupation      string `json:"ocupacion"`
	OccupationOther string `json:"ocupacionOtro,omitempty"`
	Zone            string `json:"zona"`
}

// Validate checks structural constraints, in particular the sex/parental pairing
func (p Personnel) Validate() error {
	if p.PaternalSurname == "" || p.GivenNames == "" {
		return &ValidationError{Field: "nombres", Reason: "surname and given names are required"}
	}
	if p.DocType == "" || p.DocNumber == "" {
		return &ValidationError{Field: "numeroDoc", Reason: "document type and number are required"}
	}
	switch p.Sex {
	case SexMale:
		if p.ParentalStatus != ParentalFather && p.ParentalStatus != ParentalNotFather {
			return &ValidationError{Field: "esPadreMadre", Reason: "male personnel must be PADRE or NO PADRE"}
		}
	case SexFemale:
		if p.ParentalStatus != ParentalMother && p.ParentalStatus != ParentalNotMother {
			return &ValidationError{Field: "esPadreMadre", Reason: "female personnel must be MADRE or NO MADRE"}
		}
	default:
		return &ValidationError{Field: "sexo", Reason: "sex must be MASCULINO or FEMENINO"}
	}
	if p.Profession == OtherValue && p.ProfessionOther == "" {
		return &ValidationError{Field: "profesionOtro", Reason: "profession override is required when OTRO is selected"}
	}
	if p.Occupation == OtherValue && p.OccupationOther == "" {
		return &ValidationError{Field: "ocupacionOtro", Reason: "occupation override is required when OTRO is selected"}
	}
	return nil
}
