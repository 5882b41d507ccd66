package models

// Attendance is the actual-attendance outcome of a campaign activity
type Attendance string

// Attendance values
const (
	AttendanceYes     Attendance = "SI"
	AttendanceNo      Attendance = "NO"
	AttendancePending Attendance = "PENDIENTE"
)

// Valid reports whether a is a known attendance outcome
func (a Attendance) Valid() bool {
	return a == AttendanceYes || a == AttendanceNo || a == AttendancePending
}

// Activity is a scheduled campaign event with expected vs. actual attendance
// tracking. ActualAttendance is the only field mutable after creation, and
// only one-way out of PENDIENTE.
type Activity struct {
	ID                 string     `json:"id"`
	Category           string     `json:"tipo"`
	Name               string     `json:"nombre"`
	Date               string     `json:"fecha"`
	Time               string     `json:"hora"`
	ExpectedAttendance string     `json:"asistenciaEsperada"`
	ActualAttendance   Attendance `json:"asistenciaReal"`
	Address            string     `json:"direccion"`
	Zone               string     `json:"zona"`
	Notes              string     `json:"observaciones,omitempty"`
	Lat                float64    `json:"lat"`
	Lng                float64    `json:"lng"`
	PhotoRef           string     `json:"fotoUrl,omitempty"`
}

// Coordinate returns the activity's position
func (a Activity) Coordinate() Coordinate {
	return Coordinate{Lat: a.Lat, Lng: a.Lng}
}

// ActivityDraft is the submitted form for a new activity
type ActivityDraft struct {
	Category           string  `json:"tipo"`
	Name               string  `json:"nombre"`
	Date               string  `json:"fecha"`
	Time               string  `json:"hora"`
	ExpectedAttendance string  `json:"asistenciaEsperada"`
	Address            string  `json:"direccion"`
	Zone               string  `json:"zona"`
	Notes              string  `json:"observaciones,omitempty"`
	Lat                float64 `json:"lat"`
	Lng                float64 `json:"lng"`
	PhotoRef           string  `json:"fotoUrl,omitempty"`
}

// Validate checks the draft before any store mutation is attempted
func (d ActivityDraft) Validate() error {
	if d.Name == "" {
		return &ValidationError{Field: "nombre", Reason: "activity name is required"}
	}
	if d.Category == "" {
		return &ValidationError{Field: "tipo", Reason: "category is required"}
	}
	if d.Date == "" || d.Time == "" {
		return &ValidationError{Field: "fecha/hora", Reason: "scheduled date and time are required"}
	}
	if d.Zone == "" {
		return &ValidationError{Field: "zona", Reason: "zone is required"}
	}
	if !(Coordinate{Lat: d.Lat, Lng: d.Lng}).Valid() {
		return &ValidationError{Field: "lat/lng", Reason: "coordinate out of range"}
	}
	return nil
}

// Build assembles the activity; actual attendance always starts pending
func (d ActivityDraft) Build(id string) Activity {
	return Activity{
		ID:                 id,
		Category:           d.Category,
		Name:               d.Name,
		Date:               d.Date,
		Time:               d.Time,
		ExpectedAttendance: d.ExpectedAttendance,
		ActualAttendance:   AttendancePending,
		Address:            d.Address,
		Zone:               d.Zone,
		Notes:              d.Notes,
		Lat:                d.Lat,
		Lng:                d.Lng,
		PhotoRef:           d.PhotoRef,
	}
}
