package model

import "time"

// Roles carried in the JWT and checked by the role middleware.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Blacklisted  bool      `json:"blacklisted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Doctor struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Fullname        string  `json:"fullname"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Specialization  string  `json:"specialization"`
	DepartmentID    *string `json:"department_id,omitempty"`
	Department      string  `json:"department,omitempty"`
	ExperienceYears int     `json:"experience_years"`
	Qualification   string  `json:"qualification"`
	Bio             string  `json:"bio"`
}

type Patient struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Fullname   string `json:"fullname"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Age        *int   `json:"age,omitempty"`
	Gender     string `json:"gender"`
	Address    string `json:"address"`
	BloodGroup string `json:"blood_group"`
}

type Appointment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentDetail is an Appointment joined with the names shown on
// dashboards and admin listings.
type AppointmentDetail struct {
	Appointment
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Department  string `json:"department,omitempty"`
}

type Treatment struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	VisitType     string    `json:"visit_type"`
	TestsDone     string    `json:"tests_done"`
	Diagnosis     string    `json:"diagnosis"`
	Prescription  string    `json:"prescription"`
	Medicines     string    `json:"medicines"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TreatmentRecord is a Treatment joined with its appointment context for
// history views.
type TreatmentRecord struct {
	Treatment
	AppointmentDate string `json:"appointment_date"`
	DoctorName      string `json:"doctor_name,omitempty"`
	Department      string `json:"department,omitempty"`
}

// AvailabilityWindow is one doctor-day of declared availability. Either
// sub-window may be absent; start/end come in pairs.
type AvailabilityWindow struct {
	DoctorID     string  `json:"doctor_id"`
	Date         string  `json:"date"` // YYYY-MM-DD
	MorningStart *string `json:"morning_start,omitempty"`
	MorningEnd   *string `json:"morning_end,omitempty"`
	EveningStart *string `json:"evening_start,omitempty"`
	EveningEnd   *string `json:"evening_end,omitempty"`
}

type RefreshToken struct {
	ID         string
	UserID     string
	TokenHash  string
	ExpiresAt  time.Time
	Revoked    bool
	ReplacedBy *string
	CreatedAt  time.Time
}
