package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hospital-portal-api/internal/model"
)

// UpsertTreatment creates or overwrites the single treatment record of
// an appointment. Ownership of the appointment must already be checked.
func (s *Store) UpsertTreatment(ctx context.Context, t *model.Treatment) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO treatments (id, appointment_id, visit_type, tests_done, diagnosis, prescription, medicines, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (appointment_id) DO UPDATE SET
		   visit_type=EXCLUDED.visit_type, tests_done=EXCLUDED.tests_done,
		   diagnosis=EXCLUDED.diagnosis, prescription=EXCLUDED.prescription,
		   medicines=EXCLUDED.medicines, notes=EXCLUDED.notes, updated_at=NOW()`,
		t.ID, t.AppointmentID, t.VisitType, t.TestsDone, t.Diagnosis, t.Prescription, t.Medicines, t.Notes,
	)
	return err
}

func (s *Store) TreatmentByAppointment(ctx context.Context, appointmentID string) (*model.Treatment, error) {
	t := &model.Treatment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, appointment_id, visit_type, tests_done, diagnosis, prescription, medicines, notes, created_at, updated_at
		 FROM treatments WHERE appointment_id = $1`, appointmentID,
	).Scan(&t.ID, &t.AppointmentID, &t.VisitType, &t.TestsDone, &t.Diagnosis,
		&t.Prescription, &t.Medicines, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

const treatmentRecordSelect = `
	SELECT t.id, t.appointment_id, t.visit_type, t.tests_done, t.diagnosis,
	       t.prescription, t.medicines, t.notes, t.created_at, t.updated_at,
	       a.appointment_date, ud.fullname, COALESCE(dept.name, '')
	FROM treatments t
	JOIN appointments a ON a.id = t.appointment_id
	JOIN doctors d ON d.id = a.doctor_id
	JOIN users ud ON ud.id = d.user_id
	LEFT JOIN departments dept ON dept.id = d.department_id`

func (s *Store) queryTreatmentRecords(ctx context.Context, q string, args ...any) ([]model.TreatmentRecord, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TreatmentRecord
	for rows.Next() {
		var tr model.TreatmentRecord
		var day time.Time
		if err := rows.Scan(&tr.ID, &tr.AppointmentID, &tr.VisitType, &tr.TestsDone,
			&tr.Diagnosis, &tr.Prescription, &tr.Medicines, &tr.Notes,
			&tr.CreatedAt, &tr.UpdatedAt, &day, &tr.DoctorName, &tr.Department); err != nil {
			return nil, err
		}
		tr.AppointmentDate = day.Format(dateFmt)
		out = append(out, tr)
	}
	return out, rows.Err()
}

// TreatmentsForPatient is the patient's full treatment history, newest
// first.
func (s *Store) TreatmentsForPatient(ctx context.Context, patientID string) ([]model.TreatmentRecord, error) {
	return s.queryTreatmentRecords(ctx,
		treatmentRecordSelect+`
		 WHERE a.patient_id = $1
		 ORDER BY a.appointment_date DESC, t.created_at DESC`, patientID)
}

// TreatmentsForPatientWithDoctor restricts the history to one doctor,
// for the doctor's own view of a patient.
func (s *Store) TreatmentsForPatientWithDoctor(ctx context.Context, patientID, doctorID string) ([]model.TreatmentRecord, error) {
	return s.queryTreatmentRecords(ctx,
		treatmentRecordSelect+`
		 WHERE a.patient_id = $1 AND a.doctor_id = $2
		 ORDER BY a.appointment_date DESC, t.created_at DESC`, patientID, doctorID)
}
