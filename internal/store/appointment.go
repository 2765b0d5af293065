package store

import (
	"context"
	"time"

	"hospital-portal-api/internal/model"
	"hospital-portal-api/internal/schedule"
)

// CreateAppointment inserts a freshly validated booking. The validator
// check and this insert are separate store round-trips; a concurrent
// booking for the same slot can slip between them.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, patient_id, doctor_id, appointment_date, appointment_time, status, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.Time, a.Status, a.Notes,
	)
	return err
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	var day time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT id, patient_id, doctor_id, appointment_date, appointment_time, status, notes, created_at, updated_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.PatientID, &a.DoctorID, &day, &a.Time, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	a.Date = day.Format(dateFmt)
	return a, nil
}

// BookedSlots returns every (date, time) pair currently held by a
// Booked appointment for the doctor. Completed and Cancelled rows are
// excluded, so their slots can be booked again.
func (s *Store) BookedSlots(ctx context.Context, doctorID string) ([]schedule.Slot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT appointment_date, appointment_time FROM appointments
		 WHERE doctor_id = $1 AND status = 'Booked'`, doctorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Slot
	for rows.Next() {
		var day time.Time
		var tod string
		if err := rows.Scan(&day, &tod); err != nil {
			return nil, err
		}
		out = append(out, schedule.Slot{Date: day.Format(dateFmt), Time: tod})
	}
	return out, rows.Err()
}

// SetStatusByDoctor applies a lifecycle transition scoped to the owning
// doctor. Zero rows means the appointment does not exist or belongs to
// someone else; the two are indistinguishable on purpose. The current
// status is not consulted, so re-issuing a transition overwrites.
func (s *Store) SetStatusByDoctor(ctx context.Context, appointmentID, doctorID, status string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2 AND doctor_id=$3`,
		status, appointmentID, doctorID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatusByPatient is the patient-scoped counterpart of
// SetStatusByDoctor.
func (s *Store) SetStatusByPatient(ctx context.Context, appointmentID, patientID, status string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2 AND patient_id=$3`,
		status, appointmentID, patientID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AppointmentOwnedByDoctor fetches an appointment only if the doctor
// owns it; used before treatment writes.
func (s *Store) AppointmentOwnedByDoctor(ctx context.Context, appointmentID, doctorID string) (*model.Appointment, error) {
	a := &model.Appointment{}
	var day time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT id, patient_id, doctor_id, appointment_date, appointment_time, status, notes, created_at, updated_at
		 FROM appointments WHERE id = $1 AND doctor_id = $2`, appointmentID, doctorID,
	).Scan(&a.ID, &a.PatientID, &a.DoctorID, &day, &a.Time, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	a.Date = day.Format(dateFmt)
	return a, nil
}

const appointmentDetailSelect = `
	SELECT a.id, a.patient_id, a.doctor_id, a.appointment_date, a.appointment_time,
	       a.status, a.notes, a.created_at, a.updated_at,
	       up.fullname, ud.fullname, COALESCE(dept.name, '')
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN users up ON up.id = p.user_id
	JOIN doctors d ON d.id = a.doctor_id
	JOIN users ud ON ud.id = d.user_id
	LEFT JOIN departments dept ON dept.id = d.department_id`

func (s *Store) queryAppointmentDetails(ctx context.Context, q string, args ...any) ([]model.AppointmentDetail, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AppointmentDetail
	for rows.Next() {
		var ad model.AppointmentDetail
		var day time.Time
		if err := rows.Scan(&ad.ID, &ad.PatientID, &ad.DoctorID, &day, &ad.Time,
			&ad.Status, &ad.Notes, &ad.CreatedAt, &ad.UpdatedAt,
			&ad.PatientName, &ad.DoctorName, &ad.Department); err != nil {
			return nil, err
		}
		ad.Date = day.Format(dateFmt)
		out = append(out, ad)
	}
	return out, rows.Err()
}

// BookedForDoctor lists the doctor's Booked appointments within the
// date range, ordered by date then time.
func (s *Store) BookedForDoctor(ctx context.Context, doctorID, from, to string) ([]model.AppointmentDetail, error) {
	return s.queryAppointmentDetails(ctx,
		appointmentDetailSelect+`
		 WHERE a.doctor_id = $1 AND a.status = 'Booked'
		   AND a.appointment_date >= $2 AND a.appointment_date <= $3
		 ORDER BY a.appointment_date, a.appointment_time`,
		doctorID, from, to)
}

// BookedForPatient lists the patient's upcoming (Booked) appointments.
func (s *Store) BookedForPatient(ctx context.Context, patientID string) ([]model.AppointmentDetail, error) {
	return s.queryAppointmentDetails(ctx,
		appointmentDetailSelect+`
		 WHERE a.patient_id = $1 AND a.status = 'Booked'
		 ORDER BY a.appointment_date, a.appointment_time`,
		patientID)
}

// UpcomingAppointments is the admin view of every Booked appointment.
func (s *Store) UpcomingAppointments(ctx context.Context) ([]model.AppointmentDetail, error) {
	return s.queryAppointmentDetails(ctx,
		appointmentDetailSelect+`
		 WHERE a.status = 'Booked'
		 ORDER BY a.appointment_date, a.appointment_time`)
}

// PastAppointments is the admin view of settled appointments, newest
// first.
func (s *Store) PastAppointments(ctx context.Context, limit int) ([]model.AppointmentDetail, error) {
	return s.queryAppointmentDetails(ctx,
		appointmentDetailSelect+`
		 WHERE a.status IN ('Completed', 'Cancelled')
		 ORDER BY a.appointment_date DESC, a.appointment_time DESC
		 LIMIT $1`, limit)
}

func (s *Store) CountBookedAppointments(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE status = 'Booked'`).Scan(&n)
	return n, err
}
