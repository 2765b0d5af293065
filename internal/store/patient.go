package store

import (
	"context"

	"hospital-portal-api/internal/model"
)

// CreatePatient inserts the account row and an empty patient profile in
// one transaction (self-registration).
func (s *Store) CreatePatient(ctx context.Context, u *model.User, patientID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, fullname, email, phone)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.Fullname, u.Email, u.Phone,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO patients (id, user_id) VALUES ($1,$2)`, patientID, u.ID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const patientSelect = `
	SELECT p.id, p.user_id, u.fullname, u.email, u.phone, p.age, p.gender, p.address, p.blood_group
	FROM patients p
	JOIN users u ON u.id = p.user_id`

func scanPatient(row interface{ Scan(...any) error }) (*model.Patient, error) {
	p := &model.Patient{}
	err := row.Scan(&p.ID, &p.UserID, &p.Fullname, &p.Email, &p.Phone,
		&p.Age, &p.Gender, &p.Address, &p.BloodGroup)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) PatientByUserID(ctx context.Context, userID string) (*model.Patient, error) {
	p, err := scanPatient(s.pool.QueryRow(ctx, patientSelect+` WHERE p.user_id = $1`, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Store) PatientByID(ctx context.Context, id string) (*model.Patient, error) {
	p, err := scanPatient(s.pool.QueryRow(ctx, patientSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// UpdatePatientProfile writes the account contact fields and the
// patient profile together.
func (s *Store) UpdatePatientProfile(ctx context.Context, p *model.Patient) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE patients SET age=$1, gender=$2, address=$3, blood_group=$4 WHERE id=$5`,
		p.Age, p.Gender, p.Address, p.BloodGroup, p.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET fullname=$1, email=$2, phone=$3, updated_at=NOW()
		 WHERE id = (SELECT user_id FROM patients WHERE id = $4)`,
		p.Fullname, p.Email, p.Phone, p.ID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) SearchPatients(ctx context.Context, query string) ([]model.Patient, error) {
	rows, err := s.pool.Query(ctx,
		patientSelect+`
		 WHERE u.fullname ILIKE $1 OR u.email ILIKE $1 OR u.phone ILIKE $1
		 ORDER BY u.fullname`, "%"+query+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) PatientUserID(ctx context.Context, patientID string) (string, error) {
	var userID string
	err := s.pool.QueryRow(ctx,
		`SELECT user_id FROM patients WHERE id = $1`, patientID,
	).Scan(&userID)
	if err != nil {
		return "", notFound(err)
	}
	return userID, nil
}

func (s *Store) CountPatients(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&n)
	return n, err
}

// PatientsSeenByDoctor lists the distinct patients who have had an
// appointment with the doctor.
func (s *Store) PatientsSeenByDoctor(ctx context.Context, doctorID string) ([]model.Patient, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT p.id, p.user_id, u.fullname, u.email, u.phone, p.age, p.gender, p.address, p.blood_group
		 FROM patients p
		 JOIN users u ON u.id = p.user_id
		 JOIN appointments a ON a.patient_id = p.id
		 WHERE a.doctor_id = $1
		 ORDER BY u.fullname`, doctorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
