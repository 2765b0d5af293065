package store

import (
	"context"

	"hospital-portal-api/internal/model"
)

// CreateDoctor inserts the account row and the doctor profile in one
// transaction.
func (s *Store) CreateDoctor(ctx context.Context, u *model.User, d *model.Doctor) error {
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
		`INSERT INTO doctors (id, user_id, specialization, department_id, experience_years, qualification, bio)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, u.ID, d.Specialization, d.DepartmentID, d.ExperienceYears, d.Qualification, d.Bio,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const doctorSelect = `
	SELECT d.id, d.user_id, u.fullname, u.email, u.phone, d.specialization,
	       d.department_id, COALESCE(dept.name, ''), d.experience_years, d.qualification, d.bio
	FROM doctors d
	JOIN users u ON u.id = d.user_id
	LEFT JOIN departments dept ON dept.id = d.department_id`

func scanDoctor(row interface{ Scan(...any) error }) (*model.Doctor, error) {
	d := &model.Doctor{}
	err := row.Scan(&d.ID, &d.UserID, &d.Fullname, &d.Email, &d.Phone, &d.Specialization,
		&d.DepartmentID, &d.Department, &d.ExperienceYears, &d.Qualification, &d.Bio)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// DoctorByID returns a bookable doctor. Blacklisted doctors are hidden.
func (s *Store) DoctorByID(ctx context.Context, id string) (*model.Doctor, error) {
	d, err := scanDoctor(s.pool.QueryRow(ctx,
		doctorSelect+` WHERE d.id = $1 AND u.blacklisted = FALSE`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

// DoctorByUserID resolves the doctor profile for an authenticated user.
func (s *Store) DoctorByUserID(ctx context.Context, userID string) (*model.Doctor, error) {
	d, err := scanDoctor(s.pool.QueryRow(ctx,
		doctorSelect+` WHERE d.user_id = $1`, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

func (s *Store) DoctorsByDepartment(ctx context.Context, departmentID string) ([]model.Doctor, error) {
	rows, err := s.pool.Query(ctx,
		doctorSelect+` WHERE d.department_id = $1 AND u.blacklisted = FALSE ORDER BY u.fullname`,
		departmentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// SearchDoctors matches name, specialization or department. When
// includeBlacklisted is false (patient-facing search), hidden doctors
// are excluded.
func (s *Store) SearchDoctors(ctx context.Context, query string, includeBlacklisted bool) ([]model.Doctor, error) {
	q := doctorSelect + `
		WHERE (u.fullname ILIKE $1 OR d.specialization ILIKE $1 OR dept.name ILIKE $1)`
	if !includeBlacklisted {
		q += ` AND u.blacklisted = FALSE`
	}
	q += ` ORDER BY u.fullname`

	rows, err := s.pool.Query(ctx, q, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (s *Store) UpdateDoctor(ctx context.Context, d *model.Doctor) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE doctors SET specialization=$1, department_id=$2, experience_years=$3,
		        qualification=$4, bio=$5
		 WHERE id=$6`,
		d.Specialization, d.DepartmentID, d.ExperienceYears, d.Qualification, d.Bio, d.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET fullname=$1, email=$2, phone=$3, updated_at=NOW()
		 WHERE id = (SELECT user_id FROM doctors WHERE id = $4)`,
		d.Fullname, d.Email, d.Phone, d.ID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) DoctorUserID(ctx context.Context, doctorID string) (string, error) {
	var userID string
	err := s.pool.QueryRow(ctx,
		`SELECT user_id FROM doctors WHERE id = $1`, doctorID,
	).Scan(&userID)
	if err != nil {
		return "", notFound(err)
	}
	return userID, nil
}

func (s *Store) CountDoctors(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&n)
	return n, err
}

// ListDoctors returns every doctor for the admin dashboard, including
// blacklisted ones.
func (s *Store) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	rows, err := s.pool.Query(ctx, doctorSelect+` ORDER BY u.fullname`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}
