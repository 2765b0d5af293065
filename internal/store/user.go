package store

import (
	"context"

	"hospital-portal-api/internal/model"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, fullname, email, phone)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.Fullname, u.Email, u.Phone,
	)
	return err
}

// UserByUsername looks up a user for login. Blacklisted accounts are
// treated as absent.
func (s *Store) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, fullname, email, phone, blacklisted, created_at, updated_at
		 FROM users WHERE username = $1 AND blacklisted = FALSE`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Fullname, &u.Email, &u.Phone,
		&u.Blacklisted, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, fullname, email, phone, blacklisted, created_at, updated_at
		 FROM users WHERE id = $1 AND blacklisted = FALSE`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Fullname, &u.Email, &u.Phone,
		&u.Blacklisted, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (s *Store) UpdateUserContact(ctx context.Context, id, fullname, email, phone string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET fullname=$1, email=$2, phone=$3, updated_at=NOW() WHERE id=$4`,
		fullname, email, phone, id,
	)
	return err
}

// BlacklistUser shuts the account out of login and public listings.
// Existing rows referencing the user stay intact.
func (s *Store) BlacklistUser(ctx context.Context, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET blacklisted = TRUE, updated_at = NOW() WHERE id = $1`, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
