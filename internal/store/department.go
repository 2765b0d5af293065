package store

import (
	"context"

	"hospital-portal-api/internal/model"
)

func (s *Store) ListDepartments(ctx context.Context) ([]model.Department, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Department
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) DepartmentByID(ctx context.Context, id string) (*model.Department, error) {
	d := &model.Department{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Description)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}
