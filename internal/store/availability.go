package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hospital-portal-api/internal/model"
	"hospital-portal-api/internal/schedule"
)

// ReplaceAvailability swaps out the doctor's declared windows for the
// [from, to] date range in one transaction: delete everything in range,
// then insert the submitted days. There are no partial updates. Days
// with neither sub-window set should be filtered out by the caller.
func (s *Store) ReplaceAvailability(ctx context.Context, doctorID, from, to string, windows []model.AvailabilityWindow) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM doctor_availability WHERE doctor_id = $1 AND day >= $2 AND day <= $3`,
		doctorID, from, to,
	)
	if err != nil {
		return err
	}

	for _, w := range windows {
		_, err = tx.Exec(ctx,
			`INSERT INTO doctor_availability (id, doctor_id, day, morning_start, morning_end, evening_start, evening_end)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			uuid.New().String(), doctorID, w.Date,
			w.MorningStart, w.MorningEnd, w.EveningStart, w.EveningEnd,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// AvailabilityRange returns the doctor's declared windows for the
// [from, to] date range, ordered by date. Dates with no row are simply
// absent: the doctor is unavailable those days.
func (s *Store) AvailabilityRange(ctx context.Context, doctorID, from, to string) ([]model.AvailabilityWindow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doctor_id, day, morning_start, morning_end, evening_start, evening_end
		 FROM doctor_availability
		 WHERE doctor_id = $1 AND day >= $2 AND day <= $3
		 ORDER BY day`, doctorID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AvailabilityWindow
	for rows.Next() {
		var w model.AvailabilityWindow
		var day time.Time
		if err := rows.Scan(&w.DoctorID, &day, &w.MorningStart, &w.MorningEnd,
			&w.EveningStart, &w.EveningEnd); err != nil {
			return nil, err
		}
		w.Date = day.Format(dateFmt)
		out = append(out, w)
	}
	return out, rows.Err()
}

// AvailabilityIndex assembles the read-time booking view for a doctor:
// declared windows over the date range plus every slot held by a Booked
// appointment. Malformed stored times fail loudly rather than silently
// shrinking a window.
func (s *Store) AvailabilityIndex(ctx context.Context, doctorID, from, to string) (*schedule.Index, error) {
	windows, err := s.AvailabilityRange(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}

	ix := schedule.NewIndex()
	for _, w := range windows {
		var win schedule.Window
		if w.MorningStart != nil && w.MorningEnd != nil {
			r, err := parseRange(*w.MorningStart, *w.MorningEnd)
			if err != nil {
				return nil, err
			}
			win.Morning = r
		}
		if w.EveningStart != nil && w.EveningEnd != nil {
			r, err := parseRange(*w.EveningStart, *w.EveningEnd)
			if err != nil {
				return nil, err
			}
			win.Evening = r
		}
		ix.Windows[w.Date] = win
	}

	booked, err := s.BookedSlots(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	for _, slot := range booked {
		ix.Booked[slot] = struct{}{}
	}
	return ix, nil
}

func parseRange(start, end string) (*schedule.Range, error) {
	s, err := schedule.ParseTimeOfDay(start)
	if err != nil {
		return nil, err
	}
	e, err := schedule.ParseTimeOfDay(end)
	if err != nil {
		return nil, err
	}
	return &schedule.Range{Start: s, End: e}, nil
}
