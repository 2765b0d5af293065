package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"hospital-portal-api/internal/auth"
	"hospital-portal-api/internal/model"
	"hospital-portal-api/internal/schedule"
	"hospital-portal-api/internal/store"
)

func setup(t *testing.T) *store.Store {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	if migration, err := os.ReadFile("../../db/migrations/001_init.sql"); err == nil {
		_, _ = pool.Exec(context.Background(), string(migration))
	}
	return store.New(pool)
}

func seedDoctor(t *testing.T, st *store.Store) *model.Doctor {
	t.Helper()
	hash, _ := auth.HashPassword("testpass123")
	u := &model.User{
		ID:           uuid.New().String(),
		Username:     fmt.Sprintf("dr-%s", uuid.New().String()[:8]),
		PasswordHash: hash,
		Role:         model.RoleDoctor,
		Fullname:     "Store Test Doctor",
	}
	d := &model.Doctor{ID: uuid.New().String(), UserID: u.ID, Specialization: "Dermatology"}
	if err := st.CreateDoctor(context.Background(), u, d); err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return d
}

func seedPatient(t *testing.T, st *store.Store) string {
	t.Helper()
	hash, _ := auth.HashPassword("testpass123")
	u := &model.User{
		ID:           uuid.New().String(),
		Username:     fmt.Sprintf("pt-%s", uuid.New().String()[:8]),
		PasswordHash: hash,
		Role:         model.RolePatient,
		Fullname:     "Store Test Patient",
	}
	pid := uuid.New().String()
	if err := st.CreatePatient(context.Background(), u, pid); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return pid
}

func strPtr(s string) *string { return &s }

func day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
}

func TestReplaceAvailabilitySwapsWholeRange(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	d := seedDoctor(t, st)
	from, to := day(0), day(6)

	first := []model.AvailabilityWindow{
		{DoctorID: d.ID, Date: day(1), MorningStart: strPtr("09:00"), MorningEnd: strPtr("12:00")},
		{DoctorID: d.ID, Date: day(2), MorningStart: strPtr("09:00"), MorningEnd: strPtr("12:00")},
	}
	if err := st.ReplaceAvailability(ctx, d.ID, from, to, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := []model.AvailabilityWindow{
		{DoctorID: d.ID, Date: day(3), EveningStart: strPtr("17:00"), EveningEnd: strPtr("20:00")},
	}
	if err := st.ReplaceAvailability(ctx, d.ID, from, to, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := st.AvailabilityRange(ctx, d.ID, from, to)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 window after replacement, got %d", len(got))
	}
	if got[0].Date != day(3) || got[0].MorningStart != nil || got[0].EveningStart == nil {
		t.Errorf("unexpected surviving window: %+v", got[0])
	}
}

func TestAvailabilityIndexAssembly(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	d := seedDoctor(t, st)
	pid := seedPatient(t, st)
	from, to := day(0), day(6)

	windows := []model.AvailabilityWindow{
		{DoctorID: d.ID, Date: day(1), MorningStart: strPtr("09:00"), MorningEnd: strPtr("11:00")},
		{DoctorID: d.ID, Date: day(2), EveningStart: strPtr("17:00"), EveningEnd: strPtr("20:00")},
	}
	if err := st.ReplaceAvailability(ctx, d.ID, from, to, windows); err != nil {
		t.Fatalf("replace: %v", err)
	}
	apt := &model.Appointment{
		ID: uuid.New().String(), PatientID: pid, DoctorID: d.ID,
		Date: day(1), Time: "10:00", Status: schedule.StatusBooked,
	}
	if err := st.CreateAppointment(ctx, apt); err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	ix, err := st.AvailabilityIndex(ctx, d.ID, from, to)
	if err != nil {
		t.Fatalf("index: %v", err)
	}

	tod := func(s string) schedule.TimeOfDay {
		v, err := schedule.ParseTimeOfDay(s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		return v
	}

	if dec := ix.Validate(schedule.Slot{Date: day(1), Time: "10:00"}, tod("10:00")); dec.Accepted {
		t.Error("booked slot should be rejected")
	} else if dec.Reason != schedule.ReasonSlotBooked {
		t.Errorf("reason: got %q", dec.Reason)
	}
	if dec := ix.Validate(schedule.Slot{Date: day(1), Time: "09:30"}, tod("09:30")); !dec.Accepted {
		t.Errorf("free morning slot rejected: %q", dec.Reason)
	}
	if dec := ix.Validate(schedule.Slot{Date: day(2), Time: "18:00"}, tod("18:00")); !dec.Accepted {
		t.Errorf("evening-only slot rejected: %q", dec.Reason)
	}
	if dec := ix.Validate(schedule.Slot{Date: day(2), Time: "10:00"}, tod("10:00")); dec.Accepted {
		t.Error("morning time on an evening-only day should be rejected")
	}
	if dec := ix.Validate(schedule.Slot{Date: day(4), Time: "10:00"}, tod("10:00")); dec.Accepted {
		t.Error("day without a window should be rejected")
	} else if dec.Reason != schedule.ReasonUnavailable {
		t.Errorf("reason: got %q", dec.Reason)
	}
}

func TestBookedSlotsFiltersTerminalStatuses(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	d := seedDoctor(t, st)
	pid := seedPatient(t, st)

	mk := func(tod, status string) *model.Appointment {
		a := &model.Appointment{
			ID: uuid.New().String(), PatientID: pid, DoctorID: d.ID,
			Date: day(1), Time: tod, Status: status,
		}
		if err := st.CreateAppointment(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
		return a
	}
	mk("09:00", schedule.StatusBooked)
	mk("10:00", schedule.StatusCancelled)
	mk("11:00", schedule.StatusCompleted)

	slots, err := st.BookedSlots(ctx, d.ID)
	if err != nil {
		t.Fatalf("booked slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected only the Booked row, got %d slots", len(slots))
	}
	if slots[0].Time != "09:00" {
		t.Errorf("slot: got %+v", slots[0])
	}
}

func TestStatusUpdateRequiresOwnership(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	d := seedDoctor(t, st)
	other := seedDoctor(t, st)
	pid := seedPatient(t, st)

	apt := &model.Appointment{
		ID: uuid.New().String(), PatientID: pid, DoctorID: d.ID,
		Date: day(1), Time: "09:00", Status: schedule.StatusBooked,
	}
	if err := st.CreateAppointment(ctx, apt); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := st.SetStatusByDoctor(ctx, apt.ID, other.ID, schedule.StatusCompleted)
	if err != store.ErrNotFound {
		t.Errorf("foreign doctor: expected ErrNotFound, got %v", err)
	}
	if err := st.SetStatusByDoctor(ctx, apt.ID, d.ID, schedule.StatusCompleted); err != nil {
		t.Errorf("owner: %v", err)
	}

	got, err := st.AppointmentByID(ctx, apt.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != schedule.StatusCompleted {
		t.Errorf("status: got %s", got.Status)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	hash, _ := auth.HashPassword("testpass123")
	u := &model.User{
		ID:       uuid.New().String(),
		Username: fmt.Sprintf("rt-%s", uuid.New().String()[:8]),
		Role:     model.RolePatient, Fullname: "RT User", PasswordHash: hash,
	}
	if err := st.CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, hash1, err := auth.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	id1, err := st.CreateRefreshToken(ctx, u.ID, hash1, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	_, hash2, err := auth.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if err := st.RotateRefreshToken(ctx, id1, uuid.New().String(), u.ID, hash2, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("rotate: %v", err)
	}

	old, err := st.RefreshTokenByHash(ctx, hash1)
	if err != nil {
		t.Fatalf("old lookup: %v", err)
	}
	if !old.Revoked {
		t.Error("rotated token should be revoked")
	}
	if old.ReplacedBy == nil {
		t.Error("rotated token should link its replacement")
	}

	cur, err := st.RefreshTokenByHash(ctx, hash2)
	if err != nil {
		t.Fatalf("new lookup: %v", err)
	}
	if cur.Revoked {
		t.Error("fresh token should not be revoked")
	}

	if err := st.RevokeAllRefreshTokens(ctx, u.ID); err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	cur, err = st.RefreshTokenByHash(ctx, hash2)
	if err != nil {
		t.Fatalf("lookup after revoke all: %v", err)
	}
	if !cur.Revoked {
		t.Error("token should be revoked after logout")
	}
}

func TestBlacklistHidesUser(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	hash, _ := auth.HashPassword("testpass123")
	u := &model.User{
		ID:       uuid.New().String(),
		Username: fmt.Sprintf("bl-%s", uuid.New().String()[:8]),
		Role:     model.RolePatient, Fullname: "BL User", PasswordHash: hash,
	}
	if err := st.CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := st.UserByUsername(ctx, u.Username); err != nil {
		t.Fatalf("lookup before blacklist: %v", err)
	}

	if err := st.BlacklistUser(ctx, u.ID); err != nil {
		t.Fatalf("blacklist: %v", err)
	}
	if _, err := st.UserByUsername(ctx, u.Username); err != store.ErrNotFound {
		t.Errorf("blacklisted lookup: expected ErrNotFound, got %v", err)
	}

	if err := st.BlacklistUser(ctx, uuid.New().String()); err != store.ErrNotFound {
		t.Errorf("unknown user: expected ErrNotFound, got %v", err)
	}
}
