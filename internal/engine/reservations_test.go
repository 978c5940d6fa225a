package engine_test

import (
	"errors"
	"testing"

	"planbord/internal/config"
	"planbord/internal/domain"
	"planbord/internal/engine"
	"planbord/internal/store"
)

func newBooth(t *testing.T, env testEnv) domain.Resource {
	t.Helper()
	r, err := env.Engine.CreateResource(engine.ResourceOptions{Name: "Paint booth 1", Type: domain.ResourcePaintBooth, Capacity: 1})
	if err != nil {
		t.Fatalf("create resource: %v", err)
	}
	return r
}

func TestHasTimeOverlap(t *testing.T) {
	cases := []struct {
		startA, endA, startB, endB string
		want                       bool
	}{
		{"08:00", "12:00", "11:00", "13:00", true},
		{"08:00", "12:00", "12:00", "13:00", false},
		{"08:00", "09:00", "10:00", "11:00", false},
		{"10:00", "11:00", "08:00", "12:00", true},
		{"08:00", "12:00", "08:00", "12:00", true},
	}
	for _, c := range cases {
		if got := engine.HasTimeOverlap(c.startA, c.endA, c.startB, c.endB); got != c.want {
			t.Errorf("HasTimeOverlap(%s-%s, %s-%s) = %v, want %v", c.startA, c.endA, c.startB, c.endB, got, c.want)
		}
	}
}

func TestAddReservationWarnsAndAllows(t *testing.T) {
	env := newTestEnv(t)
	booth := newBooth(t, env)

	first, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, TaskID: "task-a", Date: "2025-07-01", StartTime: "08:00", EndTime: "12:00",
	})
	if err != nil {
		t.Fatalf("first reservation: %v", err)
	}
	if first.Conflict || len(first.Overlaps) != 0 {
		t.Fatalf("first reservation flagged a conflict: %+v", first)
	}

	second, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, TaskID: "task-b", Date: "2025-07-01", StartTime: "10:00", EndTime: "11:00",
	})
	if err != nil {
		t.Fatalf("second reservation: %v", err)
	}
	if !second.Conflict {
		t.Fatalf("overlap not flagged")
	}
	if len(second.Overlaps) != 1 || second.Overlaps[0].ID != first.Reservation.ID {
		t.Fatalf("overlaps = %+v", second.Overlaps)
	}
	// Warn policy still books: both reservations are in the store.
	got := env.Store.ReservationsFor(booth.ID, "2025-07-01")
	if len(got) != 2 {
		t.Fatalf("store holds %d reservations, want 2", len(got))
	}
}

func TestAddReservationTouchingIsNoConflict(t *testing.T) {
	env := newTestEnv(t)
	booth := newBooth(t, env)

	if _, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, Date: "2025-07-01", StartTime: "08:00", EndTime: "12:00",
	}); err != nil {
		t.Fatalf("first: %v", err)
	}
	res, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, Date: "2025-07-01", StartTime: "12:00", EndTime: "13:00",
	})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if res.Conflict {
		t.Fatalf("touching intervals flagged as conflict")
	}
}

func TestAddReservationOtherDateOrResource(t *testing.T) {
	env := newTestEnv(t)
	booth := newBooth(t, env)
	bay, err := env.Engine.CreateResource(engine.ResourceOptions{Name: "Repair hall", Type: domain.ResourceRepairBay, Capacity: 2})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, Date: "2025-07-01", StartTime: "08:00", EndTime: "17:00",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, opts := range []engine.ReservationOptions{
		{ResourceID: booth.ID, Date: "2025-07-02", StartTime: "08:00", EndTime: "17:00"},
		{ResourceID: bay.ID, Date: "2025-07-01", StartTime: "08:00", EndTime: "17:00"},
	} {
		res, err := env.Engine.AddReservation(opts)
		if err != nil {
			t.Fatalf("reserve %+v: %v", opts, err)
		}
		if res.Conflict {
			t.Fatalf("conflict across date/resource boundary: %+v", opts)
		}
	}
}

func TestAddReservationValidation(t *testing.T) {
	env := newTestEnv(t)
	booth := newBooth(t, env)

	if _, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: "missing", Date: "2025-07-01", StartTime: "08:00", EndTime: "09:00",
	}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if _, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, Date: "2025-07-01", StartTime: "12:00", EndTime: "08:00",
	}); err == nil {
		t.Fatalf("expected inverted range error")
	}
	if _, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, Date: "2025-07-01", StartTime: "10:00", EndTime: "10:00",
	}); err == nil {
		t.Fatalf("expected zero-length range error")
	}
	if _, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, Date: "July 1st", StartTime: "08:00", EndTime: "09:00",
	}); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if _, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, Date: "2025-07-01", StartTime: "8am", EndTime: "09:00",
	}); err == nil {
		t.Fatalf("expected invalid time error")
	}
}

func TestAddReservationRejectPolicy(t *testing.T) {
	env := newTestEnv(t)
	env.Engine.Config.Reservations.ConflictPolicy = config.ConflictReject
	booth := newBooth(t, env)

	if _, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, Date: "2025-07-01", StartTime: "08:00", EndTime: "12:00",
	}); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, Date: "2025-07-01", StartTime: "10:00", EndTime: "11:00",
	})
	if !errors.Is(err, engine.ErrReservationConflict) {
		t.Fatalf("err = %v, want reservation conflict", err)
	}
	if got := env.Store.ReservationsFor(booth.ID, "2025-07-01"); len(got) != 1 {
		t.Fatalf("rejected booking was stored anyway: %d reservations", len(got))
	}
}

func TestDeleteResourceKeepsReservations(t *testing.T) {
	env := newTestEnv(t)
	booth := newBooth(t, env)
	res, err := env.Engine.AddReservation(engine.ReservationOptions{
		ResourceID: booth.ID, Date: "2025-07-01", StartTime: "08:00", EndTime: "09:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := env.Engine.DeleteResource(booth.ID); err != nil {
		t.Fatalf("delete resource: %v", err)
	}
	if _, err := env.Store.GetReservation(res.Reservation.ID); err != nil {
		t.Fatalf("reservation gone after resource delete: %v", err)
	}
	if err := env.Engine.DeleteReservation(res.Reservation.ID); err != nil {
		t.Fatalf("delete reservation: %v", err)
	}
	if err := env.Engine.DeleteReservation(res.Reservation.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete err = %v, want not found", err)
	}
}
