package engine

import (
	"errors"
	"fmt"

	"planbord/internal/config"
	"planbord/internal/domain"
	"planbord/internal/events"
)

// ErrReservationConflict is returned instead of a warning when the
// configured conflict policy is "reject".
var ErrReservationConflict = errors.New("reservation conflict")

// HasTimeOverlap reports whether two half-open wall-clock intervals on the
// same day overlap. Touching intervals (endA == startB) do not. HH:MM
// strings compare correctly as text.
func HasTimeOverlap(startA, endA, startB, endB string) bool {
	return startA < endB && startB < endA
}

type ReservationOptions struct {
	ID         string
	ResourceID string
	TaskID     string
	ProjectID  string
	Date       string
	StartTime  string
	EndTime    string
}

// ReservationResult carries the created reservation plus the overlapping
// ones found on the same resource and day. Conflict set with the default
// "warn" policy means the booking went through anyway; double-booking is
// the planner's call.
type ReservationResult struct {
	Reservation domain.ResourceReservation
	Conflict    bool
	Overlaps    []domain.ResourceReservation
}

func (e Engine) AddReservation(opts ReservationOptions) (ReservationResult, error) {
	var res ReservationResult
	if opts.ResourceID == "" {
		return res, errors.New("resource is required")
	}
	if _, err := e.Store.GetResource(opts.ResourceID); err != nil {
		return res, fmt.Errorf("resource %s: %w", opts.ResourceID, err)
	}
	if err := validDate(opts.Date); err != nil {
		return res, err
	}
	if err := validClock(opts.StartTime); err != nil {
		return res, err
	}
	if err := validClock(opts.EndTime); err != nil {
		return res, err
	}
	if opts.StartTime >= opts.EndTime {
		return res, fmt.Errorf("invalid range: start time %s must be before end time %s", opts.StartTime, opts.EndTime)
	}
	for _, existing := range e.Store.ReservationsFor(opts.ResourceID, opts.Date) {
		if HasTimeOverlap(opts.StartTime, opts.EndTime, existing.StartTime, existing.EndTime) {
			res.Conflict = true
			res.Overlaps = append(res.Overlaps, existing)
		}
	}
	if res.Conflict && e.conflictPolicy() == config.ConflictReject {
		return res, fmt.Errorf("%w: resource %s already booked on %s", ErrReservationConflict, opts.ResourceID, opts.Date)
	}
	id := opts.ID
	if id == "" {
		id = e.newID()
	}
	res.Reservation = domain.ResourceReservation{
		ID:         id,
		ResourceID: opts.ResourceID,
		TaskID:     opts.TaskID,
		ProjectID:  opts.ProjectID,
		Date:       opts.Date,
		StartTime:  opts.StartTime,
		EndTime:    opts.EndTime,
	}
	e.Store.InsertReservation(res.Reservation)
	e.append("reservation.created", "reservation", id, events.Payload{
		"resource_id": opts.ResourceID,
		"date":        opts.Date,
		"conflict":    res.Conflict,
	})
	return res, nil
}

// DeleteReservation removes the reservation by id. No effect on the task
// or project it pointed at.
func (e Engine) DeleteReservation(id string) error {
	if err := e.Store.DeleteReservation(id); err != nil {
		return fmt.Errorf("reservation %s: %w", id, err)
	}
	e.append("reservation.deleted", "reservation", id, nil)
	return nil
}

func (e Engine) conflictPolicy() string {
	if e.Config == nil || e.Config.Reservations.ConflictPolicy == "" {
		return config.ConflictWarn
	}
	return e.Config.Reservations.ConflictPolicy
}
