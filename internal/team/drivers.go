// internal/team/drivers.go
package team

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"paddock/internal/apperr"
)

// AddDriver registers a driver with a 0-100 skill rating.
func (s *service) AddDriver(ctx context.Context, teamID uuid.UUID, name string, skill int) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("driver name is required")
	}
	if skill < 0 || skill > 100 {
		return nil, apperr.Validation("driver skill must be an integer between 0 and 100")
	}

	t.Drivers = append(t.Drivers, Driver{
		ID:      uuid.New(),
		Name:    name,
		Skill:   skill,
		Results: []Result{},
	})

	return s.save(ctx, t)
}

// RemoveDriver deletes a driver unless a car still has them assigned.
func (s *service) RemoveDriver(ctx context.Context, teamID, driverID uuid.UUID) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if t.findDriver(driverID) == nil {
		return nil, apperr.NotFound(fmt.Sprintf("driver %s not found", driverID))
	}
	for i := range t.Cars {
		if t.Cars[i].DriverID != nil && *t.Cars[i].DriverID == driverID {
			return nil, apperr.Conflict(fmt.Sprintf("driver %s is assigned to car %s and cannot be removed", driverID, t.Cars[i].Code))
		}
	}

	kept := t.Drivers[:0]
	for _, d := range t.Drivers {
		if d.ID != driverID {
			kept = append(kept, d)
		}
	}
	t.Drivers = kept

	return s.save(ctx, t)
}

// AddDriverResult appends a race result to the driver's ordered history.
func (s *service) AddDriverResult(ctx context.Context, teamID, driverID uuid.UUID, date time.Time, race string, position int, points float64) (*Team, error) {
	defer s.locks.lock(teamID)()

	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	driver := t.findDriver(driverID)
	if driver == nil {
		return nil, apperr.NotFound(fmt.Sprintf("driver %s not found", driverID))
	}

	race = strings.TrimSpace(race)
	if race == "" {
		return nil, apperr.Validation("race name is required")
	}
	if position < 1 {
		return nil, apperr.Validation("position must be an integer of at least 1")
	}
	if points < 0 {
		return nil, apperr.Validation("points must be a non-negative number")
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	driver.Results = append(driver.Results, Result{
		Date:     date,
		Race:     race,
		Position: position,
		Points:   points,
	})

	return s.save(ctx, t)
}

// DriverStats aggregates the driver's results. With no races the
// averages are 0 and the best position is nil.
func (s *service) DriverStats(ctx context.Context, teamID, driverID uuid.UUID) (*DriverStats, error) {
	t, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	driver := t.findDriver(driverID)
	if driver == nil {
		return nil, apperr.NotFound(fmt.Sprintf("driver %s not found", driverID))
	}

	stats := &DriverStats{Races: len(driver.Results)}
	if stats.Races == 0 {
		return stats, nil
	}

	positionSum := 0
	best := driver.Results[0].Position
	for _, r := range driver.Results {
		positionSum += r.Position
		stats.TotalPoints += r.Points
		if r.Position < best {
			best = r.Position
		}
	}
	stats.AvgPosition = float64(positionSum) / float64(stats.Races)
	stats.AvgPoints = stats.TotalPoints / float64(stats.Races)
	stats.BestPosition = &best

	return stats, nil
}
