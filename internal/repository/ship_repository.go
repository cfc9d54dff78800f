package repository

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/seaward/fleetdash/internal/models"
	"github.com/seaward/fleetdash/internal/notify"
	"github.com/seaward/fleetdash/internal/policy"
	"github.com/seaward/fleetdash/internal/store"

	apperrors "github.com/seaward/fleetdash/internal/errors"
)

// imoPattern is format-only validation; IMO uniqueness across ships is
// deliberately not enforced.
var imoPattern = regexp.MustCompile(`^[0-9]{7}$`)

// CreateShipInput holds the fields for a new ship.
type CreateShipInput struct {
	Name   string
	IMO    string
	Flag   string
	Status models.ShipStatus
}

func validateShip(name, imo string, status models.ShipStatus) error {
	if name == "" {
		return apperrors.Invalid("ship name is required")
	}
	if !imoPattern.MatchString(imo) {
		return apperrors.Invalid("imo must be a 7-digit number")
	}
	if !status.Valid() {
		return apperrors.Invalid("unknown ship status")
	}
	return nil
}

// AddShip creates a new ship. Admin only.
func (r *FleetRepository) AddShip(actor *models.User, input CreateShipInput) (*models.Ship, error) {
	if !policy.CanCreate(actor) {
		return nil, apperrors.Forbidden("only admins can create ships")
	}
	if input.Status == "" {
		input.Status = models.ShipStatusActive
	}
	if err := validateShip(input.Name, input.IMO, input.Status); err != nil {
		return nil, err
	}

	ship := models.Ship{
		ID:     uuid.NewString(),
		Name:   input.Name,
		IMO:    input.IMO,
		Flag:   input.Flag,
		Status: input.Status,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.Ship, len(r.ships), len(r.ships)+1)
	copy(next, r.ships)
	next = append(next, ship)

	if err := r.store.SaveShips(next); err != nil {
		return nil, err
	}
	r.ships = next

	r.notify("Ship created successfully", notify.KindSuccess)
	return &ship, nil
}

// UpdateShip replaces the ship with ship.ID. The replace is
// identity-preserving; updating an unknown id is reported as not found
// rather than silently ignored.
func (r *FleetRepository) UpdateShip(actor *models.User, ship models.Ship) (*models.Ship, error) {
	if !policy.CanEdit(actor) {
		return nil, apperrors.Forbidden("only admins can edit ships")
	}
	if err := validateShip(ship.Name, ship.IMO, ship.Status); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.shipIndex(ship.ID)
	if i < 0 {
		return nil, apperrors.NotFound("ship not found")
	}

	next := make([]models.Ship, len(r.ships))
	copy(next, r.ships)
	next[i] = ship

	if err := r.store.SaveShips(next); err != nil {
		return nil, err
	}
	r.ships = next

	r.notify("Ship updated successfully", notify.KindSuccess)
	return &ship, nil
}

// DeleteShip removes the ship together with all its components and all jobs
// referencing it. The three collection writes commit atomically.
func (r *FleetRepository) DeleteShip(actor *models.User, id string) error {
	if !policy.CanDelete(actor) {
		return apperrors.Forbidden("only admins can delete ships")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shipIndex(id) < 0 {
		return apperrors.NotFound("ship not found")
	}

	ships := make([]models.Ship, 0, len(r.ships))
	for _, s := range r.ships {
		if s.ID != id {
			ships = append(ships, s)
		}
	}
	components := make([]models.Component, 0, len(r.components))
	for _, c := range r.components {
		if c.ShipID != id {
			components = append(components, c)
		}
	}
	jobs := make([]models.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if j.ShipID != id {
			jobs = append(jobs, j)
		}
	}

	err := r.store.Transaction(func(tx *store.Store) error {
		if err := tx.SaveComponents(components); err != nil {
			return err
		}
		if err := tx.SaveJobs(jobs); err != nil {
			return err
		}
		return tx.SaveShips(ships)
	})
	if err != nil {
		return err
	}

	r.ships = ships
	r.components = components
	r.jobs = jobs

	r.notify("Ship and associated data deleted", notify.KindSuccess)
	return nil
}
