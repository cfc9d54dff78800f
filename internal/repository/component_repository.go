package repository

import (
	"github.com/google/uuid"

	"github.com/seaward/fleetdash/internal/models"
	"github.com/seaward/fleetdash/internal/notify"
	"github.com/seaward/fleetdash/internal/policy"
	"github.com/seaward/fleetdash/internal/store"

	apperrors "github.com/seaward/fleetdash/internal/errors"
)

// CreateComponentInput holds the fields for a new component.
type CreateComponentInput struct {
	ShipID              string
	Name                string
	SerialNumber        string
	InstallDate         string
	LastMaintenanceDate string
}

func validateComponent(name, serialNumber, installDate string) error {
	if name == "" {
		return apperrors.Invalid("component name is required")
	}
	if serialNumber == "" {
		return apperrors.Invalid("serial number is required")
	}
	if installDate == "" {
		return apperrors.Invalid("install date is required")
	}
	return nil
}

// AddComponent creates a new component on an existing ship. Admin only.
func (r *FleetRepository) AddComponent(actor *models.User, input CreateComponentInput) (*models.Component, error) {
	if !policy.CanCreate(actor) {
		return nil, apperrors.Forbidden("only admins can create components")
	}
	if err := validateComponent(input.Name, input.SerialNumber, input.InstallDate); err != nil {
		return nil, err
	}

	component := models.Component{
		ID:                  uuid.NewString(),
		ShipID:              input.ShipID,
		Name:                input.Name,
		SerialNumber:        input.SerialNumber,
		InstallDate:         input.InstallDate,
		LastMaintenanceDate: input.LastMaintenanceDate,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shipIndex(input.ShipID) < 0 {
		return nil, apperrors.Invalid("shipId references an unknown ship")
	}

	next := make([]models.Component, len(r.components), len(r.components)+1)
	copy(next, r.components)
	next = append(next, component)

	if err := r.store.SaveComponents(next); err != nil {
		return nil, err
	}
	r.components = next

	r.notify("Component added successfully", notify.KindSuccess)
	return &component, nil
}

// UpdateComponent replaces the component with component.ID. The owning ship
// is fixed at creation; a changed ShipID is rejected.
func (r *FleetRepository) UpdateComponent(actor *models.User, component models.Component) (*models.Component, error) {
	if !policy.CanEdit(actor) {
		return nil, apperrors.Forbidden("only admins can edit components")
	}
	if err := validateComponent(component.Name, component.SerialNumber, component.InstallDate); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.componentIndex(component.ID)
	if i < 0 {
		return nil, apperrors.NotFound("component not found")
	}
	if component.ShipID != r.components[i].ShipID {
		return nil, apperrors.Invalid("a component cannot move to another ship")
	}

	next := make([]models.Component, len(r.components))
	copy(next, r.components)
	next[i] = component

	if err := r.store.SaveComponents(next); err != nil {
		return nil, err
	}
	r.components = next

	r.notify("Component updated successfully", notify.KindSuccess)
	return &component, nil
}

// DeleteComponent removes the component and every job referencing it, in one
// atomic write.
func (r *FleetRepository) DeleteComponent(actor *models.User, id string) error {
	if !policy.CanDelete(actor) {
		return apperrors.Forbidden("only admins can delete components")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.componentIndex(id) < 0 {
		return apperrors.NotFound("component not found")
	}

	components := make([]models.Component, 0, len(r.components))
	for _, c := range r.components {
		if c.ID != id {
			components = append(components, c)
		}
	}
	jobs := make([]models.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if j.ComponentID != id {
			jobs = append(jobs, j)
		}
	}

	err := r.store.Transaction(func(tx *store.Store) error {
		if err := tx.SaveJobs(jobs); err != nil {
			return err
		}
		return tx.SaveComponents(components)
	})
	if err != nil {
		return err
	}

	r.components = components
	r.jobs = jobs

	r.notify("Component and associated jobs deleted", notify.KindSuccess)
	return nil
}
