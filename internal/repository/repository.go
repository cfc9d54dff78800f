// Package repository implements CRUD with cascading deletes and referential
// integrity over the persistent store. Every mutating method takes the
// acting user and re-checks the authorization policy itself, so a
// misbehaving caller cannot bypass it; denials come back as typed forbidden
// errors. The repository keeps a write-through in-memory mirror of the four
// collections: state is only updated after the store accepts the write, so a
// storage failure leaves the mirror unchanged.
package repository

import (
	"fmt"
	"sync"

	"github.com/seaward/fleetdash/internal/models"
	"github.com/seaward/fleetdash/internal/notify"
	"github.com/seaward/fleetdash/internal/store"

	apperrors "github.com/seaward/fleetdash/internal/errors"
)

// FleetRepository manages ships, components and jobs.
type FleetRepository struct {
	mu       sync.RWMutex
	store    *store.Store
	notifier notify.Notifier

	users      []models.User
	ships      []models.Ship
	components []models.Component
	jobs       []models.Job
}

// New loads all collections from the store into the in-memory mirror.
func New(st *store.Store, notifier notify.Notifier) (*FleetRepository, error) {
	r := &FleetRepository{store: st, notifier: notifier}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads every collection from the store, discarding the mirror.
// Another process writing the same database is not observed until this is
// called (last writer wins, no conflict detection).
func (r *FleetRepository) Reload() error {
	users, err := r.store.Users()
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	ships, err := r.store.Ships()
	if err != nil {
		return fmt.Errorf("failed to load ships: %w", err)
	}
	components, err := r.store.Components()
	if err != nil {
		return fmt.Errorf("failed to load components: %w", err)
	}
	jobs, err := r.store.Jobs()
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = users
	r.ships = ships
	r.components = components
	r.jobs = jobs
	return nil
}

func (r *FleetRepository) notify(message string, kind notify.Kind) {
	if r.notifier != nil {
		r.notifier.Notify(message, kind)
	}
}

// ---- lookup helpers (callers hold r.mu) ----

func (r *FleetRepository) shipIndex(id string) int {
	for i := range r.ships {
		if r.ships[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *FleetRepository) componentIndex(id string) int {
	for i := range r.components {
		if r.components[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *FleetRepository) jobIndex(id string) int {
	for i := range r.jobs {
		if r.jobs[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *FleetRepository) userByID(id string) *models.User {
	for i := range r.users {
		if r.users[i].ID == id {
			return &r.users[i]
		}
	}
	return nil
}

// ---- read views ----

// Ships returns a snapshot of all ships.
func (r *FleetRepository) Ships() []models.Ship {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Ship, len(r.ships))
	copy(out, r.ships)
	return out
}

// ShipByID returns the ship with the given id.
func (r *FleetRepository) ShipByID(id string) (*models.Ship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.shipIndex(id)
	if i < 0 {
		return nil, apperrors.NotFound("ship not found")
	}
	ship := r.ships[i]
	return &ship, nil
}

// Components returns a snapshot of all components.
func (r *FleetRepository) Components() []models.Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Component, len(r.components))
	copy(out, r.components)
	return out
}

// ComponentByID returns the component with the given id.
func (r *FleetRepository) ComponentByID(id string) (*models.Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.componentIndex(id)
	if i < 0 {
		return nil, apperrors.NotFound("component not found")
	}
	component := r.components[i]
	return &component, nil
}

// Jobs returns a snapshot of all jobs.
func (r *FleetRepository) Jobs() []models.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// JobByID returns the job with the given id.
func (r *FleetRepository) JobByID(id string) (*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.jobIndex(id)
	if i < 0 {
		return nil, apperrors.NotFound("job not found")
	}
	job := r.jobs[i]
	return &job, nil
}

// ComponentsByShip returns the components installed on the given ship.
func (r *FleetRepository) ComponentsByShip(shipID string) []models.Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Component
	for _, c := range r.components {
		if c.ShipID == shipID {
			out = append(out, c)
		}
	}
	return out
}

// JobsByShip returns the jobs recorded against the given ship.
func (r *FleetRepository) JobsByShip(shipID string) []models.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Job
	for _, j := range r.jobs {
		if j.ShipID == shipID {
			out = append(out, j)
		}
	}
	return out
}

// JobsByComponent returns the jobs recorded against the given component.
func (r *FleetRepository) JobsByComponent(componentID string) []models.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Job
	for _, j := range r.jobs {
		if j.ComponentID == componentID {
			out = append(out, j)
		}
	}
	return out
}

// Engineers returns the users with role Engineer, for assignment pickers.
func (r *FleetRepository) Engineers() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.User
	for _, u := range r.users {
		if u.Role == models.RoleEngineer {
			out = append(out, u.WithoutPassword())
		}
	}
	return out
}
