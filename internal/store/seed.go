package store

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"

	"github.com/seaward/fleetdash/internal/models"
)

var seedUsers = []models.User{
	{ID: "1", Role: models.RoleAdmin, Email: "admin@entnt.in", Password: "admin123"},
	{ID: "2", Role: models.RoleInspector, Email: "inspector@entnt.in", Password: "inspect123"},
	{ID: "3", Role: models.RoleEngineer, Email: "engineer@entnt.in", Password: "engine123"},
	{ID: "4", Role: models.RoleEngineer, Email: "engineer2@entnt.in", Password: "engine123"},
}

var seedShips = []models.Ship{
	{ID: "s1", Name: "Ever Given", IMO: "9811000", Flag: "Panama", Status: models.ShipStatusActive},
	{ID: "s2", Name: "Maersk Alabama", IMO: "9164263", Flag: "USA", Status: models.ShipStatusUnderMaintenance},
	{ID: "s3", Name: "Cosco Shipping Aries", IMO: "9783497", Flag: "Hong Kong", Status: models.ShipStatusActive},
}

var seedComponents = []models.Component{
	{ID: "c1", ShipID: "s1", Name: "Main Engine", SerialNumber: "ME-1234", InstallDate: "2020-01-10", LastMaintenanceDate: "2024-03-12"},
	{ID: "c2", ShipID: "s2", Name: "Radar", SerialNumber: "RAD-5678", InstallDate: "2021-07-18", LastMaintenanceDate: "2023-12-01"},
	{ID: "c3", ShipID: "s1", Name: "Generator A", SerialNumber: "GEN-A-001", InstallDate: "2020-01-10", LastMaintenanceDate: "2024-01-15"},
	{ID: "c4", ShipID: "s3", Name: "Navigation System", SerialNumber: "NAV-SYS-007", InstallDate: "2022-05-20", LastMaintenanceDate: "2024-02-20"},
}

var seedJobs = []models.Job{
	{
		ID:                 "j1",
		ComponentID:        "c1",
		ShipID:             "s1",
		Type:               models.JobTypeInspection,
		Priority:           models.JobPriorityHigh,
		Status:             models.JobStatusOpen,
		AssignedEngineerID: "3",
		ScheduledDate:      "2025-05-05",
		Description:        "Routine inspection of Main Engine.",
	},
	{
		ID:                 "j2",
		ComponentID:        "c2",
		ShipID:             "s2",
		Type:               models.JobTypeRepair,
		Priority:           models.JobPriorityMedium,
		Status:             models.JobStatusInProgress,
		AssignedEngineerID: "4",
		ScheduledDate:      "2024-07-15",
		Description:        "Repair faulty radar sensor.",
	},
	{
		ID:                 "j3",
		ComponentID:        "c3",
		ShipID:             "s1",
		Type:               models.JobTypeScheduledMaintenance,
		Priority:           models.JobPriorityLow,
		Status:             models.JobStatusCompleted,
		AssignedEngineerID: "3",
		ScheduledDate:      "2024-01-15",
		CompletionDate:     "2024-01-18",
		Description:        "Generator A annual service.",
	},
	{
		ID:            "j4",
		ComponentID:   "c4",
		ShipID:        "s3",
		Type:          models.JobTypeInspection,
		Priority:      models.JobPriorityHigh,
		Status:        models.JobStatusOpen,
		ScheduledDate: "2024-08-01",
		Description:   "Navigation system checkup.",
	},
}

// seed inserts the built-in dataset for any collection key that does not
// exist yet. Existing data is never overwritten; the session slot is never
// seeded.
func (s *Store) seed() error {
	collections := []struct {
		key  string
		data any
	}{
		{KeyUsers, seedUsers},
		{KeyShips, seedShips},
		{KeyComponents, seedComponents},
		{KeyJobs, seedJobs},
	}

	for _, c := range collections {
		value, err := json.Marshal(c.data)
		if err != nil {
			return &StorageError{Op: "encode", Key: c.key, Err: err}
		}
		err = s.db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entry{Key: c.key, Value: datatypes.JSON(value)}).Error
		if err != nil {
			return &StorageError{Op: "seed", Key: c.key, Err: err}
		}
	}
	return nil
}
