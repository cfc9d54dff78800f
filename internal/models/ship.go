package models

type ShipStatus string

const (
	ShipStatusActive           ShipStatus = "Active"
	ShipStatusUnderMaintenance ShipStatus = "Under Maintenance"
	ShipStatusInactive         ShipStatus = "Inactive"
)

// Ship is the root of the ownership hierarchy: it owns zero or more
// components and is referenced directly by jobs via ShipID.
type Ship struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	IMO    string     `json:"imo"`
	Flag   string     `json:"flag"`
	Status ShipStatus `json:"status"`
}

func (s ShipStatus) Valid() bool {
	switch s {
	case ShipStatusActive, ShipStatusUnderMaintenance, ShipStatusInactive:
		return true
	}
	return false
}
