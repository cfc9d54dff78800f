package models

// Component is a maintainable part installed on exactly one ship. ShipID is
// immutable once the component is created; deleting the owning ship deletes
// the component.
type Component struct {
	ID                  string `json:"id"`
	ShipID              string `json:"shipId"`
	Name                string `json:"name"`
	SerialNumber        string `json:"serialNumber"`
	InstallDate         string `json:"installDate"`
	LastMaintenanceDate string `json:"lastMaintenanceDate,omitempty"`
}
