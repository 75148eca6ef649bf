package entity

import "time"

// Vendor proveedor. UniqueID es único y obligatorio.
type Vendor struct {
	ID           string
	UniqueID     string
	CompanyName  string
	SupplierName string
	ContactNo    string
	Address      string
	Remarks      string
	Status       string
	CreatedBy    string
	UpdatedBy    string
	DeletedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
