package dto

import "time"

// CreateVendorRequest entrada para crear un proveedor.
type CreateVendorRequest struct {
	UniqueID     string `json:"unique_id" validate:"required,max=100"`
	CompanyName  string `json:"company_name" validate:"max=200"`
	SupplierName string `json:"supplier_name" validate:"max=200"`
	ContactNo    string `json:"contact_no" validate:"max=50"`
	Address      string `json:"address" validate:"max=500"`
	Remarks      string `json:"remarks"`
	Status       string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// UpdateVendorRequest campos opcionales a actualizar.
type UpdateVendorRequest struct {
	CompanyName  *string `json:"company_name" validate:"omitempty,max=200"`
	SupplierName *string `json:"supplier_name" validate:"omitempty,max=200"`
	ContactNo    *string `json:"contact_no" validate:"omitempty,max=50"`
	Address      *string `json:"address" validate:"omitempty,max=500"`
	Remarks      *string `json:"remarks"`
	Status       *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// VendorResponse salida de un proveedor.
type VendorResponse struct {
	ID           string    `json:"id"`
	UniqueID     string    `json:"unique_id"`
	CompanyName  string    `json:"company_name"`
	SupplierName string    `json:"supplier_name"`
	ContactNo    string    `json:"contact_no"`
	Address      string    `json:"address"`
	Remarks      string    `json:"remarks"`
	Status       string    `json:"status"`
	CreatedBy    string    `json:"created_by,omitempty"`
	UpdatedBy    string    `json:"updated_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VendorListResponse lista paginada de proveedores.
type VendorListResponse struct {
	Items []VendorResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
