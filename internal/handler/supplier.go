package handler

import (
	"net/http"

	"github.com/shopinger/shopinger/internal/domain"
)

// SupplierHandler serves supplier CRUD endpoints.
type SupplierHandler struct {
	suppliers domain.SupplierService
}

// NewSupplierHandler creates the supplier handler.
func NewSupplierHandler(suppliers domain.SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// List handles GET /api/suppliers
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.suppliers.ListSuppliers(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, suppliers)
}

// Get handles GET /api/suppliers/{id}
func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	supplierID, err := PathInt64(r, "id")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	supplier, err := h.suppliers.GetSupplier(r.Context(), supplierID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, supplier)
}

type supplierRequest struct {
	Name         string `json:"name" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

func (req supplierRequest) params() domain.SupplierParams {
	return domain.SupplierParams{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Address:      req.Address,
	}
}

// Create handles POST /api/suppliers
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := DecodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	supplier, err := h.suppliers.CreateSupplier(r.Context(), req.params())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, supplier)
}

// Update handles PUT /api/suppliers/{id}
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	supplierID, err := PathInt64(r, "id")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	var req supplierRequest
	if err := DecodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, err)
		return
	}

	supplier, err := h.suppliers.UpdateSupplier(r.Context(), supplierID, req.params())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, supplier)
}

// Delete handles DELETE /api/suppliers/{id}
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	supplierID, err := PathInt64(r, "id")
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	if err := h.suppliers.DeleteSupplier(r.Context(), supplierID); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
