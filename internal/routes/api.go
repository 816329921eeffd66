package routes

import (
	"github.com/shopinger/shopinger/internal/router"
)

// RegisterAPIRoutes registers the JSON API routes.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Health
	r.Get("/health", deps.Health.Check)

	// Inventory
	r.Get("/api/inventory", deps.Inventory.List)
	r.Post("/api/inventory", deps.Inventory.Create)
	r.Get("/api/inventory/{id}", deps.Inventory.Get)
	r.Put("/api/inventory/{id}", deps.Inventory.Update)
	r.Delete("/api/inventory/{id}", deps.Inventory.Delete)
	r.Post("/api/inventory/{id}/adjust", deps.Inventory.Adjust)

	// Cart
	r.Get("/api/cart/{customerID}", deps.Cart.Get)
	r.Delete("/api/cart/{customerID}", deps.Cart.Clear)
	r.Post("/api/cart/{customerID}/items", deps.Cart.AddItem)
	r.Put("/api/cart/{customerID}/items/{productID}", deps.Cart.UpdateItem)
	r.Delete("/api/cart/{customerID}/items/{productID}", deps.Cart.RemoveItem)

	// Checkout
	r.Post("/api/checkout/cart/{customerID}", deps.Checkout.CommitCart)
	r.Post("/api/checkout/ticket", deps.Checkout.CommitTicket)

	// Receipts and sales (audit trail, read only)
	r.Get("/api/receipts", deps.Receipts.ListReceipts)
	r.Get("/api/receipts/{id}", deps.Receipts.GetReceipt)
	r.Get("/api/sales", deps.Receipts.ListSales)
	r.Get("/api/sales/{id}", deps.Receipts.GetSale)

	// Suppliers
	r.Get("/api/suppliers", deps.Suppliers.List)
	r.Post("/api/suppliers", deps.Suppliers.Create)
	r.Get("/api/suppliers/{id}", deps.Suppliers.Get)
	r.Put("/api/suppliers/{id}", deps.Suppliers.Update)
	r.Delete("/api/suppliers/{id}", deps.Suppliers.Delete)

	// Users and profiles
	r.Get("/api/users", deps.Users.ListByRole)
	r.Post("/api/users", deps.Users.Create)
	r.Get("/api/users/{id}", deps.Users.Get)
	r.Put("/api/users/{id}/profile", deps.Users.UpdateProfile)
	r.Delete("/api/users/{id}", deps.Users.Delete)

	// Deliveries
	r.Get("/api/deliveries", deps.Delivery.List)
	r.Get("/api/deliveries/{id}", deps.Delivery.Get)
	r.Post("/api/deliveries/{id}/assign", deps.Delivery.Assign)
	r.Put("/api/deliveries/{id}/status", deps.Delivery.UpdateStatus)
}
