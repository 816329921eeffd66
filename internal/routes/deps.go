package routes

import (
	"github.com/shopinger/shopinger/internal/handler"
)

// APIDeps contains the handlers for the JSON API surface.
type APIDeps struct {
	Inventory *handler.InventoryHandler
	Cart      *handler.CartHandler
	Checkout  *handler.CheckoutHandler
	Receipts  *handler.ReceiptHandler
	Suppliers *handler.SupplierHandler
	Users     *handler.UserHandler
	Delivery  *handler.DeliveryHandler
	Health    *handler.HealthHandler
}
