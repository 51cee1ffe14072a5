package server

import (
	"Storefront/handler"
)

type Handlers struct {
	Auth       *handler.Auth
	Store      *handler.Store
	Cart       *handler.Cart
	Checkout   *handler.Checkout
	Order      *handler.Order
	AdminOrder *handler.AdminOrder
	Report     *handler.Report
	Category   *handler.Category
	Product    *handler.ProductHandler
	User       *handler.User
}
