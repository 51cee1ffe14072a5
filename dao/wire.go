package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewRoles,
	NewProduct,
	NewCategory,
	NewCart,
	NewOrder,
	NewImage,
)
