package domain

import "errors"

var (
	MessageSuccessEmailShoppingList = "shopping list sent"
	MessageFailedShoppingList       = "failed to build shopping list"
	MessageFailedEmailShoppingList  = "failed to send shopping list"

	ErrAssetMissing = errors.New("static asset missing")
)

// ShoppingItem is one aggregated line of the shopping list: amounts are
// summed per (name, unit) across every recipe in the cart.
type ShoppingItem struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Total int    `json:"total"`
}
