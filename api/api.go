package api

import "errors"

const OrderWorkflowName = "Order"
const DefaultTaskQueue = "restaurant"

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrUnknownMenuItem = errors.New("unknown menu item")
	ErrUnknownCategory = errors.New("unknown category")
)

type OrderWorkflowInput struct {
	MenuIDs []int
}

type OrderWorkflowResult struct {
	PreparationTime int
}

func OrderWorkflowID(id string) string {
	return "order:" + id
}
