package models

// StockSnapshot is the externally visible state of the tracked product.
type StockSnapshot struct {
	SKU              string `json:"sku" bson:"sku"`
	Stock            int64  `json:"stock" bson:"stock"`
	Reserved         int64  `json:"reserved" bson:"reserved"`
	ReorderThreshold int64  `json:"reorder_threshold" bson:"reorder_threshold"`
	MaxCapacity      int64  `json:"max_capacity" bson:"max_capacity"`
	ReorderNeeded    bool   `json:"reorder_needed" bson:"reorder_needed"`
}

// AmountRequest is the body accepted by the quantity-changing endpoints.
type AmountRequest struct {
	Amount *int64 `json:"amount" binding:"required"`
}

// ValueRequest is the body accepted by the threshold and capacity endpoints.
type ValueRequest struct {
	Value *int64 `json:"value" binding:"required"`
}
