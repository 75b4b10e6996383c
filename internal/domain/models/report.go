package models

import "time"

// StockReport is the daily stock position archived in MongoDB.
type StockReport struct {
	Date              time.Time `bson:"date" json:"date"`
	SKU               string    `bson:"sku" json:"sku"`
	Stock             int64     `bson:"stock" json:"stock"`
	Reserved          int64     `bson:"reserved" json:"reserved"`
	Total             int64     `bson:"total" json:"total"`
	ReorderThreshold  int64     `bson:"reorder_threshold" json:"reorder_threshold"`
	MaxCapacity       int64     `bson:"max_capacity" json:"max_capacity"`
	AvailableCapacity int64     `bson:"available_capacity" json:"available_capacity"`
	ReorderNeeded     bool      `bson:"reorder_needed" json:"reorder_needed"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}
