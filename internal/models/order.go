package models

import "time"

// Order represents a customer order. Identifiers are never client-supplied:
// a staging identifier is minted from the cache counter when the order is
// staged, and the relational store assigns a fresh one at migration time.
type Order struct {
	OrderID              int64       `json:"order_id" gorm:"column:OrderId;primaryKey;autoIncrement"`
	OrderDateTime        time.Time   `json:"order_date_time" gorm:"column:OrderDateTime" validate:"required"`
	BuyPersonName        string      `json:"buy_person_name" gorm:"column:BuyPersonName;type:varchar(250)" validate:"required,max=250"`
	BuyPersonPhoneNumber string      `json:"buy_person_phone_number" gorm:"column:BuyPersonPhoneNumber;type:varchar(50)" validate:"required,max=50"`
	Items                []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;references:OrderID"`
}

// TableName keeps the table name aligned with the existing schema.
func (Order) TableName() string { return "Order" }

// OrderItem represents a single line item within an order. It always
// references the order it was staged with.
type OrderItem struct {
	OrderItemID int64  `json:"order_item_id" gorm:"column:OrderItemId;primaryKey;autoIncrement"`
	OrderID     int64  `json:"order_id" gorm:"column:OrderId"`
	ItemName    string `json:"item_name" gorm:"column:ItemName;type:varchar(250)" validate:"required,max=250"`
}

func (OrderItem) TableName() string { return "OrderItem" }
