package orders

import "time"

type Order struct {
	ID           int64
	UserID       int64
	ProductID    *int64 // nil once the product is removed from the catalog
	Status       Status
	CustomerName string
	Phone        string
	Delivery     DeliveryType
	Address      string // empty for pickup
	Payment      PaymentType
	Comment      string
	NeedDate     time.Time
	CreatedAt    time.Time
}

// Detail is an order joined with what the views render next to it.
// ProductTitle is empty when the product no longer exists.
type Detail struct {
	Order
	ProductTitle string
	ProductPrice int64
	UserTgID     int64
	Username     string
}
