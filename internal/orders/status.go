package orders

type Status string

const (
	StatusNew      Status = "new"
	StatusInWork   Status = "in_work"
	StatusDone     Status = "done"
	StatusCanceled Status = "canceled"
)

// AllStatuses in the order the back office shows them.
var AllStatuses = []Status{StatusNew, StatusInWork, StatusDone, StatusCanceled}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNew, StatusInWork, StatusDone, StatusCanceled:
		return Status(s), true
	}
	return "", false
}

// UserCanCancel reports whether the submitting customer may still cancel.
// Operators are not bound by this: they may set any status at any time.
func (s Status) UserCanCancel() bool {
	return s == StatusNew
}

type DeliveryType string

const (
	DeliveryPickup  DeliveryType = "pickup"
	DeliveryCourier DeliveryType = "courier"
)

func ParseDelivery(s string) (DeliveryType, bool) {
	switch DeliveryType(s) {
	case DeliveryPickup, DeliveryCourier:
		return DeliveryType(s), true
	}
	return "", false
}

type PaymentType string

const (
	PaymentCash     PaymentType = "cash"
	PaymentTransfer PaymentType = "transfer"
	PaymentCard     PaymentType = "card"
)

func ParsePayment(s string) (PaymentType, bool) {
	switch PaymentType(s) {
	case PaymentCash, PaymentTransfer, PaymentCard:
		return PaymentType(s), true
	}
	return "", false
}
