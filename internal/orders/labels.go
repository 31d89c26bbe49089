package orders

// Human labels shared by the bot screens and the back-office templates.

func (s Status) Human() string {
	switch s {
	case StatusNew:
		return "🆕 Новая"
	case StatusInWork:
		return "⏳ В работе"
	case StatusDone:
		return "✅ Завершена"
	case StatusCanceled:
		return "❌ Отменена"
	}
	return string(s)
}

func (s Status) Icon() string {
	switch s {
	case StatusNew:
		return "🆕"
	case StatusInWork:
		return "⏳"
	case StatusDone:
		return "✅"
	case StatusCanceled:
		return "❌"
	}
	return "•"
}

func (d DeliveryType) Human() string {
	if d == DeliveryCourier {
		return "🚚 Доставка"
	}
	return "🏬 Самовывоз"
}

func (p PaymentType) Human() string {
	switch p {
	case PaymentTransfer:
		return "🏦 Перевод"
	case PaymentCard:
		return "💳 Карта"
	default:
		return "💵 Наличные"
	}
}
