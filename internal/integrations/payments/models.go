package payments

// Payment состояние payment intent
type Payment struct {
	IntentID string
	Status   string
	Amount   int64
	Currency string
}

// IsPaid возвращает true, если оплата прошла
func (p *Payment) IsPaid() bool {
	return p.Status == statusSucceeded
}
