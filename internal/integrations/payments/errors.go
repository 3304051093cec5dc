package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда payment intent не найден в stripe
	ErrPaymentNotFound = errors.New("payments: payment intent not found")

	// ErrProvider возвращается при ошибке обращения к stripe
	ErrProvider = errors.New("payments: provider error")
)
