package service

import "errors"

var (
	// ErrPaymentDeclined means the gateway refused the charge.  The
	// reservation is still stored, in PENDING_PAYMENT.
	ErrPaymentDeclined = errors.New("payment declined")
	// ErrPaymentUnavailable means the gateway could not be asked.  The
	// reservation is still stored, in PENDING_PAYMENT.
	ErrPaymentUnavailable = errors.New("payment gateway unavailable")
)
