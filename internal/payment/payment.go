// Package payment holds the payment collaborators of the booking service:
// an in-process simulator that always approves, and an HTTP client that
// asks the payment service to do the same over the network.
package payment

import (
	"context"

	"github.com/google/uuid"
)

// Payment outcomes as reported on the wire.
const (
	StatusApproved = "APPROVED"
	StatusDeclined = "DECLINED"
)

// Request describes the charge for one reservation.
type Request struct {
	ReservationID string `json:"reservationId"`
	RoomID        string `json:"roomId,omitempty"`
	UserID        string `json:"userId,omitempty"`
	AmountCents   int64  `json:"amountCents"`
}

// Result is the gateway's answer.  Reference is opaque and may be empty.
type Result struct {
	Status    string `json:"paymentStatus"`
	Reference string `json:"reference,omitempty"`
}

// Approved reports whether the payment went through.
func (r Result) Approved() bool { return r.Status == StatusApproved }

// Simulator approves every request.  It stands in for a real payment
// provider both inside the booking service and behind the payment
// service's HTTP endpoint.
type Simulator struct{}

// NewSimulator returns a Simulator.
func NewSimulator() *Simulator { return &Simulator{} }

// Authorize always approves and returns a fresh reference.
func (s *Simulator) Authorize(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{Status: StatusApproved, Reference: "sim-" + uuid.NewString()}, nil
}
