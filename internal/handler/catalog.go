package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/payment"
)

// DefaultRooms is the fixed inventory served by the inventory service.
func DefaultRooms() []model.Room {
	return []model.Room{
		{RoomID: "room-1", Available: true},
		{RoomID: "room-2", Available: true},
	}
}

// InventoryHandler serves a static room list.
type InventoryHandler struct {
	Rooms []model.Room
}

// NewInventoryHandler uses DefaultRooms when rooms is empty.
func NewInventoryHandler(rooms ...model.Room) *InventoryHandler {
	if len(rooms) == 0 {
		rooms = DefaultRooms()
	}
	return &InventoryHandler{Rooms: rooms}
}

// ListRooms handles GET /api/rooms.
func (h *InventoryHandler) ListRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Rooms)
}

// PaymentHandler exposes the payment simulator over HTTP.
type PaymentHandler struct {
	Sim *payment.Simulator
}

func NewPaymentHandler(sim *payment.Simulator) *PaymentHandler {
	if sim == nil {
		sim = payment.NewSimulator()
	}
	return &PaymentHandler{Sim: sim}
}

type simulateResp struct {
	payment.Result
	ReservationID string `json:"reservationId,omitempty"`
}

// Simulate handles POST /api/payments/simulate.  The body is optional; when
// present its reservationId is echoed back.
func (h *PaymentHandler) Simulate(c echo.Context) error {
	var req payment.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Sim.Authorize(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "payment unavailable"})
	}
	return c.JSON(http.StatusOK, simulateResp{Result: res, ReservationID: req.ReservationID})
}
