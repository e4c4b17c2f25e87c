package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/service"
)

// Placeholders used when a create request omits roomId or userId.
const (
	DefaultRoomID = "room-1"
	DefaultUserID = "user-1"
)

// BookingHandler exposes the booking service over HTTP.
type BookingHandler struct {
	Svc *service.BookingService
	Log zerolog.Logger
}

// NewBookingHandler constructs a BookingHandler.  svc must be non-nil.
func NewBookingHandler(svc *service.BookingService, log zerolog.Logger) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc, Log: log}
}

type createBookingRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// Create handles POST /api/bookings.  Missing or blank roomId/userId fall
// back to DefaultRoomID/DefaultUserID; ids longer than model.MaxRefLength
// characters are rejected with 400 before any payment is attempted.  A
// confirmed reservation is returned with 200.  A declined payment returns
// 402 and a payment gateway failure 502; both include the stored
// PENDING_PAYMENT reservation.
func (h *BookingHandler) Create(c echo.Context) error {
	var body createBookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	roomID := strings.TrimSpace(body.RoomID)
	if roomID == "" {
		roomID = DefaultRoomID
	}
	userID := strings.TrimSpace(body.UserID)
	if userID == "" {
		userID = DefaultUserID
	}
	if utf8.RuneCountInString(roomID) > model.MaxRefLength || utf8.RuneCountInString(userID) > model.MaxRefLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId/userId too long"})
	}

	res, err := h.Svc.Create(c.Request().Context(), roomID, userID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, res)
	case errors.Is(err, service.ErrPaymentDeclined):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "payment declined", "reservation": res})
	case errors.Is(err, service.ErrPaymentUnavailable):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment service unavailable", "reservation": res})
	default:
		h.Log.Error().Err(err).Str("room_id", roomID).Str("user_id", userID).Msg("create reservation failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
}

// Get handles GET /api/bookings/:id.  An unknown id yields 404 with an
// empty body.
func (h *BookingHandler) Get(c echo.Context) error {
	res, ok, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error().Err(err).Str("reservation_id", c.Param("id")).Msg("get reservation failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, res)
}

// List handles GET /api/bookings.
func (h *BookingHandler) List(c echo.Context) error {
	all, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list reservations failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, all)
}
