package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/payment"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/service"
	"github.com/iliyamo/room-reservation/internal/utils"
)

type gatewayFunc func(context.Context, payment.Request) (payment.Result, error)

func (f gatewayFunc) Authorize(ctx context.Context, req payment.Request) (payment.Result, error) {
	return f(ctx, req)
}

type brokenStore struct {
	repository.ReservationStore
}

func (brokenStore) Save(context.Context, model.Reservation) (model.Reservation, error) {
	return model.Reservation{}, errors.New("disk on fire")
}

func (brokenStore) FindByID(context.Context, string) (model.Reservation, bool, error) {
	return model.Reservation{}, false, errors.New("disk on fire")
}

func (brokenStore) FindAll(context.Context) ([]model.Reservation, error) {
	return nil, errors.New("disk on fire")
}

func bookingEcho(store repository.ReservationStore, gw service.PaymentGateway) *echo.Echo {
	return bookingEchoWithLog(store, gw, zerolog.Nop())
}

func bookingEchoWithLog(store repository.ReservationStore, gw service.PaymentGateway, log zerolog.Logger) *echo.Echo {
	h := NewBookingHandler(service.NewBookingService(store, gw, nil, zerolog.Nop()), log)
	e := echo.New()
	e.POST("/api/bookings", h.Create)
	e.GET("/api/bookings", h.List)
	e.GET("/api/bookings/:id", h.Get)
	return e
}

func serve(e *echo.Echo, method, path, body string, hdr http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range hdr {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeReservation(t *testing.T, raw []byte) model.Reservation {
	t.Helper()
	var res model.Reservation
	require.NoError(t, json.Unmarshal(raw, &res))
	return res
}

func TestBooking_CreateThenGet(t *testing.T) {
	e := bookingEcho(repository.NewMemoryReservationRepo(), payment.NewSimulator())

	rec := serve(e, http.MethodPost, "/api/bookings", `{"roomId":"room-7","userId":"user-3"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeReservation(t, rec.Body.Bytes())
	assert.Equal(t, "room-7", created.RoomID())
	assert.Equal(t, "user-3", created.UserID())
	assert.Equal(t, model.StatusConfirmed, created.Status())

	var wire map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wire))
	for _, k := range []string{"id", "roomId", "userId", "createdAt", "status"} {
		assert.Contains(t, wire, k)
	}

	rec = serve(e, http.MethodGet, "/api/bookings/"+created.ID(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decodeReservation(t, rec.Body.Bytes()))
}

func TestBooking_CreateDefaults(t *testing.T) {
	e := bookingEcho(repository.NewMemoryReservationRepo(), payment.NewSimulator())

	for _, body := range []string{"", `{}`, `{"roomId":"  "}`} {
		rec := serve(e, http.MethodPost, "/api/bookings", body, nil)
		require.Equal(t, http.StatusOK, rec.Code, body)
		res := decodeReservation(t, rec.Body.Bytes())
		assert.Equal(t, DefaultRoomID, res.RoomID())
		assert.Equal(t, DefaultUserID, res.UserID())
	}
}

func TestBooking_CreateMalformedBody(t *testing.T) {
	e := bookingEcho(repository.NewMemoryReservationRepo(), payment.NewSimulator())
	rec := serve(e, http.MethodPost, "/api/bookings", `{"roomId":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid request body"}`, rec.Body.String())
}

func TestBooking_CreateDeclined(t *testing.T) {
	store := repository.NewMemoryReservationRepo()
	gw := gatewayFunc(func(context.Context, payment.Request) (payment.Result, error) {
		return payment.Result{Status: payment.StatusDeclined}, nil
	})
	e := bookingEcho(store, gw)

	rec := serve(e, http.MethodPost, "/api/bookings", `{}`, nil)
	require.Equal(t, http.StatusPaymentRequired, rec.Code)

	var body struct {
		Error       string            `json:"error"`
		Reservation model.Reservation `json:"reservation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "payment declined", body.Error)
	assert.Equal(t, model.StatusPendingPayment, body.Reservation.Status())
	assert.Equal(t, 1, store.Len())
}

func TestBooking_CreateGatewayDown(t *testing.T) {
	gw := gatewayFunc(func(context.Context, payment.Request) (payment.Result, error) {
		return payment.Result{}, errors.New("connection refused")
	})
	e := bookingEcho(repository.NewMemoryReservationRepo(), gw)

	rec := serve(e, http.MethodPost, "/api/bookings", `{}`, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestBooking_StoreFailures(t *testing.T) {
	e := bookingEcho(brokenStore{}, payment.NewSimulator())

	assert.Equal(t, http.StatusInternalServerError, serve(e, http.MethodPost, "/api/bookings", `{}`, nil).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(e, http.MethodGet, "/api/bookings/x", "", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(e, http.MethodGet, "/api/bookings", "", nil).Code)
}

func TestBooking_StoreFailuresAreLogged(t *testing.T) {
	var buf bytes.Buffer
	e := bookingEchoWithLog(brokenStore{}, payment.NewSimulator(), zerolog.New(&buf))

	serve(e, http.MethodGet, "/api/bookings/res-9", "", nil)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "res-9", entry["reservation_id"])
	assert.Equal(t, "disk on fire", entry["error"])
}

func TestBooking_CreateRejectsOverlongIDs(t *testing.T) {
	calls := 0
	gw := gatewayFunc(func(context.Context, payment.Request) (payment.Result, error) {
		calls++
		return payment.Result{Status: payment.StatusApproved}, nil
	})
	store := repository.NewMemoryReservationRepo()
	e := bookingEcho(store, gw)

	longest := strings.Repeat("r", model.MaxRefLength)
	tooLong := longest + "r"
	for _, body := range []string{
		`{"roomId":"` + tooLong + `"}`,
		`{"userId":"` + tooLong + `"}`,
	} {
		rec := serve(e, http.MethodPost, "/api/bookings", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	assert.Zero(t, calls)
	assert.Zero(t, store.Len())

	// the limit counts characters, not bytes
	multiByte := strings.Repeat("é", model.MaxRefLength)
	rec := serve(e, http.MethodPost, "/api/bookings", `{"roomId":"`+longest+`","userId":"`+multiByte+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeReservation(t, rec.Body.Bytes())
	assert.Equal(t, longest, res.RoomID())
	assert.Equal(t, multiByte, res.UserID())
}

func TestBooking_GetUnknownIs404WithEmptyBody(t *testing.T) {
	e := bookingEcho(repository.NewMemoryReservationRepo(), payment.NewSimulator())
	rec := serve(e, http.MethodGet, "/api/bookings/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBooking_List(t *testing.T) {
	e := bookingEcho(repository.NewMemoryReservationRepo(), payment.NewSimulator())

	rec := serve(e, http.MethodGet, "/api/bookings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	serve(e, http.MethodPost, "/api/bookings", `{}`, nil)
	serve(e, http.MethodPost, "/api/bookings", `{}`, nil)

	rec = serve(e, http.MethodGet, "/api/bookings", "", nil)
	var all []model.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func authEcho(t *testing.T) (*echo.Echo, config.Config) {
	t.Helper()
	cfg := config.Config{
		JWTSecret:    "test-secret",
		AccessTTLMin: 5,
		BcryptCost:   4,
		DemoUser:     "user-1",
		DemoPassword: "password",
		DemoRole:     "USER",
	}
	h, err := NewAuthHandler(cfg)
	require.NoError(t, err)
	e := echo.New()
	e.GET("/api/auth/me", h.Me)
	e.POST("/api/auth/login", h.Login)
	return e, cfg
}

func TestAuth_MeAnonymous(t *testing.T) {
	e, _ := authEcho(t)
	rec := serve(e, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":"user-1","role":"USER"}`, rec.Body.String())
}

func TestAuth_MeWithToken(t *testing.T) {
	e, cfg := authEcho(t)
	tok, err := utils.NewAccessToken(cfg.JWTSecret, "user-42", "ADMIN", 5)
	require.NoError(t, err)

	rec := serve(e, http.MethodGet, "/api/auth/me", "", http.Header{"Authorization": {"Bearer " + tok.Token}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":"user-42","role":"ADMIN"}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/api/auth/me", "", http.Header{"Authorization": {"Bearer garbage"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_Login(t *testing.T) {
	e, cfg := authEcho(t)

	rec := serve(e, http.MethodPost, "/api/auth/login", `{"username":"user-1","password":"password"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp loginResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp.TokenType)

	claims, err := utils.ParseAccessToken(cfg.JWTSecret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "USER", claims.Role)

	rec = serve(e, http.MethodPost, "/api/auth/login", `{"username":"user-1","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, http.MethodPost, "/api/auth/login", `{"username":"someone","password":"password"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, http.MethodPost, "/api/auth/login", `{"username":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventory_ListRooms(t *testing.T) {
	e := echo.New()
	e.GET("/api/rooms", NewInventoryHandler().ListRooms)

	rec := serve(e, http.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"roomId":"room-1","available":true},{"roomId":"room-2","available":true}]`, rec.Body.String())
}

func TestPayment_Simulate(t *testing.T) {
	e := echo.New()
	e.POST("/api/payments/simulate", NewPaymentHandler(nil).Simulate)

	rec := serve(e, http.MethodPost, "/api/payments/simulate", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "APPROVED", got["paymentStatus"])
	assert.NotContains(t, got, "reservationId")

	rec = serve(e, http.MethodPost, "/api/payments/simulate", `{"reservationId":"r-1","amountCents":500}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got = map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "APPROVED", got["paymentStatus"])
	assert.Equal(t, "r-1", got["reservationId"])
}

func TestPlainTextEndpoints(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", Health)
	e.GET("/", GatewayRoot)
	e.GET("/api/notifications/ping", NotificationPing)

	assert.Equal(t, "ok", serve(e, http.MethodGet, "/healthz", "", nil).Body.String())
	assert.Equal(t, "api-gateway-ok", serve(e, http.MethodGet, "/", "", nil).Body.String())
	assert.Equal(t, "notification-service-ok", serve(e, http.MethodGet, "/api/notifications/ping", "", nil).Body.String())
}

func TestBooking_RemotePaymentService(t *testing.T) {
	pay := echo.New()
	pay.POST("/api/payments/simulate", NewPaymentHandler(nil).Simulate)
	srv := httptest.NewServer(pay)
	defer srv.Close()

	e := bookingEcho(repository.NewMemoryReservationRepo(), payment.NewHTTPClient(srv.URL, time.Second))
	rec := serve(e, http.MethodPost, "/api/bookings", `{"roomId":"room-2"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatusConfirmed, decodeReservation(t, rec.Body.Bytes()).Status())
}
