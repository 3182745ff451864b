package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/casaluna/reservations/internal/api/dto"
	"github.com/casaluna/reservations/internal/api/respond"
	"github.com/casaluna/reservations/internal/config"
	"github.com/casaluna/reservations/internal/model"
	"github.com/casaluna/reservations/internal/notifier"
	svc "github.com/casaluna/reservations/internal/service/reservation"
)

// reservationService defines the interface that the Handler depends on.
type reservationService interface {
	Submit(ctx context.Context, in svc.Input) (model.Reservation, notifier.Result, error)
	List(ctx context.Context) ([]model.Reservation, error)
	Health() bool
}

const (
	msgMissingFields = "Missing required fields"
	msgConfirmed     = "Thank you! Your reservation request has been received. You will receive a confirmation email shortly."
	msgPending       = "Thank you! Your reservation request has been received. We will contact you shortly to confirm."
)

// Handler handles HTTP requests for reservations.
type Handler struct {
	service   reservationService
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(s reservationService, v *validator.Validate, cfg *config.Config) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// Submit handles POST /reservations.
//
// Validation failures return 400 without side effects. A storage
// failure returns 500 with a phone fallback for the guest. Notification
// failures never fail the request; they only change the success message.
func (h *Handler) Submit(c *ginext.Context) {
	var req dto.SubmitRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, errors.New(msgMissingFields))
		return
	}

	rec, outcome, err := h.service.Submit(c.Request.Context(), svc.Input{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Date:   req.Date,
		Time:   req.Time,
		Guests: req.Guests,
		Notes:  req.Notes,
	})
	if err != nil {
		if errors.Is(err, svc.ErrMissingFields) {
			respond.Fail(c.Writer, http.StatusBadRequest, errors.New(msgMissingFields))
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to save reservation")

		detail := ""
		if !h.cfg.App.Production() {
			detail = err.Error()
		}
		respond.FailWithDetail(c.Writer, http.StatusInternalServerError, h.storageFailureMessage(), detail)
		return
	}

	zlog.Logger.Info().
		Str("id", rec.ID).
		Bool("restaurant_notified", outcome.Restaurant).
		Bool("guest_notified", outcome.Guest).
		Bool("skipped", outcome.Skipped).
		Msg("reservation saved")

	msg := msgPending
	if outcome.Full() {
		msg = msgConfirmed
	}

	respond.OK(c.Writer, dto.SubmitResponse{Success: true, Message: msg})
}

// List handles GET /reservations, newest submission first.
func (h *Handler) List(c *ginext.Context) {
	recs, err := h.service.List(c.Request.Context())
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list reservations")

		detail := ""
		if !h.cfg.App.Production() {
			detail = err.Error()
		}
		respond.FailWithDetail(c.Writer, http.StatusInternalServerError, "Could not read reservations", detail)
		return
	}

	if recs == nil {
		recs = []model.Reservation{}
	}

	respond.OK(c.Writer, dto.ListResponse{Success: true, Reservations: recs})
}

// Health handles GET /health.
func (h *Handler) Health(c *ginext.Context) {
	respond.OK(c.Writer, dto.HealthResponse{Status: "ok", EmailConfigured: h.service.Health()})
}

func (h *Handler) storageFailureMessage() string {
	return fmt.Sprintf(
		"Sorry, we could not save your reservation. Please call us at %s to book your table.",
		h.cfg.Restaurant.Phone,
	)
}
