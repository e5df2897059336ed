package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-storefront/internal/apiclient"
	"github.com/iliyamo/cinema-storefront/internal/booking"
	"github.com/iliyamo/cinema-storefront/internal/repository"
	"github.com/iliyamo/cinema-storefront/internal/session"
)

// errorCode maps an error to an HTTP status and a stable machine-readable
// code.
func errorCode(err error) (int, string) {
	var (
		he *echo.HTTPError
		ve validator.ValidationErrors
		te *apiclient.TransportError
		se *apiclient.StatusError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, "validation_failed"
	case errors.As(err, &he):
		return he.Code, strings.ToLower(strings.ReplaceAll(http.StatusText(he.Code), " ", "_"))

	case errors.Is(err, booking.ErrSeatReserved):
		return http.StatusConflict, "seat_reserved"
	case errors.Is(err, booking.ErrSeatsNotLoaded):
		return http.StatusConflict, "seats_not_loaded"
	case errors.Is(err, booking.ErrUnknownSeat):
		return http.StatusUnprocessableEntity, "unknown_seat"
	case errors.Is(err, booking.ErrUnknownTime):
		return http.StatusUnprocessableEntity, "unknown_time"
	case errors.Is(err, booking.ErrNoShowTime):
		return http.StatusUnprocessableEntity, "no_show_time"
	case errors.Is(err, booking.ErrNoSeats):
		return http.StatusUnprocessableEntity, "no_seats"

	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "checkout_not_found"
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict, "checkout_busy"
	case errors.Is(err, repository.ErrReceiptNotFound):
		return http.StatusNotFound, "receipt_not_found"

	case errors.Is(err, apiclient.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apiclient.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apiclient.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, apiclient.ErrInvalid):
		return http.StatusUnprocessableEntity, "rejected"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &te):
		return http.StatusBadGateway, "backend_unreachable"
	case errors.As(err, &se):
		return http.StatusBadGateway, "backend_error"
	}
	return http.StatusInternalServerError, "internal_error"
}

// fail writes err as {"error": code, "message": ...}.  Internal errors do
// not leak their message.
func fail(c echo.Context, err error) error {
	status, code := errorCode(err)
	body := echo.Map{"error": code}
	var ve validator.ValidationErrors
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ve):
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		body["fields"] = fields
	case errors.As(err, &he):
		if msg, ok := he.Message.(string); ok {
			body["message"] = msg
		}
	case status < http.StatusInternalServerError && !fromBackend(err):
		body["message"] = err.Error()
	}
	return c.JSON(status, body)
}

// fromBackend reports errors whose text names backend paths.
func fromBackend(err error) bool {
	for _, target := range []error{apiclient.ErrNotFound, apiclient.ErrUnauthorized, apiclient.ErrConflict, apiclient.ErrInvalid} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
