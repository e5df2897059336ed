package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-storefront/internal/booking"
	"github.com/iliyamo/cinema-storefront/internal/middleware"
	"github.com/iliyamo/cinema-storefront/internal/model"
	"github.com/iliyamo/cinema-storefront/internal/notify"
	"github.com/iliyamo/cinema-storefront/internal/queue"
	"github.com/iliyamo/cinema-storefront/internal/session"
)

// OrderEvents publishes order events.  service.OrderPublisher implements
// it.
type OrderEvents interface {
	PublishOrderPlaced(ctx context.Context, ev queue.OrderPlacedEvent) error
}

// CheckoutHandler drives the checkout workflow.  The workflow state lives
// in Store; each request loads it, applies one transition and writes it
// back atomically.
type CheckoutHandler struct {
	API       Backend
	Store     session.Store
	Notifier  notify.Notifier
	Events    OrderEvents // optional
	Location  *time.Location
	SeatPrice int64
	DateStrip int
	Now       func() time.Time
	Log       *zap.Logger
}

var (
	errSelectionChanged = errors.New("selection changed while seats were loading")
	errOrderInFlight    = errors.New("an order for this checkout is already being placed")
)

const dateLayout = "2006-01-02"

const (
	// submitLease is how long a started order blocks further attempts
	// when its release was never written.
	submitLease = 2 * time.Minute
	// releaseTimeout bounds cleanup writes made after the request ended.
	releaseTimeout = 5 * time.Second
)

type createCheckoutRequest struct {
	MovieID string `json:"movie_id" validate:"required"`
}

type selectDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type selectTimeRequest struct {
	Time string `json:"time" validate:"required,datetime=15:04"`
}

type toggleSeatRequest struct {
	Row    string `json:"row" validate:"required,len=1,uppercase"`
	Number int    `json:"number" validate:"required,gt=0"`
}

func (h *CheckoutHandler) today() time.Time {
	t := h.now().In(h.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, h.Location)
}

// notifyFailure queues an error toast when the backend was unreachable or
// refused the request.
func (h *CheckoutHandler) notifyFailure(ctx context.Context, userID, title string, err error) {
	status, _ := errorCode(err)
	if status != http.StatusBadGateway && status != http.StatusNotFound && status != http.StatusConflict {
		return
	}
	msg := "Something went wrong, please try again later"
	switch status {
	case http.StatusNotFound:
		msg = "The requested item no longer exists"
	case http.StatusConflict:
		msg = "Some of your seats are no longer available"
	}
	if perr := h.Notifier.Push(ctx, userID, notify.Error(title, msg)); perr != nil {
		h.Log.Warn("push toast", zap.Error(perr))
	}
}

// load returns the caller's session; sessions of other users are reported
// as not found.
func (h *CheckoutHandler) load(c echo.Context) (*session.Session, error) {
	sess, err := h.Store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if sess.UserID != middleware.UserID(c) {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

// update applies fn to the caller's session.
func (h *CheckoutHandler) update(c echo.Context, fn func(*session.Session) error) (*session.Session, error) {
	uid := middleware.UserID(c)
	return h.Store.Update(c.Request().Context(), c.Param("id"), func(s *session.Session) error {
		if s.UserID != uid {
			return session.ErrNotFound
		}
		return fn(s)
	})
}

func (h *CheckoutHandler) respond(c echo.Context, status int, sess *session.Session) error {
	return c.JSON(status, h.view(sess))
}

// Create handles POST /v1/checkout.
func (h *CheckoutHandler) Create(c echo.Context) error {
	var in createCheckoutRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	ctx := middleware.BackendContext(c)
	uid := middleware.UserID(c)

	movie, err := h.API.GetMovie(ctx, in.MovieID)
	if err != nil {
		h.notifyFailure(ctx, uid, "Could not load movie", err)
		return fail(c, err)
	}
	showTimes, err := h.API.ShowTimesByMovie(ctx, in.MovieID)
	if err != nil {
		h.notifyFailure(ctx, uid, "Could not load showtimes", err)
		return fail(c, err)
	}
	products, err := h.API.ListProducts(ctx)
	if err != nil {
		h.notifyFailure(ctx, uid, "Could not load products", err)
		return fail(c, err)
	}

	sess, err := h.Store.Create(ctx, session.Session{
		UserID:     uid,
		MovieTitle: movie.Title,
		Products:   products,
		Checkout:   *booking.NewCheckout(in.MovieID, showTimes, h.today()),
	})
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, http.StatusCreated, sess)
}

// Get handles GET /v1/checkout/:id.
func (h *CheckoutHandler) Get(c echo.Context) error {
	sess, err := h.load(c)
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, http.StatusOK, sess)
}

// Delete abandons a checkout.
func (h *CheckoutHandler) Delete(c echo.Context) error {
	if _, err := h.load(c); err != nil {
		return fail(c, err)
	}
	if err := h.Store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SelectDate handles PUT /v1/checkout/:id/date.  Changing the date clears
// the selected time and seats.
func (h *CheckoutHandler) SelectDate(c echo.Context) error {
	var in selectDateRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	d, err := time.ParseInLocation(dateLayout, in.Date, h.Location)
	if err != nil {
		return fail(c, echo.NewHTTPError(http.StatusBadRequest, "invalid date"))
	}
	sess, err := h.update(c, func(s *session.Session) error {
		s.Checkout.SelectDate(d)
		return nil
	})
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, http.StatusOK, sess)
}

// SelectTime handles PUT /v1/checkout/:id/time.  It records the choice,
// fetches the seat map and applies it only if no newer selection was made
// in the meantime; a superseded response yields 409 selection_changed.
func (h *CheckoutHandler) SelectTime(c echo.Context) error {
	var in selectTimeRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	var req booking.SeatRequest
	if _, err := h.update(c, func(s *session.Session) error {
		var err error
		req, err = s.Checkout.SelectTime(in.Time, h.Location)
		return err
	}); err != nil {
		return fail(c, err)
	}

	ctx := middleware.BackendContext(c)
	seats, err := h.API.AvailableSeats(ctx, req.ShowTimeID)
	if err != nil {
		h.notifyFailure(ctx, middleware.UserID(c), "Could not load seats", err)
		return fail(c, err)
	}

	applied := false
	sess, err := h.update(c, func(s *session.Session) error {
		applied = s.Checkout.ApplySeats(req, booking.FromModels(seats))
		return nil
	})
	if err != nil {
		return fail(c, err)
	}
	if !applied {
		h.Log.Debug("discarded stale seat map",
			zap.String("checkout", sess.ID), zap.String("request", req.Key))
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "selection_changed",
			"message":  errSelectionChanged.Error(),
			"checkout": h.view(sess),
		})
	}
	return h.respond(c, http.StatusOK, sess)
}

// ToggleSeat handles POST /v1/checkout/:id/seats/toggle.
func (h *CheckoutHandler) ToggleSeat(c echo.Context) error {
	var in toggleSeatRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	sess, err := h.update(c, func(s *session.Session) error {
		return s.Checkout.ToggleSeat(booking.Seat{Row: in.Row, Number: in.Number})
	})
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, http.StatusOK, sess)
}

// SelectAll handles POST /v1/checkout/:id/seats/all.
func (h *CheckoutHandler) SelectAll(c echo.Context) error {
	sess, err := h.update(c, func(s *session.Session) error {
		return s.Checkout.SelectAllAvailable()
	})
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, http.StatusOK, sess)
}

// Increment handles POST /v1/checkout/:id/cart/:product_id/increment.
// Only products of the catalogue snapshot can be added.
func (h *CheckoutHandler) Increment(c echo.Context) error {
	pid := c.Param("product_id")
	sess, err := h.update(c, func(s *session.Session) error {
		for _, p := range s.Products {
			if p.ID == pid {
				s.Checkout.Cart.Increment(pid)
				return nil
			}
		}
		return echo.NewHTTPError(http.StatusNotFound, "unknown product")
	})
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, http.StatusOK, sess)
}

// Decrement handles POST /v1/checkout/:id/cart/:product_id/decrement.
func (h *CheckoutHandler) Decrement(c echo.Context) error {
	pid := c.Param("product_id")
	sess, err := h.update(c, func(s *session.Session) error {
		s.Checkout.Cart.Decrement(pid)
		return nil
	})
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, http.StatusOK, sess)
}

// PlaceOrder handles POST /v1/checkout/:id/order.  On success the checkout
// is closed and an order.placed event is published; on refusal the
// checkout is kept so the user can adjust and retry.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	var (
		payload model.PlaceOrder
		quote   booking.Quote
	)
	sess, err := h.update(c, func(s *session.Session) error {
		if s.Submitting && h.now().Sub(s.SubmittedAt) < submitLease {
			return errOrderInFlight
		}
		var err error
		if payload, err = s.Checkout.Compose(); err != nil {
			return err
		}
		quote = s.Checkout.Quote(s.Products, h.SeatPrice)
		s.Submitting = true
		s.SubmittedAt = h.now()
		return nil
	})
	if errors.Is(err, errOrderInFlight) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "order_in_progress", "message": err.Error()})
	}
	if err != nil {
		return fail(c, err)
	}

	ctx := middleware.BackendContext(c)
	uid := middleware.UserID(c)
	orderID, err := h.API.PlaceOrder(ctx, payload)
	if err != nil {
		// The request may already be cancelled; cleanup must still land.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		h.notifyFailure(rctx, uid, "Order failed", err)
		if _, rerr := h.Store.Update(rctx, sess.ID, func(s *session.Session) error {
			if s.UserID != uid {
				return session.ErrNotFound
			}
			s.Submitting = false
			s.SubmittedAt = time.Time{}
			return nil
		}); rerr != nil {
			h.Log.Warn("release checkout after failed order", zap.Error(rerr))
		}
		return fail(c, err)
	}

	total := quote.Total
	log := h.Log.With(zap.String("order_id", orderID), zap.String("user_id", uid))
	log.Info("order placed", zap.Int64("total", total))

	doneCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if perr := h.Notifier.Push(doneCtx, uid, notify.Success("Order placed", "Your order id is "+orderID)); perr != nil {
		log.Warn("push toast", zap.Error(perr))
	}
	if h.Events != nil {
		ev := orderEvent(sess, orderID, total, h.Location, h.now())
		if cl := middleware.Claims(c); cl != nil {
			ev.Email = cl.Email
		}
		if perr := h.Events.PublishOrderPlaced(doneCtx, ev); perr != nil {
			log.Warn("publish order event", zap.Error(perr))
		}
	}
	if derr := h.Store.Delete(doneCtx, sess.ID); derr != nil && !errors.Is(derr, session.ErrNotFound) {
		log.Warn("close checkout", zap.Error(derr))
	}
	return c.JSON(http.StatusCreated, echo.Map{"order_id": orderID, "total": total})
}

func (h *CheckoutHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func orderEvent(sess *session.Session, orderID string, total int64, loc *time.Location, at time.Time) queue.OrderPlacedEvent {
	co := sess.Checkout
	seats := make([]string, 0, len(co.Chosen))
	for _, s := range co.Chosen {
		seats = append(seats, s.ID())
	}
	ev := queue.OrderPlacedEvent{
		OrderID:    orderID,
		UserID:     sess.UserID,
		MovieID:    co.MovieID,
		MovieTitle: sess.MovieTitle,
		Seats:      seats,
		Products:   co.Cart.Lines(),
		Total:      total,
		PlacedAt:   at.UTC(),
	}
	if co.ShowTime != nil {
		ev.ShowTimeID = co.ShowTime.ID
		if start, err := co.ShowTime.Start(loc); err == nil {
			ev.StartsAt = start.Format(time.RFC3339)
		}
	}
	return ev
}
