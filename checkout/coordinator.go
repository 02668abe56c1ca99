// Package checkout drives the multi-step purchase protocol: reserve a
// booking, obtain a payment authorization, wait for the external payment
// collaborator, then finalize. It is the single source of truth for the
// current booking attempt.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fanpass/api"
	"fanpass/constant"
	"fanpass/entities"
	"fanpass/persistence"
	"fanpass/store"
)

type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseReserving            Phase = "reserving"
	PhaseAuthorizing          Phase = "authorizing"
	PhaseAwaitingConfirmation Phase = "awaiting_confirmation"
	PhaseConfirmed            Phase = "confirmed"
	PhaseFailed               Phase = "failed"
)

// FailureStage records where a purchase attempt died. FailFinalize is the
// severe one: payment was already captured, so the remediation is manual
// follow-up rather than a retry.
type FailureStage string

const (
	FailValidation    FailureStage = "validation"
	FailReservation   FailureStage = "reservation"
	FailAuthorization FailureStage = "authorization"
	FailFinalize      FailureStage = "finalize"
)

// ValidationError is a local precondition failure. No network call was
// made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

// State is the externally visible snapshot of the current attempt.
// CancellingId names the booking a cancel call is in flight for, so the
// rendering surface can disable that booking's controls meanwhile.
type State struct {
	Phase        Phase
	Failure      FailureStage
	Err          string
	Booking      *entities.Booking
	ClientSecret string
	Success      bool
	CancellingId string
}

type checkoutEvent interface {
	isCheckoutEvent()
}

type attemptStarted struct{}
type reserved struct{ booking entities.Booking }
type authorized struct{ clientSecret string }
type stepFailed struct {
	stage   FailureStage
	message string
}
type finalized struct{ booking entities.Booking }
type attemptReset struct{}
type cancelStarted struct{ bookingID string }
type cancelSucceeded struct{ bookingID string }
type cancelFinished struct{}

func (attemptStarted) isCheckoutEvent() {}
func (reserved) isCheckoutEvent()       {}
func (authorized) isCheckoutEvent()     {}
func (stepFailed) isCheckoutEvent()     {}
func (finalized) isCheckoutEvent()      {}
func (attemptReset) isCheckoutEvent()   {}
func (cancelStarted) isCheckoutEvent()   {}
func (cancelSucceeded) isCheckoutEvent() {}
func (cancelFinished) isCheckoutEvent()  {}

// reduce is the pure transition function for a purchase attempt.
func reduce(s State, ev checkoutEvent) State {
	switch ev := ev.(type) {
	case attemptStarted:
		s = State{Phase: PhaseReserving}
	case reserved:
		s.Phase = PhaseAuthorizing
		s.Booking = &ev.booking
	case authorized:
		s.Phase = PhaseAwaitingConfirmation
		s.ClientSecret = ev.clientSecret
	case stepFailed:
		s.Phase = PhaseFailed
		s.Failure = ev.stage
		s.Err = ev.message
	case finalized:
		s.Phase = PhaseConfirmed
		s.Booking = &ev.booking
		s.Success = true
		s.Err = ""
	case attemptReset:
		s = State{Phase: PhaseIdle}
	case cancelStarted:
		s.CancellingId = ev.bookingID
	case cancelSucceeded:
		// the current attempt may hold the booking that was just cancelled
		if s.Booking != nil && s.Booking.BookingId == ev.bookingID {
			booking := *s.Booking
			booking.Status = entities.BookingCancelled
			s.Booking = &booking
		}
	case cancelFinished:
		s.CancellingId = ""
	}
	return s
}

// Coordinator is the effect shell around the purchase state machine.
type Coordinator struct {
	mu       sync.Mutex
	state    State
	bookings api.Bookings
	session  *store.SessionStore
	receipts persistence.Persistence
	currency string
	log      *slog.Logger
}

func New(bookings api.Bookings, session *store.SessionStore, receipts persistence.Persistence, currency string, log *slog.Logger) *Coordinator {
	return &Coordinator{
		bookings: bookings,
		session:  session,
		receipts: receipts,
		currency: currency,
		log:      log,
		state:    State{Phase: PhaseIdle},
	}
}

func (c *Coordinator) dispatch(ev checkoutEvent) {
	c.mu.Lock()
	c.state = reduce(c.state, ev)
	c.mu.Unlock()
}

// State returns a snapshot of the current attempt.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.state
	if state.Booking != nil {
		booking := *state.Booking
		state.Booking = &booking
	}
	return state
}

// Begin runs steps one and two of the purchase: reserve the booking, then
// obtain the payment authorization. On success the attempt parks at
// awaiting_confirmation and the returned client secret goes to the
// external payment form. The total is always recomputed from the event's
// unit price; caller-supplied totals are never trusted.
func (c *Coordinator) Begin(ctx context.Context, event entities.Event, quantity int, userID string) (string, error) {
	c.mu.Lock()
	busy := c.state.Phase != PhaseIdle && c.state.Phase != PhaseFailed

	if quantity < constant.MIN_QUANTITY || quantity > constant.MAX_QUANTITY {
		err := &ValidationError{Message: fmt.Sprintf("quantity must be between %d and %d, got %d",
			constant.MIN_QUANTITY, constant.MAX_QUANTITY, quantity)}
		// a rejected Begin must not clobber an attempt already in flight
		if !busy {
			c.state = reduce(c.state, stepFailed{stage: FailValidation, message: err.Message})
		}
		c.mu.Unlock()
		return "", err
	}

	if busy {
		phase := c.state.Phase
		c.mu.Unlock()
		return "", fmt.Errorf("a purchase attempt is already in phase %s", phase)
	}
	c.state = reduce(c.state, attemptStarted{})
	c.mu.Unlock()

	total := event.Price * float64(quantity)

	booking, err := c.bookings.Create(ctx, event.EventId, quantity, total)
	if err != nil {
		c.log.Warn("booking reservation failed", slog.Any("error", err))
		c.dispatch(stepFailed{stage: FailReservation, message: err.Error()})
		return "", err
	}
	c.dispatch(reserved{booking: booking})

	secret, err := c.bookings.CreatePaymentIntent(ctx, api.PaymentIntentRequest{
		Amount:    total,
		Currency:  c.currency,
		BookingId: booking.BookingId,
		EventId:   event.EventId,
		UserId:    userID,
	})
	if err != nil {
		// the reservation stays pending server-side, see package docs
		c.log.Warn("payment authorization failed, booking left pending",
			slog.String("booking_id", booking.BookingId), slog.Any("error", err))
		c.dispatch(stepFailed{stage: FailAuthorization, message: err.Error()})
		return "", err
	}
	c.dispatch(authorized{clientSecret: secret})
	return secret, nil
}

// ConfirmPayment finalizes the attempt after the payment collaborator
// reported success. Only then does the booking reach the session profile.
func (c *Coordinator) ConfirmPayment(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Phase != PhaseAwaitingConfirmation {
		phase := c.state.Phase
		c.mu.Unlock()
		return fmt.Errorf("cannot confirm payment from phase %s", phase)
	}
	bookingID := c.state.Booking.BookingId
	c.mu.Unlock()

	booking, err := c.bookings.UpdateStatus(ctx, bookingID, entities.BookingConfirmed, "succeeded")
	if err != nil {
		// payment is already captured here; this must reach the user as
		// its own failure kind, not a generic payment error
		c.log.Error("finalize failed after payment capture",
			slog.String("booking_id", bookingID), slog.Any("error", err))
		c.dispatch(stepFailed{stage: FailFinalize, message: err.Error()})
		return err
	}
	booking.Status = entities.BookingConfirmed
	c.dispatch(finalized{booking: booking})
	c.session.AppendBooking(booking)
	c.writeReceipt(ctx, booking)
	return nil
}

// Cancel flips a confirmed booking to cancelled; the refund is the
// server's business. Cancelling twice fails the second time instead of
// silently succeeding, and a failed remote cancel leaves the booking
// visibly confirmed.
func (c *Coordinator) Cancel(ctx context.Context, bookingID string) error {
	booking, ok := c.session.BookingByID(bookingID)
	if !ok {
		return &api.CancelError{Reason: api.CancelNotFound, Message: "no such booking in this session"}
	}
	switch booking.Status {
	case entities.BookingCancelled:
		return &api.CancelError{Reason: api.CancelAlreadyCancelled, Message: "booking is already cancelled"}
	case entities.BookingConfirmed:
	default:
		return &ValidationError{Message: "only a confirmed booking can be cancelled"}
	}

	c.dispatch(cancelStarted{bookingID: bookingID})
	defer c.dispatch(cancelFinished{})
	if err := c.bookings.Cancel(ctx, bookingID); err != nil {
		c.log.Warn("cancel failed", slog.String("booking_id", bookingID), slog.Any("error", err))
		return err
	}
	c.session.MarkBookingCancelled(bookingID)
	c.dispatch(cancelSucceeded{bookingID: bookingID})
	return nil
}

// Reset clears the current attempt so a new purchase can start.
func (c *Coordinator) Reset() {
	c.dispatch(attemptReset{})
}

func (c *Coordinator) writeReceipt(ctx context.Context, booking entities.Booking) {
	if c.receipts == nil {
		return
	}
	receipt := persistence.Receipt{
		BookingId:      booking.BookingId,
		SportsCategory: string(booking.Event.SportsCategory),
		Venue:          booking.Event.Venue,
		Quantity:       booking.Quantity,
		TotalPrice:     booking.Price,
		Currency:       c.currency,
		QrCodeData:     booking.QrCodeData,
		ConfirmedAt:    time.Now(),
	}
	if err := c.receipts.WriteReceipt(ctx, receipt); err != nil {
		c.log.Warn("failed to write receipt", slog.String("booking_id", booking.BookingId), slog.Any("error", err))
	}
}
