package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"fanpass/constant"
	"fanpass/entities"
	"fanpass/gateway"
)

// Bookings covers the bookings and payments endpoints. Every call is a
// single remote mutation; nothing is cached here.
type Bookings interface {
	Create(ctx context.Context, eventID string, quantity int, price float64) (entities.Booking, error)
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (string, error)
	UpdateStatus(ctx context.Context, bookingID string, status entities.BookingStatus, paymentStatus string) (entities.Booking, error)
	Cancel(ctx context.Context, bookingID string) error
}

type createBookingRequest struct {
	EventId  string  `json:"eventId"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type bookingEnvelope struct {
	Status  bool             `json:"status"`
	Message string           `json:"message"`
	Booking entities.Booking `json:"booking"`
}

type updateStatusRequest struct {
	Status        entities.BookingStatus `json:"status"`
	PaymentStatus string                 `json:"paymentStatus"`
}

type PaymentIntentRequest struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	BookingId string  `json:"bookingId"`
	EventId   string  `json:"eventId"`
	UserId    string  `json:"userId"`
}

type paymentIntentEnvelope struct {
	Data struct {
		ClientSecret string `json:"clientSecret"`
	} `json:"data"`
}

type BookingsClient struct {
	gw *gateway.Gateway
}

func NewBookingsClient(gw *gateway.Gateway) *BookingsClient {
	return &BookingsClient{gw: gw}
}

func (c *BookingsClient) Create(ctx context.Context, eventID string, quantity int, price float64) (entities.Booking, error) {
	body := createBookingRequest{EventId: eventID, Quantity: quantity, Price: price}
	var resp bookingEnvelope
	if err := c.gw.Send(ctx, http.MethodPost, constant.CREATE_BOOKING_PATH, body, &resp, "Failed to create booking"); err != nil {
		var te *gateway.TransportError
		if errors.As(err, &te) {
			switch te.StatusCode {
			case http.StatusBadRequest:
				return entities.Booking{}, &BookingError{Reason: BookingValidation, Message: te.Message}
			case http.StatusConflict:
				return entities.Booking{}, &BookingError{Reason: BookingCapacity, Message: te.Message}
			}
			return entities.Booking{}, &BookingError{Reason: BookingServer, Message: te.Message}
		}
		return entities.Booking{}, &BookingError{Reason: BookingServer, Message: err.Error()}
	}
	booking := resp.Booking
	if booking.Status == "" {
		booking.Status = entities.BookingPending
	}
	return booking, nil
}

func (c *BookingsClient) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (string, error) {
	var resp paymentIntentEnvelope
	if err := c.gw.Send(ctx, http.MethodPost, constant.PAYMENT_INTENT_PATH, req, &resp, "Failed to create payment intent"); err != nil {
		var te *gateway.TransportError
		if errors.As(err, &te) {
			return "", &PaymentError{Message: te.Message}
		}
		return "", &PaymentError{Message: err.Error()}
	}
	if resp.Data.ClientSecret == "" {
		return "", &PaymentError{Message: "payment intent response carried no client secret"}
	}
	return resp.Data.ClientSecret, nil
}

func (c *BookingsClient) UpdateStatus(ctx context.Context, bookingID string, status entities.BookingStatus, paymentStatus string) (entities.Booking, error) {
	path := fmt.Sprintf(constant.BOOKING_PATH, bookingID)
	body := updateStatusRequest{Status: status, PaymentStatus: paymentStatus}
	var resp bookingEnvelope
	if err := c.gw.Send(ctx, http.MethodPut, path, body, &resp, "Failed to update booking status"); err != nil {
		var te *gateway.TransportError
		if errors.As(err, &te) {
			return entities.Booking{}, &BookingError{Reason: BookingServer, Message: te.Message}
		}
		return entities.Booking{}, &BookingError{Reason: BookingServer, Message: err.Error()}
	}
	booking := resp.Booking
	if booking.Status == "" {
		booking.Status = status
	}
	return booking, nil
}

func (c *BookingsClient) Cancel(ctx context.Context, bookingID string) error {
	path := fmt.Sprintf(constant.BOOKING_PATH, bookingID)
	var resp statusEnvelope
	if err := c.gw.Send(ctx, http.MethodDelete, path, nil, &resp, "Failed to cancel booking"); err != nil {
		var te *gateway.TransportError
		if errors.As(err, &te) {
			switch te.StatusCode {
			case http.StatusNotFound:
				return &CancelError{Reason: CancelNotFound, Message: te.Message}
			case http.StatusConflict:
				return &CancelError{Reason: CancelAlreadyCancelled, Message: te.Message}
			}
			return &CancelError{Reason: CancelServer, Message: te.Message}
		}
		return &CancelError{Reason: CancelServer, Message: err.Error()}
	}
	return nil
}
