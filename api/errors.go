// Package api contains the typed adapters over the gateway. Each adapter
// re-wraps transport failures into a reasoned domain error carrying the
// best available server message; raw transport errors never reach the
// stores.
package api

import "fmt"

type AuthReason string

const (
	AuthValidation         AuthReason = "validation"
	AuthConflict           AuthReason = "conflict"
	AuthInvalidCredentials AuthReason = "invalid_credentials"
	AuthNoSession          AuthReason = "no_session"
	AuthExpired            AuthReason = "expired"
	AuthServer             AuthReason = "server"
)

type AuthError struct {
	Reason  AuthReason
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed (%s): %s", e.Reason, e.Message)
}

type FetchError struct {
	Message string
}

func (e *FetchError) Error() string {
	return "fetch failed: " + e.Message
}

type BookingReason string

const (
	BookingCapacity   BookingReason = "capacity"
	BookingValidation BookingReason = "validation"
	BookingServer     BookingReason = "server"
)

type BookingError struct {
	Reason  BookingReason
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("booking failed (%s): %s", e.Reason, e.Message)
}

type PaymentError struct {
	Message string
}

func (e *PaymentError) Error() string {
	return "payment setup failed: " + e.Message
}

type CancelReason string

const (
	CancelNotFound         CancelReason = "not_found"
	CancelAlreadyCancelled CancelReason = "already_cancelled"
	CancelServer           CancelReason = "server"
)

type CancelError struct {
	Reason  CancelReason
	Message string
}

func (e *CancelError) Error() string {
	return fmt.Sprintf("cancel failed (%s): %s", e.Reason, e.Message)
}
