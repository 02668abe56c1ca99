package api

import (
	"context"
	"errors"
	"net/http"

	"fanpass/constant"
	"fanpass/entities"
	"fanpass/gateway"
)

// Auth is the typed surface of the users endpoints.
type Auth interface {
	Register(ctx context.Context, req RegisterRequest) (entities.User, error)
	Login(ctx context.Context, email, password string) (entities.User, error)
	Logout(ctx context.Context) error
	ValidateSession(ctx context.Context) (entities.User, error)
}

type RegisterRequest struct {
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Password  string             `json:"password"`
	Favorites entities.Favorites `json:"favorites"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// wireUser mirrors the optional shape the server actually sends: favorite
// lists and bookings may be absent. Nothing past this package sees the
// optionality.
type wireUser struct {
	UserId    string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Favorites struct {
		Sports  []string `json:"sports"`
		Drivers []string `json:"drivers"`
		Teams   []string `json:"teams"`
	} `json:"favorites"`
	Bookings []entities.Booking `json:"bookings"`
}

type userEnvelope struct {
	Status  bool     `json:"status"`
	Message string   `json:"message"`
	User    wireUser `json:"user"`
}

type statusEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type AuthClient struct {
	gw *gateway.Gateway
}

func NewAuthClient(gw *gateway.Gateway) *AuthClient {
	return &AuthClient{gw: gw}
}

func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) (entities.User, error) {
	var resp userEnvelope
	if err := c.gw.Send(ctx, http.MethodPost, constant.REGISTER_PATH, req, &resp, "Registration failed"); err != nil {
		return entities.User{}, wrapAuthError(err, map[int]AuthReason{
			http.StatusBadRequest: AuthValidation,
			http.StatusConflict:   AuthConflict,
		})
	}
	return normalizeUser(resp.User), nil
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (entities.User, error) {
	var resp userEnvelope
	body := loginRequest{Email: email, Password: password}
	if err := c.gw.Send(ctx, http.MethodPost, constant.LOGIN_PATH, body, &resp, "Login failed"); err != nil {
		return entities.User{}, wrapAuthError(err, map[int]AuthReason{
			http.StatusBadRequest:   AuthInvalidCredentials,
			http.StatusUnauthorized: AuthInvalidCredentials,
		})
	}
	return normalizeUser(resp.User), nil
}

func (c *AuthClient) Logout(ctx context.Context) error {
	var resp statusEnvelope
	if err := c.gw.Send(ctx, http.MethodGet, constant.LOGOUT_PATH, nil, &resp, "Logout failed"); err != nil {
		return wrapAuthError(err, nil)
	}
	return nil
}

func (c *AuthClient) ValidateSession(ctx context.Context) (entities.User, error) {
	var resp userEnvelope
	if err := c.gw.Send(ctx, http.MethodGet, constant.ME_PATH, nil, &resp, "Token validation failed"); err != nil {
		return entities.User{}, wrapAuthError(err, map[int]AuthReason{
			http.StatusUnauthorized: AuthNoSession,
			http.StatusForbidden:    AuthExpired,
		})
	}
	return normalizeUser(resp.User), nil
}

// normalizeUser fills in every list the server may have omitted, so stores
// always hold non-nil favorites and bookings.
func normalizeUser(w wireUser) entities.User {
	u := entities.User{
		UserId: w.UserId,
		Name:   w.Name,
		Email:  w.Email,
		Favorites: entities.Favorites{
			Sports:  w.Favorites.Sports,
			Drivers: w.Favorites.Drivers,
			Teams:   w.Favorites.Teams,
		}.Normalized(),
		Bookings: w.Bookings,
	}
	if u.Bookings == nil {
		u.Bookings = []entities.Booking{}
	}
	for i := range u.Bookings {
		u.Bookings[i] = normalizeBooking(u.Bookings[i])
	}
	return u
}

// normalizeBooking defaults the status of profile bookings that pre-date
// the status field: anything listed without one has been paid for.
func normalizeBooking(b entities.Booking) entities.Booking {
	if b.Status == "" {
		b.Status = entities.BookingConfirmed
	}
	return b
}

func wrapAuthError(err error, reasons map[int]AuthReason) *AuthError {
	var te *gateway.TransportError
	if errors.As(err, &te) {
		if reason, ok := reasons[te.StatusCode]; ok {
			return &AuthError{Reason: reason, Message: te.Message}
		}
		return &AuthError{Reason: AuthServer, Message: te.Message}
	}
	return &AuthError{Reason: AuthServer, Message: err.Error()}
}
