package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanpass/gateway"
)

// newStubServer builds an in-process stand-in for the remote ticketing
// service.
func newStubServer(t *testing.T, register func(e *echo.Echo)) *gateway.Gateway {
	t.Helper()
	e := echo.New()
	register(e)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	gw, err := gateway.New(server.URL+"/", 5*time.Second)
	require.NoError(t, err)
	return gw
}

func TestAuthClient_Register_NormalizesOptionalFields(t *testing.T) {
	gw := newStubServer(t, func(e *echo.Echo) {
		e.POST("/users/register", func(c echo.Context) error {
			var body map[string]any
			assert.NoError(t, c.Bind(&body))
			assert.Equal(t, "Priya", body["name"])
			// server omits drivers, teams and bookings entirely
			return c.JSON(http.StatusCreated, echo.Map{
				"status":  true,
				"message": "registered",
				"user": echo.Map{
					"_id":   "u1",
					"name":  "Priya",
					"email": "priya@example.com",
					"favorites": echo.Map{
						"sports": []string{"cricket", "cricket"},
					},
				},
			})
		})
	})

	client := NewAuthClient(gw)
	user, err := client.Register(context.Background(), RegisterRequest{
		Name:     "Priya",
		Email:    "priya@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", user.UserId)
	assert.Equal(t, []string{"cricket"}, user.Favorites.Sports)
	assert.NotNil(t, user.Favorites.Drivers)
	assert.NotNil(t, user.Favorites.Teams)
	assert.NotNil(t, user.Bookings)
	assert.Empty(t, user.Bookings)
}

func TestAuthClient_Register_ErrorReasons(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		message       string
		expectsReason AuthReason
	}{
		{name: "validation", status: http.StatusBadRequest, message: "name is required", expectsReason: AuthValidation},
		{name: "conflict", status: http.StatusConflict, message: "email already registered", expectsReason: AuthConflict},
		{name: "server", status: http.StatusInternalServerError, message: "oops", expectsReason: AuthServer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := newStubServer(t, func(e *echo.Echo) {
				e.POST("/users/register", func(c echo.Context) error {
					return c.JSON(tc.status, echo.Map{"status": false, "message": tc.message})
				})
			})

			_, err := NewAuthClient(gw).Register(context.Background(), RegisterRequest{})
			var ae *AuthError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tc.expectsReason, ae.Reason)
			assert.Equal(t, tc.message, ae.Message)
		})
	}
}

func TestAuthClient_Login(t *testing.T) {
	gw := newStubServer(t, func(e *echo.Echo) {
		e.POST("/users/login", func(c echo.Context) error {
			var body loginRequest
			assert.NoError(t, c.Bind(&body))
			if body.Password != "secret" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"status": false, "message": "Invalid email or password"})
			}
			return c.JSON(http.StatusOK, echo.Map{
				"status":  true,
				"message": "logged in",
				"user": echo.Map{
					"_id":   "u1",
					"name":  "Priya",
					"email": "priya@example.com",
					"favorites": echo.Map{
						"sports":  []string{"f1"},
						"drivers": []string{"Leclerc"},
						"teams":   []string{},
					},
					"bookings": []echo.Map{},
				},
			})
		})
	})
	client := NewAuthClient(gw)

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.Login(context.Background(), "priya@example.com", "nope")
		var ae *AuthError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, AuthInvalidCredentials, ae.Reason)
		assert.Equal(t, "Invalid email or password", ae.Message)
	})

	t.Run("success", func(t *testing.T) {
		user, err := client.Login(context.Background(), "priya@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "Priya", user.Name)
		assert.Equal(t, []string{"Leclerc"}, user.Favorites.Drivers)
	})
}

func TestAuthClient_ValidateSession_NoSession(t *testing.T) {
	gw := newStubServer(t, func(e *echo.Echo) {
		e.GET("/users/me", func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"status": false, "message": "not logged in"})
		})
	})

	_, err := NewAuthClient(gw).ValidateSession(context.Background())
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AuthNoSession, ae.Reason)
}

func TestAuthClient_Logout(t *testing.T) {
	gw := newStubServer(t, func(e *echo.Echo) {
		e.GET("/users/logout", func(c echo.Context) error {
			return c.JSON(http.StatusOK, echo.Map{"status": true, "message": "logged out"})
		})
	})

	assert.NoError(t, NewAuthClient(gw).Logout(context.Background()))
}

func TestAuthClient_ProfileBookingsDefaultToConfirmed(t *testing.T) {
	gw := newStubServer(t, func(e *echo.Echo) {
		e.GET("/users/me", func(c echo.Context) error {
			return c.JSON(http.StatusOK, echo.Map{
				"status":  true,
				"message": "ok",
				"user": echo.Map{
					"_id":       "u1",
					"name":      "Priya",
					"email":     "priya@example.com",
					"favorites": echo.Map{"sports": []string{}, "drivers": []string{}, "teams": []string{}},
					"bookings": []echo.Map{
						{"_id": "b1", "quantity": 2, "price": 50.0, "qrCodeData": "qr-1"},
						{"_id": "b2", "quantity": 1, "price": 20.0, "qrCodeData": "qr-2", "status": "cancelled"},
					},
				},
			})
		})
	})

	user, err := NewAuthClient(gw).ValidateSession(context.Background())
	require.NoError(t, err)
	require.Len(t, user.Bookings, 2)
	assert.Equal(t, "confirmed", string(user.Bookings[0].Status))
	assert.Equal(t, "cancelled", string(user.Bookings[1].Status))
}
