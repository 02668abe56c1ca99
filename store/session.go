// Package store holds the client-side state: the authentication session
// and the event catalog. Each store is a pure transition function over an
// explicit state value plus a thin shell that runs the adapter calls and
// feeds their outcomes back in as events. The shells serialize access with
// a mutex; overlapping auth calls are allowed and resolve last-writer-wins,
// which is the same relaxed policy the browser client had.
package store

import (
	"context"
	"log/slog"
	"sync"

	"fanpass/api"
	"fanpass/entities"
)

type AuthStatus string

const (
	StatusUninitialized AuthStatus = "uninitialized"
	StatusValidating    AuthStatus = "validating"
	StatusAuthenticated AuthStatus = "authenticated"
	StatusAnonymous     AuthStatus = "anonymous"
)

// SessionState is the full session snapshot. User is non-nil exactly when
// Status is authenticated. Err is what the rendering surface shows; the
// startup probe never sets it.
type SessionState struct {
	Status      AuthStatus
	User        *entities.User
	Loading     bool
	Err         string
	Initialized bool
}

type sessionEvent interface {
	isSessionEvent()
}

type probeStarted struct{}
type probeSucceeded struct{ user entities.User }
type probeFailed struct{}
type authStarted struct{}
type authSucceeded struct{ user entities.User }
type authFailed struct{ message string }
type loggedOut struct{}
type bookingAppended struct{ booking entities.Booking }
type bookingCancelled struct{ bookingID string }
type errorCleared struct{}

func (probeStarted) isSessionEvent()     {}
func (probeSucceeded) isSessionEvent()   {}
func (probeFailed) isSessionEvent()      {}
func (authStarted) isSessionEvent()      {}
func (authSucceeded) isSessionEvent()    {}
func (authFailed) isSessionEvent()       {}
func (loggedOut) isSessionEvent()        {}
func (bookingAppended) isSessionEvent()  {}
func (bookingCancelled) isSessionEvent() {}
func (errorCleared) isSessionEvent()     {}

// reduceSession is the pure session transition function.
func reduceSession(s SessionState, ev sessionEvent) SessionState {
	switch ev := ev.(type) {
	case probeStarted:
		s.Status = StatusValidating
		s.Loading = true
	case probeSucceeded:
		s.Status = StatusAuthenticated
		s.User = &ev.user
		s.Loading = false
		s.Err = ""
		s.Initialized = true
	case probeFailed:
		// expected for a never-logged-in visitor: silent downgrade
		s.Status = StatusAnonymous
		s.User = nil
		s.Loading = false
		s.Err = ""
		s.Initialized = true
	case authStarted:
		s.Loading = true
		s.Err = ""
	case authSucceeded:
		s.Status = StatusAuthenticated
		s.User = &ev.user
		s.Loading = false
		s.Err = ""
	case authFailed:
		s.Loading = false
		s.Err = ev.message
	case loggedOut:
		s.Status = StatusAnonymous
		s.User = nil
		s.Loading = false
		s.Err = ""
	case bookingAppended:
		if s.User != nil {
			user := cloneUser(*s.User)
			user.Bookings = append(user.Bookings, ev.booking)
			s.User = &user
		}
	case bookingCancelled:
		if s.User != nil {
			user := cloneUser(*s.User)
			for i := range user.Bookings {
				if user.Bookings[i].BookingId == ev.bookingID {
					user.Bookings[i].Status = entities.BookingCancelled
				}
			}
			s.User = &user
		}
	case errorCleared:
		s.Err = ""
	}
	return s
}

func cloneUser(u entities.User) entities.User {
	u.Bookings = append([]entities.Booking(nil), u.Bookings...)
	return u
}

// SessionStore is the effect shell around reduceSession.
type SessionStore struct {
	mu    sync.Mutex
	state SessionState
	auth  api.Auth
	log   *slog.Logger
}

func NewSessionStore(auth api.Auth, log *slog.Logger) *SessionStore {
	return &SessionStore{
		auth:  auth,
		log:   log,
		state: SessionState{Status: StatusUninitialized},
	}
}

func (s *SessionStore) dispatch(ev sessionEvent) {
	s.mu.Lock()
	s.state = reduceSession(s.state, ev)
	s.mu.Unlock()
}

// State returns a snapshot safe to read while the store keeps moving.
func (s *SessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	if state.User != nil {
		user := cloneUser(*state.User)
		state.User = &user
	}
	return state
}

// Init runs the one startup probe. A failed probe is not an error: it just
// means nobody is logged in.
func (s *SessionStore) Init(ctx context.Context) {
	s.mu.Lock()
	if s.state.Status != StatusUninitialized {
		s.mu.Unlock()
		return
	}
	s.state = reduceSession(s.state, probeStarted{})
	s.mu.Unlock()

	user, err := s.auth.ValidateSession(ctx)
	if err != nil {
		s.log.Debug("session probe found no session", slog.Any("error", err))
		s.dispatch(probeFailed{})
		return
	}
	s.dispatch(probeSucceeded{user: user})
}

func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	s.dispatch(authStarted{})
	user, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.log.Warn("login failed", slog.Any("error", err))
		s.dispatch(authFailed{message: err.Error()})
		return err
	}
	s.dispatch(authSucceeded{user: user})
	return nil
}

func (s *SessionStore) Register(ctx context.Context, req api.RegisterRequest) error {
	s.dispatch(authStarted{})
	user, err := s.auth.Register(ctx, req)
	if err != nil {
		s.log.Warn("registration failed", slog.Any("error", err))
		s.dispatch(authFailed{message: err.Error()})
		return err
	}
	s.dispatch(authSucceeded{user: user})
	return nil
}

// Logout lands in anonymous whether or not the server call went through.
// Losing the server-side cookie cleanup is preferable to a user stuck
// looking logged in.
func (s *SessionStore) Logout(ctx context.Context) {
	s.dispatch(authStarted{})
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn("logout request failed, clearing session anyway", slog.Any("error", err))
	}
	s.dispatch(loggedOut{})
}

// AppendBooking adds a freshly confirmed booking to the profile. It does
// not touch the auth status.
func (s *SessionStore) AppendBooking(b entities.Booking) {
	s.dispatch(bookingAppended{booking: b})
}

// MarkBookingCancelled flips the status of a booking in place by id.
func (s *SessionStore) MarkBookingCancelled(bookingID string) {
	s.dispatch(bookingCancelled{bookingID: bookingID})
}

// BookingByID looks up a booking in the current profile.
func (s *SessionStore) BookingByID(bookingID string) (entities.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return entities.Booking{}, false
	}
	for _, b := range s.state.User.Bookings {
		if b.BookingId == bookingID {
			return b, true
		}
	}
	return entities.Booking{}, false
}

func (s *SessionStore) ClearError() {
	s.dispatch(errorCleared{})
}
