package entities

// User is the authenticated profile as returned by the users endpoints.
// Favorites and Bookings are always non-nil once a User leaves the api
// package, even when the server omitted them.
type User struct {
	UserId    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Favorites Favorites `json:"favorites"`
	Bookings  []Booking `json:"bookings"`
}
