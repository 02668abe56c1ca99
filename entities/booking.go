package entities

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingEvent is the denormalized event summary embedded in a booking.
type BookingEvent struct {
	EventId        string         `json:"_id"`
	SportsCategory SportsCategory `json:"sportsCategory"`
	Venue          string         `json:"venue"`
	Date           string         `json:"date"`
	Time           string         `json:"time"`
	Price          float64        `json:"price"`
	Image          string         `json:"image"`
}

// Booking is a purchase record. Price is the total for the whole booking,
// always unit price times quantity. QrCodeData is generated server-side
// once and never changes.
type Booking struct {
	BookingId  string        `json:"_id"`
	UserId     string        `json:"userId"`
	Event      BookingEvent  `json:"eventId"`
	Quantity   int           `json:"quantity"`
	Price      float64       `json:"price"`
	QrCodeData string        `json:"qrCodeData"`
	Status     BookingStatus `json:"status"`
	CreatedAt  string        `json:"createdAt"`
}
