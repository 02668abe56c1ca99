package constant

const (
	DEFAULT_BASE_URL = "http://localhost:8000/api/v1/"

	REGISTER_PATH       = "users/register"
	LOGIN_PATH          = "users/login"
	LOGOUT_PATH         = "users/logout"
	ME_PATH             = "users/me"
	EVENTS_PATH         = "events"
	CREATE_BOOKING_PATH = "bookings/create"
	BOOKING_PATH        = "bookings/%s"
	PAYMENT_INTENT_PATH = "payments/create-payment-intent"
)

const (
	MIN_QUANTITY = 1
	MAX_QUANTITY = 10
)
