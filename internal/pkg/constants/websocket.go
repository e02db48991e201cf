package constants

// WebSocket event types
const (
	// Common events
	EventError = "error"

	// Client commands
	EventLocationUpdate    = "update_location"
	EventSubscribeDriver   = "subscribe_driver"
	EventUnsubscribeDriver = "unsubscribe_driver"
	EventSubscribeAdmin    = "subscribe_admin"

	// Server pushes
	EventDriverPositions = "driver_positions"
	EventRideStatus      = "ride_status"
	EventSubscribed      = "subscribed"
)

// WebSocket error codes
const (
	ErrorInvalidFormat   = "invalid_format"
	ErrorInvalidLocation = "invalid_location"
	ErrorUnauthorized    = "unauthorized"
	ErrorInternalError   = "internal_error"
)
