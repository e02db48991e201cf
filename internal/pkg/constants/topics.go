package constants

import "fmt"

// Fan-out topic names. Driver and passenger topics are per-entity groups,
// admin is a single group receiving every position batch.
const (
	TopicAdmin           = "admin"
	topicDriverFormat    = "driver-%s"
	topicPassengerFormat = "passenger-%s"
)

// DriverTopic returns the fan-out topic for one driver's position stream
func DriverTopic(driverID string) string {
	return fmt.Sprintf(topicDriverFormat, driverID)
}

// PassengerTopic returns the fan-out topic for one passenger's notifications
func PassengerTopic(passengerID string) string {
	return fmt.Sprintf(topicPassengerFormat, passengerID)
}
