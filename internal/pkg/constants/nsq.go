package constants

// NSQ topics
const (
	// Published by the dispatch core
	TopicLocationBatch = "location.batch"
	TopicRideBatch     = "ride.status.batch"
	TopicMatchResults  = "match.results"

	// Consumed from the surrounding ride management system
	TopicRideStatus = "ride.status"
)

// DefaultChannel is the consumer channel name used by this service
const DefaultChannel = "dispatch"
