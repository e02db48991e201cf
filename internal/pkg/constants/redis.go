package constants

// Redis key formats for the position mirror read by the surrounding system
const (
	KeyDriverGeo      = "drivers:geo"         // GEO set of last known driver positions
	KeyDriverLocation = "driver:location:%s"  // Format: driver:location:{driver_id}
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldTimestamp = "ts"
)
