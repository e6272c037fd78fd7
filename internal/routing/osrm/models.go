package osrm

// osrmResponse is the wire format of the OSRM route endpoint.
type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

// osrmRoute carries the metrics for a single route alternative.
type osrmRoute struct {
	// Duration is the travel time in seconds.
	Duration float64 `json:"duration"`
	// Distance is the travel distance in meters.
	Distance float64 `json:"distance"`
}

// codeOk is the OSRM success code; anything else means no usable route.
const codeOk = "Ok"
