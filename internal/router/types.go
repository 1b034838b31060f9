package router

// Wire types for JSON parsing. Only the fields the monitor needs are
// declared; everything else on the wire is ignored.

// messageEnvelope is the common shape of inbound payloads.
type messageEnvelope struct {
	Type        string `json:"type"`    // "PONG" for keepalive responses
	Message     string `json:"message"` // Human text: greeting or pulse
	PointsTotal int64  `json:"pointsTotal"`
	PointsToday int64  `json:"pointsToday"`
}

// Substrings the service puts in the message field.
const (
	greetingMarker = "Connected successfully"
	pulseMarker    = "Pulse from server"
)

// Stats contains runtime routing statistics.
type Stats struct {
	Received    int64
	PointsMsgs  int64
	Pongs       int64
	ParseErrors int64
	Unknown     int64
}
