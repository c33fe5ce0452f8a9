package bridge

// Port names a one-directional message channel between the bridge and the
// application core.
type Port string

// Inbound ports.
const (
	PortRequestUploadedImage  Port = "requestUploadedImage"
	PortRequestCandidateImage Port = "requestCandidateImage"
	PortRequestImageDetails   Port = "requestImageDetails"
)

// Outbound ports.
const (
	PortUploadedImage  Port = "uploadedImage"
	PortCandidateImage Port = "candidateImage"
	PortImageDetails   Port = "imageDetails"
)

// State is the lifecycle of a single inbound port's handler.
type State int

const (
	StateIdle State = iota
	StateExtracting
	StateDelivered
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExtracting:
		return "extracting"
	case StateDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// PortDefinition describes a request port and the response it is paired with.
type PortDefinition struct {
	Request     Port   `json:"request"`
	Response    Port   `json:"response"`
	Description string `json:"description"`
}

// GetPortDefinitions returns every request/response pair the bridge serves.
func GetPortDefinitions() []PortDefinition {
	return []PortDefinition{
		{
			Request:     PortRequestUploadedImage,
			Response:    PortUploadedImage,
			Description: "Record the uploaded image's natural size and return its RGBA pixels as an integer array.",
		},
		{
			Request:     PortRequestCandidateImage,
			Response:    PortCandidateImage,
			Description: "Return the candidate surface's RGBA pixels, read at the recorded uploaded size.",
		},
		{
			Request:     PortRequestImageDetails,
			Response:    PortImageDetails,
			Description: "Return the recorded dimensions and the expected payload length.",
		},
	}
}

// ResponsePort returns the outbound port paired with an inbound one.
func ResponsePort(request Port) (Port, bool) {
	for _, def := range GetPortDefinitions() {
		if def.Request == request {
			return def.Response, true
		}
	}
	return "", false
}
