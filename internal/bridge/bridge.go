package bridge

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/pixel-bridge/internal/imaging"
)

// ErrUnknownPort is returned by Handle for a request on a port the bridge
// does not listen on.
var ErrUnknownPort = errors.New("unknown port")

// Request is an inbound message. Requests carry no payload; ID is only used
// to correlate the response and log lines.
type Request struct {
	Port Port   `json:"port"`
	ID   string `json:"id,omitempty"`
}

// Response is an outbound message answering exactly one Request.
type Response struct {
	Port    Port        `json:"port"`
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload"`
}

// ImageDetails is the payload of an imageDetails response.
type ImageDetails struct {
	// Recorded is false until an uploaded image has been extracted.
	Recorded bool `json:"recorded"`

	imaging.Dimensions

	// BufferLength is the length both image payloads will have.
	BufferLength int `json:"buffer_length"`
}

// Bridge answers named image requests with pixel buffers extracted from the
// uploaded image and the candidate surface.
//
// Requests are handled one at a time, to completion, in arrival order.
type Bridge struct {
	mu sync.Mutex

	extractor *imaging.Extractor
	uploaded  imaging.ImageElement
	candidate imaging.Surface

	states   map[Port]State
	observer func(Port, State)

	strict      bool
	tracker     *imaging.Tracker
	snapshotDir string
	debug       bool
	newID       func() string
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithTracker shares an existing dimension tracker with the bridge.
func WithTracker(t *imaging.Tracker) Option {
	return func(b *Bridge) {
		b.tracker = t
	}
}

// WithStrictDimensions reports not-loaded and unrecorded dimensions as
// failures instead of delivering empty buffers.
func WithStrictDimensions(strict bool) Option {
	return func(b *Bridge) {
		b.strict = strict
	}
}

// WithSnapshotDir writes every delivered image buffer as a PNG into dir.
func WithSnapshotDir(dir string) Option {
	return func(b *Bridge) {
		b.snapshotDir = dir
	}
}

// WithDebug enables per-request debug logging.
func WithDebug(debug bool) Option {
	return func(b *Bridge) {
		b.debug = debug
	}
}

// WithStateObserver registers fn to be called on every state transition.
func WithStateObserver(fn func(Port, State)) Option {
	return func(b *Bridge) {
		b.observer = fn
	}
}

// New creates a bridge reading the uploaded image from uploaded and the
// candidate image from candidate. Either handle may be nil; requests that
// need a nil handle fail with imaging.ErrMissingElement.
func New(uploaded imaging.ImageElement, candidate imaging.Surface, opts ...Option) *Bridge {
	b := &Bridge{
		uploaded:  uploaded,
		candidate: candidate,
		states:    make(map[Port]State),
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(b)
	}
	b.extractor = imaging.NewExtractor(b.tracker, imaging.WithStrictDimensions(b.strict))
	b.tracker = b.extractor.Tracker()
	return b
}

// Tracker returns the dimension tracker shared by both extraction paths.
func (b *Bridge) Tracker() *imaging.Tracker {
	return b.tracker
}

// Replace swaps in new image handles, as happens after a new upload, and
// forgets the recorded dimensions so candidate reads wait for the next
// uploaded extraction. It waits for any in-flight request to finish.
func (b *Bridge) Replace(uploaded imaging.ImageElement, candidate imaging.Surface) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.uploaded = uploaded
	b.candidate = candidate
	b.tracker.Reset()
	if b.debug {
		log.Printf("Image handles replaced; recorded dimensions cleared")
	}
}

// Run reads one JSON request per line from r and writes one JSON response
// per line to w, until r is exhausted.
//
// A request that fails produces no response; the failure is logged and the
// next request is handled as usual.
func (b *Bridge) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp, err := b.Handle(&req)
		if err != nil {
			log.Printf("Request %s (%s) failed: %v", req.Port, req.ID, err)
			continue
		}

		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to write %s response: %w", resp.Port, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// State returns the current state of the handler for an inbound port.
func (b *Bridge) State(port Port) State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.states[port]
}

// transition must be called with b.mu held.
func (b *Bridge) transition(port Port, s State) {
	b.states[port] = s
	if b.debug {
		log.Printf("%s -> %s", port, s)
	}
	if b.observer != nil {
		b.observer(port, s)
	}
}
