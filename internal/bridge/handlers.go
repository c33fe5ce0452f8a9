package bridge

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ironsheep/pixel-bridge/internal/imaging"
)

// Handle dispatches req to the handler for its port and returns the paired
// response. A request without an ID is assigned one.
//
// On failure no response is produced and the port's handler returns to
// StateIdle.
func (b *Bridge) Handle(req *Request) (*Response, error) {
	if req.ID == "" {
		req.ID = b.newID()
	}

	out, ok := ResponsePort(req.Port)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPort, req.Port)
	}

	switch req.Port {
	case PortRequestUploadedImage:
		return b.deliverImage(req, out, func() (imaging.PixelBuffer, error) {
			return b.extractor.ExtractUploaded(b.uploaded)
		})
	case PortRequestCandidateImage:
		return b.deliverImage(req, out, func() (imaging.PixelBuffer, error) {
			return b.extractor.ExtractCandidate(b.candidate)
		})
	default:
		return b.deliverDetails(req, out)
	}
}

// RequestUploadedImage extracts the uploaded image and returns the
// uploadedImage response.
func (b *Bridge) RequestUploadedImage() (*Response, error) {
	return b.Handle(&Request{Port: PortRequestUploadedImage})
}

// RequestCandidateImage extracts the candidate image at the recorded
// dimensions and returns the candidateImage response. RequestUploadedImage
// is expected to have completed at least once before.
func (b *Bridge) RequestCandidateImage() (*Response, error) {
	return b.Handle(&Request{Port: PortRequestCandidateImage})
}

// RequestImageDetails returns the imageDetails response describing the
// recorded dimensions.
func (b *Bridge) RequestImageDetails() (*Response, error) {
	return b.Handle(&Request{Port: PortRequestImageDetails})
}

func (b *Bridge) deliverImage(req *Request, out Port, extract func() (imaging.PixelBuffer, error)) (*Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.transition(req.Port, StateExtracting)
	buf, err := extract()
	if err != nil {
		b.transition(req.Port, StateIdle)
		return nil, err
	}

	resp := &Response{
		Port:    out,
		ID:      req.ID,
		Payload: buf.Sequence(),
	}
	b.transition(req.Port, StateDelivered)

	b.afterDelivery(resp, buf)
	b.transition(req.Port, StateIdle)

	return resp, nil
}

func (b *Bridge) deliverDetails(req *Request, out Port) (*Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.transition(req.Port, StateExtracting)
	d, recorded := b.tracker.Dimensions()
	resp := &Response{
		Port: out,
		ID:   req.ID,
		Payload: ImageDetails{
			Recorded:     recorded,
			Dimensions:   d,
			BufferLength: d.BufferLen(),
		},
	}
	b.transition(req.Port, StateDelivered)
	b.transition(req.Port, StateIdle)

	return resp, nil
}

// afterDelivery logs and snapshots a delivered buffer. Failures here never
// affect the response.
func (b *Bridge) afterDelivery(resp *Response, buf imaging.PixelBuffer) {
	if b.debug {
		s := imaging.Summarize(buf)
		log.Printf("Delivering %s (%s): %d bytes, mean %s, alpha %d",
			resp.Port, resp.ID, s.Length, s.MeanColor, s.MeanAlpha)
	}

	if b.snapshotDir == "" || len(buf) == 0 {
		return
	}
	d, _ := b.tracker.Dimensions()
	path := filepath.Join(b.snapshotDir, snapshotName(resp.Port, resp.ID, b.newID))
	if err := imaging.SaveSnapshot(path, buf, d); err != nil {
		log.Printf("Snapshot of %s (%s) failed: %v", resp.Port, resp.ID, err)
	}
}

// snapshotName returns the file name for a delivered buffer. IDs come from
// the client, so any ID that is not a plain file name component is replaced
// by a generated one to keep the file inside the snapshot directory.
func snapshotName(port Port, id string, newID func() string) string {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || filepath.Base(id) != id {
		id = newID()
	}
	return fmt.Sprintf("%s-%s.png", port, id)
}
