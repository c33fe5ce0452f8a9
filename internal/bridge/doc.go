// Package bridge serves raw pixel buffers of two images to an application
// core over a named request/response channel.
//
// # Protocol
//
// The bridge communicates over stdio using one JSON object per line:
//   - Input: {"port": "<request port>", "id": "<optional correlation id>"}
//   - Output: {"port": "<response port>", "id": "<same id>", "payload": ...}
//
// Ports:
//   - requestUploadedImage -> uploadedImage: RGBA bytes as an integer array
//   - requestCandidateImage -> candidateImage: RGBA bytes as an integer array
//   - requestImageDetails -> imageDetails: recorded width/height
//
// requestUploadedImage records the uploaded image's dimensions;
// requestCandidateImage reads the candidate at those dimensions, so it
// should follow at least one requestUploadedImage. Without one it returns an
// empty array.
//
// # Ordering
//
// Requests are handled sequentially, each to completion, so responses come
// out in the order their requests went in.
//
// # Error Handling
//
// There is no error response. A request that fails (missing image handle,
// read outside the candidate surface) is logged to stderr and gets no
// response at all. Lines that are not valid JSON and unknown ports are
// logged and skipped.
//
// # Usage
//
//	uploaded, candidate, err := cfg.Handles(imaging.NewImageCache())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b := bridge.New(uploaded, candidate, cfg.Options()...)
//	if err := b.Run(os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package bridge
