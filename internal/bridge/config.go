package bridge

import (
	"strconv"
	"strings"

	"github.com/ironsheep/pixel-bridge/internal/imaging"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvUploaded    = "PIXEL_BRIDGE_UPLOADED"
	EnvCandidate   = "PIXEL_BRIDGE_CANDIDATE"
	EnvLogLevel    = "PIXEL_BRIDGE_LOG_LEVEL"
	EnvSnapshotDir = "PIXEL_BRIDGE_SNAPSHOT_DIR"
	EnvStrict      = "PIXEL_BRIDGE_STRICT"
)

// Config is the runtime configuration of the bridge process.
type Config struct {
	// UploadedPath is the image file standing in for the uploaded image.
	UploadedPath string

	// CandidatePath is the image file pre-drawn onto the candidate canvas at
	// its native size.
	CandidatePath string

	// SnapshotDir, when set, receives a PNG of every delivered buffer.
	SnapshotDir string

	Debug  bool
	Strict bool
}

// ConfigFromEnv builds a Config using getenv, typically os.Getenv.
// Unparseable booleans read as false.
func ConfigFromEnv(getenv func(string) string) Config {
	strict, _ := strconv.ParseBool(strings.TrimSpace(getenv(EnvStrict)))
	return Config{
		UploadedPath:  getenv(EnvUploaded),
		CandidatePath: getenv(EnvCandidate),
		SnapshotDir:   getenv(EnvSnapshotDir),
		Debug:         strings.EqualFold(getenv(EnvLogLevel), "debug"),
		Strict:        strict,
	}
}

// Options converts the config to bridge options.
func (c Config) Options() []Option {
	return []Option{
		WithDebug(c.Debug),
		WithStrictDimensions(c.Strict),
		WithSnapshotDir(c.SnapshotDir),
	}
}

// Handles loads the configured images through cache and returns the
// uploaded element and candidate surface. An unconfigured path yields a nil
// handle.
func (c Config) Handles(cache *imaging.ImageCache) (imaging.ImageElement, imaging.Surface, error) {
	var (
		uploaded  imaging.ImageElement
		candidate imaging.Surface
	)

	if c.UploadedPath != "" {
		img, err := cache.Load(c.UploadedPath)
		if err != nil {
			return nil, nil, err
		}
		uploaded = imaging.NewImageRef(img)
	}

	if c.CandidatePath != "" {
		img, err := cache.Load(c.CandidatePath)
		if err != nil {
			return nil, nil, err
		}
		candidate = imaging.NewCanvasFromImage(img)
	}

	return uploaded, candidate, nil
}

// Reload evicts the configured paths from cache and loads them again, so
// files rewritten on disk since the last load are picked up.
func (c Config) Reload(cache *imaging.ImageCache) (imaging.ImageElement, imaging.Surface, error) {
	for _, path := range []string{c.UploadedPath, c.CandidatePath} {
		if path != "" {
			cache.Evict(path)
		}
	}
	return c.Handles(cache)
}
