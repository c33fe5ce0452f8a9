package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/pixel-bridge/internal/bridge"
	"github.com/ironsheep/pixel-bridge/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("pixel-bridge %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// Configure logging to stderr (stdout is for responses)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := bridge.ConfigFromEnv(os.Getenv)
	if cfg.Debug {
		log.Printf("Pixel bridge v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cache := imaging.NewImageCache()
	uploaded, candidate, err := cfg.Handles(cache)
	if err != nil {
		log.Fatalf("Failed to load images: %v", err)
	}
	if uploaded == nil {
		log.Printf("%s not set; uploaded image requests will fail", bridge.EnvUploaded)
	}
	if candidate == nil {
		log.Printf("%s not set; candidate image requests will fail", bridge.EnvCandidate)
	}

	b := bridge.New(uploaded, candidate, cfg.Options()...)
	go reloadOnHangup(b, cfg, cache)

	if err := b.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Bridge error: %v", err)
	}
}

// reloadOnHangup re-reads the configured images on SIGHUP, so a new upload
// written over the same path replaces the old one.
func reloadOnHangup(b *bridge.Bridge, cfg bridge.Config, cache *imaging.ImageCache) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	for range hup {
		uploaded, candidate, err := cfg.Reload(cache)
		if err != nil {
			log.Printf("Reload failed, keeping previous images: %v", err)
			continue
		}
		b.Replace(uploaded, candidate)
		log.Printf("Reloaded images")
	}
}

func printHelp() {
	fmt.Println("pixel-bridge - serve comparable RGBA pixel buffers of two images")
	fmt.Println()
	fmt.Println("Usage: pixel-bridge [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=PATH     Uploaded image file\n", bridge.EnvUploaded)
	fmt.Printf("  %s=PATH    Candidate image file, pre-drawn at native size\n", bridge.EnvCandidate)
	fmt.Printf("  %s=DIR  Write delivered buffers as PNGs\n", bridge.EnvSnapshotDir)
	fmt.Printf("  %s=true       Fail instead of delivering empty buffers\n", bridge.EnvStrict)
	fmt.Printf("  %s=debug   Enable debug logging\n", bridge.EnvLogLevel)
	fmt.Println()
	fmt.Println("Send SIGHUP to reload both image files.")
	fmt.Println()
	fmt.Println("Ports (one JSON object per line on stdin/stdout):")
	for _, def := range bridge.GetPortDefinitions() {
		fmt.Printf("  %s -> %s\n      %s\n", def.Request, def.Response, def.Description)
	}
}
