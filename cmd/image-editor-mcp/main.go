package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/ironsheep/image-editor-mcp/internal/config"
	"github.com/ironsheep/image-editor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	out := os.Stderr
	fmt.Fprintln(out, "image-editor-mcp - MCP server for interactive image cropping and adjustment")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage: image-editor-mcp [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration is read from image-editor.toml in the working directory or")
	fmt.Fprintln(out, "$HOME/.config/image-editor-mcp. Environment variables override it:")
	fmt.Fprintln(out, "  IMAGE_EDITOR_LOG_LEVEL=debug          Enable debug logging")
	fmt.Fprintln(out, "  IMAGE_EDITOR_LOG_FORMAT=console       Human-readable logs")
	fmt.Fprintln(out, "  IMAGE_EDITOR_CROP_MIN_SIZE=20         Smallest crop side in pixels")
	fmt.Fprintln(out, "  IMAGE_EDITOR_CROP_HIT_TOLERANCE=15    Handle grab distance in pixels")
	fmt.Fprintln(out, "  IMAGE_EDITOR_OVERLAY_COLOR=#ffffff    Selection outline color")
	fmt.Fprintln(out, "  IMAGE_EDITOR_OVERLAY_SHADE=0.5        Darkening outside the selection")
	fmt.Fprintln(out, "  IMAGE_EDITOR_EXPORT_JPEG_QUALITY=95   JPEG export quality")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "This server communicates via MCP protocol over stdin/stdout.")
	fmt.Fprintln(out, "Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	var (
		showVersion bool
		configPath  string
	)
	flag.BoolVarP(&showVersion, "version", "v", false, "Print version information")
	flag.StringVarP(&configPath, "config", "c", "", "Path to a TOML config file")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("image-editor-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "image-editor-mcp: %v\n", err)
		os.Exit(1)
	}

	// stdout is for MCP protocol
	if err := config.SetupLogging(os.Stderr, cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "image-editor-mcp: %v\n", err)
		os.Exit(1)
	}

	overlay, err := cfg.OverlayStyle()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid overlay style")
	}

	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("starting image editor MCP server")

	srv := server.New(server.Options{
		Crop:    cfg.CropSession(),
		Overlay: overlay,
		Encode:  cfg.EncodeOptions(),
		Version: Version,
	})
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
