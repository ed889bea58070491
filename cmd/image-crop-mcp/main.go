package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ironsheep/image-crop-mcp/internal/editor"
	"github.com/ironsheep/image-crop-mcp/internal/server"
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
			fmt.Printf("image-crop-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-crop-mcp - MCP server for interactive image cropping")
			fmt.Println()
			fmt.Println("Usage: image-crop-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_CROP_LOG_LEVEL=debug        Enable debug logging")
			fmt.Println("  IMAGE_CROP_LOG_FILE=<path>        Log to a rotating file instead of stderr")
			fmt.Println("  IMAGE_CROP_ASPECT_RATIO=<ratio>   Selection width/height, 0 for free-form (default 1)")
			fmt.Println("  IMAGE_CROP_MAX_OUTPUT_SIZE=<px>   Maximum output width and height (default 1200)")
			fmt.Println("  IMAGE_CROP_QUALITY=<0..1>         JPEG quality (default 0.7)")
			fmt.Println("  IMAGE_CROP_CIRCULAR=true          Round preview at aspect ratio 1")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if logFile := os.Getenv("IMAGE_CROP_LOG_FILE"); logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	debug := os.Getenv("IMAGE_CROP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Image Crop MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	opts := editor.OptionsFromEnv()
	opts.Verbose = debug
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	srv := server.New(opts)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
