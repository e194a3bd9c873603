package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Viewport width")
	flagHeight     = flag.Int("height", 0, "Viewport height")
	flagMesh       = flag.String("mesh", "", "OBJ mesh to render")
	flagScreenshot = flag.String("screenshot", "", "Render offscreen and write the frame to this path")
	flagFrames     = flag.Int("frames", 0, "Frames to render before a headless screenshot")
	flagSaveConfig = flag.String("save-config", "", "Write the merged config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SavePath returns the -save-config destination, or "" when not requested.
func SavePath() string {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagMesh != "" {
		cfg.Scene.Mesh = *flagMesh
	}
	if *flagScreenshot != "" {
		cfg.Capture.Output = *flagScreenshot
		if f := formatFromPath(*flagScreenshot); f != "" {
			cfg.Capture.Format = f
		}
	}
	if *flagFrames > 0 {
		cfg.Capture.Frames = *flagFrames
	}
}
