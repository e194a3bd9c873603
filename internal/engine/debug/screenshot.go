// Package debug provides frame capture and frame timing utilities.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Format is an image encoding for captures.
type Format string

// Supported capture formats.
const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ErrUnknownFormat is returned for an unsupported capture format.
var ErrUnknownFormat = errors.New("unknown screenshot format")

// ParseFormat accepts "png" or "bmp" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatBMP:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// ScreenshotCapture writes timestamped captures into a directory.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    Format
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string, format Format) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// GenerateFilename returns the path the next capture would be written to.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.%s", sc.prefix, timestamp, sc.format)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// CaptureFromImage writes img and returns the file path.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	filename := sc.GenerateFilename()
	if err := SaveImage(filename, img, sc.format); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveImage writes img to path.
func SaveImage(path string, img image.Image, f Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", f, err)
	}
	return file.Close()
}
