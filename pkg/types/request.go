package types

import (
	"strings"
	"time"
)

// Format identifies the target raster image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatPPM  Format = "ppm"
	FormatJPEG Format = "jpeg"
)

// ParseFormat normalizes a user-supplied format string. The "jpg" spelling
// maps to jpeg so the denylist catches both.
func ParseFormat(s string) Format {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "jpg" {
		return FormatJPEG
	}
	return f
}

// Supported reports whether pdfraster can produce this format. JPEG is
// deliberately absent: it has no alpha channel, so pages with transparency
// would fail to encode or silently flatten.
func (f Format) Supported() bool {
	switch f {
	case FormatPNG, FormatTIFF, FormatPPM:
		return true
	}
	return false
}

// AlphaCapable reports whether the format can carry an alpha channel.
func (f Format) AlphaCapable() bool {
	switch f {
	case FormatPNG, FormatTIFF:
		return true
	}
	return false
}

// Ext returns the file extension pdftoppm uses for this format, without
// the leading dot. pdftoppm writes tiff output as .tif.
func (f Format) Ext() string {
	if f == FormatTIFF {
		return "tif"
	}
	return string(f)
}

// PdftoppmFlag returns the pdftoppm flag selecting this format. PPM is
// pdftoppm's native output and needs no flag.
func (f Format) PdftoppmFlag() string {
	switch f {
	case FormatPNG:
		return "-png"
	case FormatTIFF:
		return "-tiff"
	}
	return ""
}

// Request describes one conversion: a single PDF rasterized into one image
// per page. A Request reaches the renderer only after every pre-flight
// check has passed.
type Request struct {
	// InputPath is the source PDF. Must exist and be readable.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputDir receives the page images. Created if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DPI is the rasterization resolution. Must be positive.
	DPI int `json:"dpi" yaml:"dpi"`

	// Format is the output image encoding.
	Format Format `json:"format" yaml:"format"`

	// PopplerPath optionally names the directory holding the poppler
	// executables. Empty means resolve pdftoppm on PATH.
	PopplerPath string `json:"poppler_path,omitempty" yaml:"poppler_path,omitempty"`
}

// RunRecord is one row in the conversion history ledger.
type RunRecord struct {
	ID        string        `json:"id" yaml:"id"`
	InputPath string        `json:"input_path" yaml:"input_path"`
	OutputDir string        `json:"output_dir" yaml:"output_dir"`
	Format    Format        `json:"format" yaml:"format"`
	DPI       int           `json:"dpi" yaml:"dpi"`
	Pages     int           `json:"pages" yaml:"pages"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}
