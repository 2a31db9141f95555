// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfinfo wraps the in-process PDF library (pdfcpu). The renderer
// uses it to validate input documents and learn their page count before
// the external rasterizer runs.
package pdfinfo

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Probe verifies that the PDF library is operational. A compiled-in
// library cannot go missing the way a dynamic import can, so this probe
// exercises its configuration path instead and exists so the doctor
// report can show the library alongside the external executable.
func Probe() error {
	if conf := model.NewDefaultConfiguration(); conf == nil {
		return fmt.Errorf("pdfcpu default configuration unavailable")
	}
	return nil
}

// Version returns the PDF library version string.
func Version() string {
	return model.VersionStr
}

// PageCount validates the document at path and returns its page count.
// Corrupt or non-PDF input fails here, before any rasterization work.
func PageCount(path string) (int, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return 0, fmt.Errorf("validating %s: %w", path, err)
	}
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading page count of %s: %w", path, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s contains no pages", path)
	}
	return n, nil
}
