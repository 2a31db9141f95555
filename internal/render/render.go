// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render drives the external rasterizer and persists one image
// per page of the input PDF under a deterministic naming scheme.
package render

import (
	"fmt"
	"time"

	"github.com/pdiddy/pdfraster/pkg/types"
)

// Renderer rasterizes a validated conversion request. The poppler-backed
// implementation is the only production backend; tests substitute fakes.
type Renderer interface {
	// Render converts the request's PDF into page images in its output
	// directory and reports what was written.
	Render(req types.Request) (*Result, error)
}

// Result holds the outcome of a successful conversion.
type Result struct {
	// Pages is the number of images written.
	Pages int

	// Paths lists the written files in page order.
	Paths []string

	// Duration is the wall-clock time the conversion took.
	Duration time.Duration
}

// ConversionError wraps any failure raised while rasterizing a document.
type ConversionError struct {
	Input string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %s: %v", e.Input, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
