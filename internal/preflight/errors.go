// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preflight

import "errors"

// Sentinel errors for each pre-flight failure. Callers match them with
// errors.Is; every one is terminal for the invocation that hit it.
var (
	// ErrMissingLibrary means the in-process PDF library failed its probe.
	ErrMissingLibrary = errors.New("PDF library unavailable")

	// ErrMissingExecutable means pdftoppm was not found in the given
	// poppler directory or on PATH.
	ErrMissingExecutable = errors.New("poppler utility pdftoppm not found")

	// ErrInputNotFound means the input path does not name a regular file.
	ErrInputNotFound = errors.New("input PDF does not exist")

	// ErrInputNotReadable means the input exists but cannot be opened.
	ErrInputNotReadable = errors.New("input PDF is not readable")

	// ErrOutputDirCreation means the output directory is absent and could
	// not be created.
	ErrOutputDirCreation = errors.New("cannot create output directory")

	// ErrOutputNotWritable means the output directory exists but rejects
	// writes.
	ErrOutputNotWritable = errors.New("output directory is not writable")

	// ErrUnsupportedFormat means the requested image format is outside
	// the supported set, or is denied for lacking an alpha channel.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
