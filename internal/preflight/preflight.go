// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preflight validates everything a conversion needs before the
// renderer starts: the PDF library, the poppler executable, the requested
// format, and filesystem permissions. Probes report results instead of
// terminating, so the doctor command can render a full report and the
// conversion path can stop at the first failure.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pdiddy/pdfraster/internal/pdfinfo"
	"github.com/pdiddy/pdfraster/pkg/types"
)

const pdftoppmBin = "pdftoppm"

// executor abstracts executable lookup for testing.
type executor interface {
	LookPath(file string) (string, error)
	Stat(path string) (os.FileInfo, error)
}

// osExecutor is the production executor backed by the OS.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

var defaultExec executor = osExecutor{}

// Check is the outcome of a single pre-flight probe.
type Check struct {
	// Name identifies the probe ("pdf library", "pdftoppm", ...).
	Name string

	// OK reports whether the probe passed.
	OK bool

	// Detail describes what was found when the probe passed.
	Detail string

	// Err is the failure, wrapping one of the package sentinel errors.
	Err error
}

// FirstError returns the first failure in a slice of checks, or nil.
func FirstError(checks []Check) error {
	for _, c := range checks {
		if c.Err != nil {
			return c.Err
		}
	}
	return nil
}

// CheckDependencies probes the PDF library and the pdftoppm executable.
// When popplerPath is non-empty, pdftoppm must live in that directory;
// otherwise it is resolved on PATH.
func CheckDependencies(popplerPath string) []Check {
	return checkDependencies(defaultExec, popplerPath)
}

func checkDependencies(exec executor, popplerPath string) []Check {
	checks := make([]Check, 0, 2)

	if err := pdfinfo.Probe(); err != nil {
		checks = append(checks, Check{
			Name: "pdf library",
			Err:  fmt.Errorf("%w: %v", ErrMissingLibrary, err),
		})
	} else {
		checks = append(checks, Check{
			Name:   "pdf library",
			OK:     true,
			Detail: "pdfcpu " + pdfinfo.Version(),
		})
	}

	bin := pdftoppmBin
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}

	if popplerPath != "" {
		full := filepath.Join(popplerPath, bin)
		info, err := exec.Stat(full)
		if err != nil || info.IsDir() {
			checks = append(checks, Check{
				Name: pdftoppmBin,
				Err:  fmt.Errorf("%w in %s", ErrMissingExecutable, popplerPath),
			})
			return checks
		}
		checks = append(checks, Check{Name: pdftoppmBin, OK: true, Detail: full})
		return checks
	}

	resolved, err := exec.LookPath(bin)
	if err != nil {
		checks = append(checks, Check{
			Name: pdftoppmBin,
			Err:  fmt.Errorf("%w on PATH: install poppler or pass --poppler_path", ErrMissingExecutable),
		})
		return checks
	}
	checks = append(checks, Check{Name: pdftoppmBin, OK: true, Detail: resolved})
	return checks
}

// CheckFormat rejects formats outside the supported set. The denylist is
// deliberately a short fixed set: jpeg (and its jpg spelling) carries no
// alpha channel, so transparent pages would fail to encode downstream.
func CheckFormat(format types.Format) Check {
	if format.Supported() {
		return Check{Name: "format", OK: true, Detail: string(format)}
	}
	if format == types.FormatJPEG && !format.AlphaCapable() {
		return Check{
			Name: "format",
			Err:  fmt.Errorf("%w: jpeg has no alpha channel", ErrUnsupportedFormat),
		}
	}
	return Check{
		Name: "format",
		Err:  fmt.Errorf("%w: %q (supported: png, tiff, ppm)", ErrUnsupportedFormat, string(format)),
	}
}

// CheckPermissions verifies the input PDF is a readable regular file and
// that the output directory exists (creating it if absent) and accepts
// writes. Writability is proven with a probe file rather than permission
// bits, which lie under ACLs and on network mounts.
func CheckPermissions(inputPath, outputDir string) []Check {
	checks := make([]Check, 0, 2)

	info, err := os.Stat(inputPath)
	if err != nil || info.IsDir() {
		checks = append(checks, Check{
			Name: "input",
			Err:  fmt.Errorf("%w: %s", ErrInputNotFound, inputPath),
		})
		return checks
	}
	f, err := os.Open(inputPath)
	if err != nil {
		checks = append(checks, Check{
			Name: "input",
			Err:  fmt.Errorf("%w: %s", ErrInputNotReadable, inputPath),
		})
		return checks
	}
	f.Close()
	checks = append(checks, Check{Name: "input", OK: true, Detail: inputPath})

	if info, err := os.Stat(outputDir); err == nil && !info.IsDir() {
		checks = append(checks, Check{
			Name: "output",
			Err:  fmt.Errorf("%w: %s exists and is not a directory", ErrOutputDirCreation, outputDir),
		})
		return checks
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		checks = append(checks, Check{
			Name: "output",
			Err:  fmt.Errorf("%w %s: %v", ErrOutputDirCreation, outputDir, err),
		})
		return checks
	}

	probe, err := os.CreateTemp(outputDir, ".pdfraster-probe-")
	if err != nil {
		checks = append(checks, Check{
			Name: "output",
			Err:  fmt.Errorf("%w: %s", ErrOutputNotWritable, outputDir),
		})
		return checks
	}
	probe.Close()
	os.Remove(probe.Name())

	checks = append(checks, Check{Name: "output", OK: true, Detail: outputDir})
	return checks
}

// Run executes the full pre-flight pipeline for a request: dependencies,
// then format, then permissions. It stops at the first failing stage; the
// format guard runs before the permission stage so a denied format never
// causes filesystem changes. The returned checks cover every probe that
// ran.
func Run(req types.Request) ([]Check, error) {
	return run(defaultExec, req)
}

func run(exec executor, req types.Request) ([]Check, error) {
	checks := checkDependencies(exec, req.PopplerPath)
	if err := FirstError(checks); err != nil {
		return checks, err
	}

	fc := CheckFormat(req.Format)
	checks = append(checks, fc)
	if fc.Err != nil {
		return checks, fc.Err
	}

	perms := CheckPermissions(req.InputPath, req.OutputDir)
	checks = append(checks, perms...)
	return checks, FirstError(perms)
}
