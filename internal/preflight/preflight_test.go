// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/pdfraster/pkg/types"
)

// mockExecutor resolves binaries from configured maps.
type mockExecutor struct {
	pathBins map[string]string // binary name -> resolved path on PATH
	files    map[string]bool   // absolute path -> exists as regular file
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if p, ok := m.pathBins[file]; ok {
		return p, nil
	}
	return "", errors.New("not found: " + file)
}

type fakeFileInfo struct{ dir bool }

func (f fakeFileInfo) Name() string       { return "pdftoppm" }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0o755 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.dir }
func (f fakeFileInfo) Sys() any           { return nil }

func (m *mockExecutor) Stat(path string) (os.FileInfo, error) {
	if m.files[path] {
		return fakeFileInfo{}, nil
	}
	return nil, os.ErrNotExist
}

func TestCheckDependencies(t *testing.T) {
	tests := []struct {
		name        string
		exec        *mockExecutor
		popplerPath string
		wantErr     error
		wantDetail  string
	}{
		{
			name:       "pdftoppm on PATH",
			exec:       &mockExecutor{pathBins: map[string]string{"pdftoppm": "/usr/bin/pdftoppm"}},
			wantDetail: "/usr/bin/pdftoppm",
		},
		{
			name:    "pdftoppm missing from PATH",
			exec:    &mockExecutor{},
			wantErr: ErrMissingExecutable,
		},
		{
			name:        "pdftoppm in poppler dir",
			exec:        &mockExecutor{files: map[string]bool{filepath.Join("/opt/poppler/bin", "pdftoppm"): true}},
			popplerPath: "/opt/poppler/bin",
			wantDetail:  filepath.Join("/opt/poppler/bin", "pdftoppm"),
		},
		{
			name:        "pdftoppm absent from poppler dir",
			exec:        &mockExecutor{pathBins: map[string]string{"pdftoppm": "/usr/bin/pdftoppm"}},
			popplerPath: "/opt/empty",
			wantErr:     ErrMissingExecutable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := checkDependencies(tt.exec, tt.popplerPath)

			if len(checks) != 2 {
				t.Fatalf("got %d checks, want 2 (library + executable)", len(checks))
			}
			if !checks[0].OK {
				t.Errorf("library probe failed: %v", checks[0].Err)
			}

			execCheck := checks[1]
			if tt.wantErr != nil {
				if execCheck.OK {
					t.Fatal("expected executable probe failure")
				}
				if !errors.Is(execCheck.Err, tt.wantErr) {
					t.Errorf("error = %v, want %v", execCheck.Err, tt.wantErr)
				}
				return
			}
			if !execCheck.OK {
				t.Fatalf("unexpected failure: %v", execCheck.Err)
			}
			if execCheck.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", execCheck.Detail, tt.wantDetail)
			}
		})
	}
}

func TestCheckFormat(t *testing.T) {
	tests := []struct {
		format     string
		wantErr    bool
		wantDetail string
	}{
		{format: "png"},
		{format: "PNG"},
		{format: "tiff"},
		{format: "ppm"},
		{format: "jpeg", wantErr: true, wantDetail: "alpha"},
		{format: "jpg", wantErr: true, wantDetail: "alpha"},
		{format: "webp", wantErr: true},
		{format: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			c := CheckFormat(types.ParseFormat(tt.format))
			if tt.wantErr {
				if c.OK {
					t.Fatal("expected rejection")
				}
				if !errors.Is(c.Err, ErrUnsupportedFormat) {
					t.Errorf("error = %v, want ErrUnsupportedFormat", c.Err)
				}
				if tt.wantDetail != "" && !strings.Contains(c.Err.Error(), tt.wantDetail) {
					t.Errorf("error %q does not mention %q", c.Err, tt.wantDetail)
				}
				return
			}
			if !c.OK {
				t.Fatalf("unexpected rejection: %v", c.Err)
			}
		})
	}
}

// writePDF drops a placeholder input file and returns its path.
func writePDF(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckPermissions(t *testing.T) {
	t.Run("valid input and existing output dir", func(t *testing.T) {
		dir := t.TempDir()
		checks := CheckPermissions(writePDF(t, dir), dir)
		if err := FirstError(checks); err != nil {
			t.Fatalf("unexpected failure: %v", err)
		}
	})

	t.Run("creates missing output dir", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "out", "pages")
		checks := CheckPermissions(writePDF(t, dir), out)
		if err := FirstError(checks); err != nil {
			t.Fatalf("unexpected failure: %v", err)
		}
		info, err := os.Stat(out)
		if err != nil || !info.IsDir() {
			t.Errorf("output directory was not created: %v", err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		dir := t.TempDir()
		checks := CheckPermissions(filepath.Join(dir, "absent.pdf"), dir)
		if !errors.Is(FirstError(checks), ErrInputNotFound) {
			t.Errorf("error = %v, want ErrInputNotFound", FirstError(checks))
		}
	})

	t.Run("input is a directory", func(t *testing.T) {
		dir := t.TempDir()
		checks := CheckPermissions(dir, dir)
		if !errors.Is(FirstError(checks), ErrInputNotFound) {
			t.Errorf("error = %v, want ErrInputNotFound", FirstError(checks))
		}
	})

	t.Run("unreadable input", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("permission bits do not bind root")
		}
		dir := t.TempDir()
		path := writePDF(t, dir)
		if err := os.Chmod(path, 0o000); err != nil {
			t.Fatal(err)
		}
		checks := CheckPermissions(path, dir)
		if !errors.Is(FirstError(checks), ErrInputNotReadable) {
			t.Errorf("error = %v, want ErrInputNotReadable", FirstError(checks))
		}
	})

	t.Run("output path is a file", func(t *testing.T) {
		dir := t.TempDir()
		input := writePDF(t, dir)
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		checks := CheckPermissions(input, blocker)
		if !errors.Is(FirstError(checks), ErrOutputDirCreation) {
			t.Errorf("error = %v, want ErrOutputDirCreation", FirstError(checks))
		}
	})

	t.Run("read-only output dir", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("permission bits do not bind root")
		}
		dir := t.TempDir()
		input := writePDF(t, dir)
		out := filepath.Join(dir, "frozen")
		if err := os.Mkdir(out, 0o555); err != nil {
			t.Fatal(err)
		}
		checks := CheckPermissions(input, out)
		if !errors.Is(FirstError(checks), ErrOutputNotWritable) {
			t.Errorf("error = %v, want ErrOutputNotWritable", FirstError(checks))
		}
	})
}

func TestRunStopsBeforeFilesystemChangesOnBadFormat(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	req := types.Request{
		InputPath: writePDF(t, dir),
		OutputDir: out,
		DPI:       150,
		Format:    types.ParseFormat("jpeg"),
	}

	exec := &mockExecutor{pathBins: map[string]string{"pdftoppm": "/usr/bin/pdftoppm"}}
	_, err := run(exec, req)

	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output directory was created despite denied format")
	}
}
