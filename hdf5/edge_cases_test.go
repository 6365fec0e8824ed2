package hdf5

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// === ERROR PATH TESTS ===

// TestOpenInvalidHDF5Signature tests opening files with invalid HDF5 signatures.
func TestOpenInvalidHDF5Signature(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"empty file", []byte{}},
		{"random bytes", []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}},
		{"almost valid signature", []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, 'X'}},
		{"text file", []byte("This is not an HDF5 file")},
		{"binary garbage", bytes.Repeat([]byte{0xFF}, 1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpfile, err := os.CreateTemp("", "invalid_hdf5_*.h5")
			if err != nil {
				t.Fatal(err)
			}
			defer os.Remove(tmpfile.Name())

			if len(tt.content) > 0 {
				if _, err := tmpfile.Write(tt.content); err != nil {
					t.Fatal(err)
				}
			}
			tmpfile.Close()

			_, err = Open(tmpfile.Name())
			if err == nil {
				t.Error("expected error for invalid HDF5 file")
			}
		})
	}
}

// TestOpenTruncatedFile tests opening truncated HDF5 files.
func TestOpenTruncatedFile(t *testing.T) {
	// HDF5 signature only (8 bytes) - truncated before version
	signature := []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

	tests := []struct {
		name    string
		content []byte
	}{
		{"signature only", signature},
		{"signature plus 1 byte", append(signature, 0x02)},
		{"signature plus 4 bytes", append(signature, 0x02, 0x08, 0x08, 0x00)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpfile, err := os.CreateTemp("", "truncated_hdf5_*.h5")
			if err != nil {
				t.Fatal(err)
			}
			defer os.Remove(tmpfile.Name())

			if _, err := tmpfile.Write(tt.content); err != nil {
				t.Fatal(err)
			}
			tmpfile.Close()

			_, err = Open(tmpfile.Name())
			if err == nil {
				t.Error("expected error for truncated HDF5 file")
			}
		})
	}
}

// TestOpenNonExistentFile tests opening a file that doesn't exist.
func TestOpenNonExistentFile(t *testing.T) {
	_, err := Open("/nonexistent/path/to/file.h5")
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

// TestOpenDirectory tests trying to open a directory as an HDF5 file.
func TestOpenDirectory(t *testing.T) {
	tmpdir, err := os.MkdirTemp("", "hdf5_dir_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpdir)

	_, err = Open(tmpdir)
	if err == nil {
		t.Error("expected error when opening directory as HDF5 file")
	}
}

// === EDGE CASE TESTS ===

// writeFixture creates a small file with a nested group and a 2x3 dataset and
// returns its path.
func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.h5")
	f, err := Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	outer, err := f.Root().CreateGroup("outer")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	inner, err := outer.CreateGroup("inner")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if _, err := inner.CreateDataset("values", []float64{1, 2, 3, 4, 5, 6}, WithShape(2, 3)); err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

// TestDoubleClose tests that closing a file twice is safe.
func TestDoubleClose(t *testing.T) {
	f, err := Open(writeFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

// TestOperationsAfterClose tests that opening objects on a closed file fails.
func TestOperationsAfterClose(t *testing.T) {
	f, err := Open(writeFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	f.Close()

	if _, err := f.OpenGroup("outer"); !errors.Is(err, ErrClosed) {
		t.Errorf("OpenGroup after Close: expected ErrClosed, got %v", err)
	}
	if _, err := f.OpenDataset("outer/inner/values"); !errors.Is(err, ErrClosed) {
		t.Errorf("OpenDataset after Close: expected ErrClosed, got %v", err)
	}
}

// TestOpenNonExistentMember tests opening members that do not exist.
func TestOpenNonExistentMember(t *testing.T) {
	f, err := Open(writeFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	if _, err := f.OpenDataset("outer/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing dataset, got %v", err)
	}
	if _, err := f.OpenGroup("missing/inner"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing group, got %v", err)
	}
}

// TestTraverseThroughDataset tests that a path continuing below a dataset
// fails with ErrNotGroup.
func TestTraverseThroughDataset(t *testing.T) {
	f, err := Open(writeFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	_, err = f.Root().Object("outer/inner/values/below")
	if !errors.Is(err, ErrNotGroup) {
		t.Errorf("expected ErrNotGroup, got %v", err)
	}
}

// TestRootGroupPath tests the name and path of the root group.
func TestRootGroupPath(t *testing.T) {
	f, err := Open(writeFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	root := f.Root()
	if root.Path() != "/" {
		t.Errorf("expected root path \"/\", got %q", root.Path())
	}
	if root.Name() != "/" {
		t.Errorf("expected root name \"/\", got %q", root.Name())
	}
}

// TestDeepPathAccess tests equivalent spellings of nested paths.
func TestDeepPathAccess(t *testing.T) {
	f, err := Open(writeFixture(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	for _, p := range []string{"outer/inner/values", "/outer/inner/values", "outer//inner/values"} {
		t.Run(p, func(t *testing.T) {
			ds, err := f.OpenDataset(p)
			if err != nil {
				t.Fatalf("OpenDataset(%q) failed: %v", p, err)
			}
			if ds.Path() != "/outer/inner/values" {
				t.Errorf("expected path /outer/inner/values, got %q", ds.Path())
			}
		})
	}

	inner, err := f.OpenGroup("outer/inner")
	if err != nil {
		t.Fatalf("OpenGroup failed: %v", err)
	}
	if _, err := inner.OpenDataset("values"); err != nil {
		t.Errorf("relative OpenDataset failed: %v", err)
	}
}

// TestSplitPathEdgeCases tests the splitPath function with edge cases.
func TestSplitPathEdgeCases(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"/", nil},
		{"//", nil},
		{"///", nil},
		{"foo", []string{"foo"}},
		{"/foo", []string{"foo"}},
		{"foo/", []string{"foo"}},
		{"/foo/", []string{"foo"}},
		{"foo/bar", []string{"foo", "bar"}},
		{"/foo/bar", []string{"foo", "bar"}},
		{"foo/bar/", []string{"foo", "bar"}},
		{"/foo/bar/", []string{"foo", "bar"}},
		{"foo/bar/baz", []string{"foo", "bar", "baz"}},
		{"/a/b/c/d/e/f", []string{"a", "b", "c", "d", "e", "f"}},
		{"sequence//sequence_0001", []string{"sequence", "sequence_0001"}},
	}

	for _, tt := range tests {
		t.Run("input_"+tt.input, func(t *testing.T) {
			result := splitPath(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("splitPath(%q): expected %v, got %v", tt.input, tt.expected, result)
				return
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitPath(%q)[%d]: expected %q, got %q", tt.input, i, tt.expected[i], result[i])
				}
			}
		})
	}
}

// TestMaxLinkDepthEnforcement tests that link depth limits are enforced.
func TestMaxLinkDepthEnforcement(t *testing.T) {
	// This is tested more thoroughly in hdf5_test.go with circular links
	// Just verify the constant exists and has a reasonable value
	if MaxLinkDepth < 10 {
		t.Errorf("MaxLinkDepth too small: %d", MaxLinkDepth)
	}
	if MaxLinkDepth > 10000 {
		t.Errorf("MaxLinkDepth too large: %d", MaxLinkDepth)
	}
}

// TestFilePath tests that File.Path returns the path it was opened with.
func TestFilePath(t *testing.T) {
	path := writeFixture(t)
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	if f.Path() != path {
		t.Errorf("expected path %q, got %q", path, f.Path())
	}
	if f.Version() < 2 {
		t.Errorf("expected superblock version >= 2, got %d", f.Version())
	}
}
