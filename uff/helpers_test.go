package uff

import (
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.uff")
}

func mustWrite(t *testing.T, path, location string, v interface{}, opts ...WriteOption) {
	t.Helper()
	if err := Write(path, location, v, opts...); err != nil {
		require.FailNow(t, "write failed", "writing %s: %+v\n%s", location, err, spew.Sdump(v))
	}
}

func mustLocation(t *testing.T, path string, segments ...string) Location {
	t.Helper()
	loc, err := NewLocation(path, segments...)
	require.NoError(t, err)
	return loc
}

func mustRead(t *testing.T, path, location string) interface{} {
	t.Helper()
	v, err := ReadNode(mustLocation(t, path, location))
	require.NoError(t, err)
	return v
}

func mustGet(t *testing.T, n Node, field string) interface{} {
	t.Helper()
	v, err := n.Get(field)
	require.NoError(t, err, "getting %s.%s", n.Schema().TypeName(), field)
	return v
}

func mustFloat(t *testing.T, v interface{}) float64 {
	t.Helper()
	a, err := toArray(v)
	require.NoError(t, err)
	f, err := a.Float64()
	require.NoError(t, err)
	return f
}

func mustPoint(t *testing.T, distance, azimuth, elevation float64) *Point {
	t.Helper()
	p, err := NewPoint(Values{"distance": distance, "azimuth": azimuth, "elevation": elevation})
	require.NoError(t, err)
	return p
}

// requireEqualNodes fails with a dump of both nodes when they differ.
func requireEqualNodes(t *testing.T, want, got Node, opts ...EqualOption) {
	t.Helper()
	eq, err := Equal(want, got, opts...)
	require.NoError(t, err)
	require.True(t, eq, "nodes differ\nwant: %s\ngot:  %s\n%s", want, got, Dump(got))
}
