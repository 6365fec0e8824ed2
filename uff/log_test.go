package uff

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLogsAtDebug(t *testing.T) {
	path := tempFile(t)
	mustWrite(t, path, "grid", grid(t))

	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.TraceLevel)
	SetLogger(logrus.NewEntry(l))
	defer SetLogger(nil)

	loc := mustLocation(t, path, "grid")
	require.NoError(t, loc.Open(func(*Handle) error { return nil }))

	var opened []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "opened location" {
			opened = append(opened, e)
		}
	}
	require.Len(t, opened, 1)
	assert.Equal(t, logrus.DebugLevel, opened[0].Level)
	assert.Equal(t, "/grid", opened[0].Data["path"])
}
