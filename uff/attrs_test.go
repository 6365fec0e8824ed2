package uff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrsWrongKindIsUnsupportedType(t *testing.T) {
	a := Attrs{"class": []string{"a", "b"}, "size": "1x2", "array": []float64{1}}

	_, err := a.Text("class")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), `"class"`)

	_, err = a.Ints("size")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "string")

	_, err = a.Text("missing")
	assert.ErrorIs(t, err, ErrAttributeNotFound)

	flag, err := a.Flag("array")
	require.NoError(t, err)
	assert.True(t, flag)
}
