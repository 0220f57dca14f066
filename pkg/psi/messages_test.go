package psi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindset/psi/pkg/math/curve"
)

func TestValidatedConstructorsRejectEmpty(t *testing.T) {
	_, err := NewValidatedBlindedPointsMessage(nil)
	assert.ErrorIs(t, err, ErrInvalidBlindedPoints)

	_, err = NewValidatedDoubleBlindedPointsMessage([]curve.Compressed{})
	assert.ErrorIs(t, err, ErrInvalidBlindedPoints)
}

func TestValidatedConstructorsAcceptNonEmpty(t *testing.T) {
	points := []curve.Compressed{curve.Compress(curve.HashToPoint([]byte("p")))}

	m1, err := NewValidatedBlindedPointsMessage(points)
	require.NoError(t, err)
	assert.Equal(t, 1, m1.Len())
	assert.False(t, m1.IsEmpty())

	m2, err := NewValidatedDoubleBlindedPointsMessage(points)
	require.NoError(t, err)
	assert.Equal(t, 1, m2.Len())
}

func TestPlainConstructorAllowsEmpty(t *testing.T) {
	m := NewBlindedPointsMessage(nil)
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Len())
}
