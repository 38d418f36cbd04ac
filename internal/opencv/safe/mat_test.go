package safe

import (
	"testing"

	apperrors "image-enhancer/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestCloseInvalidatesAndIsIdempotent(t *testing.T) {
	m, err := NewMat(4, 6, gocv.MatTypeCV8UC1)
	require.NoError(t, err)

	assert.True(t, m.IsValid())
	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, 6, m.Cols())

	m.Close()
	m.Close()

	assert.False(t, m.IsValid())
	assert.True(t, m.Empty())
	assert.Zero(t, m.Rows())

	_, err = m.Clone()
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	m, err := NewMatFromScalar(gocv.NewScalar(10, 0, 0, 0), 3, 3, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	defer m.Close()

	c, err := m.Clone()
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.SetUCharAt(1, 1, 200))

	v, err := m.GetUCharAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(10), v)
	assert.NotEqual(t, m.ID(), c.ID())
}

func TestAccessorsCheckBounds(t *testing.T) {
	m, err := NewMat(2, 2, gocv.MatTypeCV8UC3)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.GetUCharAt(2, 0)
	assert.Error(t, err)
	_, err = m.GetUCharAt3(0, 0, 3)
	assert.Error(t, err)
	assert.NoError(t, m.SetUCharAt3(1, 1, 2, 9))
}

func TestValidateMatForOperation(t *testing.T) {
	assert.ErrorIs(t, ValidateMatForOperation(nil, "median"), apperrors.ErrMissingImage)

	f32, err := NewMat(2, 2, gocv.MatTypeCV32F)
	require.NoError(t, err)
	defer f32.Close()
	err = ValidateMatForOperation(f32, "median")
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)
	assert.Equal(t, "image", apperrors.Field(err))

	_, err = NewMat(0, 5, gocv.MatTypeCV8UC1)
	assert.Error(t, err)
}

func TestAdoptRejectsEmptyMat(t *testing.T) {
	_, err := Adopt(gocv.NewMat())
	assert.Error(t, err)
}
