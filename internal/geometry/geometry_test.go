package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorOps(t *testing.T) {
	v := Vector3d{X: 3, Y: 4}
	assert.InDelta(t, 5.0, v.Length(), 1e-12)
	assert.Equal(t, UnitZ, UnitX.Cross(UnitY))
	assert.Equal(t, Vector3d{X: 6, Y: 8}, v.Scale(2))

	n, err := v.Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n.Length(), 1e-12)

	_, err = Vector3d{}.Normalize()
	assert.Error(t, err)
}

func TestLineEdge(t *testing.T) {
	p1 := Point3d{X: 2, Y: 2}
	p2 := Point3d{X: 10, Y: 2}

	e, err := NewLineEdge(p1, p2, UnitZ)
	require.NoError(t, err)
	assert.Equal(t, "line", e.Type)
	assert.InDelta(t, 8.0, e.Length(), 1e-12)
	assert.True(t, e.Mid().Equals(Point3d{X: 6, Y: 2}))

	d, err := e.Direction()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d.X, 1e-12)
	assert.False(t, math.IsNaN(d.Y))

	_, err = NewLineEdge(p1, p1, UnitZ)
	assert.Error(t, err)
}
