package quadrature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/quadra/quadrature"
)

// TestParseKind_RoundTrip resolves every tag back to its Kind.
func TestParseKind_RoundTrip(t *testing.T) {
	for _, k := range quadrature.Kinds() {
		got, err := quadrature.ParseKind(" " + k.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := quadrature.ParseKind("SIMPSON")
	require.NoError(t, err)
	assert.Equal(t, quadrature.Simpson, got)

	_, err = quadrature.ParseKind("gauss")
	assert.ErrorIs(t, err, quadrature.ErrUnknownRule)
}

// TestKind_Metadata pins start counts, orders and node ranges.
func TestKind_Metadata(t *testing.T) {
	assert.Equal(t, 4, quadrature.Left.StartPartitions())
	assert.Equal(t, 4, quadrature.Right.StartPartitions())
	assert.Equal(t, 2, quadrature.Mid.StartPartitions())
	assert.Equal(t, 2, quadrature.Trapezoid.StartPartitions())
	assert.Equal(t, 2, quadrature.Simpson.StartPartitions())

	assert.Equal(t, 1, quadrature.Right.Order())
	assert.Equal(t, 2, quadrature.Trapezoid.Order())
	assert.Equal(t, 4, quadrature.Simpson.Order())

	lo, hi := quadrature.Trapezoid.NodeRange(8)
	assert.Equal(t, [2]int{0, 8}, [2]int{lo, hi})
	lo, hi = quadrature.Simpson.NodeRange(8)
	assert.Equal(t, [2]int{1, 7}, [2]int{lo, hi})
	lo, hi = quadrature.Left.NodeRange(8)
	assert.Equal(t, [2]int{0, 7}, [2]int{lo, hi})

	assert.Equal(t, 0.25, quadrature.Mid.Node(0, 0.5, 1))
	assert.Equal(t, 0.5, quadrature.Right.Node(0, 0.5, 1))
}

// TestKind_Text covers the encoding.TextMarshaler pair.
func TestKind_Text(t *testing.T) {
	b, err := quadrature.Trapezoid.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "trapezoid", string(b))

	var k quadrature.Kind
	require.NoError(t, k.UnmarshalText([]byte("mid")))
	assert.Equal(t, quadrature.Mid, k)

	_, err = quadrature.Kind(-1).MarshalText()
	assert.ErrorIs(t, err, quadrature.ErrUnknownRule)
	assert.Equal(t, "kind(-1)", quadrature.Kind(-1).String())
}
