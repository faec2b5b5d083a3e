package refine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/quadra/quadrature"
	"github.com/katalvlaran/quadra/refine"
)

func square(x float64) float64 { return x * x }

// TestBuildTable_RowCounts pins the per-rule row count and first/last index.
func TestBuildTable_RowCounts(t *testing.T) {
	cases := []struct {
		kind        quadrature.Kind
		n           int
		rows        int
		first, last int
	}{
		{quadrature.Left, 8, 8, 0, 7},
		{quadrature.Right, 8, 8, 1, 8},
		{quadrature.Mid, 8, 8, 1, 8},
		{quadrature.Trapezoid, 8, 9, 0, 8},
		{quadrature.Simpson, 8, 7, 1, 7},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			table, ph, err := refine.BuildTable(tc.kind, 0, 2, tc.n, square, refine.DefaultTableLimit)
			require.NoError(t, err)
			assert.Nil(t, ph)
			require.Len(t, table.Rows, tc.rows)
			assert.Equal(t, tc.first, table.Rows[0].I)
			assert.Equal(t, tc.last, table.Rows[len(table.Rows)-1].I)
			for _, r := range table.Rows {
				assert.Equal(t, square(r.X), r.Y)
			}
		})
	}
}

// TestBuildTable_Nodes checks x values, including midpoints.
func TestBuildTable_Nodes(t *testing.T) {
	table, _, err := refine.BuildTable(quadrature.Mid, 0, 1, 4, square, 10)
	require.NoError(t, err)
	xs := make([]float64, 0, len(table.Rows))
	for _, r := range table.Rows {
		xs = append(xs, r.X)
	}
	assert.Equal(t, []float64{0.125, 0.375, 0.625, 0.875}, xs)
	assert.Equal(t, []string{"i", "x_i", "y_i"}, table.Headers)

	table, _, err = refine.BuildTable(quadrature.Trapezoid, 1, 2, 2, square, 10)
	require.NoError(t, err)
	assert.Equal(t, refine.Row{I: 2, X: 2, Y: 4}, table.Rows[2])
}

// TestBuildTable_Placeholder switches to a placeholder strictly above the limit.
func TestBuildTable_Placeholder(t *testing.T) {
	limit := refine.DefaultTableLimit
	calls := 0
	f := func(x float64) float64 { calls++; return x }

	// 500 rows: still a table.
	table, ph, err := refine.BuildTable(quadrature.Right, 0, 1, 500, f, limit)
	require.NoError(t, err)
	assert.Nil(t, ph)
	assert.Len(t, table.Rows, 500)

	// Simpson n=502 → 501 rows: placeholder, nothing sampled.
	calls = 0
	table, ph, err = refine.BuildTable(quadrature.Simpson, 0, 1, 502, f, limit)
	require.NoError(t, err)
	assert.Nil(t, table)
	require.NotNil(t, ph)
	assert.Equal(t, 501, ph.Rows)
	assert.Equal(t, limit, ph.Limit)
	assert.NotEmpty(t, ph.Message)
	assert.Zero(t, calls)

	// Trapezoid n=500 → 501 rows.
	_, ph, err = refine.BuildTable(quadrature.Trapezoid, 0, 1, 500, f, limit)
	require.NoError(t, err)
	assert.NotNil(t, ph)

	// Zero limit always yields a placeholder.
	_, ph, err = refine.BuildTable(quadrature.Left, 0, 1, 2, f, 0)
	require.NoError(t, err)
	assert.NotNil(t, ph)
}

// TestBuildTable_Errors forwards quadrature validation.
func TestBuildTable_Errors(t *testing.T) {
	_, _, err := refine.BuildTable(quadrature.Simpson, 0, 1, 5, square, 10)
	assert.ErrorIs(t, err, refine.ErrOddPartition)

	_, _, err = refine.BuildTable(quadrature.Right, 1, 0, 4, square, 10)
	assert.ErrorIs(t, err, refine.ErrInvalidBounds)

	_, _, err = refine.BuildTable(quadrature.Right, 0, 1, 4, func(x float64) float64 {
		if x == 1 {
			panic("edge")
		}
		return x
	}, 10)
	assert.ErrorIs(t, err, refine.ErrEvaluation)
}
