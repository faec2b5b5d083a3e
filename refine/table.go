// SPDX-License-Identifier: MIT

package refine

import (
	"fmt"

	"github.com/katalvlaran/quadra/quadrature"
)

// Column headers of a SampleTable.
var (
	rectangleHeaders = []string{"i", "x_i", "y_i"}
	nodeHeaders      = []string{"i", "x_i", "f(x_i)"}
)

// BuildTable lists the sample points of rule kind on n subintervals of
// [a, b]:
//
//	Left       i = 0..n-1
//	Right/Mid  i = 1..n
//	Trapezoid  i = 0..n
//	Simpson    i = 1..n-1
//
// When the row count exceeds limit, no row is computed and a Placeholder
// is returned instead. Exactly one of the two return values is non-nil on
// success.
func BuildTable(kind quadrature.Kind, a, b float64, n int, f func(float64) float64, limit int) (*SampleTable, *Placeholder, error) {
	if err := quadrature.Validate(kind, a, b, n); err != nil {
		return nil, nil, err
	}

	lo, hi := kind.NodeRange(n)
	rows := hi - lo + 1
	if rows > limit {
		return nil, &Placeholder{
			Rows:    rows,
			Limit:   limit,
			Message: fmt.Sprintf("n=%d is too large: %d rows exceed the %d-row table limit", n, rows, limit),
		}, nil
	}

	headers := nodeHeaders
	switch kind {
	case quadrature.Left, quadrature.Right, quadrature.Mid:
		headers = rectangleHeaders
	}

	h := (b - a) / float64(n)
	t := &SampleTable{
		Headers: append([]string(nil), headers...),
		Rows:    make([]Row, 0, rows),
	}
	for i := lo; i <= hi; i++ {
		x := kind.Node(a, h, i)
		y, err := quadrature.Sample(f, x)
		if err != nil {
			return nil, nil, err
		}
		t.Rows = append(t.Rows, Row{I: i, X: x, Y: y})
	}

	return t, nil, nil
}
