package features

import (
	"fmt"

	"github.com/banshee-data/motion.report/internal/motion"
)

// Burg estimates an autoregressive model of the given order with Burg's
// lattice recursion. It returns the AR coefficients a[1..order] in the
// convention
//
//	x[n] + a1*x[n-1] + ... + ap*x[n-p] = e[n]
//
// and the reflection coefficient of every stage. Reflection coefficients
// always satisfy |k| <= 1, so the model is stable.
//
// A stage whose prediction-error energy is zero cannot be estimated; its
// reflection coefficient is set to 0, the earlier stages are kept, and
// motion.ErrDegenerateRange is returned alongside the finite result.
func Burg(x []float64, order int) (ar, reflection []float64, err error) {
	n := len(x)
	if order < 1 {
		return nil, nil, fmt.Errorf("AR order must be positive, got %d", order)
	}
	if n <= order {
		return nil, nil, fmt.Errorf("AR order %d needs more than %d samples, have %d: %w",
			order, order, n, motion.ErrInsufficientData)
	}

	f := make([]float64, n) // forward prediction error
	b := make([]float64, n) // backward prediction error
	copy(f, x)
	copy(b, x)

	a := make([]float64, order+1)
	a[0] = 1
	prev := make([]float64, order+1)
	reflection = make([]float64, order)

	for m := 1; m <= order; m++ {
		var num, den float64
		for i := m; i < n; i++ {
			num += f[i] * b[i-1]
			den += f[i]*f[i] + b[i-1]*b[i-1]
		}

		var k float64
		switch {
		case den == 0 && err == nil:
			err = fmt.Errorf("AR stage %d has zero error energy: %w", m, motion.ErrDegenerateRange)
		case den != 0:
			k = -2 * num / den
		}
		reflection[m-1] = k

		// Levinson update of the polynomial.
		copy(prev, a)
		for i := 1; i <= m; i++ {
			a[i] = prev[i] + k*prev[m-i]
		}

		// Descend so b[i-1] still holds the previous stage's value.
		for i := n - 1; i >= m; i-- {
			fi := f[i]
			f[i] = fi + k*b[i-1]
			b[i] = b[i-1] + k*fi
		}
	}

	return a[1:], reflection, err
}
