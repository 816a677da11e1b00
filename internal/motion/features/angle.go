package features

import (
	"math"

	"github.com/banshee-data/motion.report/internal/motion"
)

// zeroNorm is the length below which a vector has no usable direction.
const zeroNorm = 1e-12

// Angle returns the angle in radians between a and b. An operand shorter
// than zeroNorm yields (0, motion.ErrZeroVector).
func Angle(a, b motion.Vec3) (float64, error) {
	na, nb := a.Norm(), b.Norm()
	if na < zeroNorm || nb < zeroNorm {
		return 0, motion.ErrZeroVector
	}
	c := a.Dot(b) / (na * nb)
	return math.Acos(math.Max(-1, math.Min(1, c))), nil
}

// Unit axis vectors.
var (
	UnitX = motion.Vec3{1, 0, 0}
	UnitY = motion.Vec3{0, 1, 0}
	UnitZ = motion.Vec3{0, 0, 1}
)
