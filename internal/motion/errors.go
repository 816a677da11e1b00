package motion

import "errors"

// Error kinds reported by the pipeline stages. Every kind is local to one
// window or one feature; callers match them with errors.Is.
var (
	// ErrInsufficientData means fewer samples than a window or batch needs.
	// The collector should keep buffering and retry.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateTimestamp means two consecutive samples share a
	// timestamp, so a derivative is undefined. The window is dropped.
	ErrDegenerateTimestamp = errors.New("degenerate timestamp")

	// ErrNonFiniteSample means a window holds a NaN or infinite reading.
	// The window is dropped.
	ErrNonFiniteSample = errors.New("non-finite sample")

	// ErrZeroVector means an angle operand has zero magnitude. The angle
	// feature is replaced by 0.
	ErrZeroVector = errors.New("zero vector")

	// ErrDegenerateRange means a statistic's range or denominator is zero.
	// The affected feature is replaced by 0.
	ErrDegenerateRange = errors.New("degenerate range")
)
