package decimal

import "strings"

// RoundingMode determines how a result is rounded when it has more
// digits than the context precision allows, or when it is rescaled to
// a smaller scale.
type RoundingMode uint8

const (
	// HalfEven rounds to the nearest value; ties go to the value with an
	// even last digit. This is the default mode.
	HalfEven RoundingMode = iota

	// HalfUp rounds to the nearest value; ties go away from zero.
	HalfUp

	// HalfDown rounds to the nearest value; ties go toward zero.
	HalfDown

	// Up rounds away from zero.
	Up

	// Down rounds toward zero (truncates).
	Down

	// Ceiling rounds toward positive infinity.
	Ceiling

	// Floor rounds toward negative infinity.
	Floor
)

// String implements the [fmt.Stringer] interface.
func (r RoundingMode) String() string {
	switch r {
	case HalfEven:
		return "half-even"
	case HalfUp:
		return "half-up"
	case HalfDown:
		return "half-down"
	case Up:
		return "up"
	case Down:
		return "down"
	case Ceiling:
		return "ceiling"
	case Floor:
		return "floor"
	}
	return "unknown"
}

// needsInc reports whether a truncated result must be incremented by one
// unit in the last place. It is consulted only when nonzero digits were
// discarded. hcmp compares the discarded remainder against half a unit
// in the last place, odd reports whether the truncated result has an odd
// last digit, and neg is the sign of the full result.
func (r RoundingMode) needsInc(hcmp int, odd, neg bool) bool {
	switch r {
	case HalfEven:
		return hcmp > 0 || (hcmp == 0 && odd)
	case HalfUp:
		return hcmp >= 0
	case HalfDown:
		return hcmp > 0
	case Up:
		return true
	case Down:
		return false
	case Ceiling:
		return !neg
	case Floor:
		return neg
	}
	return false
}

// Flags is a bitmask of exceptional conditions signaled by an operation.
// Operations accumulate flags; they are never cleared implicitly.
//
// Flags implements the error interface so that a set of trapped
// conditions can be returned as an error.
type Flags uint8

const (
	// Inexact is signaled when nonzero digits were discarded during
	// rounding.
	Inexact Flags = 1 << iota

	// Rounded is signaled when the coefficient was shortened to fit the
	// precision, whether or not digits were lost.
	Rounded

	// Overflow is signaled when the rounded result would have an
	// exponent larger than the format allows. The result is an infinity.
	Overflow

	// Underflow is signaled when a result is both tiny and inexact.
	Underflow

	// Clamped is signaled when the exponent of a result was constrained
	// to the representable range.
	Clamped

	// DivisionByZero is signaled on division of a nonzero value by zero.
	// The result is an infinity.
	DivisionByZero

	// InvalidOperation is signaled on undefined operations, such as
	// 0/0 or ∞ - ∞, and on any operation involving a signaling NaN.
	// The result is a NaN.
	InvalidOperation

	// Subnormal is signaled when a result has, before rounding, an
	// exponent below the smallest normal exponent.
	Subnormal
)

var flagNames = [...]string{
	"inexact",
	"rounded",
	"overflow",
	"underflow",
	"clamped",
	"division by zero",
	"invalid operation",
	"subnormal",
}

// String implements the [fmt.Stringer] interface.
func (f Flags) String() string {
	if f == 0 {
		return "no flags"
	}
	var b strings.Builder
	for i, name := range flagNames {
		if f&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
	}
	return b.String()
}

// Error implements the error interface.
func (f Flags) Error() string {
	return "decimal: " + f.String()
}

// Is reports whether target shares a condition with f, so that
// [errors.Is] matches a trapped error against a single flag even when
// several conditions were trapped at once.
func (f Flags) Is(target error) bool {
	t, ok := target.(Flags)
	return ok && f&t != 0
}

// Has reports whether all conditions in mask are set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Any reports whether at least one condition in mask is set.
func (f Flags) Any(mask Flags) bool {
	return f&mask != 0
}

// Accumulate merges the conditions of g into f. It allows a caller to
// collect the flags of a sequence of operations in one place.
func (f *Flags) Accumulate(g Flags) {
	*f |= g
}

// Context carries the parameters that govern an operation: the working
// precision, the rounding mode, and the set of trapped conditions.
// The zero value is not usable; start from [DefaultContext].
type Context struct {
	// Precision is the maximum number of significant digits a result
	// may carry. It is capped at the coefficient capacity of the format
	// the operation produces.
	Precision int

	// Rounding selects how excess digits are discarded.
	Rounding RoundingMode

	// Traps is the set of conditions that cause an operation to return
	// an error in addition to signaling the flag. The numeric result is
	// still returned.
	Traps Flags
}

// DefaultContext is the context used by the convenience methods that do
// not take an explicit context. The precision is capped at the format
// capacity, halves round to even, and only the conditions that produce
// a non-finite result are trapped.
var DefaultContext = Context{
	Precision: 0, // 0 means full format capacity
	Rounding:  HalfEven,
	Traps:     InvalidOperation | DivisionByZero | Overflow,
}

// WithPrecision returns a copy of the context with the given precision.
func (c Context) WithPrecision(prec int) Context {
	c.Precision = prec
	return c
}

// WithRounding returns a copy of the context with the given rounding mode.
func (c Context) WithRounding(r RoundingMode) Context {
	c.Rounding = r
	return c
}

// WithTraps returns a copy of the context with the given trap set.
func (c Context) WithTraps(traps Flags) Context {
	c.Traps = traps
	return c
}

// prec returns the effective working precision for a format whose
// coefficient holds at most cap digits.
func (c Context) prec(cap int) int {
	if c.Precision <= 0 || c.Precision > cap {
		return cap
	}
	return c.Precision
}

// trap returns flags as an error when any of them is trapped.
func (c Context) trap(f Flags) error {
	if t := f & c.Traps; t != 0 {
		return t
	}
	return nil
}
