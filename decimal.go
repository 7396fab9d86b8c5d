package decimal

import (
	"errors"
	"fmt"
)

// form classifies a decimal value.
type form uint8

const (
	finite   form = iota // ordinary number
	infinite             // ±∞
	qnan                 // quiet NaN
	snan                 // signaling NaN
)

// Decimal is a fixed-width decimal floating-point number equal to
//
//	(-1)^neg × coef × 10^(-scale)
//
// where C is the unsigned coefficient primitive and the scale is the
// number of digits after the decimal point, between 0 and [Decimal.MaxScale].
// Besides finite numbers a Decimal can hold ±∞, a quiet NaN, or a
// signaling NaN.
//
// The zero value is the finite number 0 and is safe to use.
// Decimal values are immutable; all methods return new values.
type Decimal[C coefficient[C]] struct {
	coef  C     // absolute value of the coefficient; NaN payload for NaNs
	scale int16 // number of digits after the decimal point
	neg   bool  // indicator of the negative sign
	form  form  // finite, infinite, or NaN
}

// Decimal64, Decimal128, and Decimal256 are the supported widths, holding
// up to 19, 38, and 77 digits of their coefficients.
type (
	Decimal64  = Decimal[Uint64]
	Decimal128 = Decimal[Uint128]
	Decimal256 = Decimal[Uint256]
)

var (
	// ErrEmptyInput is returned when parsing an empty string.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidDigit is returned when parsing encounters an unexpected
	// character.
	ErrInvalidDigit = errors.New("invalid digit")

	// ErrExponentRange is returned when a parsed exponent does not fit
	// the format.
	ErrExponentRange = errors.New("exponent out of range")

	// ErrCoefficientOverflow is returned when a coefficient does not fit
	// the format's digit capacity.
	ErrCoefficientOverflow = errors.New("coefficient overflow")

	// ErrScaleRange is returned when a scale is outside [0, MaxScale].
	ErrScaleRange = errors.New("scale out of range")

	// ErrLossOfPrecision is returned by conversions that must be exact
	// but are not.
	ErrLossOfPrecision = errors.New("loss of precision")

	// ErrOutOfRange is returned by conversions whose target type cannot
	// hold the value.
	ErrOutOfRange = errors.New("value out of range")
)

// newUnsafe creates a new decimal without checking the scale and the
// coefficient.
func newUnsafe[C coefficient[C]](neg bool, coef C, scale int) Decimal[C] {
	if coef.isZero() {
		neg = false
	}
	return Decimal[C]{neg: neg, coef: coef, scale: int16(scale)}
}

// newSafe creates a new decimal and checks the scale and the coefficient.
func newSafe[C coefficient[C]](neg bool, coef C, scale int) (Decimal[C], error) {
	if scale < 0 || scale > coef.maxPrec() {
		return Decimal[C]{}, fmt.Errorf("scale %d: %w", scale, ErrScaleRange)
	}
	return newUnsafe(neg, coef, scale), nil
}

// inf creates an infinity with the given sign.
func inf[C coefficient[C]](neg bool) Decimal[C] {
	return Decimal[C]{neg: neg, form: infinite}
}

// nan creates a quiet NaN with a zero payload.
func nan[C coefficient[C]]() Decimal[C] {
	return Decimal[C]{form: qnan}
}

// New returns a decimal equal to value / 10^scale.
//
// New returns an error if the scale is negative or greater than
// [Decimal.MaxScale], or if the value has more digits than the format
// can hold.
func New[C coefficient[C]](value int64, scale int) (Decimal[C], error) {
	neg := value < 0
	var abs uint64
	if neg {
		abs = uint64(-(value + 1)) + 1
	} else {
		abs = uint64(value)
	}
	var zero C
	coef, ok := zero.fromUint64(abs)
	if !ok {
		return Decimal[C]{}, fmt.Errorf("converting %d: %w", value, ErrCoefficientOverflow)
	}
	return newSafe(neg, coef, scale)
}

// MustNew is like [New] but panics if the decimal cannot be constructed.
// It simplifies safe initialization of global variables.
func MustNew[C coefficient[C]](value int64, scale int) Decimal[C] {
	d, err := New[C](value, scale)
	if err != nil {
		panic(fmt.Sprintf("New(%v, %v) failed: %v", value, scale, err))
	}
	return d
}

// NewFromInt64 converts a pair of integers, representing the whole and
// the fractional parts, to a decimal equal to whole + frac / 10^scale.
// The parts must not have opposite signs, and the fractional part must
// be less than one at the given scale.
//
//	NewFromInt64[Uint64](-1, -5, 1) // -1.5
func NewFromInt64[C coefficient[C]](whole, frac int64, scale int) (Decimal[C], error) {
	if whole > 0 && frac < 0 || whole < 0 && frac > 0 {
		return Decimal[C]{}, fmt.Errorf("converting %d and %d: inconsistent signs", whole, frac)
	}
	w, err := New[C](whole, 0)
	if err != nil {
		return Decimal[C]{}, err
	}
	f, err := New[C](frac, scale)
	if err != nil {
		return Decimal[C]{}, err
	}
	if !f.WithinOne() {
		return Decimal[C]{}, fmt.Errorf("converting fraction %d at scale %d: %w", frac, scale, ErrOutOfRange)
	}
	coef, ok := w.coef.lsh(scale)
	if !ok {
		return Decimal[C]{}, fmt.Errorf("converting %d: %w", whole, ErrCoefficientOverflow)
	}
	coef, ok = coef.add(f.coef)
	if !ok {
		return Decimal[C]{}, fmt.Errorf("converting %d and %d: %w", whole, frac, ErrCoefficientOverflow)
	}
	return newSafe(whole < 0 || frac < 0, coef, scale)
}

// MaxScale returns the maximum number of digits after the decimal point,
// which equals the digit capacity of the coefficient: 19 for [Decimal64],
// 38 for [Decimal128], 77 for [Decimal256].
func (d Decimal[C]) MaxScale() int {
	return d.coef.maxPrec()
}

// Prec returns the number of digits in the coefficient.
// The result is 0 for zero, infinities, and NaNs.
func (d Decimal[C]) Prec() int {
	if d.form != finite {
		return 0
	}
	return d.coef.prec()
}

// Scale returns the number of digits after the decimal point.
// The result is 0 for infinities and NaNs.
func (d Decimal[C]) Scale() int {
	return int(d.scale)
}

// MinScale returns the smallest scale that d can be rescaled to without
// rounding.
func (d Decimal[C]) MinScale() int {
	if d.form != finite || d.coef.isZero() {
		return 0
	}
	z := min(d.coef.ntz(), int(d.scale))
	return int(d.scale) - z
}

// Coef returns the coefficient as a big-endian byte slice without
// leading zeros. For NaNs it returns the payload.
func (d Decimal[C]) Coef() []byte {
	return d.coef.bytes(nil)
}

// IsFinite reports whether d is neither an infinity nor a NaN.
func (d Decimal[C]) IsFinite() bool {
	return d.form == finite
}

// IsInf reports whether d is an infinity of either sign.
func (d Decimal[C]) IsInf() bool {
	return d.form == infinite
}

// IsNaN reports whether d is a NaN, quiet or signaling.
func (d Decimal[C]) IsNaN() bool {
	return d.form == qnan || d.form == snan
}

// IsSignaling reports whether d is a signaling NaN.
func (d Decimal[C]) IsSignaling() bool {
	return d.form == snan
}

// IsZero reports whether d is a finite zero of either sign.
func (d Decimal[C]) IsZero() bool {
	return d.form == finite && d.coef.isZero()
}

// IsNeg reports whether d is less than zero, including -∞.
func (d Decimal[C]) IsNeg() bool {
	switch d.form {
	case finite:
		return d.neg && !d.coef.isZero()
	case infinite:
		return d.neg
	}
	return false
}

// IsPos reports whether d is greater than zero, including +∞.
func (d Decimal[C]) IsPos() bool {
	switch d.form {
	case finite:
		return !d.neg && !d.coef.isZero()
	case infinite:
		return !d.neg
	}
	return false
}

// IsInt reports whether d is a finite number with no digits after
// the decimal point.
func (d Decimal[C]) IsInt() bool {
	if d.form != finite {
		return false
	}
	if d.coef.isZero() {
		return true
	}
	return d.scale == 0 || d.coef.ntz() >= int(d.scale)
}

// IsOne reports whether d is equal to ±1.
func (d Decimal[C]) IsOne() bool {
	if d.form != finite {
		return false
	}
	one, ok := oneCoef[C]().lsh(int(d.scale))
	return ok && d.coef == one
}

// WithinOne reports whether d is finite and strictly between -1 and 1.
func (d Decimal[C]) WithinOne() bool {
	if d.form != finite {
		return false
	}
	return !d.coef.hasPrec(int(d.scale) + 1)
}

// Sign returns:
//
//	-1 if d < 0 or d is -∞
//	 0 if d is ±0 or a NaN
//	+1 if d > 0 or d is +∞
func (d Decimal[C]) Sign() int {
	switch {
	case d.IsNeg():
		return -1
	case d.IsPos():
		return 1
	}
	return 0
}

// Signum returns -1, 0, or 1 as a decimal, following [Decimal.Sign].
func (d Decimal[C]) Signum() Decimal[C] {
	var zero C
	switch d.Sign() {
	case -1:
		return newUnsafe(true, oneCoef[C](), 0)
	case 1:
		return newUnsafe(false, oneCoef[C](), 0)
	}
	return newUnsafe(false, zero, 0)
}

// Neg returns d with the opposite sign.
// There is no negative zero: negating a zero returns it unchanged.
func (d Decimal[C]) Neg() Decimal[C] {
	if d.IsZero() {
		return d
	}
	d.neg = !d.neg
	return d
}

// Abs returns the absolute value of d.
func (d Decimal[C]) Abs() Decimal[C] {
	d.neg = false
	return d
}

// CopySign returns d with the sign of e.
// A zero d keeps its own (positive) sign.
func (d Decimal[C]) CopySign(e Decimal[C]) Decimal[C] {
	if d.IsZero() {
		return d
	}
	d.neg = e.neg
	return d
}

// Zero returns a zero with the same scale as d.
func (d Decimal[C]) Zero() Decimal[C] {
	var zero C
	return newUnsafe(false, zero, int(d.scale))
}

// One returns a one with the same scale as d, when the scale allows an
// exact representation, and 1 otherwise.
func (d Decimal[C]) One() Decimal[C] {
	one := oneCoef[C]()
	if coef, ok := one.lsh(int(d.scale)); ok {
		return newUnsafe(false, coef, int(d.scale))
	}
	return newUnsafe(false, one, 0)
}

// ULP (Unit in the Last Place) returns the smallest representable
// positive difference at the scale of d.
func (d Decimal[C]) ULP() Decimal[C] {
	return newUnsafe(false, oneCoef[C](), int(d.scale))
}

// oneCoef returns the coefficient 1, which fits every width.
func oneCoef[C coefficient[C]]() C {
	var zero C
	c, _ := zero.fromUint64(1)
	return c
}

// cmpAbsFinite compares |d| and |e|, both finite.
func (d Decimal[C]) cmpAbsFinite(e Decimal[C]) int {
	// Fast path: align scales within the width
	s := max(int(d.scale), int(e.scale))
	x, okX := d.coef.lsh(s - int(d.scale))
	y, okY := e.coef.lsh(s - int(e.scale))
	if okX && okY {
		return x.cmp(y)
	}
	// Slow path: alignment does not fit the width
	xb := getBint()
	defer putBint(xb)
	yb := getBint()
	defer putBint(yb)
	d.coef.toBig(xb.big())
	e.coef.toBig(yb.big())
	xb.lsh(xb, s-int(d.scale))
	yb.lsh(yb, s-int(e.scale))
	return xb.cmp(yb)
}

// Cmp numerically compares d and e:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
//
// Infinities compare as expected; -∞ is less than every finite number
// and +∞ is greater. If either operand is a NaN, Cmp returns 0 and an
// [InvalidOperation] error. Use [Decimal.CmpTotal] for a total order
// that includes NaNs.
func (d Decimal[C]) Cmp(e Decimal[C]) (int, error) {
	if d.IsNaN() || e.IsNaN() {
		return 0, fmt.Errorf("comparing with NaN: %w", InvalidOperation)
	}
	ds, es := d.Sign(), e.Sign()
	switch {
	case ds < es:
		return -1, nil
	case ds > es:
		return 1, nil
	case ds == 0:
		return 0, nil
	}
	// Same nonzero sign
	switch {
	case d.form == infinite && e.form == infinite:
		return 0, nil
	case d.form == infinite:
		return ds, nil
	case e.form == infinite:
		return -ds, nil
	}
	return d.cmpAbsFinite(e) * ds, nil
}

// CmpAbs compares the absolute values of d and e.
// Like [Decimal.Cmp], it returns an [InvalidOperation] error for NaNs.
func (d Decimal[C]) CmpAbs(e Decimal[C]) (int, error) {
	return d.Abs().Cmp(e.Abs())
}

// CmpTotal compares the representations of d and e under a total order:
//
//	-∞ < finite < +∞ < qNaN < sNaN
//
// Finite numbers with equal values but different scales compare equal.
// NaNs order by payload; the sign of a NaN is ignored.
func (d Decimal[C]) CmpTotal(e Decimal[C]) int {
	rank := func(f form, neg bool) int {
		switch f {
		case qnan:
			return 2
		case snan:
			return 3
		case infinite:
			if neg {
				return -1
			}
			return 1
		}
		return 0
	}
	dr, er := rank(d.form, d.neg), rank(e.form, e.neg)
	switch {
	case dr < er:
		return -1
	case dr > er:
		return 1
	}
	if d.IsNaN() {
		return d.coef.cmp(e.coef)
	}
	if d.form == infinite {
		return 0
	}
	ds, es := d.Sign(), e.Sign()
	switch {
	case ds < es:
		return -1
	case ds > es:
		return 1
	case ds == 0:
		return 0
	}
	return d.cmpAbsFinite(e) * ds
}

// Equal reports whether d and e are numerically equal.
// A NaN is not equal to anything, including itself.
func (d Decimal[C]) Equal(e Decimal[C]) bool {
	c, err := d.Cmp(e)
	return err == nil && c == 0
}

// Max returns the larger of d and e. If one operand is a quiet NaN and
// the other is a number, the number is returned. A signaling NaN makes
// the result a NaN.
func (d Decimal[C]) Max(e Decimal[C]) Decimal[C] {
	if r, ok := maxMinNaN(d, e); ok {
		return r
	}
	c, _ := d.Cmp(e)
	switch {
	case c > 0:
		return d
	case c < 0:
		return e
	}
	// Equal values: prefer the positive sign, then the larger exponent
	if d.neg != e.neg {
		if d.neg {
			return e
		}
		return d
	}
	if d.neg {
		if d.scale >= e.scale {
			return d
		}
		return e
	}
	if d.scale <= e.scale {
		return d
	}
	return e
}

// Min returns the smaller of d and e, with the same NaN handling
// as [Decimal.Max].
func (d Decimal[C]) Min(e Decimal[C]) Decimal[C] {
	if r, ok := maxMinNaN(d, e); ok {
		return r
	}
	c, _ := d.Cmp(e)
	switch {
	case c < 0:
		return d
	case c > 0:
		return e
	}
	if d.neg != e.neg {
		if d.neg {
			return d
		}
		return e
	}
	if d.neg {
		if d.scale >= e.scale {
			return e
		}
		return d
	}
	if d.scale <= e.scale {
		return e
	}
	return d
}

// maxMinNaN implements the shared NaN handling of Max and Min.
func maxMinNaN[C coefficient[C]](d, e Decimal[C]) (Decimal[C], bool) {
	switch {
	case d.form == snan:
		return d.quiet(), true
	case e.form == snan:
		return e.quiet(), true
	case d.form == qnan && e.form == qnan:
		return d, true
	case d.form == qnan:
		return e, true
	case e.form == qnan:
		return d, true
	}
	return Decimal[C]{}, false
}

// Clamp returns d limited to the range [lo, hi].
// If any operand is a NaN, the result is a NaN.
func (d Decimal[C]) Clamp(lo, hi Decimal[C]) Decimal[C] {
	if d.IsNaN() || lo.IsNaN() || hi.IsNaN() {
		return nan[C]()
	}
	if c, _ := d.Cmp(lo); c < 0 {
		return lo
	}
	if c, _ := d.Cmp(hi); c > 0 {
		return hi
	}
	return d
}

// quiet converts a signaling NaN into a quiet NaN, keeping the payload.
func (d Decimal[C]) quiet() Decimal[C] {
	if d.form == snan {
		d.form = qnan
	}
	return d
}

// Rescale returns d with the given scale, rounding with [DefaultContext]
// when digits must be discarded.
func (d Decimal[C]) Rescale(scale int) (Decimal[C], error) {
	e, _, err := d.RescaleContext(scale, DefaultContext)
	return e, err
}

// RescaleContext returns d with the given scale. Lowering the scale
// discards digits after the decimal point, rounding per the context and
// signaling [Rounded], plus [Inexact] when nonzero digits were lost.
// Raising the scale pads the coefficient with zeros; if the padded
// coefficient would not fit the context precision, the result is a NaN
// and [InvalidOperation] is signaled.
func (d Decimal[C]) RescaleContext(scale int, ctx Context) (Decimal[C], Flags, error) {
	if d.form != finite {
		if d.form == snan {
			return d.quiet(), InvalidOperation, ctx.trap(InvalidOperation)
		}
		if d.form == qnan {
			return d, 0, nil
		}
		return nan[C](), InvalidOperation, ctx.trap(InvalidOperation)
	}
	if scale < 0 || scale > d.coef.maxPrec() {
		return nan[C](), InvalidOperation, ctx.trap(InvalidOperation)
	}
	switch {
	case scale >= int(d.scale):
		coef, ok := d.coef.lsh(scale - int(d.scale))
		if !ok || coef.hasPrec(ctx.prec(d.coef.maxPrec())+1) {
			return nan[C](), InvalidOperation, ctx.trap(InvalidOperation)
		}
		return newUnsafe(d.neg, coef, scale), 0, nil
	default:
		shift := int(d.scale) - scale
		coef, hcmp, exact := d.coef.quoPow10(shift)
		flags := Rounded
		if !exact || hcmp >= 0 {
			flags |= Inexact
		}
		if (!exact || hcmp >= 0) && ctx.Rounding.needsInc(hcmp, coef.odd(), d.neg) {
			var ok bool
			coef, ok = coef.add(oneCoef[C]())
			if !ok {
				return nan[C](), flags | InvalidOperation, ctx.trap(flags | InvalidOperation)
			}
		}
		if coef.hasPrec(ctx.prec(d.coef.maxPrec()) + 1) {
			return nan[C](), flags | InvalidOperation, ctx.trap(flags | InvalidOperation)
		}
		return newUnsafe(d.neg, coef, scale), flags, ctx.trap(flags)
	}
}

// Quantize returns d rescaled to the scale of e, rounding per the
// context. The flag behavior matches [Decimal.RescaleContext].
func (d Decimal[C]) Quantize(e Decimal[C], ctx Context) (Decimal[C], Flags, error) {
	if d.form == snan || e.form == snan {
		return propagateNaN(d, e), InvalidOperation, ctx.trap(InvalidOperation)
	}
	if d.form == qnan || e.form == qnan {
		return propagateNaN(d, e), 0, nil
	}
	if d.form == infinite && e.form == infinite {
		return d, 0, nil
	}
	if d.form == infinite || e.form == infinite {
		return nan[C](), InvalidOperation, ctx.trap(InvalidOperation)
	}
	return d.RescaleContext(int(e.scale), ctx)
}

// SameQuantum reports whether d and e have the same scale, or are both
// infinities, or are both NaNs.
func (d Decimal[C]) SameQuantum(e Decimal[C]) bool {
	if d.form != finite || e.form != finite {
		return d.IsNaN() == e.IsNaN() && d.IsInf() == e.IsInf()
	}
	return d.scale == e.scale
}

// Round returns d with the number of digits after the decimal point
// reduced to scale, rounding halves to even. If the scale of d is
// already scale or smaller, d is returned unchanged.
func (d Decimal[C]) Round(scale int) Decimal[C] {
	if d.form != finite || scale >= int(d.scale) || scale < 0 {
		return d.quiet()
	}
	e, _, _ := d.RescaleContext(scale, DefaultContext.WithRounding(HalfEven).WithTraps(0))
	return e
}

// Trunc returns d with the digits after the given scale discarded.
func (d Decimal[C]) Trunc(scale int) Decimal[C] {
	if d.form != finite || scale >= int(d.scale) || scale < 0 {
		return d.quiet()
	}
	e, _, _ := d.RescaleContext(scale, DefaultContext.WithRounding(Down).WithTraps(0))
	return e
}

// Ceil returns d rounded up to the given scale, toward positive infinity.
func (d Decimal[C]) Ceil(scale int) Decimal[C] {
	if d.form != finite || scale >= int(d.scale) || scale < 0 {
		return d.quiet()
	}
	e, _, _ := d.RescaleContext(scale, DefaultContext.WithRounding(Ceiling).WithTraps(0))
	return e
}

// Floor returns d rounded down to the given scale, toward negative
// infinity.
func (d Decimal[C]) Floor(scale int) Decimal[C] {
	if d.form != finite || scale >= int(d.scale) || scale < 0 {
		return d.quiet()
	}
	e, _, _ := d.RescaleContext(scale, DefaultContext.WithRounding(Floor).WithTraps(0))
	return e
}

// Reduce returns d with all trailing zeros removed from the coefficient.
func (d Decimal[C]) Reduce() Decimal[C] {
	if d.form != finite || d.coef.isZero() {
		if d.form == finite {
			return newUnsafe(false, d.coef, 0)
		}
		return d.quiet()
	}
	scale := d.MinScale()
	coef, _, _ := d.coef.quoPow10(int(d.scale) - scale)
	return newUnsafe(d.neg, coef, scale)
}
