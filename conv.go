package decimal

import (
	"database/sql/driver"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Parse converts a string to a (possibly rounded) decimal under
// [DefaultContext].
//
// The input must be a single decimal number in the following formal
// EBNF grammar, or a special value:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | '.' digits | digits '.' | digits
//	exponent       ::= ('e' | 'E') [sign] digits
//	numeric-string ::= [sign] significand [exponent]
//	special        ::= [sign] ('Inf' | 'Infinity' | 'NaN' digits? | 'qNaN' digits? | 'sNaN' digits?)
//
// Special values are matched case-insensitively.
// Excess fractional digits are rounded per the context, signaling
// [Rounded] and [Inexact]; a value too large for the format overflows
// to an infinity per the context, which [DefaultContext] traps.
func Parse[C coefficient[C]](s string) (Decimal[C], error) {
	d, _, err := ParseContext[C](s, DefaultContext)
	return d, err
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse[C coefficient[C]](s string) Decimal[C] {
	d, err := Parse[C](s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return d
}

// ParseContext is like [Parse] but rounds per an explicit context and
// returns the signaled flags.
func ParseContext[C coefficient[C]](s string, ctx Context) (Decimal[C], Flags, error) {
	if s == "" {
		return Decimal[C]{}, 0, ErrEmptyInput
	}
	if d, ok := parseSpecial[C](s); ok {
		return d, 0, nil
	}
	d, flags, err := parseFast[C](s, ctx)
	if err != nil {
		d, flags, err = parseSlow[C](s, ctx)
	}
	return d, flags, err
}

// parseSpecial recognizes the special-value literals.
func parseSpecial[C coefficient[C]](s string) (Decimal[C], bool) {
	neg := false
	switch {
	case s == "":
		return Decimal[C]{}, false
	case s[0] == '-':
		neg = true
		s = s[1:]
	case s[0] == '+':
		s = s[1:]
	}
	low := strings.ToLower(s)
	switch low {
	case "inf", "infinity":
		return inf[C](neg), true
	}
	f := qnan
	switch {
	case strings.HasPrefix(low, "snan"):
		f = snan
		low = low[4:]
	case strings.HasPrefix(low, "qnan"):
		low = low[4:]
	case strings.HasPrefix(low, "nan"):
		low = low[3:]
	default:
		return Decimal[C]{}, false
	}
	// Optional diagnostic payload
	var zero C
	coef := zero
	for i := 0; i < len(low); i++ {
		if low[i] < '0' || low[i] > '9' {
			return Decimal[C]{}, false
		}
		var ok bool
		coef, ok = coef.fsa(1, low[i]-'0')
		if !ok {
			coef = zero
			break
		}
	}
	return Decimal[C]{form: f, neg: neg, coef: coef}, true
}

func parseFast[C coefficient[C]](s string, ctx Context) (Decimal[C], Flags, error) {
	var (
		pos     int
		neg     bool
		coef    C
		scale   int
		hascoef bool
		eneg    bool
		exp     int
		hasexp  bool
		hase    bool
		ok      bool
	)

	width := len(s)

	// Sign
	switch {
	case pos == width:
		// skip
	case s[pos] == '-':
		neg = true
		pos++
	case s[pos] == '+':
		pos++
	}

	// Integer
	for pos < width && s[pos] >= '0' && s[pos] <= '9' {
		hascoef = true
		coef, ok = coef.fsa(1, s[pos]-'0')
		if !ok {
			return Decimal[C]{}, 0, ErrCoefficientOverflow
		}
		pos++
	}

	// Fraction
	if pos < width && s[pos] == '.' {
		pos++
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			hascoef = true
			coef, ok = coef.fsa(1, s[pos]-'0')
			if !ok {
				return Decimal[C]{}, 0, ErrCoefficientOverflow
			}
			scale++
			pos++
		}
	}

	// Exponent
	if pos < width && (s[pos] == 'e' || s[pos] == 'E') {
		hase = true
		pos++
		switch {
		case pos == width:
			// skip
		case s[pos] == '-':
			eneg = true
			pos++
		case s[pos] == '+':
			pos++
		}
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			exp = exp*10 + int(s[pos]-'0')
			if exp > maxParseExp {
				return Decimal[C]{}, 0, ErrExponentRange
			}
			hasexp = true
			pos++
		}
	}

	if pos != width {
		return Decimal[C]{}, 0, fmt.Errorf("invalid character %q: %w", s[pos], ErrInvalidDigit)
	}
	if !hascoef {
		return Decimal[C]{}, 0, fmt.Errorf("no coefficient: %w", ErrInvalidDigit)
	}
	if hase && !hasexp {
		return Decimal[C]{}, 0, fmt.Errorf("no exponent: %w", ErrInvalidDigit)
	}

	if eneg {
		scale += exp
	} else {
		scale -= exp
	}
	if scale >= 0 {
		return finish(ctx, neg, coef, scale)
	}
	b := getBint()
	defer putBint(b)
	coef.toBig(b.big())
	return finishParsed[C](ctx, neg, b, scale)
}

func parseSlow[C coefficient[C]](s string, ctx Context) (Decimal[C], Flags, error) {
	var (
		pos     int
		neg     bool
		scale   int
		hascoef bool
		eneg    bool
		exp     int
		hasexp  bool
		hase    bool
	)

	coef := getBint()
	defer putBint(coef)
	coef.setUint64(0)
	width := len(s)

	// Sign
	switch {
	case pos == width:
		// skip
	case s[pos] == '-':
		neg = true
		pos++
	case s[pos] == '+':
		pos++
	}

	// Integer
	for pos < width && s[pos] >= '0' && s[pos] <= '9' {
		hascoef = true
		coef.fsa(coef, 1, s[pos]-'0')
		pos++
	}

	// Fraction
	if pos < width && s[pos] == '.' {
		pos++
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			hascoef = true
			coef.fsa(coef, 1, s[pos]-'0')
			scale++
			pos++
		}
	}

	// Exponent
	if pos < width && (s[pos] == 'e' || s[pos] == 'E') {
		hase = true
		pos++
		switch {
		case pos == width:
			// skip
		case s[pos] == '-':
			eneg = true
			pos++
		case s[pos] == '+':
			pos++
		}
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			exp = exp*10 + int(s[pos]-'0')
			if exp > maxParseExp {
				return Decimal[C]{}, 0, ErrExponentRange
			}
			hasexp = true
			pos++
		}
	}

	if pos != width {
		return Decimal[C]{}, 0, fmt.Errorf("invalid character %q: %w", s[pos], ErrInvalidDigit)
	}
	if !hascoef {
		return Decimal[C]{}, 0, fmt.Errorf("no coefficient: %w", ErrInvalidDigit)
	}
	if hase && !hasexp {
		return Decimal[C]{}, 0, fmt.Errorf("no exponent: %w", ErrInvalidDigit)
	}

	if eneg {
		scale += exp
	} else {
		scale -= exp
	}
	return finishParsed[C](ctx, neg, coef, scale)
}

// maxParseExp bounds the exponent literal accepted by the parser.
const maxParseExp = 1_000_000_000

// finishParsed rounds a parsed coefficient with guards against
// astronomically large exponent literals, which would otherwise demand
// equally large powers of ten.
func finishParsed[C coefficient[C]](ctx Context, neg bool, coef *bint, scale int) (Decimal[C], Flags, error) {
	var zero C
	capP := zero.maxPrec()
	if coef.sign() == 0 {
		if scale < 0 {
			scale = 0
		}
		return finishBig[C](ctx, neg, coef, min(scale, capP+1), false)
	}
	digits := coef.prec()
	if scale < 0 && digits-scale > ctx.prec(capP) {
		return overflown[C](ctx, neg)
	}
	// A value this far below the smallest subnormal rounds to zero;
	// clamp the shift to keep the power-of-ten cache in range.
	if scale > capP+digits+1 {
		scale = capP + digits + 1
	}
	return finishBig[C](ctx, neg, coef, scale, false)
}

// digitString returns the decimal digits of the coefficient.
func (d Decimal[C]) digitString() string {
	if u, ok := d.coef.toUint64(); ok {
		return strconv.FormatUint(u, 10)
	}
	b := getBint()
	defer putBint(b)
	return d.coef.toBig(b.big()).String()
}

// String implements the [fmt.Stringer] interface.
//
// Finite values use plain notation unless the adjusted exponent is less
// than -6, in which case scientific notation with a single leading digit
// is used. Trailing zeros of the coefficient are preserved, so "1.00"
// round-trips with its scale. Special values format as "Infinity",
// "NaN", and "sNaN", with an optional sign and NaN payload digits.
func (d Decimal[C]) String() string {
	var b strings.Builder
	if d.neg {
		b.WriteByte('-')
	}
	switch d.form {
	case infinite:
		b.WriteString("Infinity")
		return b.String()
	case qnan, snan:
		if d.form == snan {
			b.WriteByte('s')
		}
		b.WriteString("NaN")
		if !d.coef.isZero() {
			b.WriteString(d.digitString())
		}
		return b.String()
	}

	s := d.digitString()
	scale := int(d.scale)
	switch {
	case scale == 0:
		b.WriteString(s)
	case scale <= len(s)+5:
		// Plain notation
		if len(s) > scale {
			b.WriteString(s[:len(s)-scale])
			b.WriteByte('.')
			b.WriteString(s[len(s)-scale:])
		} else {
			b.WriteString("0.")
			for i := len(s); i < scale; i++ {
				b.WriteByte('0')
			}
			b.WriteString(s)
		}
	default:
		// Scientific notation
		b.WriteByte(s[0])
		if len(s) > 1 {
			b.WriteByte('.')
			b.WriteString(s[1:])
		}
		b.WriteByte('E')
		b.WriteString(strconv.Itoa(len(s) - 1 - scale))
	}
	return b.String()
}

// Format implements the [fmt.Formatter] interface.
// The following verbs are available:
//
//	%s, %v: 123.456
//	%q:    "123.456"
//	%f:     123.456, fixed-point, precision sets fractional digits
//	%e, %E: 1.23456e+02, scientific, precision sets mantissa digits
//
// The '+', ' ', '0', and '-' flags and the width are honored for all
// verbs.
func (d Decimal[C]) Format(state fmt.State, verb rune) {
	var body string
	switch verb {
	case 's', 'v':
		body = d.String()
	case 'q':
		body = `"` + d.String() + `"`
	case 'f', 'F':
		body = d.formatFixed(state)
	case 'e', 'E':
		body = d.formatSci(state, verb == 'E')
	default:
		fmt.Fprintf(state, "%%!%c(decimal.Decimal=%s)", verb, d.String())
		return
	}

	neg := strings.HasPrefix(body, "-")
	if neg {
		body = body[1:]
	}
	sign := ""
	switch {
	case neg:
		sign = "-"
	case state.Flag('+'):
		sign = "+"
	case state.Flag(' '):
		sign = " "
	}

	width := len(sign) + len(body)
	if w, ok := state.Width(); ok && w > width {
		pad := w - width
		switch {
		case state.Flag('-'):
			body += strings.Repeat(" ", pad)
		case state.Flag('0') && d.form == finite:
			body = strings.Repeat("0", pad) + body
		default:
			sign = strings.Repeat(" ", pad) + sign
		}
	}
	state.Write([]byte(sign + body))
}

func (d Decimal[C]) formatFixed(state fmt.State) string {
	if d.form != finite {
		return d.String()
	}
	scale := int(d.scale)
	p := scale
	if pp, ok := state.Precision(); ok {
		p = max(pp, 0)
	}
	if p < scale {
		d = d.Round(p)
		scale = p
	}
	s := d.digitString()
	var b strings.Builder
	if d.neg {
		b.WriteByte('-')
	}
	if len(s) > scale {
		b.WriteString(s[:len(s)-scale])
	} else {
		b.WriteByte('0')
	}
	if p > 0 {
		b.WriteByte('.')
		for i := len(s); i < scale; i++ {
			b.WriteByte('0')
		}
		if scale > 0 && len(s) >= scale {
			b.WriteString(s[len(s)-scale:])
		} else if scale > 0 {
			b.WriteString(s)
		}
		for i := scale; i < p; i++ {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func (d Decimal[C]) formatSci(state fmt.State, upper bool) string {
	if d.form != finite {
		return d.String()
	}
	digits := -1
	if p, ok := state.Precision(); ok && p >= 0 {
		// Round to p+1 significant digits
		digits = p + 1
		ctx := DefaultContext.WithPrecision(digits).WithTraps(0)
		d, _, _ = d.AddContext(d.Zero(), ctx)
	}
	s := d.digitString()
	adj := len(s) - 1 - int(d.scale)
	if digits >= 0 {
		// Rounding to a lowered precision may re-pad the coefficient
		// with zeros; the mantissa keeps exactly the requested digits.
		for len(s) < digits {
			s += "0"
		}
		s = s[:digits]
	}
	var b strings.Builder
	if d.neg {
		b.WriteByte('-')
	}
	b.WriteByte(s[0])
	if len(s) > 1 {
		b.WriteByte('.')
		b.WriteString(s[1:])
	}
	if upper {
		b.WriteByte('E')
	} else {
		b.WriteByte('e')
	}
	if adj >= 0 {
		b.WriteByte('+')
	} else {
		b.WriteByte('-')
		adj = -adj
	}
	if adj < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(adj))
	return b.String()
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (d Decimal[C]) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// Also see [Parse].
func (d *Decimal[C]) UnmarshalText(text []byte) error {
	var err error
	*d, err = Parse[C](string(text))
	return err
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
// The value is always encoded as a JSON string, so that consumers never
// lose digits to binary floating point.
func (d Decimal[C]) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the [encoding/json.Unmarshaler] interface.
// Both JSON strings and bare JSON numbers are accepted; anything else
// is rejected.
func (d *Decimal[C]) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	var err error
	*d, err = Parse[C](s)
	return err
}

// Binary layout used by MarshalBinary:
//
//	byte 0    version, currently 1
//	byte 1    form in the low bits, 0x80 for a negative sign
//	bytes 2-3 scale, big-endian int16
//	bytes 4-  coefficient, big-endian, without leading zeros
const binaryVersion = 1

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
// The encoding round-trips bit-identically, including special values,
// NaN payloads, and trailing coefficient zeros.
func (d Decimal[C]) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 4, 4+16)
	buf[0] = binaryVersion
	buf[1] = byte(d.form)
	if d.neg {
		buf[1] |= 0x80
	}
	buf[2] = byte(d.scale >> 8)
	buf[3] = byte(d.scale)
	return d.coef.bytes(buf), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
func (d *Decimal[C]) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("decoding %d bytes: %w", len(data), ErrInvalidDigit)
	}
	if data[0] != binaryVersion {
		return fmt.Errorf("unsupported version %d: %w", data[0], ErrInvalidDigit)
	}
	f := form(data[1] &^ 0x80)
	if f > snan {
		return fmt.Errorf("unknown form %d: %w", f, ErrInvalidDigit)
	}
	scale := int16(uint16(data[2])<<8 | uint16(data[3]))
	var zero C
	coef, ok := zero.fromBytes(data[4:])
	if !ok {
		return ErrCoefficientOverflow
	}
	if f == finite && (scale < 0 || int(scale) > zero.maxPrec()) {
		return fmt.Errorf("scale %d: %w", scale, ErrScaleRange)
	}
	*d = Decimal[C]{form: f, neg: data[1]&0x80 != 0, scale: scale, coef: coef}
	return nil
}

// Decompose returns the state of d in a form suitable for binary
// codecs: form is 0 for finite, 1 for infinite, and 2 for any NaN; the
// coefficient is big-endian without leading zeros, appended to buf when
// buf has capacity. Together with [Decimal.Compose] it implements the
// decimal decomposer contract used by database drivers.
func (d Decimal[C]) Decompose(buf []byte) (form byte, negative bool, coefficient []byte, exponent int32) {
	switch d.form {
	case infinite:
		return 1, d.neg, nil, 0
	case qnan, snan:
		return 2, d.neg, nil, 0
	}
	return 0, d.neg, d.coef.bytes(buf[:0]), -int32(d.scale)
}

// Compose sets d from the decomposed parts produced by
// [Decimal.Decompose]. A positive exponent is folded into the
// coefficient; Compose returns an error when the value cannot be
// represented exactly.
func (d *Decimal[C]) Compose(form byte, negative bool, coefficient []byte, exponent int32) error {
	var zero C
	switch form {
	case 1:
		*d = inf[C](negative)
		return nil
	case 2:
		*d = Decimal[C]{form: qnan, neg: negative}
		return nil
	case 0:
		// handled below
	default:
		return fmt.Errorf("unknown form %d: %w", form, ErrInvalidDigit)
	}
	coef, ok := zero.fromBytes(coefficient)
	if !ok {
		return ErrCoefficientOverflow
	}
	scale := -int(exponent)
	if scale < 0 {
		coef, ok = coef.lsh(-scale)
		if !ok {
			return ErrCoefficientOverflow
		}
		scale = 0
	}
	if scale > zero.maxPrec() {
		return fmt.Errorf("scale %d: %w", scale, ErrScaleRange)
	}
	*d = newUnsafe(negative, coef, scale)
	return nil
}

// Int64 returns the value of d as an int64.
//
// Int64 returns [ErrLossOfPrecision] if d has a nonzero fractional
// part and [ErrOutOfRange] if d does not fit an int64 or is not finite.
func (d Decimal[C]) Int64() (int64, error) {
	if d.form != finite {
		return 0, fmt.Errorf("converting %v: %w", d, ErrOutOfRange)
	}
	if !d.IsInt() {
		return 0, fmt.Errorf("converting %v: %w", d, ErrLossOfPrecision)
	}
	q, _, _ := d.coef.quoPow10(int(d.scale))
	u, ok := q.toUint64()
	if !ok {
		return 0, fmt.Errorf("converting %v: %w", d, ErrOutOfRange)
	}
	if d.neg {
		if u > uint64(math.MaxInt64)+1 {
			return 0, fmt.Errorf("converting %v: %w", d, ErrOutOfRange)
		}
		return -int64(u-1) - 1, nil
	}
	if u > uint64(math.MaxInt64) {
		return 0, fmt.Errorf("converting %v: %w", d, ErrOutOfRange)
	}
	return int64(u), nil
}

// Float64 returns the nearest binary floating-point value to d and an
// indicator whether the conversion stayed in range. Infinities and NaNs
// convert to their floating-point counterparts.
func (d Decimal[C]) Float64() (float64, bool) {
	switch d.form {
	case infinite:
		if d.neg {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	case qnan, snan:
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(d.String(), 64)
	return f, err == nil
}

// NewFromFloat64 converts a float64 to a decimal, rounding to the
// nearest representable value under [DefaultContext]. Floating-point
// infinities and NaNs convert to their decimal counterparts.
func NewFromFloat64[C coefficient[C]](f float64) (Decimal[C], error) {
	switch {
	case math.IsNaN(f):
		return NaN[C](), nil
	case math.IsInf(f, 0):
		return inf[C](f < 0), nil
	}
	d, err := Parse[C](strconv.FormatFloat(f, 'e', -1, 64))
	if err != nil {
		return Decimal[C]{}, fmt.Errorf("converting %v: %w", f, err)
	}
	return d, nil
}

// Value implements the [database/sql/driver.Valuer] interface.
// The value is stored as a string; non-finite values are rejected, as
// SQL NUMERIC columns cannot hold them.
func (d Decimal[C]) Value() (driver.Value, error) {
	if d.form != finite {
		return nil, fmt.Errorf("storing %v: %w", d, ErrOutOfRange)
	}
	return d.String(), nil
}

// Scan implements the [database/sql.Scanner] interface.
func (d *Decimal[C]) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*d, err = Parse[C](value)
	case []byte:
		*d, err = Parse[C](string(value))
	case int64:
		*d, err = New[C](value, 0)
	case float64:
		*d, err = NewFromFloat64[C](value)
	case *big.Int:
		*d, err = Parse[C](value.String())
	default:
		err = fmt.Errorf("scanning %T: %w", value, ErrInvalidDigit)
	}
	return err
}
