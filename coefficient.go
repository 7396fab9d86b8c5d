package decimal

import "math/big"

// coefficient is the contract between the decimal engine and a fixed-width
// unsigned integer primitive. The engine is written once against this
// interface; [Uint64], [Uint128] and [Uint256] implement it for the supported
// bit widths.
//
// All arithmetic is checked against the width's decimal capacity, which is
// 10^maxPrec - 1, not the raw bit-width maximum. A coefficient never holds
// more than maxPrec significant digits, so 10^maxPrec itself is always
// representable in the underlying bits and can serve as a divisor.
type coefficient[C any] interface {
	comparable

	// add calculates x + y and checks overflow.
	add(C) (C, bool)
	// dist calculates |x - y|.
	dist(C) C
	// mul calculates x * y and checks overflow.
	mul(C) (C, bool)
	// quoRem calculates q = ⌊x / y⌋, r = x - y * q.
	quoRem(C) (q, r C, ok bool)
	cmp(C) int
	isZero() bool
	odd() bool

	// lsh (Left Shift) calculates x * 10^shift and checks overflow.
	lsh(int) (C, bool)
	// fsa (Fused Shift and Addition) calculates x * 10^shift + b
	// and checks overflow.
	fsa(shift int, b byte) (C, bool)
	// quoPow10 calculates q = ⌊x / 10^shift⌋ and describes the discarded
	// remainder r: hcmp compares r against 10^shift / 2 and exact reports
	// whether r is zero. The caller turns (hcmp, exact) into a rounding
	// decision.
	quoPow10(shift int) (q C, hcmp int, exact bool)

	// prec returns length of x in decimal digits.
	// prec assumes that 0 has no digits.
	prec() int
	// ntz returns number of trailing zeros in x.
	ntz() int
	// hasPrec returns true if x has the given number of digits or more.
	hasPrec(int) bool
	// maxPrec returns the width's digit capacity. It does not depend on
	// the receiver value.
	maxPrec() int

	fromUint64(uint64) (C, bool)
	toUint64() (uint64, bool)
	toBig(*big.Int) *big.Int
	fromBig(*big.Int) (C, bool)
	// bytes appends the big-endian value of x to buf, without leading
	// zero bytes.
	bytes(buf []byte) []byte
	fromBytes([]byte) (C, bool)
}

// Uint64 is a 64-bit unsigned coefficient holding up to 19 decimal digits.
// It backs [Decimal64].
type Uint64 uint64

// maxCoef64 is the maximum value of Uint64, which is equal to (10^19 - 1).
const maxCoef64 Uint64 = 9_999_999_999_999_999_999

// pow10x64 is a cache of powers of 10, where pow10x64[x] = 10^x.
var pow10x64 = [...]Uint64{
	1,                          // 10^0
	10,                         // 10^1
	100,                        // 10^2
	1_000,                      // 10^3
	10_000,                     // 10^4
	100_000,                    // 10^5
	1_000_000,                  // 10^6
	10_000_000,                 // 10^7
	100_000_000,                // 10^8
	1_000_000_000,              // 10^9
	10_000_000_000,             // 10^10
	100_000_000_000,            // 10^11
	1_000_000_000_000,          // 10^12
	10_000_000_000_000,         // 10^13
	100_000_000_000_000,        // 10^14
	1_000_000_000_000_000,      // 10^15
	10_000_000_000_000_000,     // 10^16
	100_000_000_000_000_000,    // 10^17
	1_000_000_000_000_000_000,  // 10^18
	10_000_000_000_000_000_000, // 10^19
}

func (x Uint64) add(y Uint64) (z Uint64, ok bool) {
	if maxCoef64-x < y {
		return 0, false
	}
	return x + y, true
}

func (x Uint64) dist(y Uint64) Uint64 {
	if x > y {
		return x - y
	}
	return y - x
}

func (x Uint64) mul(y Uint64) (z Uint64, ok bool) {
	if y == 0 {
		return 0, true
	}
	z = x * y
	if z/y != x {
		return 0, false
	}
	if z > maxCoef64 {
		return 0, false
	}
	return z, true
}

func (x Uint64) quoRem(y Uint64) (q, r Uint64, ok bool) {
	if y == 0 {
		return 0, 0, false
	}
	q = x / y
	r = x - q*y
	return q, r, true
}

func (x Uint64) cmp(y Uint64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func (x Uint64) isZero() bool {
	return x == 0
}

func (x Uint64) odd() bool {
	return x&1 != 0
}

func (x Uint64) lsh(shift int) (z Uint64, ok bool) {
	// Special cases
	switch {
	case shift <= 0:
		return x, true
	case shift == 1 && x < maxCoef64/10: // to speed up common case
		return x * 10, true
	case shift >= len(pow10x64):
		return 0, false
	}
	// General case
	y := pow10x64[shift]
	return x.mul(y)
}

func (x Uint64) fsa(shift int, b byte) (z Uint64, ok bool) {
	z, ok = x.lsh(shift)
	if !ok {
		return 0, false
	}
	z, ok = z.add(Uint64(b))
	if !ok {
		return 0, false
	}
	return z, true
}

func (x Uint64) quoPow10(shift int) (q Uint64, hcmp int, exact bool) {
	// Special cases
	switch {
	case shift <= 0:
		return x, -1, true
	case shift >= len(pow10x64):
		// Even the largest coefficient is below 10^shift / 2.
		return 0, -1, x == 0
	}
	// General case
	y := pow10x64[shift]
	q = x / y
	r := x - q*y
	h := y >> 1 // y / 2, which is safe as y is a multiple of 10
	return q, r.cmp(h), r == 0
}

// prec returns length of x in decimal digits.
// prec assumes that 0 has no digits.
func (x Uint64) prec() int {
	left, right := 0, len(pow10x64)
	for left < right {
		mid := (left + right) / 2
		if x < pow10x64[mid] {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}

// ntz returns number of trailing zeros in x.
// ntz assumes that 0 has no trailing zeros.
func (x Uint64) ntz() int {
	left, right := 1, x.prec()
	for left < right {
		mid := (left + right) / 2
		if x%pow10x64[mid] == 0 {
			left = mid + 1
		} else {
			right = mid
		}
	}
	return left - 1
}

// hasPrec returns true if x has given number of digits or more.
// hasPrec assumes that 0 has no digits.
func (x Uint64) hasPrec(prec int) bool {
	// Special cases
	switch {
	case prec < 1:
		return true
	case prec > len(pow10x64):
		return false
	}
	// General case
	return x >= pow10x64[prec-1]
}

func (Uint64) maxPrec() int {
	return 19
}

func (Uint64) fromUint64(u uint64) (Uint64, bool) {
	if Uint64(u) > maxCoef64 {
		return 0, false
	}
	return Uint64(u), true
}

func (x Uint64) toUint64() (uint64, bool) {
	return uint64(x), true
}

func (x Uint64) toBig(z *big.Int) *big.Int {
	return z.SetUint64(uint64(x))
}

func (Uint64) fromBig(z *big.Int) (Uint64, bool) {
	if z.Sign() < 0 || !z.IsUint64() {
		return 0, false
	}
	u := z.Uint64()
	if Uint64(u) > maxCoef64 {
		return 0, false
	}
	return Uint64(u), true
}

func (x Uint64) bytes(buf []byte) []byte {
	if x == 0 {
		return buf
	}
	var b [8]byte
	for i := 7; ; i-- {
		b[i] = byte(x)
		x >>= 8
		if x == 0 {
			return append(buf, b[i:]...)
		}
	}
}

func (Uint64) fromBytes(b []byte) (Uint64, bool) {
	var x Uint64
	for _, c := range b {
		if x > maxCoef64>>8 {
			return 0, false
		}
		x = x<<8 | Uint64(c)
	}
	if x > maxCoef64 {
		return 0, false
	}
	return x, true
}
