package decimal

import (
	"math/big"
	"math/bits"
)

// Uint128 is a 128-bit unsigned coefficient holding up to 38 decimal digits.
// It backs [Decimal128]. The value is hi * 2^64 + lo.
type Uint128 struct {
	hi, lo uint64
}

// pow10x128 is a cache of powers of 10, where pow10x128[x] = 10^x.
var pow10x128 = func() (t [39]Uint128) {
	t[0] = Uint128{lo: 1}
	for i := 1; i < len(t); i++ {
		t[i] = t[i-1].mulWord(10)
	}
	return t
}()

// maxCoef128 is the maximum value of Uint128, which is equal to (10^38 - 1).
var maxCoef128 = pow10x128[38].subWrap(Uint128{lo: 1})

// mulWord calculates x * w ignoring overflow.
// Use only for initialization of the pow10 cache.
func (x Uint128) mulWord(w uint64) Uint128 {
	hi, lo := bits.Mul64(x.lo, w)
	return Uint128{hi: x.hi*w + hi, lo: lo}
}

// subWrap calculates x - y assuming x >= y.
func (x Uint128) subWrap(y Uint128) Uint128 {
	lo, borrow := bits.Sub64(x.lo, y.lo, 0)
	hi, _ := bits.Sub64(x.hi, y.hi, borrow)
	return Uint128{hi: hi, lo: lo}
}

func (x Uint128) addWrap(y Uint128) Uint128 {
	lo, carry := bits.Add64(x.lo, y.lo, 0)
	hi, _ := bits.Add64(x.hi, y.hi, carry)
	return Uint128{hi: hi, lo: lo}
}

func (x Uint128) bitLen() int {
	if x.hi != 0 {
		return 64 + bits.Len64(x.hi)
	}
	return bits.Len64(x.lo)
}

func (x Uint128) bit(i int) uint64 {
	if i >= 64 {
		return x.hi >> (i - 64) & 1
	}
	return x.lo >> i & 1
}

func (x Uint128) setBit(i int) Uint128 {
	if i >= 64 {
		x.hi |= 1 << (i - 64)
	} else {
		x.lo |= 1 << i
	}
	return x
}

func (x Uint128) shl1() Uint128 {
	return Uint128{hi: x.hi<<1 | x.lo>>63, lo: x.lo << 1}
}

func (x Uint128) shr1() Uint128 {
	return Uint128{hi: x.hi >> 1, lo: x.lo>>1 | x.hi<<63}
}

func (x Uint128) add(y Uint128) (z Uint128, ok bool) {
	lo, carry := bits.Add64(x.lo, y.lo, 0)
	hi, carry := bits.Add64(x.hi, y.hi, carry)
	z = Uint128{hi: hi, lo: lo}
	if carry != 0 || z.cmp(maxCoef128) > 0 {
		return Uint128{}, false
	}
	return z, true
}

func (x Uint128) dist(y Uint128) Uint128 {
	if x.cmp(y) > 0 {
		return x.subWrap(y)
	}
	return y.subWrap(x)
}

func (x Uint128) mul(y Uint128) (z Uint128, ok bool) {
	if x.hi != 0 && y.hi != 0 {
		return Uint128{}, false
	}
	h, lo := bits.Mul64(x.lo, y.lo)
	h1, m1 := bits.Mul64(x.lo, y.hi)
	h2, m2 := bits.Mul64(x.hi, y.lo)
	if h1 != 0 || h2 != 0 {
		return Uint128{}, false
	}
	hi, carry := bits.Add64(h, m1, 0)
	if carry != 0 {
		return Uint128{}, false
	}
	hi, carry = bits.Add64(hi, m2, 0)
	if carry != 0 {
		return Uint128{}, false
	}
	z = Uint128{hi: hi, lo: lo}
	if z.cmp(maxCoef128) > 0 {
		return Uint128{}, false
	}
	return z, true
}

func (x Uint128) quoRem(y Uint128) (q, r Uint128, ok bool) {
	if y.isZero() {
		return Uint128{}, Uint128{}, false
	}
	if y.hi == 0 {
		if x.hi < y.lo {
			lo, rem := bits.Div64(x.hi, x.lo, y.lo)
			return Uint128{lo: lo}, Uint128{lo: rem}, true
		}
		qhi := x.hi / y.lo
		rem := x.hi - qhi*y.lo
		qlo, rem := bits.Div64(rem, x.lo, y.lo)
		return Uint128{hi: qhi, lo: qlo}, Uint128{lo: rem}, true
	}
	// Bit-by-bit long division: with a 65+ bit divisor the quotient
	// fits in a single word, so the loop is short in practice.
	for i := x.bitLen() - 1; i >= 0; i-- {
		r = r.shl1()
		r.lo |= x.bit(i)
		if r.cmp(y) >= 0 {
			r = r.subWrap(y)
			q = q.setBit(i)
		}
	}
	return q, r, true
}

func (x Uint128) cmp(y Uint128) int {
	switch {
	case x.hi < y.hi:
		return -1
	case x.hi > y.hi:
		return 1
	case x.lo < y.lo:
		return -1
	case x.lo > y.lo:
		return 1
	}
	return 0
}

func (x Uint128) isZero() bool {
	return x.hi == 0 && x.lo == 0
}

func (x Uint128) odd() bool {
	return x.lo&1 != 0
}

func (x Uint128) lsh(shift int) (z Uint128, ok bool) {
	switch {
	case shift <= 0:
		return x, true
	case shift >= len(pow10x128):
		return Uint128{}, false
	}
	return x.mul(pow10x128[shift])
}

func (x Uint128) fsa(shift int, b byte) (z Uint128, ok bool) {
	z, ok = x.lsh(shift)
	if !ok {
		return Uint128{}, false
	}
	z, ok = z.add(Uint128{lo: uint64(b)})
	if !ok {
		return Uint128{}, false
	}
	return z, true
}

func (x Uint128) quoPow10(shift int) (q Uint128, hcmp int, exact bool) {
	switch {
	case shift <= 0:
		return x, -1, true
	case shift >= len(pow10x128):
		return Uint128{}, -1, x.isZero()
	}
	y := pow10x128[shift]
	q, r, _ := x.quoRem(y)
	return q, r.cmp(y.shr1()), r.isZero()
}

func (x Uint128) prec() int {
	left, right := 0, len(pow10x128)
	for left < right {
		mid := (left + right) / 2
		if x.cmp(pow10x128[mid]) < 0 {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}

func (x Uint128) ntz() int {
	left, right := 1, x.prec()
	for left < right {
		mid := (left + right) / 2
		if _, r, _ := x.quoRem(pow10x128[mid]); r.isZero() {
			left = mid + 1
		} else {
			right = mid
		}
	}
	return left - 1
}

func (x Uint128) hasPrec(prec int) bool {
	switch {
	case prec < 1:
		return true
	case prec > len(pow10x128):
		return false
	}
	return x.cmp(pow10x128[prec-1]) >= 0
}

func (Uint128) maxPrec() int {
	return 38
}

func (Uint128) fromUint64(u uint64) (Uint128, bool) {
	return Uint128{lo: u}, true
}

func (x Uint128) toUint64() (uint64, bool) {
	if x.hi != 0 {
		return 0, false
	}
	return x.lo, true
}

func (x Uint128) toBig(z *big.Int) *big.Int {
	var b [16]byte
	putUint64BE(b[:8], x.hi)
	putUint64BE(b[8:], x.lo)
	return z.SetBytes(b[:])
}

func (Uint128) fromBig(z *big.Int) (Uint128, bool) {
	if z.Sign() < 0 || z.BitLen() > 128 {
		return Uint128{}, false
	}
	var x Uint128
	x, ok := x.fromBytes(z.Bytes())
	return x, ok
}

func (x Uint128) bytes(buf []byte) []byte {
	var b [16]byte
	putUint64BE(b[:8], x.hi)
	putUint64BE(b[8:], x.lo)
	return append(buf, trimZeroBytes(b[:])...)
}

func (Uint128) fromBytes(b []byte) (Uint128, bool) {
	b = trimZeroBytes(b)
	if len(b) > 16 {
		return Uint128{}, false
	}
	var hi, lo uint64
	for _, c := range b {
		hi = hi<<8 | lo>>56
		lo = lo<<8 | uint64(c)
	}
	x := Uint128{hi: hi, lo: lo}
	if x.cmp(maxCoef128) > 0 {
		return Uint128{}, false
	}
	return x, true
}

func putUint64BE(b []byte, u uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(u)
		u >>= 8
	}
}

func trimZeroBytes(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}
