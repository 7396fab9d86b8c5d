package decimal

import (
	"math/big"
	"math/bits"
)

// Uint256 is a 256-bit unsigned coefficient holding up to 77 decimal digits.
// It backs [Decimal256]. Limbs are little-endian: the value is
// w[3]*2^192 + w[2]*2^128 + w[1]*2^64 + w[0].
type Uint256 struct {
	w [4]uint64
}

// pow10x256 is a cache of powers of 10, where pow10x256[x] = 10^x.
var pow10x256 = func() (t [78]Uint256) {
	t[0] = Uint256{w: [4]uint64{1, 0, 0, 0}}
	for i := 1; i < len(t); i++ {
		t[i] = t[i-1].mulWord(10)
	}
	return t
}()

// maxCoef256 is the maximum value of Uint256, which is equal to (10^77 - 1).
var maxCoef256 = pow10x256[77].subWrap(Uint256{w: [4]uint64{1, 0, 0, 0}})

// mulWord calculates x * f ignoring overflow.
// Use only for initialization of the pow10 cache.
func (x Uint256) mulWord(f uint64) Uint256 {
	var z Uint256
	var carry uint64
	for i := 0; i < 4; i++ {
		hi, lo := bits.Mul64(x.w[i], f)
		lo, c := bits.Add64(lo, carry, 0)
		z.w[i] = lo
		carry = hi + c
	}
	return z
}

// subWrap calculates x - y assuming x >= y.
func (x Uint256) subWrap(y Uint256) Uint256 {
	var z Uint256
	var borrow uint64
	for i := 0; i < 4; i++ {
		z.w[i], borrow = bits.Sub64(x.w[i], y.w[i], borrow)
	}
	return z
}

func (x Uint256) bitLen() int {
	for i := 3; i >= 0; i-- {
		if x.w[i] != 0 {
			return i*64 + bits.Len64(x.w[i])
		}
	}
	return 0
}

func (x Uint256) bit(i int) uint64 {
	return x.w[i/64] >> (i % 64) & 1
}

func (x Uint256) setBit(i int) Uint256 {
	x.w[i/64] |= 1 << (i % 64)
	return x
}

func (x Uint256) shl1() Uint256 {
	var z Uint256
	for i := 3; i > 0; i-- {
		z.w[i] = x.w[i]<<1 | x.w[i-1]>>63
	}
	z.w[0] = x.w[0] << 1
	return z
}

func (x Uint256) shr1() Uint256 {
	var z Uint256
	for i := 0; i < 3; i++ {
		z.w[i] = x.w[i]>>1 | x.w[i+1]<<63
	}
	z.w[3] = x.w[3] >> 1
	return z
}

func (x Uint256) add(y Uint256) (z Uint256, ok bool) {
	var carry uint64
	for i := 0; i < 4; i++ {
		z.w[i], carry = bits.Add64(x.w[i], y.w[i], carry)
	}
	if carry != 0 || z.cmp(maxCoef256) > 0 {
		return Uint256{}, false
	}
	return z, true
}

func (x Uint256) dist(y Uint256) Uint256 {
	if x.cmp(y) > 0 {
		return x.subWrap(y)
	}
	return y.subWrap(x)
}

func (x Uint256) mul(y Uint256) (z Uint256, ok bool) {
	// Schoolbook multiplication into a 512-bit scratch area; the product
	// overflows unless the upper half stays zero.
	var p [8]uint64
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(x.w[i], y.w[j])
			lo, c1 := bits.Add64(lo, p[i+j], 0)
			lo, c2 := bits.Add64(lo, carry, 0)
			p[i+j] = lo
			carry = hi + c1 + c2
		}
		p[i+4] = carry
	}
	if p[4] != 0 || p[5] != 0 || p[6] != 0 || p[7] != 0 {
		return Uint256{}, false
	}
	z = Uint256{w: [4]uint64{p[0], p[1], p[2], p[3]}}
	if z.cmp(maxCoef256) > 0 {
		return Uint256{}, false
	}
	return z, true
}

func (x Uint256) quoRem(y Uint256) (q, r Uint256, ok bool) {
	if y.isZero() {
		return Uint256{}, Uint256{}, false
	}
	if y.w[1] == 0 && y.w[2] == 0 && y.w[3] == 0 {
		// Single-word divisor: limb-wise division from the top.
		var rem uint64
		for i := 3; i >= 0; i-- {
			q.w[i], rem = bits.Div64(rem, x.w[i], y.w[0])
		}
		return q, Uint256{w: [4]uint64{rem, 0, 0, 0}}, true
	}
	for i := x.bitLen() - 1; i >= 0; i-- {
		r = r.shl1()
		r.w[0] |= x.bit(i)
		if r.cmp(y) >= 0 {
			r = r.subWrap(y)
			q = q.setBit(i)
		}
	}
	return q, r, true
}

func (x Uint256) cmp(y Uint256) int {
	for i := 3; i >= 0; i-- {
		switch {
		case x.w[i] < y.w[i]:
			return -1
		case x.w[i] > y.w[i]:
			return 1
		}
	}
	return 0
}

func (x Uint256) isZero() bool {
	return x.w == [4]uint64{}
}

func (x Uint256) odd() bool {
	return x.w[0]&1 != 0
}

func (x Uint256) lsh(shift int) (z Uint256, ok bool) {
	switch {
	case shift <= 0:
		return x, true
	case shift >= len(pow10x256):
		return Uint256{}, false
	}
	return x.mul(pow10x256[shift])
}

func (x Uint256) fsa(shift int, b byte) (z Uint256, ok bool) {
	z, ok = x.lsh(shift)
	if !ok {
		return Uint256{}, false
	}
	z, ok = z.add(Uint256{w: [4]uint64{uint64(b), 0, 0, 0}})
	if !ok {
		return Uint256{}, false
	}
	return z, true
}

func (x Uint256) quoPow10(shift int) (q Uint256, hcmp int, exact bool) {
	switch {
	case shift <= 0:
		return x, -1, true
	case shift >= len(pow10x256):
		return Uint256{}, -1, x.isZero()
	}
	y := pow10x256[shift]
	q, r, _ := x.quoRem(y)
	return q, r.cmp(y.shr1()), r.isZero()
}

func (x Uint256) prec() int {
	left, right := 0, len(pow10x256)
	for left < right {
		mid := (left + right) / 2
		if x.cmp(pow10x256[mid]) < 0 {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}

func (x Uint256) ntz() int {
	left, right := 1, x.prec()
	for left < right {
		mid := (left + right) / 2
		if _, r, _ := x.quoRem(pow10x256[mid]); r.isZero() {
			left = mid + 1
		} else {
			right = mid
		}
	}
	return left - 1
}

func (x Uint256) hasPrec(prec int) bool {
	switch {
	case prec < 1:
		return true
	case prec > len(pow10x256):
		return false
	}
	return x.cmp(pow10x256[prec-1]) >= 0
}

func (Uint256) maxPrec() int {
	return 77
}

func (Uint256) fromUint64(u uint64) (Uint256, bool) {
	return Uint256{w: [4]uint64{u, 0, 0, 0}}, true
}

func (x Uint256) toUint64() (uint64, bool) {
	if x.w[1] != 0 || x.w[2] != 0 || x.w[3] != 0 {
		return 0, false
	}
	return x.w[0], true
}

func (x Uint256) toBig(z *big.Int) *big.Int {
	var b [32]byte
	for i := 0; i < 4; i++ {
		putUint64BE(b[i*8:(i+1)*8], x.w[3-i])
	}
	return z.SetBytes(b[:])
}

func (Uint256) fromBig(z *big.Int) (Uint256, bool) {
	if z.Sign() < 0 || z.BitLen() > 256 {
		return Uint256{}, false
	}
	var x Uint256
	x, ok := x.fromBytes(z.Bytes())
	return x, ok
}

func (x Uint256) bytes(buf []byte) []byte {
	var b [32]byte
	for i := 0; i < 4; i++ {
		putUint64BE(b[i*8:(i+1)*8], x.w[3-i])
	}
	return append(buf, trimZeroBytes(b[:])...)
}

func (Uint256) fromBytes(b []byte) (Uint256, bool) {
	b = trimZeroBytes(b)
	if len(b) > 32 {
		return Uint256{}, false
	}
	var x Uint256
	for _, c := range b {
		for i := 3; i > 0; i-- {
			x.w[i] = x.w[i]<<8 | x.w[i-1]>>56
		}
		x.w[0] = x.w[0]<<8 | uint64(c)
	}
	if x.cmp(maxCoef256) > 0 {
		return Uint256{}, false
	}
	return x, true
}
