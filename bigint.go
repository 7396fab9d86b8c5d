package decimal

import (
	"math/big"
	"sync"
)

// bint (Big INTeger) is a wrapper around big.Int. It carries wide
// intermediate results: scale alignment that overflows the coefficient
// width, double-width products, and scaled dividends.
type bint big.Int

// bpow10 is a cache of powers of 10, where bpow10[x] = 10^x.
// The cache is sized to cover every shift the engine can request for the
// widest coefficient (alignment plus division headroom).
var bpow10 = func() (t [260]*bint) {
	x := big.NewInt(1)
	ten := big.NewInt(10)
	for i := range t {
		t[i] = (*bint)(new(big.Int).Set(x))
		x.Mul(x, ten)
	}
	return t
}()

func (z *bint) sign() int {
	return (*big.Int)(z).Sign()
}

func (z *bint) cmp(x *bint) int {
	return (*big.Int)(z).Cmp((*big.Int)(x))
}

func (z *bint) string() string {
	return (*big.Int)(z).String()
}

func (z *bint) setBint(x *bint) {
	(*big.Int)(z).Set((*big.Int)(x))
}

func (z *bint) setUint64(x uint64) {
	(*big.Int)(z).SetUint64(x)
}

func (z *bint) big() *big.Int {
	return (*big.Int)(z)
}

// add calculates z = x + y.
func (z *bint) add(x, y *bint) {
	(*big.Int)(z).Add((*big.Int)(x), (*big.Int)(y))
}

// inc calculates z = x + 1.
func (z *bint) inc(x *bint) {
	z.add(x, bpow10[0])
}

// sub calculates z = x - y.
func (z *bint) sub(x, y *bint) {
	(*big.Int)(z).Sub((*big.Int)(x), (*big.Int)(y))
}

// dist calculates z = |x - y|.
func (z *bint) dist(x, y *bint) {
	switch x.cmp(y) {
	case 1:
		z.sub(x, y)
	default:
		z.sub(y, x)
	}
}

// hlf calculates z = ⌊x / 2⌋.
func (z *bint) hlf(x *bint) {
	(*big.Int)(z).Rsh((*big.Int)(x), 1)
}

// mul calculates z = x * y.
func (z *bint) mul(x, y *bint) {
	// Copying x, y to prevent heap allocations.
	if z == x {
		b := getBint()
		defer putBint(b)
		b.setBint(x)
		x = b
	}
	if z == y {
		b := getBint()
		defer putBint(b)
		b.setBint(y)
		y = b
	}
	(*big.Int)(z).Mul((*big.Int)(x), (*big.Int)(y))
}

// quo calculates z = ⌊x / y⌋.
func (z *bint) quo(x, y *bint) {
	// Passing r to prevent heap allocations.
	r := getBint()
	defer putBint(r)
	z.quoRem(x, y, r)
}

// quoRem calculates z = ⌊x / y⌋, r = x - y * z.
func (z *bint) quoRem(x, y, r *bint) {
	(*big.Int)(z).QuoRem((*big.Int)(x), (*big.Int)(y), (*big.Int)(r))
}

func (z *bint) isOdd() bool {
	return (*big.Int)(z).Bit(0) != 0
}

// pow10big returns 10^power, from the cache when possible.
func pow10big(power int) *bint {
	if power < len(bpow10) {
		return bpow10[power]
	}
	z := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(power)), nil)
	return (*bint)(z)
}

// lsh (Left Shift) calculates z = x * 10^shift.
func (z *bint) lsh(x *bint, shift int) {
	if shift <= 0 {
		z.setBint(x)
		return
	}
	z.mul(x, pow10big(shift))
}

// fsa (Fused Shift and Addition) calculates z = x * 10^shift + b.
func (z *bint) fsa(x *bint, shift int, b byte) {
	y := getBint()
	defer putBint(y)
	y.setUint64(uint64(b))
	z.lsh(x, shift)
	z.add(z, y)
}

// quoPow10 calculates z = ⌊x / 10^shift⌋ and describes the discarded
// remainder r: hcmp compares r against 10^shift / 2 and exact reports
// whether r is zero.
func (z *bint) quoPow10(x *bint, shift int) (hcmp int, exact bool) {
	if shift <= 0 {
		z.setBint(x)
		return -1, true
	}
	y := pow10big(shift)
	r := getBint()
	defer putBint(r)
	z.quoRem(x, y, r)
	h := getBint()
	defer putBint(h)
	h.hlf(y)
	return r.cmp(h), r.sign() == 0
}

// prec returns length of z in decimal digits.
// prec assumes that 0 has no digits.
// If z is negative, the result is unpredictable.
func (z *bint) prec() int {
	// Special case
	if z.cmp(bpow10[len(bpow10)-1]) >= 0 {
		return len(z.string())
	}
	// General case
	left, right := 0, len(bpow10)
	for left < right {
		mid := (left + right) / 2
		if z.cmp(bpow10[mid]) < 0 {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}

// hasPrec checks if z has a given number of digits or more.
// hasPrec assumes that 0 has no digits.
// If z is negative, the result is unpredictable.
func (z *bint) hasPrec(prec int) bool {
	// Special cases
	switch {
	case prec < 1:
		return true
	case prec > len(bpow10):
		return len(z.string()) >= prec
	}
	// General case
	return z.cmp(bpow10[prec-1]) >= 0
}

// ntz returns number of trailing zeros in z.
func (z *bint) ntz() int {
	r := getBint()
	defer putBint(r)
	q := getBint()
	defer putBint(q)
	left, right := 1, z.prec()
	for left < right {
		mid := (left + right) / 2
		q.quoRem(z, pow10big(mid), r)
		if r.sign() == 0 {
			left = mid + 1
		} else {
			right = mid
		}
	}
	return left - 1
}

// bpool is a cache of reusable *big.Int instances.
var bpool = sync.Pool{
	New: func() any {
		return (*bint)(new(big.Int))
	},
}

// getBint obtains a *big.Int from the pool.
func getBint() *bint {
	return bpool.Get().(*bint)
}

// putBint returns the *big.Int into the pool.
func putBint(b *bint) {
	bpool.Put(b)
}
