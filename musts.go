package decimal

import "fmt"

// MustAdd is like [Decimal.Add] but panics if the computation fails.
func (d Decimal[C]) MustAdd(e Decimal[C]) Decimal[C] {
	f, err := d.Add(e)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", e, err))
	}
	return f
}

// MustSub is like [Decimal.Sub] but panics if the computation fails.
func (d Decimal[C]) MustSub(e Decimal[C]) Decimal[C] {
	f, err := d.Sub(e)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", e, err))
	}
	return f
}

// MustMul is like [Decimal.Mul] but panics if the computation fails.
func (d Decimal[C]) MustMul(e Decimal[C]) Decimal[C] {
	f, err := d.Mul(e)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", e, err))
	}
	return f
}

// MustQuo is like [Decimal.Quo] but panics if the computation fails.
func (d Decimal[C]) MustQuo(e Decimal[C]) Decimal[C] {
	f, err := d.Quo(e)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", e, err))
	}
	return f
}

// MustPow is like [Decimal.Pow] but panics if the computation fails.
func (d Decimal[C]) MustPow(n int) Decimal[C] {
	f, err := d.Pow(n)
	if err != nil {
		panic(fmt.Sprintf("MustPow(%v) failed: %v", n, err))
	}
	return f
}
