package decimal

// opNaN implements the shared NaN handling of binary operations.
// At least one operand must be a NaN.
func opNaN[C coefficient[C]](ctx Context, d, e Decimal[C]) (Decimal[C], Flags, error) {
	r := propagateNaN(d, e)
	if d.form == snan || e.form == snan {
		return r, InvalidOperation, ctx.trap(InvalidOperation)
	}
	return r, 0, nil
}

// invalid returns a quiet NaN and signals InvalidOperation.
func invalid[C coefficient[C]](ctx Context) (Decimal[C], Flags, error) {
	return nan[C](), InvalidOperation, ctx.trap(InvalidOperation)
}

// Add returns d + e rounded under [DefaultContext].
func (d Decimal[C]) Add(e Decimal[C]) (Decimal[C], error) {
	r, _, err := d.AddContext(e, DefaultContext)
	return r, err
}

// AddContext returns d + e rounded per the context.
//
// The ideal scale of the sum is the larger of the operand scales; the
// result keeps it unless digits must be discarded to fit the precision.
// ∞ + (-∞) is a NaN and signals [InvalidOperation].
func (d Decimal[C]) AddContext(e Decimal[C], ctx Context) (Decimal[C], Flags, error) {
	if d.IsNaN() || e.IsNaN() {
		return opNaN(ctx, d, e)
	}
	switch {
	case d.form == infinite && e.form == infinite:
		if d.neg != e.neg {
			return invalid[C](ctx)
		}
		return d, 0, nil
	case d.form == infinite:
		return d, 0, nil
	case e.form == infinite:
		return e, 0, nil
	}

	scale := max(int(d.scale), int(e.scale))

	// Fast path: aligned operands fit the width
	x, okX := d.coef.lsh(scale - int(d.scale))
	y, okY := e.coef.lsh(scale - int(e.scale))
	if okX && okY {
		if d.neg == e.neg {
			if z, ok := x.add(y); ok {
				return finish(ctx, d.neg, z, scale)
			}
		} else {
			neg := d.neg
			if x.cmp(y) < 0 {
				neg = e.neg
			}
			return finish(ctx, neg, x.dist(y), scale)
		}
	}

	// Slow path
	xb := getBint()
	defer putBint(xb)
	yb := getBint()
	defer putBint(yb)
	d.coef.toBig(xb.big())
	e.coef.toBig(yb.big())
	xb.lsh(xb, scale-int(d.scale))
	yb.lsh(yb, scale-int(e.scale))
	neg := d.neg
	if d.neg == e.neg {
		xb.add(xb, yb)
	} else {
		if xb.cmp(yb) < 0 {
			neg = e.neg
		}
		xb.dist(xb, yb)
	}
	return finishBig[C](ctx, neg, xb, scale, false)
}

// Sub returns d - e rounded under [DefaultContext].
func (d Decimal[C]) Sub(e Decimal[C]) (Decimal[C], error) {
	r, _, err := d.SubContext(e, DefaultContext)
	return r, err
}

// SubContext returns d - e rounded per the context.
// It behaves like [Decimal.AddContext] with the sign of e reversed.
func (d Decimal[C]) SubContext(e Decimal[C], ctx Context) (Decimal[C], Flags, error) {
	if d.IsNaN() || e.IsNaN() {
		return opNaN(ctx, d, e)
	}
	return d.AddContext(e.Neg(), ctx)
}

// Mul returns d × e rounded under [DefaultContext].
func (d Decimal[C]) Mul(e Decimal[C]) (Decimal[C], error) {
	r, _, err := d.MulContext(e, DefaultContext)
	return r, err
}

// MulContext returns d × e rounded per the context.
//
// The ideal scale of the product is the sum of the operand scales.
// 0 × ∞ is a NaN and signals [InvalidOperation].
func (d Decimal[C]) MulContext(e Decimal[C], ctx Context) (Decimal[C], Flags, error) {
	if d.IsNaN() || e.IsNaN() {
		return opNaN(ctx, d, e)
	}
	neg := d.neg != e.neg
	if d.form == infinite || e.form == infinite {
		if d.IsZero() || e.IsZero() {
			return invalid[C](ctx)
		}
		return inf[C](neg), 0, nil
	}

	scale := int(d.scale) + int(e.scale)

	// Fast path
	if z, ok := d.coef.mul(e.coef); ok {
		return finish(ctx, neg, z, scale)
	}

	// Slow path: double-width product
	xb := getBint()
	defer putBint(xb)
	yb := getBint()
	defer putBint(yb)
	d.coef.toBig(xb.big())
	e.coef.toBig(yb.big())
	xb.mul(xb, yb)
	return finishBig[C](ctx, neg, xb, scale, false)
}

// FMA returns d × e + f with a single final rounding under
// [DefaultContext].
func (d Decimal[C]) FMA(e, f Decimal[C]) (Decimal[C], error) {
	r, _, err := d.FMAContext(e, f, DefaultContext)
	return r, err
}

// FMAContext (Fused Multiply-Addition) returns d × e + f, rounding only
// once, after the addition. The intermediate product is exact.
func (d Decimal[C]) FMAContext(e, f Decimal[C], ctx Context) (Decimal[C], Flags, error) {
	if d.IsNaN() || e.IsNaN() || f.IsNaN() {
		r := propagateNaN(propagateNaN(d, e), f)
		if d.form == snan || e.form == snan || f.form == snan {
			return r.quiet(), InvalidOperation, ctx.trap(InvalidOperation)
		}
		return r, 0, nil
	}
	if d.form == infinite || e.form == infinite {
		if d.IsZero() || e.IsZero() {
			return invalid[C](ctx)
		}
		p := inf[C](d.neg != e.neg)
		return p.AddContext(f, ctx)
	}
	if f.form == infinite {
		return f, 0, nil
	}

	// Exact product, then a single aligned addition
	scale := int(d.scale) + int(e.scale)
	xb := getBint()
	defer putBint(xb)
	yb := getBint()
	defer putBint(yb)
	d.coef.toBig(xb.big())
	e.coef.toBig(yb.big())
	xb.mul(xb, yb)
	neg := d.neg != e.neg

	s := max(scale, int(f.scale))
	f.coef.toBig(yb.big())
	xb.lsh(xb, s-scale)
	yb.lsh(yb, s-int(f.scale))
	if neg == f.neg {
		xb.add(xb, yb)
	} else {
		if xb.cmp(yb) < 0 {
			neg = f.neg
		}
		xb.dist(xb, yb)
	}
	return finishBig[C](ctx, neg, xb, s, false)
}

// Quo returns d / e rounded under [DefaultContext].
func (d Decimal[C]) Quo(e Decimal[C]) (Decimal[C], error) {
	r, _, err := d.QuoContext(e, DefaultContext)
	return r, err
}

// QuoContext returns d / e rounded per the context.
//
// The quotient is computed to at least one digit beyond the context
// precision before rounding, so the result is correctly rounded.
// Division of a nonzero value by zero returns a signed infinity and
// signals [DivisionByZero]; 0 / 0 returns a NaN and signals
// [InvalidOperation], as does ∞ / ∞.
func (d Decimal[C]) QuoContext(e Decimal[C], ctx Context) (Decimal[C], Flags, error) {
	if d.IsNaN() || e.IsNaN() {
		return opNaN(ctx, d, e)
	}
	neg := d.neg != e.neg
	switch {
	case d.form == infinite && e.form == infinite:
		return invalid[C](ctx)
	case d.form == infinite:
		return inf[C](neg), 0, nil
	case e.form == infinite:
		var zero C
		return newUnsafe(false, zero, 0), 0, nil
	}
	if e.coef.isZero() {
		if d.coef.isZero() {
			return invalid[C](ctx)
		}
		return inf[C](neg), DivisionByZero, ctx.trap(DivisionByZero)
	}
	if d.coef.isZero() {
		var zero C
		return finish(ctx, false, zero, max(int(d.scale)-int(e.scale), 0))
	}

	ideal := int(d.scale) - int(e.scale)

	// Fast path: exact in-width quotient
	if x, ok := d.coef.lsh(d.coef.maxPrec() - d.coef.prec()); ok {
		if q, r, ok := x.quoRem(e.coef); ok && r.isZero() {
			scale := ideal + d.coef.maxPrec() - d.coef.prec()
			// Strip the padding back toward the ideal scale
			if t := min(q.ntz(), scale-max(ideal, 0)); t > 0 {
				q, _, _ = q.quoPow10(t)
				scale -= t
			}
			if scale >= 0 {
				return finish(ctx, neg, q, scale)
			}
		}
	}

	// Slow path: long division with precision + 1 digits
	limitP := ctx.prec(d.coef.maxPrec())
	k := limitP + 1 - (d.coef.prec() - e.coef.prec())
	if k < 0 {
		k = 0
	}
	xb := getBint()
	defer putBint(xb)
	yb := getBint()
	defer putBint(yb)
	rb := getBint()
	defer putBint(rb)
	d.coef.toBig(xb.big())
	e.coef.toBig(yb.big())
	xb.lsh(xb, k)
	xb.quoRem(xb, yb, rb)
	return finishBig[C](ctx, neg, xb, ideal+k, rb.sign() != 0)
}

// QuoRem returns the integer quotient q = d div e and the remainder
// r = d - e × q under [DefaultContext].
func (d Decimal[C]) QuoRem(e Decimal[C]) (q, r Decimal[C], err error) {
	q, r, _, err = d.QuoRemContext(e, DefaultContext)
	return q, r, err
}

// QuoRemContext returns the integer quotient q = d div e, truncated
// toward zero, and the remainder r = d - e × q. The remainder keeps the
// larger of the operand scales and the sign of d.
//
// If the integer quotient has more digits than the format can hold, both
// results are NaNs and [InvalidOperation] is signaled.
func (d Decimal[C]) QuoRemContext(e Decimal[C], ctx Context) (q, r Decimal[C], flags Flags, err error) {
	if d.IsNaN() || e.IsNaN() {
		q, flags, err = opNaN(ctx, d, e)
		return q, q, flags, err
	}
	neg := d.neg != e.neg
	if d.form == infinite {
		q, flags, err = invalid[C](ctx)
		return q, q, flags, err
	}
	if e.form == infinite {
		var zero C
		return newUnsafe(false, zero, 0), d, 0, nil
	}
	if e.coef.isZero() {
		if d.coef.isZero() {
			q, flags, err = invalid[C](ctx)
			return q, q, flags, err
		}
		flags = DivisionByZero | InvalidOperation
		return inf[C](neg), nan[C](), flags, ctx.trap(flags)
	}

	scale := max(int(d.scale), int(e.scale))
	xb := getBint()
	defer putBint(xb)
	yb := getBint()
	defer putBint(yb)
	rb := getBint()
	defer putBint(rb)
	d.coef.toBig(xb.big())
	e.coef.toBig(yb.big())
	xb.lsh(xb, scale-int(d.scale))
	yb.lsh(yb, scale-int(e.scale))
	xb.quoRem(xb, yb, rb)

	var zero C
	qc, ok := zero.fromBig(xb.big())
	if !ok || qc.hasPrec(ctx.prec(zero.maxPrec())+1) {
		q, flags, err = invalid[C](ctx)
		return q, q, flags, err
	}
	q = newUnsafe(neg, qc, 0)
	r, flags, err = finishBig[C](ctx, d.neg, rb, scale, false)
	return q, r, flags, err
}

// Rem returns the remainder r = d - e × (d div e) under
// [DefaultContext].
func (d Decimal[C]) Rem(e Decimal[C]) (Decimal[C], error) {
	r, _, err := d.RemContext(e, DefaultContext)
	return r, err
}

// RemContext returns the remainder of d divided by e, following the
// truncating-quotient convention. The result has the sign of d.
// x rem 0 and ∞ rem x return a NaN and signal [InvalidOperation];
// x rem ∞ returns x.
func (d Decimal[C]) RemContext(e Decimal[C], ctx Context) (Decimal[C], Flags, error) {
	if d.IsNaN() || e.IsNaN() {
		return opNaN(ctx, d, e)
	}
	if d.form == infinite || e.coef.isZero() && e.form == finite {
		return invalid[C](ctx)
	}
	if e.form == infinite {
		return d, 0, nil
	}
	_, r, flags, err := d.QuoRemContext(e, ctx)
	return r, flags, err
}

// Pow returns d raised to the integer power n under [DefaultContext].
func (d Decimal[C]) Pow(n int) (Decimal[C], error) {
	r, _, err := d.PowContext(n, DefaultContext)
	return r, err
}

// PowContext returns dⁿ for an integer n, computed by exponentiation by
// squaring with every intermediate product rounded per the context.
// The flags of all steps are accumulated.
//
// d⁰ is 1 for every d that is not a NaN, including 0⁰ and ∞⁰.
// 0ⁿ for negative n is an infinity and signals [DivisionByZero].
func (d Decimal[C]) PowContext(n int, ctx Context) (Decimal[C], Flags, error) {
	if d.IsNaN() {
		if d.form == snan {
			return d.quiet(), InvalidOperation, ctx.trap(InvalidOperation)
		}
		return d, 0, nil
	}
	var zero C
	one := newUnsafe[C](false, oneCoef[C](), 0)
	if n == 0 {
		return one, 0, nil
	}
	if d.form == infinite {
		if n < 0 {
			return newUnsafe(false, zero, 0), 0, nil
		}
		return inf[C](d.neg && n%2 != 0), 0, nil
	}
	if d.coef.isZero() {
		if n < 0 {
			return inf[C](false), DivisionByZero, ctx.trap(DivisionByZero)
		}
		scale := int(d.scale)
		if scale > 0 && n > zero.maxPrec()/scale {
			scale = zero.maxPrec()
		} else {
			scale = min(scale*n, zero.maxPrec())
		}
		return newUnsafe(false, zero, scale), 0, nil
	}

	inverted := n < 0
	m := uint(n)
	if inverted {
		m = uint(-n)
	}
	var flags Flags
	result, base := one, d
	for {
		if m&1 != 0 {
			var f Flags
			var err error
			result, f, err = result.MulContext(base, ctx)
			flags |= f
			if err != nil {
				return result, flags, err
			}
		}
		m >>= 1
		if m == 0 {
			break
		}
		var f Flags
		var err error
		base, f, err = base.MulContext(base, ctx)
		flags |= f
		if err != nil {
			return base, flags, err
		}
	}
	if inverted {
		var f Flags
		var err error
		result, f, err = one.QuoContext(result, ctx)
		flags |= f
		if err != nil {
			return result, flags, err
		}
	}
	return result, flags, ctx.trap(flags)
}

// Inv returns 1 / d under [DefaultContext].
func (d Decimal[C]) Inv() (Decimal[C], error) {
	one := newUnsafe[C](false, oneCoef[C](), 0)
	r, _, err := one.QuoContext(d, DefaultContext)
	return r, err
}
