package decimal

// This file implements the rounding engine. Every arithmetic operation
// produces an ideal intermediate result, either within the coefficient
// width or as a wide *bint, and routes it through finish or finishBig,
// which discard excess digits per the context and signal flags.

// finish rounds an exact in-width intermediate result.
// The scale must be non-negative; it may exceed the width's maximum
// scale, in which case the result is clamped.
func finish[C coefficient[C]](ctx Context, neg bool, coef C, scale int) (Decimal[C], Flags, error) {
	capP := coef.maxPrec()
	limitP := ctx.prec(capP)
	if coef.isZero() {
		var flags Flags
		if scale > capP {
			scale = capP
			flags = Clamped
		}
		return newUnsafe(false, coef, scale), flags, ctx.trap(flags)
	}
	shift := max(coef.prec()-limitP, scale-capP, 0)
	if shift == 0 {
		return newUnsafe(neg, coef, scale), 0, nil
	}
	flags := Rounded
	// Tiny only when the scale cap discards more digits than the
	// precision limit alone would.
	if scale-capP > coef.prec()-limitP {
		flags |= Clamped | Subnormal
	}
	q, hcmp, exact := coef.quoPow10(shift)
	scale -= shift
	if !exact {
		flags |= Inexact
		if flags&Subnormal != 0 {
			flags |= Underflow
		}
		if ctx.Rounding.needsInc(hcmp, q.odd(), neg) {
			if q2, ok := q.add(oneCoef[C]()); ok && !q2.hasPrec(limitP+1) {
				q = q2
			} else {
				// An all-nines coefficient rolls over to a power of ten
				q, _, _ = q.quoPow10(1)
				q, _ = q.add(oneCoef[C]())
				scale--
			}
		}
	}
	if scale < 0 {
		// Rounding at a lowered precision can leave the exponent above
		// what a non-negative scale can express; pad the coefficient
		// with zeros to bring it back, or overflow the width.
		q2, ok := q.lsh(-scale)
		if !ok || q2.hasPrec(capP+1) {
			return overflown[C](ctx, neg)
		}
		q = q2
		scale = 0
		flags |= Clamped
	}
	return newUnsafe(neg, q, scale), flags, ctx.trap(flags)
}

// finishBig rounds a wide intermediate result. sticky reports that
// nonzero digits below the last digit of coef were already discarded by
// the caller; it sharpens the half-way comparison and forces Inexact.
// finishBig may modify coef.
func finishBig[C coefficient[C]](ctx Context, neg bool, coef *bint, scale int, sticky bool) (Decimal[C], Flags, error) {
	var zero C
	capP := zero.maxPrec()
	limitP := ctx.prec(capP)
	if scale < 0 {
		// Fold a negative ideal scale into the coefficient
		coef.lsh(coef, -scale)
		scale = 0
	}
	if coef.sign() == 0 {
		var flags Flags
		if scale > capP {
			scale = capP
			flags = Clamped
		}
		return newUnsafe(false, zero, scale), flags, ctx.trap(flags)
	}
	shift := max(coef.prec()-limitP, scale-capP, 0)
	if shift == 0 && !sticky {
		c, ok := zero.fromBig(coef.big())
		if !ok {
			return nan[C](), InvalidOperation, ctx.trap(InvalidOperation)
		}
		return newUnsafe(neg, c, scale), 0, nil
	}
	flags := Rounded
	// See finish: tiny only when the scale cap is the binding limit.
	if scale-capP > coef.prec()-limitP {
		flags |= Clamped | Subnormal
	}
	q := getBint()
	defer putBint(q)
	hcmp, exact := q.quoPow10(coef, shift)
	scale -= shift
	if sticky {
		if hcmp == 0 {
			hcmp = 1
		}
		exact = false
	}
	if !exact {
		flags |= Inexact
		if flags&Subnormal != 0 {
			flags |= Underflow
		}
		if ctx.Rounding.needsInc(hcmp, q.isOdd(), neg) {
			q.inc(q)
			if q.hasPrec(limitP + 1) {
				q.quoPow10(q, 1)
				scale--
			}
		}
	}
	if scale < 0 {
		// See finish: pad the coefficient or overflow the width.
		q.lsh(q, -scale)
		scale = 0
		flags |= Clamped
	}
	c, ok := zero.fromBig(q.big())
	if !ok {
		return overflown[C](ctx, neg)
	}
	return newUnsafe(neg, c, scale), flags, ctx.trap(flags)
}

// overflown returns the result of an overflowing operation. Modes that
// never round away from zero in the overflowing direction produce the
// largest finite number instead of an infinity.
func overflown[C coefficient[C]](ctx Context, neg bool) (Decimal[C], Flags, error) {
	flags := Overflow | Inexact | Rounded
	toMax := ctx.Rounding == Down ||
		(ctx.Rounding == Ceiling && neg) ||
		(ctx.Rounding == Floor && !neg)
	if toMax {
		var zero C
		limitP := ctx.prec(zero.maxPrec())
		b := getBint()
		defer putBint(b)
		b.sub(pow10big(limitP), bpow10[0])
		coef, _ := zero.fromBig(b.big())
		return newUnsafe(neg, coef, 0), flags, ctx.trap(flags)
	}
	return inf[C](neg), flags, ctx.trap(flags)
}
