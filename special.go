package decimal

// Inf returns an infinity, negative when sign < 0.
func Inf[C coefficient[C]](sign int) Decimal[C] {
	return inf[C](sign < 0)
}

// NaN returns a quiet NaN with a zero payload.
func NaN[C coefficient[C]]() Decimal[C] {
	return Decimal[C]{form: qnan}
}

// SNaN returns a signaling NaN with a zero payload.
// Any arithmetic on a signaling NaN signals [InvalidOperation] and
// produces a quiet NaN.
func SNaN[C coefficient[C]]() Decimal[C] {
	return Decimal[C]{form: snan}
}

// NaNWithPayload returns a quiet NaN carrying the given diagnostic
// payload. Payloads that do not fit the width are truncated to zero.
func NaNWithPayload[C coefficient[C]](payload uint64) Decimal[C] {
	var zero C
	coef, ok := zero.fromUint64(payload)
	if !ok {
		coef = zero
	}
	return Decimal[C]{form: qnan, coef: coef}
}

// Payload returns the diagnostic payload of a NaN as a big-endian byte
// slice without leading zeros. For non-NaN values it returns nil.
func (d Decimal[C]) Payload() []byte {
	if !d.IsNaN() {
		return nil
	}
	return d.coef.bytes(nil)
}

// propagateNaN selects the NaN an operation on d and e must return:
// a signaling NaN outranks a quiet one, and the first operand outranks
// the second. The result is always quiet; the payload and the sign
// survive. At least one operand must be a NaN.
func propagateNaN[C coefficient[C]](d, e Decimal[C]) Decimal[C] {
	switch {
	case d.form == snan:
		return d.quiet()
	case e.form == snan:
		return e.quiet()
	case d.form == qnan:
		return d
	}
	return e
}
