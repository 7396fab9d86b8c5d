package decimal

// Zeroize overwrites the coefficient storage and resets the sign,
// scale, and special state, leaving d equal to the zero value. It is
// intended for values holding sensitive material, such as protocol
// secrets carried as decimals, and is never invoked implicitly.
//
// Zeroize is the only method that mutates a Decimal in place.
func (d *Decimal[C]) Zeroize() {
	var zero C
	d.coef = zero
	d.scale = 0
	d.neg = false
	d.form = finite
}
