/*
Package decimal implements immutable fixed-width decimal floating-point
numbers with configurable precision, rounding, and status flags.
The arithmetic follows the conventions of the [General Decimal
Arithmetic] specification.

# Representation

[Decimal] is a struct with four fields:

  - Sign: a boolean indicating whether the decimal is negative.
  - Coefficient: a fixed-width unsigned integer representing the numeric
    value of the decimal without the decimal point.
  - Scale: a non-negative integer indicating the position of the decimal
    point within the coefficient.
    For example, a decimal with a coefficient of 12345 and a scale of 2
    represents the value 123.45.
  - Form: a tag distinguishing finite numbers from ±Infinity, quiet
    NaN, and signaling NaN.

The numerical value of a finite decimal is calculated as:

  - -Coefficient / 10^Scale, if Sign is true.
  - Coefficient / 10^Scale, if Sign is false.

The same numeric value can have multiple representations: 1, 1.0, and
1.00 represent the same value with different scales. Trailing zeros are
never stripped implicitly; use [Decimal.Reduce] or [Decimal.Quantize].

# Widths

The engine is implemented once over a coefficient primitive and
instantiated at three widths:

	| Type         | Coefficient | Digits | Maximum scale |
	| ------------ | ----------- | ------ | ------------- |
	| [Decimal64]  | [Uint64]    | 19     | 19            |
	| [Decimal128] | [Uint128]   | 38     | 38            |
	| [Decimal256] | [Uint256]   | 77     | 77            |

# Contexts, rounding, and flags

Every operation rounds its ideal result per a [Context], which carries
the working precision, the [RoundingMode], and the set of trapped
conditions. Operations come in pairs: Add uses [DefaultContext], while
AddContext takes an explicit context and returns the signaled [Flags].

Conditions such as [Inexact], [Overflow], or [DivisionByZero] are
reported as flags on every operation. A condition listed in
Context.Traps additionally surfaces as an error; the numeric result is
still returned. [DefaultContext] traps [InvalidOperation],
[DivisionByZero], and [Overflow], so the convenience methods return an
error exactly when the result is not an ordinary number.

# Special values

±Infinity and NaNs propagate through arithmetic before the numeric
path runs: a signaling NaN always signals [InvalidOperation] and
produces a quiet NaN; a quiet NaN propagates silently; indeterminate
combinations of infinities (∞ - ∞, 0 × ∞, ∞ / ∞) produce a NaN and
signal [InvalidOperation].

# Operations

Each arithmetic operation is carried out in two steps:

 1. The operation is initially performed in the checked fixed-width
    arithmetic of the coefficient primitive.
    If no overflow occurs, the result is rounded and returned.
    If an overflow does occur, the operation proceeds to step 2.

 2. The operation is repeated with increased precision using [big.Int]
    arithmetic and the result is rounded to the context precision.

Step 1 avoids heap allocation for the common case; step 2 keeps results
correctly rounded when intermediates exceed the width.

[General Decimal Arithmetic]: https://speleotrove.com/decimal/
[big.Int]: https://pkg.go.dev/math/big#Int
*/
package decimal
