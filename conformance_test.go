package decimal

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Cross-checks against two independent decimal engines: shopspring for
// exact arithmetic and cockroachdb/apd for precision-limited division.

var conformanceOperands = []string{
	"0", "1", "-1", "0.1", "-0.1", "2.5", "-2.5",
	"123.456", "-123.456", "0.000001", "99999999.99999999",
	"9999999999999999999", "-9999999999999999999",
	"0.123456789012345678", "7", "-11.11",
}

func TestConformance_Exact(t *testing.T) {
	for _, sx := range conformanceOperands {
		for _, sy := range conformanceOperands {
			t.Run(fmt.Sprintf("%s_%s", sx, sy), func(t *testing.T) {
				x := MustParse[Uint128](sx)
				y := MustParse[Uint128](sy)
				wx := decimal.RequireFromString(sx)
				wy := decimal.RequireFromString(sy)

				sum, err := x.Add(y)
				require.NoError(t, err)
				requireSameValue(t, sum, wx.Add(wy))

				diff, err := x.Sub(y)
				require.NoError(t, err)
				requireSameValue(t, diff, wx.Sub(wy))

				prod, err := x.Mul(y)
				require.NoError(t, err)
				requireSameValue(t, prod, wx.Mul(wy))

				require.Equal(t, wx.Cmp(wy), mustCmp(t, x, y))
			})
		}
	}
}

func mustCmp(t *testing.T, x, y Decimal128) int {
	t.Helper()
	c, err := x.Cmp(y)
	require.NoError(t, err)
	return c
}

// requireSameValue compares numerically, ignoring trailing zeros, since
// shopspring does not preserve the ideal scale.
func requireSameValue(t *testing.T, got Decimal128, want decimal.Decimal) {
	t.Helper()
	w := decimal.RequireFromString(got.String())
	require.True(t, w.Equal(want), "got %s, want %s", got, want)
}

func TestConformance_Quo(t *testing.T) {
	ctx := apd.BaseContext.WithPrecision(19)
	ctx.Rounding = apd.RoundHalfEven
	for _, sx := range conformanceOperands {
		for _, sy := range conformanceOperands {
			if sy == "0" {
				continue
			}
			t.Run(fmt.Sprintf("%s_%s", sx, sy), func(t *testing.T) {
				x := MustParse[Uint64](sx)
				y := MustParse[Uint64](sy)
				got, flags, err := x.QuoContext(y, DefaultContext.WithTraps(0))
				require.NoError(t, err)
				if flags.Any(Overflow | Subnormal) {
					// apd's exponent range is far wider than the
					// fixed-scale formats; quotients that overflow or
					// lose digits to the scale clamp cannot agree.
					t.Skip("outside the fixed-scale range")
				}

				wx, _, err := apd.NewFromString(sx)
				require.NoError(t, err)
				wy, _, err := apd.NewFromString(sy)
				require.NoError(t, err)
				want := new(apd.Decimal)
				_, err = ctx.Quo(want, wx, wy)
				require.NoError(t, err)

				g, _, err := apd.NewFromString(got.String())
				require.NoError(t, err)
				require.Zero(t, g.Cmp(want), "got %s, want %s", got, want)
			})
		}
	}
}

func TestConformance_QuoRem(t *testing.T) {
	ctx := apd.BaseContext.WithPrecision(19)
	ctx.Rounding = apd.RoundHalfEven
	pairs := []struct{ x, y string }{
		{"8", "3"}, {"-8", "3"}, {"8", "-3"}, {"-8", "-3"},
		{"8.4", "0.3"}, {"123.456", "7.7"}, {"1", "3"},
	}
	for _, p := range pairs {
		t.Run(fmt.Sprintf("%s_%s", p.x, p.y), func(t *testing.T) {
			x := MustParse[Uint64](p.x)
			y := MustParse[Uint64](p.y)
			q, r, err := x.QuoRem(y)
			require.NoError(t, err)

			wx, _, err := apd.NewFromString(p.x)
			require.NoError(t, err)
			wy, _, err := apd.NewFromString(p.y)
			require.NoError(t, err)
			wq, wr := new(apd.Decimal), new(apd.Decimal)
			_, err = ctx.QuoInteger(wq, wx, wy)
			require.NoError(t, err)
			_, err = ctx.Rem(wr, wx, wy)
			require.NoError(t, err)

			gq, _, err := apd.NewFromString(q.String())
			require.NoError(t, err)
			gr, _, err := apd.NewFromString(r.String())
			require.NoError(t, err)
			require.Zero(t, gq.Cmp(wq), "quotient: got %s, want %s", q, wq)
			require.Zero(t, gr.Cmp(wr), "remainder: got %s, want %s", r, wr)
		})
	}
}

func TestConformance_StringRoundTrip(t *testing.T) {
	for _, s := range conformanceOperands {
		d := MustParse[Uint128](s)
		e := MustParse[Uint128](d.String())
		require.Equal(t, d, e, "round trip of %s", s)
	}
}
