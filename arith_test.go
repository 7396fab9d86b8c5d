package decimal

import (
	"errors"
	"testing"
)

func TestDecimal_Add(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, e, want string
		}{
			{"1", "1", "2"},
			{"2", "3", "5"},
			{"5.75", "3.3", "9.05"},
			{"5", "-3", "2"},
			{"-5", "-3", "-8"},
			{"-7", "2.5", "-4.5"},
			{"0.7", "0.3", "1.0"},
			{"1.25", "1.25", "2.50"},
			{"1.1", "0.11", "1.21"},
			{"123.456", "0.544", "124.000"},
			{"0", "0", "0"},
			{"0", "0.00", "0.00"},
			{"1.23", "0", "1.23"},
			{"3", "-3", "0"},
			{"-3", "3", "0"},
			{"9999999999999999998", "1", "9999999999999999999"},
		}
		for _, tt := range tests {
			d := MustParse[Uint64](tt.d)
			e := MustParse[Uint64](tt.e)
			got, err := d.Add(e)
			if err != nil {
				t.Errorf("%q.Add(%q) failed: %v", tt.d, tt.e, err)
				continue
			}
			if s := got.String(); s != tt.want {
				t.Errorf("%q.Add(%q) = %q, want %q", tt.d, tt.e, s, tt.want)
			}
			// Addition commutes
			if r, _ := e.Add(d); r != got {
				t.Errorf("%q.Add(%q) != %q.Add(%q)", tt.d, tt.e, tt.e, tt.d)
			}
		}
	})

	t.Run("overflow", func(t *testing.T) {
		d := MustParse[Uint64]("9999999999999999999")
		e := MustParse[Uint64]("1")

		// DefaultContext traps Overflow
		if _, err := d.Add(e); !errors.Is(err, Overflow) {
			t.Errorf("Add error = %v, want %v", err, Overflow)
		}

		// Untrapped: signed infinity plus flags
		got, flags, err := d.AddContext(e, DefaultContext.WithTraps(0))
		if err != nil {
			t.Fatalf("AddContext failed: %v", err)
		}
		if !got.IsInf() || !got.IsPos() {
			t.Errorf("AddContext = %q, want Infinity", got)
		}
		if !flags.Has(Overflow | Inexact | Rounded) {
			t.Errorf("AddContext flags = %v, want Overflow|Inexact|Rounded", flags)
		}

		got, _, _ = d.Neg().AddContext(e.Neg(), DefaultContext.WithTraps(0))
		if !got.IsInf() || !got.IsNeg() {
			t.Errorf("negative overflow = %q, want -Infinity", got)
		}
	})

	t.Run("special", func(t *testing.T) {
		tests := []struct {
			d, e, want string
		}{
			{"Infinity", "Infinity", "Infinity"},
			{"-Infinity", "-Infinity", "-Infinity"},
			{"Infinity", "1", "Infinity"},
			{"1", "-Infinity", "-Infinity"},
			{"NaN", "1", "NaN"},
			{"1", "NaN", "NaN"},
		}
		for _, tt := range tests {
			d := MustParse[Uint64](tt.d)
			e := MustParse[Uint64](tt.e)
			got, _, _ := d.AddContext(e, DefaultContext.WithTraps(0))
			if s := got.String(); s != tt.want {
				t.Errorf("%q.Add(%q) = %q, want %q", tt.d, tt.e, s, tt.want)
			}
		}

		// ∞ - ∞
		d := MustParse[Uint64]("Infinity")
		got, flags, _ := d.AddContext(d.Neg(), DefaultContext.WithTraps(0))
		if !got.IsNaN() || !flags.Has(InvalidOperation) {
			t.Errorf("Inf + -Inf = %q, flags %v", got, flags)
		}
	})
}

func TestDecimal_Sub(t *testing.T) {
	tests := []struct {
		d, e, want string
	}{
		{"5", "3", "2"},
		{"3", "5", "-2"},
		{"1.000", "0.001", "0.999"},
		{"1", "1", "0"},
		{"-1.5", "-1.5", "0.0"},
	}
	for _, tt := range tests {
		d := MustParse[Uint64](tt.d)
		e := MustParse[Uint64](tt.e)
		got, err := d.Sub(e)
		if err != nil {
			t.Errorf("%q.Sub(%q) failed: %v", tt.d, tt.e, err)
			continue
		}
		if s := got.String(); s != tt.want {
			t.Errorf("%q.Sub(%q) = %q, want %q", tt.d, tt.e, s, tt.want)
		}
	}
}

func TestDecimal_Mul(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, e, want string
		}{
			{"2", "2", "4"},
			{"2", "3.5", "7.0"},
			{"0.1", "0.1", "0.01"},
			{"-1.1", "1.1", "-1.21"},
			{"1.23", "1", "1.23"},
			{"3.00", "0", "0.00"},
			{"9999999999", "9999999999", "99999999980000000001"},
		}
		for _, tt := range tests {
			d := MustParse[Uint128](tt.d)
			e := MustParse[Uint128](tt.e)
			got, err := d.Mul(e)
			if err != nil {
				t.Errorf("%q.Mul(%q) failed: %v", tt.d, tt.e, err)
				continue
			}
			if s := got.String(); s != tt.want {
				t.Errorf("%q.Mul(%q) = %q, want %q", tt.d, tt.e, s, tt.want)
			}
		}
	})

	t.Run("rounding", func(t *testing.T) {
		// The exact product needs 20 digits; the last digit is rounded
		d := MustParse[Uint64]("9.999999999")
		got, flags, err := d.MulContext(d, DefaultContext.WithTraps(0))
		if err != nil {
			t.Fatalf("MulContext failed: %v", err)
		}
		if s := got.String(); s != "99.99999998000000000" {
			t.Errorf("MulContext = %q", s)
		}
		if !flags.Has(Rounded | Inexact) {
			t.Errorf("MulContext flags = %v, want Rounded|Inexact", flags)
		}
	})

	t.Run("special", func(t *testing.T) {
		inf := MustParse[Uint64]("Infinity")
		zero := MustParse[Uint64]("0")
		two := MustParse[Uint64]("-2")

		got, flags, _ := inf.MulContext(zero, DefaultContext.WithTraps(0))
		if !got.IsNaN() || !flags.Has(InvalidOperation) {
			t.Errorf("Inf × 0 = %q, flags %v", got, flags)
		}
		got, _, _ = inf.MulContext(two, DefaultContext.WithTraps(0))
		if !got.IsInf() || !got.IsNeg() {
			t.Errorf("Inf × -2 = %q, want -Infinity", got)
		}
	})
}

func TestDecimal_FMA(t *testing.T) {
	tests := []struct {
		d, e, f, want string
	}{
		{"2", "3", "1", "7"},
		{"1.1", "1.1", "0.79", "2.00"},
		{"-2", "3", "6", "0"},
		{"2", "3", "0.5", "6.5"},
	}
	for _, tt := range tests {
		d := MustParse[Uint64](tt.d)
		e := MustParse[Uint64](tt.e)
		f := MustParse[Uint64](tt.f)
		got, err := d.FMA(e, f)
		if err != nil {
			t.Errorf("%q.FMA(%q, %q) failed: %v", tt.d, tt.e, tt.f, err)
			continue
		}
		if s := got.String(); s != tt.want {
			t.Errorf("%q.FMA(%q, %q) = %q, want %q", tt.d, tt.e, tt.f, s, tt.want)
		}
	}
}

func TestDecimal_Quo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, e, want string
		}{
			{"10", "2", "5"},
			{"1", "8", "0.125"},
			{"3.000", "3", "1.000"},
			{"-7", "2", "-3.5"},
			{"2.400", "2", "1.200"},
			{"0", "5", "0"},
			{"1", "3", "0.3333333333333333333"},
			{"2", "3", "0.6666666666666666667"},
		}
		for _, tt := range tests {
			d := MustParse[Uint64](tt.d)
			e := MustParse[Uint64](tt.e)
			got, err := d.Quo(e)
			if err != nil {
				t.Errorf("%q.Quo(%q) failed: %v", tt.d, tt.e, err)
				continue
			}
			if s := got.String(); s != tt.want {
				t.Errorf("%q.Quo(%q) = %q, want %q", tt.d, tt.e, s, tt.want)
			}
		}
	})

	t.Run("precision", func(t *testing.T) {
		d := MustParse[Uint64]("10")
		e := MustParse[Uint64]("3")
		ctx := DefaultContext.WithPrecision(5)
		got, flags, err := d.QuoContext(e, ctx)
		if err != nil {
			t.Fatalf("QuoContext failed: %v", err)
		}
		if s := got.String(); s != "3.3333" {
			t.Errorf("QuoContext = %q, want 3.3333", s)
		}
		if !flags.Has(Inexact | Rounded) {
			t.Errorf("QuoContext flags = %v, want Inexact|Rounded", flags)
		}
	})

	t.Run("division by zero", func(t *testing.T) {
		d := MustParse[Uint64]("-1")
		zero := MustParse[Uint64]("0")

		if _, err := d.Quo(zero); !errors.Is(err, DivisionByZero) {
			t.Errorf("Quo error = %v, want %v", err, DivisionByZero)
		}
		got, flags, err := d.QuoContext(zero, DefaultContext.WithTraps(0))
		if err != nil {
			t.Fatalf("QuoContext failed: %v", err)
		}
		if !got.IsInf() || !got.IsNeg() || !flags.Has(DivisionByZero) {
			t.Errorf("-1/0 = %q, flags %v", got, flags)
		}

		got, flags, _ = zero.QuoContext(zero, DefaultContext.WithTraps(0))
		if !got.IsNaN() || !flags.Has(InvalidOperation) {
			t.Errorf("0/0 = %q, flags %v", got, flags)
		}
	})

	t.Run("special", func(t *testing.T) {
		inf := MustParse[Uint64]("Infinity")
		two := MustParse[Uint64]("2")

		got, flags, _ := inf.QuoContext(inf, DefaultContext.WithTraps(0))
		if !got.IsNaN() || !flags.Has(InvalidOperation) {
			t.Errorf("Inf/Inf = %q, flags %v", got, flags)
		}
		got, _, _ = inf.QuoContext(two.Neg(), DefaultContext.WithTraps(0))
		if !got.IsInf() || !got.IsNeg() {
			t.Errorf("Inf/-2 = %q, want -Infinity", got)
		}
		got, _, _ = two.QuoContext(inf, DefaultContext.WithTraps(0))
		if !got.IsZero() {
			t.Errorf("2/Inf = %q, want 0", got)
		}
	})
}

func TestDecimal_QuoRem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, e, quo, rem string
		}{
			{"8", "3", "2", "2"},
			{"-8", "3", "-2", "-2"},
			{"8", "-3", "-2", "2"},
			{"-8", "-3", "2", "-2"},
			{"8.0", "3", "2", "2.0"},
			{"2.6", "0.5", "5", "0.1"},
			{"7", "7", "1", "0"},
			{"1", "3", "0", "1"},
		}
		for _, tt := range tests {
			d := MustParse[Uint64](tt.d)
			e := MustParse[Uint64](tt.e)
			q, r, err := d.QuoRem(e)
			if err != nil {
				t.Errorf("%q.QuoRem(%q) failed: %v", tt.d, tt.e, err)
				continue
			}
			if s := q.String(); s != tt.quo {
				t.Errorf("%q.QuoRem(%q) q = %q, want %q", tt.d, tt.e, s, tt.quo)
			}
			if s := r.String(); s != tt.rem {
				t.Errorf("%q.QuoRem(%q) r = %q, want %q", tt.d, tt.e, s, tt.rem)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		one := MustParse[Uint64]("1")
		tiny := MustParse[Uint64]("0.0000000000000000001")
		// The integer quotient needs 20 digits
		if _, _, err := MustParse[Uint64]("2").QuoRem(tiny); !errors.Is(err, InvalidOperation) {
			t.Errorf("QuoRem error = %v, want %v", err, InvalidOperation)
		}
		if _, _, err := one.QuoRem(MustParse[Uint64]("0")); !errors.Is(err, DivisionByZero) {
			t.Errorf("QuoRem by zero error = %v, want %v", err, DivisionByZero)
		}
	})
}

func TestDecimal_Rem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d, e, want string
		}{
			{"5", "3", "2"},
			{"-5", "3", "-2"},
			{"5", "-3", "2"},
			{"2.1", "3", "2.1"},
			{"10", "0.3", "0.1"},
		}
		for _, tt := range tests {
			d := MustParse[Uint64](tt.d)
			e := MustParse[Uint64](tt.e)
			got, err := d.Rem(e)
			if err != nil {
				t.Errorf("%q.Rem(%q) failed: %v", tt.d, tt.e, err)
				continue
			}
			if s := got.String(); s != tt.want {
				t.Errorf("%q.Rem(%q) = %q, want %q", tt.d, tt.e, s, tt.want)
			}
		}
	})

	t.Run("special", func(t *testing.T) {
		inf := MustParse[Uint64]("Infinity")
		five := MustParse[Uint64]("5")
		zero := MustParse[Uint64]("0")

		got, flags, _ := five.RemContext(zero, DefaultContext.WithTraps(0))
		if !got.IsNaN() || !flags.Has(InvalidOperation) {
			t.Errorf("5 rem 0 = %q, flags %v", got, flags)
		}
		got, flags, _ = inf.RemContext(five, DefaultContext.WithTraps(0))
		if !got.IsNaN() || !flags.Has(InvalidOperation) {
			t.Errorf("Inf rem 5 = %q, flags %v", got, flags)
		}
		got, _, _ = five.RemContext(inf, DefaultContext.WithTraps(0))
		if got != five {
			t.Errorf("5 rem Inf = %q, want 5", got)
		}
	})
}

func TestDecimal_Pow(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			d    string
			n    int
			want string
		}{
			{"2", 10, "1024"},
			{"2", 0, "1"},
			{"0", 0, "1"},
			{"1.1", 2, "1.21"},
			{"-2", 3, "-8"},
			{"-2", 2, "4"},
			{"2", -2, "0.25"},
			{"10", 18, "1000000000000000000"},
			{"0.5", 3, "0.125"},
			{"0", 3, "0"},
		}
		for _, tt := range tests {
			d := MustParse[Uint64](tt.d)
			got, err := d.Pow(tt.n)
			if err != nil {
				t.Errorf("%q.Pow(%v) failed: %v", tt.d, tt.n, err)
				continue
			}
			if s := got.String(); s != tt.want {
				t.Errorf("%q.Pow(%v) = %q, want %q", tt.d, tt.n, s, tt.want)
			}
		}
	})

	t.Run("special", func(t *testing.T) {
		inf := MustParse[Uint64]("Infinity")
		zero := MustParse[Uint64]("0")

		if got, _ := inf.Pow(0); got.String() != "1" {
			t.Errorf("Inf^0 = %q, want 1", got)
		}
		if got, _ := inf.Neg().Pow(3); !got.IsInf() || !got.IsNeg() {
			t.Errorf("(-Inf)^3 = %q, want -Infinity", got)
		}
		if got, _ := inf.Pow(-1); !got.IsZero() {
			t.Errorf("Inf^-1 = %q, want 0", got)
		}
		if _, err := zero.Pow(-1); !errors.Is(err, DivisionByZero) {
			t.Errorf("0^-1 error = %v, want %v", err, DivisionByZero)
		}
		if _, err := MustParse[Uint64]("10").Pow(19); !errors.Is(err, Overflow) {
			t.Errorf("10^19 error = %v, want %v", err, Overflow)
		}
	})
}

func TestDecimal_Inv(t *testing.T) {
	got, err := MustParse[Uint64]("4").Inv()
	if err != nil {
		t.Fatalf("Inv failed: %v", err)
	}
	if s := got.String(); s != "0.25" {
		t.Errorf("Inv(4) = %q, want 0.25", s)
	}
}

func TestDecimal_Musts(t *testing.T) {
	two := MustParse[Uint64]("2")
	three := MustParse[Uint64]("3")
	if got := two.MustAdd(three).String(); got != "5" {
		t.Errorf("MustAdd = %q", got)
	}
	if got := two.MustSub(three).String(); got != "-1" {
		t.Errorf("MustSub = %q", got)
	}
	if got := two.MustMul(three).String(); got != "6" {
		t.Errorf("MustMul = %q", got)
	}
	if got := three.MustQuo(two).String(); got != "1.5" {
		t.Errorf("MustQuo = %q", got)
	}
	if got := two.MustPow(3).String(); got != "8" {
		t.Errorf("MustPow = %q", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustQuo(0) did not panic")
		}
	}()
	_ = two.MustQuo(MustParse[Uint64]("0"))
}
