package decimal

import (
	"math/big"
	"testing"
)

func bintFromString(t *testing.T, s string) *bint {
	t.Helper()
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad number %q", s)
	}
	return (*bint)(b)
}

func TestBint_QuoPow10(t *testing.T) {
	tests := []struct {
		x     string
		shift int
		q     string
		hcmp  int
		exact bool
	}{
		{"12345", 2, "123", -1, false},
		{"12350", 2, "123", 0, false},
		{"12399", 2, "123", 1, false},
		{"12300", 2, "123", -1, true},
		{"12345", 0, "12345", -1, true},
		{"5", 1, "0", 0, false},
		{"4", 1, "0", -1, false},
	}
	for _, tt := range tests {
		z := new(bint)
		hcmp, exact := z.quoPow10(bintFromString(t, tt.x), tt.shift)
		if z.string() != tt.q || hcmp != tt.hcmp || exact != tt.exact {
			t.Errorf("quoPow10(%v, %v) = %v, %v, %v, want %v, %v, %v",
				tt.x, tt.shift, z.string(), hcmp, exact, tt.q, tt.hcmp, tt.exact)
		}
	}
}

func TestBint_Prec(t *testing.T) {
	tests := []struct {
		x    string
		prec int
	}{
		{"0", 0},
		{"1", 1},
		{"9", 1},
		{"10", 2},
		{"999999999999999999999999999999", 30},
		{"1000000000000000000000000000000", 31},
	}
	for _, tt := range tests {
		z := bintFromString(t, tt.x)
		if got := z.prec(); got != tt.prec {
			t.Errorf("prec(%v) = %v, want %v", tt.x, got, tt.prec)
		}
		if !z.hasPrec(tt.prec) || z.hasPrec(tt.prec+1) {
			t.Errorf("hasPrec(%v) is inconsistent with prec %v", tt.x, tt.prec)
		}
	}

	// Values beyond the cached powers still report exact digit counts
	wide := new(bint)
	wide.lsh(bpow10[1], 299)
	if got := wide.prec(); got != 301 {
		t.Errorf("prec(10^300) = %v, want 301", got)
	}
}

func TestBint_Ntz(t *testing.T) {
	tests := []struct {
		x   string
		ntz int
	}{
		{"1", 0},
		{"10", 1},
		{"10100", 2},
		{"5000000000000000000000000", 24},
	}
	for _, tt := range tests {
		if got := bintFromString(t, tt.x).ntz(); got != tt.ntz {
			t.Errorf("ntz(%v) = %v, want %v", tt.x, got, tt.ntz)
		}
	}
}

func TestBint_Fsa(t *testing.T) {
	z := new(bint)
	z.setUint64(0)
	for i := 0; i < 100; i++ {
		z.fsa(z, 1, 9)
	}
	want := new(big.Int)
	want.Sub(new(big.Int).Exp(big.NewInt(10), big.NewInt(100), nil), big.NewInt(1))
	if z.big().Cmp(want) != 0 {
		t.Errorf("fsa accumulation = %v", z.string())
	}
}

func TestBint_SelfAliasing(t *testing.T) {
	z := bintFromString(t, "12345")
	z.mul(z, z)
	if z.string() != "152399025" {
		t.Errorf("mul aliased = %v", z.string())
	}
	z.setUint64(7)
	z.lsh(z, 3)
	if z.string() != "7000" {
		t.Errorf("lsh aliased = %v", z.string())
	}
}
