package match

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestOversToDecimal(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"19.4 ov", 19.0 + 4.0/6.0},
		{"20 ov", 20.0},
		{"0.3", 0.5},
		{"14", 14.0},
		{"16.5", 16.0 + 5.0/6.0},
	}
	for _, tc := range cases {
		got, err := OversToDecimal(tc.text)
		if err != nil {
			t.Fatalf("OversToDecimal(%q) error: %v", tc.text, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("OversToDecimal(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestOversToDecimal_Malformed(t *testing.T) {
	for _, text := range []string{"", "   ", "abc ov"} {
		if _, err := OversToDecimal(text); !errors.Is(err, ErrMalformedScore) {
			t.Fatalf("OversToDecimal(%q) expected ErrMalformedScore, got %v", text, err)
		}
	}
}

func TestOversCodec_RoundTrip(t *testing.T) {
	for whole := 0; whole <= 20; whole++ {
		for balls := 0; balls <= 5; balls++ {
			text := fmt.Sprintf("%d.%d", whole, balls)
			decimal, err := OversToDecimal(text)
			if err != nil {
				t.Fatalf("OversToDecimal(%q) error: %v", text, err)
			}
			if got := DecimalToOvers(decimal); got != text {
				t.Fatalf("round trip %q -> %v -> %q", text, decimal, got)
			}
		}
	}
}

func TestDecimalToOvers_BallsCarry(t *testing.T) {
	// 19 + 5.9/6 rounds to six balls, which carries into the next over.
	if got := DecimalToOvers(19.0 + 5.9/6.0); got != "20.0" {
		t.Fatalf("expected carry to 20.0, got %q", got)
	}
}

func TestResolveInnings_AllOutForcesFullQuota(t *testing.T) {
	runs, faced, bowled, err := ResolveInnings("180/10", "19.4 ov")
	if err != nil {
		t.Fatalf("ResolveInnings error: %v", err)
	}
	if runs != 180 {
		t.Fatalf("runs = %d, want 180", runs)
	}
	if faced != FullQuotaOvers || bowled != FullQuotaOvers {
		t.Fatalf("all-out must charge full quota, got faced=%v bowled=%v", faced, bowled)
	}
}

func TestResolveInnings_PartialWicketsUseActualOvers(t *testing.T) {
	runs, faced, bowled, err := ResolveInnings("165/4", "18.2 ov")
	if err != nil {
		t.Fatalf("ResolveInnings error: %v", err)
	}
	if runs != 165 {
		t.Fatalf("runs = %d, want 165", runs)
	}
	want := 18.0 + 2.0/6.0
	if math.Abs(faced-want) > 1e-9 || math.Abs(bowled-want) > 1e-9 {
		t.Fatalf("expected actual overs %v, got faced=%v bowled=%v", want, faced, bowled)
	}
}

func TestResolveInnings_PlainScoreForcesFullQuota(t *testing.T) {
	runs, faced, bowled, err := ResolveInnings("201", "20 ov")
	if err != nil {
		t.Fatalf("ResolveInnings error: %v", err)
	}
	if runs != 201 || faced != FullQuotaOvers || bowled != FullQuotaOvers {
		t.Fatalf("unexpected result: runs=%d faced=%v bowled=%v", runs, faced, bowled)
	}
}

func TestResolveInnings_MalformedScore(t *testing.T) {
	for _, score := range []string{"abc", "180/x", "/4", ""} {
		if _, _, _, err := ResolveInnings(score, "20 ov"); !errors.Is(err, ErrMalformedScore) {
			t.Fatalf("ResolveInnings(%q) expected ErrMalformedScore, got %v", score, err)
		}
	}
}
