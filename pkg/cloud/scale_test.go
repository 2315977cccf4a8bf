package cloud

import (
	"math"
	"testing"
)

func TestFontSizeLinear(t *testing.T) {
	cfg := Config{MinFontSize: 20, MaxFontSize: 56, CurveExponent: 1.0}

	tests := []struct {
		name     string
		count    int
		maxCount int
		want     float64
	}{
		{name: "max count", count: 10, maxCount: 10, want: 56},
		{name: "half count", count: 5, maxCount: 10, want: 38},
		{name: "zero count", count: 0, maxCount: 10, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FontSize(tt.count, tt.maxCount, cfg); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FontSize(%d, %d) = %v, want %v", tt.count, tt.maxCount, got, tt.want)
			}
		})
	}
}

func TestFontSizePowerCurve(t *testing.T) {
	cfg := Config{MinFontSize: 20, MaxFontSize: 56, CurveExponent: 0.7}

	// The power curve keeps low-frequency words larger than linear.
	linear := Config{MinFontSize: 20, MaxFontSize: 56, CurveExponent: 1.0}
	for count := 1; count < 10; count++ {
		p := FontSize(count, 10, cfg)
		l := FontSize(count, 10, linear)
		if p < l {
			t.Errorf("count %d: power %v < linear %v", count, p, l)
		}
	}

	// Bounds still hold at the extremes.
	if got := FontSize(10, 10, cfg); math.Abs(got-56) > 1e-9 {
		t.Errorf("FontSize at max = %v, want 56", got)
	}
	if got := FontSize(0, 10, cfg); math.Abs(got-20) > 1e-9 {
		t.Errorf("FontSize at zero = %v, want 20", got)
	}
}

func TestFontSizeMonotonic(t *testing.T) {
	for _, exp := range []float64{0.7, 1.0} {
		cfg := Config{MinFontSize: 14, MaxFontSize: 56, CurveExponent: exp}
		prev := -1.0
		for count := 0; count <= 20; count++ {
			got := FontSize(count, 20, cfg)
			if got < prev {
				t.Errorf("exponent %v: FontSize(%d) = %v < FontSize(%d) = %v", exp, count, got, count-1, prev)
			}
			prev = got
		}
	}
}

func TestFontSizeScale(t *testing.T) {
	cfg := Config{MinFontSize: 14, MaxFontSize: 56, CurveExponent: 1.0, FontScale: 2.0}
	if got := FontSize(10, 10, cfg); math.Abs(got-112) > 1e-9 {
		t.Errorf("FontSize with scale 2.0 = %v, want 112", got)
	}

	// Out-of-range scales clamp to the documented bounds.
	cfg.FontScale = 10
	if got := FontSize(10, 10, cfg); math.Abs(got-112) > 1e-9 {
		t.Errorf("FontSize with clamped scale = %v, want 112", got)
	}
}

func TestFontSizeZeroMaxCount(t *testing.T) {
	cfg := Config{MinFontSize: 20, MaxFontSize: 56, CurveExponent: 1.0}
	got := FontSize(0, 0, cfg)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("FontSize(0, 0) = %v, want finite", got)
	}
	if got < 20 || got > 56 {
		t.Errorf("FontSize(0, 0) = %v, want within bounds", got)
	}
}
