package traits

import (
	"math"
	"testing"

	"github.com/pthm-cable/feeders/genetics"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name         string
		bits         string
		speed        int
		eyesight     int
		intelligence int
	}{
		{"segments", "000100101111", 1, 2, 15},
		{"all zero", "000000000000", 0, 0, 0},
		{"all one", "111111111111", 15, 15, 15},
		{"six bits", "101101", 2, 3, 1},
		{"trailing bits ignored", "1010111", 2, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(genetics.ParseChromosome(tt.bits), DefaultModifiers)
			if got.Speed != tt.speed || got.Eyesight != tt.eyesight || got.Intelligence != tt.intelligence {
				t.Errorf("Decode(%s) = (%d, %d, %d), want (%d, %d, %d)",
					tt.bits, got.Speed, got.Eyesight, got.Intelligence, tt.speed, tt.eyesight, tt.intelligence)
			}
		})
	}
}

func TestDecodeEffective(t *testing.T) {
	got := Decode(genetics.ParseChromosome("000100101111"), DefaultModifiers)

	if math.Abs(got.EffectiveSpeed-0.013) > 0.0001 {
		t.Errorf("EffectiveSpeed = %v, want 0.013", got.EffectiveSpeed)
	}
	if math.Abs(got.EffectiveEyesight-13.34) > 0.0001 {
		t.Errorf("EffectiveEyesight = %v, want 13.34", got.EffectiveEyesight)
	}
	if math.Abs(got.EffectiveIntelligence-100.05) > 0.0001 {
		t.Errorf("EffectiveIntelligence = %v, want 100.05", got.EffectiveIntelligence)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for s := 0; s <= 15; s += 5 {
		for e := 0; e <= 15; e += 3 {
			for i := 0; i <= 15; i += 7 {
				c := Encode(s, e, i, 4)
				got := Decode(c, DefaultModifiers)
				if got.Speed != s || got.Eyesight != e || got.Intelligence != i {
					t.Errorf("Decode(Encode(%d, %d, %d)) = (%d, %d, %d)", s, e, i, got.Speed, got.Eyesight, got.Intelligence)
				}
			}
		}
	}
}

func TestEncodeClamps(t *testing.T) {
	got := Decode(Encode(-2, 40, 7, 4), DefaultModifiers)
	if got.Speed != 0 || got.Eyesight != 15 || got.Intelligence != 7 {
		t.Errorf("clamped traits = (%d, %d, %d), want (0, 15, 7)", got.Speed, got.Eyesight, got.Intelligence)
	}
}

func TestMaxValue(t *testing.T) {
	if MaxValue(4) != 15 {
		t.Errorf("MaxValue(4) = %d, want 15", MaxValue(4))
	}
	if MaxValue(1) != 1 {
		t.Errorf("MaxValue(1) = %d, want 1", MaxValue(1))
	}
}
