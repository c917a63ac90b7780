package problemgen

import "testing"

func TestParseTier(t *testing.T) {
	tests := []struct {
		input   string
		want    Tier
		wantErr bool
	}{
		{"add", TierAddition, false},
		{"Multiplication", TierMultiplication, false},
		{" div ", TierDivision, false},
		{"three-term addition", TierThreeAddition, false},
		{"4", TierMixed, false},
		{"1", TierAddition, false},
		{"0", 0, true},
		{"7", 0, true},
		{"modulo", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseTier(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTier(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTier(%q) error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestTierNames(t *testing.T) {
	for i := range NumTiers {
		tier := Tier(i)
		if tier.String() == "unknown" || tier.Key() == "unknown" {
			t.Errorf("tier %d has no name", i)
		}
		if back, err := ParseTier(tier.Key()); err != nil || back != tier {
			t.Errorf("ParseTier(%q) = %v, %v", tier.Key(), back, err)
		}
	}
	if Tier(NumTiers).String() != "unknown" || Tier(-1).Key() != "unknown" {
		t.Error("out-of-range tiers should be unknown")
	}
}
