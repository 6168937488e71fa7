package terbilang

import "testing"

func TestSpell(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Nol"},
		{-5, "Nol"},
		{1, "Satu"},
		{11, "Sebelas"},
		{12, "Dua Belas"},
		{19, "Sembilan Belas"},
		{20, "Dua Puluh"},
		{45, "Empat Puluh Lima"},
		{100, "Seratus"},
		{101, "Seratus Satu"},
		{199, "Seratus Sembilan Puluh Sembilan"},
		{250, "Dua Ratus Lima Puluh"},
		{1000, "Seribu"},
		{1001, "Seribu Satu"},
		{2000, "Dua Ribu"},
		{15000, "Lima Belas Ribu"},
		{1250000, "Satu Juta Dua Ratus Lima Puluh Ribu"},
		{1000000000, "Satu Miliar"},
		{2500000000000, "Dua Triliun Lima Ratus Miliar"},
		// fractional part is dropped
		{1250000.75, "Satu Juta Dua Ratus Lima Puluh Ribu"},
	}

	for _, tt := range tests {
		if got := Spell(tt.amount); got != tt.want {
			t.Errorf("Spell(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
