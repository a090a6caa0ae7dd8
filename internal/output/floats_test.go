package output

import "testing"

func TestRoundScore(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"integer stays", 5.0, 5.0},
		{"one decimal stays", 7.5, 7.5},
		{"seventh decimal rounds", 1.23456789, 1.234568},
		{"zero", 0, 0},
		{"negative", -2.5000004, -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundScore(tt.in); got != tt.want {
				t.Errorf("RoundScore(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2.0, "2"},
		{2.5, "2.5"},
		{10.125, "10.125"},
		{0, "0"},
		{1.0000001, "1"},
	}

	for _, tt := range tests {
		if got := FormatScore(tt.in); got != tt.want {
			t.Errorf("FormatScore(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
