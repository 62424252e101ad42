package vacct

import "testing"

func TestParseLamports(t *testing.T) {
	tests := []struct {
		input string
		want  Lamports
		err   bool
	}{
		{"1", sol(1), false},
		{"1.5", 1_500_000_000, false},
		{"0.000000001", 1, false},
		{"0.0000000001", 0, true}, // finer than one lamport
		{"-2.25", -2_250_000_000, false},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLamports(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseLamports(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if !tt.err && got != tt.want {
				t.Errorf("ParseLamports(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestLamportsString(t *testing.T) {
	tests := []struct {
		in   Lamports
		want string
	}{
		{0, "0.000000000"},
		{1, "0.000000001"},
		{1_500_000_000, "1.500000000"},
		{-42, "-0.000000042"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int64(tt.in), got, tt.want)
		}
	}
}

func TestLamportsValue(t *testing.T) {
	v := Lamports(1_500_000_000).Value(USD(100))
	if !v.Equal(USD(150)) {
		t.Errorf("Value() = %v, want %v", v, USD(150))
	}
}
