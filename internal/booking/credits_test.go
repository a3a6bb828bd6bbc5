package booking

import "testing"

func TestParseCreditCost(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"Book for 0 credits", 0, true},
		{"Book for 0 credit", 0, true},
		{"Book for 2 credits", 2, true},
		{"Book for 15 credits", 15, true},
		{"  Book for 1 credit  ", 1, true},
		{"Confirm", 0, false},
		{"Book a desk", 0, false},
		{"Book for credits", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseCreditCost(tt.label)
		if ok != tt.ok {
			t.Errorf("ParseCreditCost(%q) ok = %v, want %v", tt.label, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseCreditCost(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}
