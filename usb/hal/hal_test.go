package hal

import "testing"

func TestEndpointAddress(t *testing.T) {
	tests := []struct {
		address uint8
		number  uint8
		in      bool
	}{
		{0x82, 2, true},
		{0x02, 2, false},
		{0x81, 1, true},
		{0x8F, 15, true},
		{0x00, 0, false},
	}

	for _, tt := range tests {
		if got := EndpointNumber(tt.address); got != tt.number {
			t.Errorf("EndpointNumber(%#02x) = %d, want %d", tt.address, got, tt.number)
		}
		if got := IsIn(tt.address); got != tt.in {
			t.Errorf("IsIn(%#02x) = %v, want %v", tt.address, got, tt.in)
		}
	}
}
