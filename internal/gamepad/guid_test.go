package gamepad

import "testing"

func TestGUIDString(t *testing.T) {
	tests := []struct {
		guid     GUID
		expected string
	}{
		{GUID{}, "00000000000000000000000000000000"},
		{
			GUID{0x03, 0x00, 0x00, 0x00, 0x5e, 0x04, 0x00, 0x00, 0x8e, 0x02, 0x00, 0x00, 0x00, 0x00, 0x72, 0x00},
			"030000005e0400008e02000000007200",
		},
		{
			GUID{0xff, 0xee, 0xdd, 0xcc, 0xbb, 0xaa, 0x99, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11, 0x00},
			"ffeeddccbbaa99887766554433221100",
		},
	}

	for _, tt := range tests {
		if got := tt.guid.String(); got != tt.expected {
			t.Errorf("GUID.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestGUIDIsZero(t *testing.T) {
	if !(GUID{}).IsZero() {
		t.Error("Expected empty GUID to be zero")
	}
	if (GUID{15: 1}).IsZero() {
		t.Error("Expected GUID with a set byte not to be zero")
	}
}
