package status

import "testing"

func TestParseState(t *testing.T) {
	tests := []struct {
		input string
		want  State
	}{
		{"RUNNING", StateRunning},
		{"running", StateRunning},
		{" Running ", StateRunning},
		{"DISABLED", StateDisabled},
		{"failed", StateFailed},
		{"INIT", StateUnknown},
		{"", StateUnknown},
		{"stopped", StateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseState(tt.input); got != tt.want {
				t.Errorf("ParseState(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
