package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatViewCount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"999", "999"},
		{"1000", "1.0K"},
		{"1500000", "1.5M"},
		{"0", "0"},
		{"abc", "0"},
		{"", "0"},
		{"12345", "12.3K"},
		{" 2500 ", "2.5K"},
		{"1000000", "1.0M"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatViewCount(tt.in))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "42", FormatCount(42))
	assert.Equal(t, "3.4M", FormatCount(3_400_000))
}
