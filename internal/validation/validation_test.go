package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTicker(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"AAPL", true},
		{"A", true},
		{"GOOGL", true},
		{"MSFT", true},
		{"aapl", false},
		{"Aapl", false},
		{"TOOLONG1", false},
		{"ABCDEF", false},
		{"", false},
		{"AB1", false},
		{"BRK.B", false},
		{" AAPL", false},
		{"AAPL\n", false},
		{"ÄPL", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidTicker(tt.in), "ticker %q", tt.in)
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2021-01-01", true},
		{"2021-12-31", true},
		{"2020-02-29", true},
		{"2021/01/01", false},
		{"2021-13-01", false},
		{"2021-00-10", false},
		{"2021-02-29", false},
		{"2021-04-31", false},
		{"not-a-date", false},
		{"2021-1-1", false},
		{"21-01-01", false},
		{"2021-01-01T00:00:00Z", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidDate(tt.in), "date %q", tt.in)
	}
}

func TestParseDate_UTCMidnight(t *testing.T) {
	d, err := ParseDate("2021-06-15")
	assert.NoError(t, err)
	assert.Equal(t, "2021-06-15T00:00:00Z", d.Format("2006-01-02T15:04:05Z07:00"))
}
