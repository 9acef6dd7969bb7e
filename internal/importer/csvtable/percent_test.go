package csvtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePercent(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "8,52", want: "8.52"},
		{input: "8.52%", want: "8.52"},
		{input: " 8,52 % ", want: "8.52"},
		{input: "1.234,5", want: "1234.5"},
		{input: "", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePercent(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	for _, input := range []string{"x", "1,234.5", "8,5.2%"} {
		_, err := parsePercent(input)
		assert.Error(t, err, input)
	}
}
