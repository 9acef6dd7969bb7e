package settings_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/parcelas/internal/settings"
)

func TestParsePercent(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "5", want: 5},
		{input: "5.5", want: 5.5},
		{input: "5,50", want: 5.5},
		{input: "99,99", want: 99.99},
		{input: "0", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "100", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := settings.ParsePercent(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, settings.ErrInvalidPercent)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	s, err := settings.New(6)
	require.NoError(t, err)
	assert.Equal(t, 0.06, s.SimplesRate())

	_, err = settings.New(math.NaN())
	assert.ErrorIs(t, err, settings.ErrInvalidPercent)

	_, err = settings.New(150)
	assert.ErrorIs(t, err, settings.ErrInvalidPercent)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, 0.05, settings.Default().SimplesRate())
}
