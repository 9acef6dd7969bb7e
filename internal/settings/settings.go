package settings

import (
	"errors"
	"fmt"
	"math"

	"github.com/MrJamesThe3rd/parcelas/internal/money"
)

// DefaultSimplesPercent is the Simples Nacional rate applied when none is set.
const DefaultSimplesPercent = 5.0

var ErrInvalidPercent = errors.New("enter a percentage between 0 and 100")

// Settings holds the merchant tax settings used to price quotes.
type Settings struct {
	// SimplesPercent is the Simples Nacional rate as a percent (5 for 5%).
	SimplesPercent float64
}

func Default() Settings {
	return Settings{SimplesPercent: DefaultSimplesPercent}
}

// New validates percent and returns the corresponding settings.
func New(percent float64) (Settings, error) {
	if err := validatePercent(percent); err != nil {
		return Settings{}, err
	}

	return Settings{SimplesPercent: percent}, nil
}

// SimplesRate returns the Simples Nacional rate as a decimal fraction.
func (s Settings) SimplesRate() float64 {
	return s.SimplesPercent / 100
}

// ParsePercent parses a user supplied Simples percent such as "5", "5.5" or "5,50".
func ParsePercent(s string) (float64, error) {
	v, err := money.ParseAmount(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPercent, s)
	}

	if err := validatePercent(v); err != nil {
		return 0, err
	}

	return v, nil
}

func validatePercent(v float64) error {
	if math.IsNaN(v) || v <= 0 || v >= 100 {
		return ErrInvalidPercent
	}

	return nil
}
