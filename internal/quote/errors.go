package quote

import "errors"

var (
	ErrIssuerRequired     = errors.New("select a card issuer")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrIssuerNotFound     = errors.New("fee table not found")
	ErrInvalidSimplesRate = errors.New("simples rate must be between 0% and 100%")
	ErrDegenerateRate     = errors.New("fee and tax rates add up to 100% or more")
)
