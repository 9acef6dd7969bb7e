// Package data holds the fee tables shipped with the binary.
package data

import "embed"

// Tables contains one JSON fee table per issuer.
//
//go:embed *.json
var Tables embed.FS
