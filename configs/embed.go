// Package configs holds the default knowledge sources compiled into the
// binary. Files in the data directory take precedence over these.
package configs

import "embed"

//go:embed intents lexicon
var FS embed.FS
