// Package ui embeds the web interface assets so the binary is self-contained.
package ui

import "embed"

//go:embed static templates
var Files embed.FS
