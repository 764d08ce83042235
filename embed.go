package landing

import "embed"

// EmbeddedAssets contains the static assets served under /public/:
// logo.svg, landing.css, contact.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
