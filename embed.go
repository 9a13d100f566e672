package folio

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// folio.css (base styles) and folio.js (command palette keyboard support).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
