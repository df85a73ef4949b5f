package static

import "embed"

// FS exposes web static assets for HTTP serving and static export.
//
//go:embed *.css *.svg
var FS embed.FS
