package resources

import "embed"

//go:embed migrations i18n vocabulary
var FS embed.FS
