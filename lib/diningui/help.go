// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	_ "embed"
)

// helpContent is the built-in help document shown by the ? overlay.
//
//go:embed help.md
var helpContent string

// renderHelpContent renders the help document for the given width.
// Called when the overlay opens and again on terminal resize.
func renderHelpContent(theme Theme, width int) string {
	return renderMarkdown(helpContent, theme, width)
}
