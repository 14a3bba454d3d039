// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// renderStripped renders markdown and strips ANSI sequences so tests
// can assert on the text layout alone.
func renderStripped(t *testing.T, input string, width int) string {
	t.Helper()
	return ansi.Strip(renderMarkdown(input, DefaultTheme, width))
}

func TestMarkdownHeading(t *testing.T) {
	output := renderStripped(t, "# Getting started\n\nSome body text.", 60)
	if !strings.Contains(output, "Getting started") {
		t.Errorf("missing heading text:\n%s", output)
	}
	if !strings.Contains(output, "Some body text.") {
		t.Errorf("missing paragraph text:\n%s", output)
	}
}

func TestMarkdownParagraphWrap(t *testing.T) {
	input := "The quick brown fox jumps over the lazy dog again and again until the line must wrap."
	output := renderStripped(t, input, 30)

	for _, line := range strings.Split(output, "\n") {
		if count := len([]rune(line)); count > 30 {
			t.Errorf("line exceeds width 30 (%d): %q", count, line)
		}
	}
	if !strings.Contains(output, "quick brown fox") {
		t.Errorf("lost paragraph text:\n%s", output)
	}
}

func TestMarkdownSoftBreakReflows(t *testing.T) {
	// A single-newline break inside a paragraph is a soft break and
	// must reflow into the same line at a generous width.
	output := renderStripped(t, "first half\nsecond half", 80)
	if !strings.Contains(output, "first half second half") {
		t.Errorf("soft break did not reflow:\n%s", output)
	}
}

func TestMarkdownLists(t *testing.T) {
	output := renderStripped(t, "- one\n- two\n\n1. alpha\n2. beta", 60)

	for _, want := range []string{"- one", "- two", "1. alpha", "2. beta"} {
		if !strings.Contains(output, want) {
			t.Errorf("missing list entry %q:\n%s", want, output)
		}
	}
}

func TestMarkdownListItemWrapIndents(t *testing.T) {
	input := "- a long list item that definitely has to wrap onto a continuation line somewhere"
	output := renderStripped(t, input, 30)

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected the item to wrap, got:\n%s", output)
	}
	if !strings.HasPrefix(lines[0], "- ") {
		t.Errorf("first line should carry the bullet: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("continuation should align under the text: %q", lines[1])
	}
}

func TestMarkdownFencedCode(t *testing.T) {
	input := "```go\nfmt.Println(\"hello\")\n```"
	output := renderStripped(t, input, 60)
	if !strings.Contains(output, "fmt.Println") {
		t.Errorf("missing code content:\n%s", output)
	}
}

func TestMarkdownBlockquote(t *testing.T) {
	output := renderStripped(t, "> careful with this one", 60)
	if !strings.Contains(output, "│ careful") {
		t.Errorf("missing quote prefix:\n%s", output)
	}
}

func TestMarkdownThematicBreak(t *testing.T) {
	output := renderStripped(t, "above\n\n---\n\nbelow", 24)
	if !strings.Contains(output, strings.Repeat("─", 24)) {
		t.Errorf("missing horizontal rule:\n%s", output)
	}
}

func TestMarkdownCodeSpan(t *testing.T) {
	output := renderStripped(t, "press the `Enter` key", 60)
	if !strings.Contains(output, "press the Enter key") {
		t.Errorf("inline code lost:\n%s", output)
	}
}

func TestMarkdownTable(t *testing.T) {
	input := strings.Join([]string{
		"| Key | Action |",
		"|-----|--------|",
		"| s   | Submit |",
		"| r   | Refetch |",
	}, "\n")
	output := renderStripped(t, input, 60)

	for _, want := range []string{"Key", "Action", "Submit", "Refetch", "─"} {
		if !strings.Contains(output, want) {
			t.Errorf("missing table part %q:\n%s", want, output)
		}
	}

	// Header and rows must align: every table line starts at the same
	// column.
	var tableLines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "Submit") || strings.Contains(line, "Key") {
			tableLines = append(tableLines, line)
		}
	}
	if len(tableLines) < 2 {
		t.Fatalf("expected header and data rows, got:\n%s", output)
	}
}

func TestMarkdownNarrowWidthDoesNotPanic(t *testing.T) {
	input := "# heading\n\nparagraph with several words\n\n| a | b |\n|---|---|\n| 1 | 2 |"
	output := renderMarkdown(input, DefaultTheme, 4)
	if output == "" {
		t.Error("expected some output even at tiny widths")
	}
}

func TestHelpContentRenders(t *testing.T) {
	output := ansi.Strip(renderHelpContent(DefaultTheme, 80))

	for _, want := range []string{"tablescout", "Workflow", "Submit the search", "Scores"} {
		if !strings.Contains(output, want) {
			t.Errorf("help content missing %q", want)
		}
	}

	narrow := renderHelpContent(DefaultTheme, 28)
	if ansi.Strip(narrow) == "" {
		t.Error("help did not render at narrow width")
	}
}
