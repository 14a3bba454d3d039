// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdownParser is initialized once and reused. The parser
// configuration never changes and a goldmark parser is safe to share;
// each Parse call builds its own state.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParser
}

// renderMarkdown parses markdown and renders it as styled terminal
// output. Soft line breaks within paragraphs become spaces so
// hard-wrapped source reflows at any terminal width; code blocks keep
// their exact line structure.
func renderMarkdown(input string, theme Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	// Force ANSI256: this output is always for terminal display inside
	// the TUI, so auto-detection (which sees no TTY under tests) must
	// not strip the colors. SetColorProfile is needed because the
	// lipgloss renderer re-detects from the environment unless an
	// explicit profile is set.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	writer := &markdownWriter{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, writer.walk)

	return strings.TrimRight(writer.output.String(), "\n")
}

// markdownWriter walks a goldmark AST and produces styled terminal
// text. It uses a direct ast.Walk rather than goldmark's renderer
// interface because terminal output needs accumulate-then-wrap
// semantics: inline content collects in a buffer and is word-wrapped
// as a unit when its block closes.
type markdownWriter struct {
	source []byte
	theme  Theme
	width  int

	// Final rendered output.
	output strings.Builder

	// Inline accumulator for the current paragraph or heading.
	inline strings.Builder

	// Prefix stack for nested containers (blockquotes, lists).
	prefixStack []prefixLevel
	linePrefix  string // Concatenation of all prefix texts.
	prefixWidth int    // Sum of all visible prefix widths.

	// Pending bullet: replaces linePrefix for the very next emitted
	// line, then clears. Used for list item bullets and numbers.
	pendingBullet string

	// Inline style counters, incremented on entering Emphasis or
	// Strikethrough and decremented on leaving. Counters rather than
	// booleans so nested emphasis unwinds correctly.
	boldCount          int
	italicCount        int
	strikethroughCount int

	// List nesting state.
	listStack []listState

	// lipgloss renderer with the forced color profile.
	lipRenderer *lipgloss.Renderer

	// Trailing newlines at the end of output, for blank line management.
	trailingNewlines int
}

type prefixLevel struct {
	text  string
	width int
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (writer *markdownWriter) newStyle() lipgloss.Style {
	return writer.lipRenderer.NewStyle()
}

// currentWidth returns the content width left after nesting prefixes,
// clamped to a minimum of 10 to prevent degenerate wrapping.
func (writer *markdownWriter) currentWidth() int {
	width := writer.width - writer.prefixWidth
	if width < 10 {
		width = 10
	}
	return width
}

func (writer *markdownWriter) pushPrefix(prefixText string, visibleWidth int) {
	writer.prefixStack = append(writer.prefixStack, prefixLevel{text: prefixText, width: visibleWidth})
	writer.linePrefix += prefixText
	writer.prefixWidth += visibleWidth
}

func (writer *markdownWriter) popPrefix() {
	if len(writer.prefixStack) == 0 {
		return
	}
	top := writer.prefixStack[len(writer.prefixStack)-1]
	writer.prefixStack = writer.prefixStack[:len(writer.prefixStack)-1]
	writer.linePrefix = writer.linePrefix[:len(writer.linePrefix)-len(top.text)]
	writer.prefixWidth -= top.width
}

func (writer *markdownWriter) inTightList() bool {
	if len(writer.listStack) == 0 {
		return false
	}
	return writer.listStack[len(writer.listStack)-1].tight
}

// writeOutput appends text to the output, tracking trailing newlines.
func (writer *markdownWriter) writeOutput(s string) {
	if s == "" {
		return
	}
	writer.output.WriteString(s)

	newTrailing := 0
	entirelyNewlines := true
	for index := len(s) - 1; index >= 0; index-- {
		if s[index] == '\n' {
			newTrailing++
		} else {
			entirelyNewlines = false
			break
		}
	}
	if entirelyNewlines {
		writer.trailingNewlines += newTrailing
	} else {
		writer.trailingNewlines = newTrailing
	}
}

func (writer *markdownWriter) ensureNewline() {
	if writer.trailingNewlines < 1 {
		writer.writeOutput("\n")
	}
}

func (writer *markdownWriter) ensureBlankLine() {
	for writer.trailingNewlines < 2 {
		writer.writeOutput("\n")
	}
}

// consumeLinePrefix returns the prefix for the current line: the
// pending bullet if one is set (first line of a list item), otherwise
// the regular line prefix.
func (writer *markdownWriter) consumeLinePrefix() string {
	if writer.pendingBullet != "" {
		bullet := writer.pendingBullet
		writer.pendingBullet = ""
		return bullet
	}
	return writer.linePrefix
}

// applyPrefixes prepends the line prefix to each line of content. The
// first line takes the pending bullet when one is set.
func (writer *markdownWriter) applyPrefixes(content string) string {
	lines := strings.Split(content, "\n")
	var result strings.Builder
	for index, line := range lines {
		if index == 0 {
			result.WriteString(writer.consumeLinePrefix())
		} else {
			result.WriteString(writer.linePrefix)
		}
		result.WriteString(line)
		if index < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// flushInline word-wraps the accumulated inline content to the current
// width, applies line prefixes, and resets the inline buffer.
func (writer *markdownWriter) flushInline() string {
	content := writer.inline.String()
	writer.inline.Reset()
	if content == "" {
		return ""
	}
	content = ansi.Wrap(content, writer.currentWidth(), " ,.;-+|")
	return writer.applyPrefixes(content)
}

// styledText applies the current inline style state to a text string.
func (writer *markdownWriter) styledText(content string) string {
	style := writer.newStyle().Foreground(writer.theme.NormalText)
	if writer.boldCount > 0 {
		style = style.Bold(true)
	}
	if writer.italicCount > 0 {
		style = style.Italic(true)
	}
	if writer.strikethroughCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// renderInlineContent walks a node's children to collect their inline
// content as a string, saving and restoring the writer's inline state
// so the caller's context is unaffected.
func (writer *markdownWriter) renderInlineContent(node ast.Node) string {
	savedInline := writer.inline.String()
	savedBold := writer.boldCount
	savedItalic := writer.italicCount
	savedStrikethrough := writer.strikethroughCount

	writer.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, writer.walk)
	}
	result := writer.inline.String()

	writer.inline.Reset()
	writer.inline.WriteString(savedInline)
	writer.boldCount = savedBold
	writer.italicCount = savedItalic
	writer.strikethroughCount = savedStrikethrough

	return result
}

// highlightCode syntax-highlights code with Chroma, falling back to
// FaintText-styled plain text when the language is unknown.
func (writer *markdownWriter) highlightCode(code, language string) string {
	if language == "" {
		return writer.newStyle().Foreground(writer.theme.FaintText).Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return writer.newStyle().Foreground(writer.theme.FaintText).Render(code)
	}
	return buffer.String()
}

func (writer *markdownWriter) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	// Block nodes.
	case ast.KindDocument:
		// Nothing on entering or leaving.

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			writer.inline.Reset()
		} else {
			flushed := writer.flushInline()
			if flushed != "" {
				writer.writeOutput(flushed)
				writer.ensureNewline()
				if !writer.inTightList() {
					writer.ensureBlankLine()
				}
			}
		}

	case ast.KindHeading:
		if entering {
			writer.inline.Reset()
		} else {
			writer.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			writer.renderFencedCodeBlock(node.(*ast.FencedCodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			writer.renderIndentedCodeBlock(node.(*ast.CodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			writer.pushPrefix("│ ", 2)
		} else {
			writer.popPrefix()
			writer.ensureBlankLine()
		}

	case ast.KindList:
		if entering {
			writer.enterList(node.(*ast.List))
		} else {
			writer.leaveList()
		}

	case ast.KindListItem:
		if entering {
			writer.enterListItem()
		} else {
			writer.leaveListItem()
		}

	case ast.KindThematicBreak:
		if entering {
			writer.renderThematicBreak()
		}

	// Inline nodes.
	case ast.KindText:
		if entering {
			writer.handleText(node.(*ast.Text))
		}

	case ast.KindString:
		if entering {
			str := node.(*ast.String)
			writer.inline.WriteString(writer.styledText(string(str.Value)))
		}

	case ast.KindEmphasis:
		writer.handleEmphasis(node.(*ast.Emphasis), entering)

	case ast.KindCodeSpan:
		if entering {
			writer.renderCodeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			writer.renderLink(node.(*ast.Link))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(writer.source))
			writer.inline.WriteString(writer.newStyle().Foreground(writer.theme.FaintText).Render(url))
		}

	// GFM extension nodes.
	case extast.KindStrikethrough:
		if entering {
			writer.strikethroughCount++
		} else {
			writer.strikethroughCount--
		}

	case extast.KindTable:
		if entering {
			writer.renderTable(node.(*extast.Table))
			return ast.WalkSkipChildren, nil
		}
	}

	return ast.WalkContinue, nil
}

// --- Block-level handlers ---

func (writer *markdownWriter) leaveHeading(heading *ast.Heading) {
	// Strip any inline styling collected for the heading text; the
	// heading's own style replaces it.
	content := ansi.Strip(writer.inline.String())
	writer.inline.Reset()
	if content == "" {
		return
	}

	style := writer.newStyle().Bold(true)
	if heading.Level <= 2 {
		style = style.Foreground(writer.theme.HeaderForeground)
	} else {
		style = style.Foreground(writer.theme.NormalText)
	}

	wrapped := ansi.Wrap(style.Render(content), writer.currentWidth(), " ,.;-+|")
	flushed := writer.applyPrefixes(wrapped)
	writer.ensureBlankLine()
	writer.writeOutput(flushed)
	writer.ensureNewline()
	writer.ensureBlankLine()
}

func (writer *markdownWriter) renderFencedCodeBlock(node *ast.FencedCodeBlock) {
	language := string(node.Language(writer.source))
	writer.renderCodeLines(writer.collectLines(node.Lines()), language)
}

func (writer *markdownWriter) renderIndentedCodeBlock(node *ast.CodeBlock) {
	writer.renderCodeLines(writer.collectLines(node.Lines()), "")
}

// collectLines joins a node's source segments into one string.
func (writer *markdownWriter) collectLines(lines *text.Segments) string {
	var code strings.Builder
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(writer.source))
	}
	return code.String()
}

// renderCodeLines emits highlighted code one line at a time with the
// current prefix. Code lines are never reflowed.
func (writer *markdownWriter) renderCodeLines(code, language string) {
	highlighted := writer.highlightCode(code, language)
	writer.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		writer.writeOutput(writer.consumeLinePrefix() + line)
		writer.ensureNewline()
	}
	writer.ensureBlankLine()
}

func (writer *markdownWriter) enterList(list *ast.List) {
	startNumber := 0
	if list.IsOrdered() {
		startNumber = list.Start
	}
	writer.listStack = append(writer.listStack, listState{
		ordered: list.IsOrdered(),
		counter: startNumber,
		tight:   list.IsTight,
	})
}

func (writer *markdownWriter) leaveList() {
	if len(writer.listStack) > 0 {
		writer.listStack = writer.listStack[:len(writer.listStack)-1]
	}
	if !writer.inTightList() {
		writer.ensureBlankLine()
	}
}

func (writer *markdownWriter) enterListItem() {
	if len(writer.listStack) == 0 {
		return
	}
	top := &writer.listStack[len(writer.listStack)-1]

	var bullet string
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	} else {
		bullet = "- "
	}

	bulletWidth := len(bullet) // ASCII-only, so byte length == visual width.
	continuation := strings.Repeat(" ", bulletWidth)

	// The pending bullet includes the current linePrefix so it
	// replaces the entire prefix for the first line of this item.
	writer.pendingBullet = writer.linePrefix + bullet
	writer.pushPrefix(continuation, bulletWidth)
}

func (writer *markdownWriter) leaveListItem() {
	writer.popPrefix()
	if !writer.inTightList() {
		writer.ensureBlankLine()
	} else {
		writer.ensureNewline()
	}
}

func (writer *markdownWriter) renderThematicBreak() {
	rule := strings.Repeat("─", writer.currentWidth())
	ruleStyle := writer.newStyle().Foreground(writer.theme.BorderColor)
	writer.ensureBlankLine()
	writer.writeOutput(writer.applyPrefixes(ruleStyle.Render(rule)))
	writer.ensureNewline()
	writer.ensureBlankLine()
}

// --- Inline handlers ---

func (writer *markdownWriter) handleText(node *ast.Text) {
	value := string(node.Segment.Value(writer.source))
	writer.inline.WriteString(writer.styledText(value))

	if node.SoftLineBreak() {
		// Soft breaks become spaces so hard-wrapped source reflows at
		// the terminal's width.
		writer.inline.WriteString(" ")
	}
	if node.HardLineBreak() {
		writer.inline.WriteString("\n")
	}
}

func (writer *markdownWriter) handleEmphasis(node *ast.Emphasis, entering bool) {
	if node.Level >= 2 {
		if entering {
			writer.boldCount++
		} else {
			writer.boldCount--
		}
	} else {
		if entering {
			writer.italicCount++
		} else {
			writer.italicCount--
		}
	}
}

func (writer *markdownWriter) renderCodeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			code.Write(typed.Segment.Value(writer.source))
		case *ast.String:
			code.Write(typed.Value)
		}
	}
	codeStyle := writer.newStyle().Foreground(writer.theme.Accent)
	writer.inline.WriteString(codeStyle.Render(code.String()))
}

func (writer *markdownWriter) renderLink(node *ast.Link) {
	// renderInlineContent already styles the link text, so it is
	// written through without re-styling.
	displayText := writer.renderInlineContent(node)
	writer.inline.WriteString(displayText)
	if url := string(node.Destination); url != "" {
		urlStyle := writer.newStyle().Foreground(writer.theme.FaintText)
		writer.inline.WriteString(" " + urlStyle.Render("("+url+")"))
	}
}

// --- Table rendering ---

func (writer *markdownWriter) renderTable(table *extast.Table) {
	alignments := table.Alignments

	var headerCells []string
	var bodyRows [][]string
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case extast.KindTableHeader:
			headerCells = writer.collectTableRow(child)
		case extast.KindTableRow:
			bodyRows = append(bodyRows, writer.collectTableRow(child))
		}
	}

	columnCount := len(headerCells)
	if columnCount == 0 && len(bodyRows) > 0 {
		columnCount = len(bodyRows[0])
	}
	if columnCount == 0 {
		return
	}

	// Column widths from visible content width.
	columnWidths := make([]int, columnCount)
	measure := func(row []string) {
		for index, cell := range row {
			if index < columnCount {
				if width := lipgloss.Width(cell); width > columnWidths[index] {
					columnWidths[index] = width
				}
			}
		}
	}
	measure(headerCells)
	for _, row := range bodyRows {
		measure(row)
	}

	// Shrink proportionally when the table overflows the available
	// width, keeping at least 3 characters per column.
	const separator = "  "
	totalWidth := len(separator) * (columnCount - 1)
	for _, width := range columnWidths {
		totalWidth += width
	}
	available := writer.currentWidth()
	if totalWidth > available {
		usable := available - len(separator)*(columnCount-1)
		if usable < columnCount*3 {
			usable = columnCount * 3
		}
		for index := range columnWidths {
			columnWidths[index] = (columnWidths[index] * usable) / totalWidth
			if columnWidths[index] < 3 {
				columnWidths[index] = 3
			}
		}
	}

	writer.ensureBlankLine()

	if len(headerCells) > 0 {
		bold := writer.newStyle().Bold(true).Foreground(writer.theme.NormalText)
		writer.writeOutput(writer.consumeLinePrefix() +
			writer.formatTableRow(headerCells, columnWidths, alignments, bold))
		writer.ensureNewline()

		separatorParts := make([]string, columnCount)
		for index, width := range columnWidths {
			separatorParts[index] = strings.Repeat("─", width)
		}
		borderStyle := writer.newStyle().Foreground(writer.theme.BorderColor)
		writer.writeOutput(writer.linePrefix +
			borderStyle.Render(strings.Join(separatorParts, separator)))
		writer.ensureNewline()
	}

	for _, row := range bodyRows {
		writer.writeOutput(writer.linePrefix +
			writer.formatTableRow(row, columnWidths, alignments, writer.newStyle()))
		writer.ensureNewline()
	}

	writer.ensureBlankLine()
}

// collectTableRow extracts cell content strings from a table row node.
func (writer *markdownWriter) collectTableRow(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell.Kind() == extast.KindTableCell {
			cells = append(cells, writer.renderInlineContent(cell))
		}
	}
	return cells
}

// formatTableRow pads and aligns one table row's cells.
func (writer *markdownWriter) formatTableRow(
	cells []string,
	columnWidths []int,
	alignments []extast.Alignment,
	baseStyle lipgloss.Style,
) string {
	const separator = "  "
	var parts []string
	for index, width := range columnWidths {
		var cell string
		if index < len(cells) {
			cell = cells[index]
		}

		visibleWidth := lipgloss.Width(cell)
		if visibleWidth > width {
			cell = ansi.Truncate(cell, width, "…")
			visibleWidth = lipgloss.Width(cell)
		}

		padding := width - visibleWidth
		if padding < 0 {
			padding = 0
		}

		var alignment extast.Alignment
		if index < len(alignments) {
			alignment = alignments[index]
		}

		switch alignment {
		case extast.AlignRight:
			cell = strings.Repeat(" ", padding) + cell
		case extast.AlignCenter:
			leftPad := padding / 2
			cell = strings.Repeat(" ", leftPad) + cell + strings.Repeat(" ", padding-leftPad)
		default: // Left or unset.
			cell = cell + strings.Repeat(" ", padding)
		}
		parts = append(parts, cell)
	}
	return baseStyle.Render(strings.Join(parts, separator))
}
