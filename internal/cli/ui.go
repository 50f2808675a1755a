package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/inscribe/pkg/pipeline"
	"github.com/matzehuels/inscribe/pkg/render/text"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings, rectangle cells
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	// Text drawing cells
	styleCellBoundary = lipgloss.NewStyle().Foreground(colorCyan)
	styleCellInterior = lipgloss.NewStyle().Foreground(colorDim)
	styleCellRect     = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleCellOutside  = lipgloss.NewStyle().Foreground(colorDim).Faint(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// statusOut receives status lines. stdout is reserved for results.
var statusOut io.Writer = os.Stderr

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(statusOut, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Result Display
// =============================================================================

// statsLine formats solve statistics on a single line.
func statsLine(res *pipeline.Result) string {
	parts := []string{
		fmt.Sprintf("%d vertices", res.Vertices),
		fmt.Sprintf("%d candidates", res.Stats.Candidates),
	}
	if a := res.Restricted; a != nil {
		parts = append(parts, fmt.Sprintf("%d checked", a.Checked))
	}
	if res.Stats.SearchTime > 0 {
		parts = append(parts, res.Stats.SearchTime.Round(time.Microsecond).String())
	}

	status := styleComputed.Render(iconFresh)
	if res.CacheInfo.Hit {
		status = styleCached.Render(iconCached)
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	b.WriteString(StyleDim.Render(" · ") + status)
	return b.String()
}

// printStats prints solve statistics on a single line.
func printStats(res *pipeline.Result) {
	fmt.Fprintln(statusOut, statsLine(res))
}

// resultTable lays out the computed rectangles of res as a table.
func resultTable(res *pipeline.Result) string {
	var rows [][]string
	add := func(name string, a *pipeline.Answer) {
		if a == nil {
			return
		}
		rows = append(rows, []string{
			name,
			strconv.FormatInt(a.Area, 10),
			a.Corners[0].String() + " " + a.Corners[1].String(),
			a.Rect.String(),
			strconv.Itoa(a.Checked),
		})
	}
	add(pipeline.VariantRestricted, res.Restricted)
	add(pipeline.VariantUnrestricted, res.Unrestricted)

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Variant", "Area", "Corners", "Rectangle", "Checked").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 1 {
				return StyleNumber.Padding(0, 1)
			}
			return cellStyle
		})
	return t.String()
}

// colorizeGrid styles a text drawing cell by cell.
func colorizeGrid(data []byte) string {
	var b strings.Builder
	for _, ch := range string(data) {
		s := string(ch)
		switch ch {
		case text.Boundary:
			s = styleCellBoundary.Render(s)
		case text.Interior:
			s = styleCellInterior.Render(s)
		case text.Rect:
			s = styleCellRect.Render(s)
		case text.Outside:
			s = styleCellOutside.Render(s)
		}
		b.WriteString(s)
	}
	return b.String()
}
