package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Gruvbox-inspired palette, only used within this file
var (
	gruvboxFgDark       = text.Colors{text.FgHiBlack}
	gruvboxFgLight      = text.Colors{text.FgWhite}
	gruvboxRed          = text.Colors{text.FgRed}
	gruvboxGreen        = text.Colors{text.FgGreen}
	gruvboxYellow       = text.Colors{text.FgYellow}
	gruvboxBlue         = text.Colors{text.FgBlue}
	gruvboxAqua         = text.Colors{text.FgCyan}
	gruvboxBlueBright   = text.Colors{text.FgHiBlue}
	gruvboxAquaBright   = text.Colors{text.FgHiCyan}
	gruvboxPurpleBright = text.Colors{text.FgHiMagenta}
	gruvboxBold         = text.Colors{text.Bold}
)

// Theme - exported theme colors for consistent console output
var Theme = struct {
	Success   text.Colors
	Info      text.Colors
	Warning   text.Colors
	Error     text.Colors
	Heading   text.Colors
	Subtle    text.Colors
	Important text.Colors
	Accent    text.Colors

	Title       text.Colors
	Divider     text.Colors
	TableHeader text.Colors
	TableBorder text.Colors
	TableRow    text.Colors
	TableAltRow text.Colors
}{
	Success:   gruvboxGreen,
	Info:      gruvboxBlue,
	Warning:   gruvboxYellow,
	Error:     gruvboxRed,
	Heading:   append(gruvboxAquaBright, text.Bold),
	Subtle:    gruvboxFgDark,
	Important: append(gruvboxPurpleBright, text.Bold),
	Accent:    gruvboxAqua,

	Title:       append(gruvboxAquaBright, text.Bold),
	Divider:     gruvboxFgDark,
	TableHeader: append(gruvboxBlueBright, text.Bold),
	TableBorder: gruvboxBlue,
	TableRow:    gruvboxFgLight,
	TableAltRow: text.Colors{text.FgWhite, text.Faint},
}

// PrintHeading prints a formatted heading
func PrintHeading(title string) {
	fmt.Println(Theme.Heading.Sprint(title))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(Theme.Success.Sprint("✓ ") + message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Println(Theme.Info.Sprint("ℹ ") + message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println(Theme.Warning.Sprint("⚠ ") + message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(Theme.Error.Sprint("✗ ") + message)
}

// PrintKeyValue prints a key-value pair
func PrintKeyValue(key, value string) {
	fmt.Printf("%s: %s\n", gruvboxBold.Sprint(key), value)
}

// TableOptions defines options for table creation
type TableOptions struct {
	Title  string
	Footer string    // printed under the table, e.g. page information
	Output io.Writer // defaults to stdout
}

// DefaultTableOptions returns default table options
func DefaultTableOptions() TableOptions {
	return TableOptions{
		Title:  "Pokenest",
		Output: os.Stdout,
	}
}

// CreateTable creates a new table with the Gruvbox style
func CreateTable(opts TableOptions) table.Writer {
	t := table.NewWriter()
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	t.SetOutputMirror(opts.Output)
	if opts.Title != "" {
		t.SetTitle(opts.Title)
	}

	style := table.StyleDouble
	style.Color.Header = Theme.TableHeader
	style.Color.Border = Theme.TableBorder
	style.Color.Row = Theme.TableRow
	style.Color.RowAlternate = Theme.TableAltRow
	style.Title.Colors = Theme.Title
	style.Title.Align = text.AlignCenter
	style.Options.DrawBorder = true
	style.Options.SeparateColumns = true
	style.Options.SeparateHeader = true
	style.Options.SeparateRows = false
	style.Box.PaddingLeft = " "
	style.Box.PaddingRight = " "
	t.SetStyle(style)

	return t
}

// PrintTable prints a table with headers and rows
func PrintTable(headers []string, rows [][]string, options ...TableOptions) {
	opts := DefaultTableOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	t := CreateTable(opts)

	header := make(table.Row, len(headers))
	configs := make([]table.ColumnConfig, len(headers))
	for i, h := range headers {
		header[i] = h
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		t.AppendRow(r)
	}

	t.Render()

	if opts.Footer != "" {
		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintln(out, Theme.Subtle.Sprint(opts.Footer))
	}
}

// PrintTreeList prints groups of items as a two-level tree
func PrintTreeList(title string, groups []string, items map[string][]string) {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedRounded)
	l.Style().Format = text.FormatDefault
	l.AppendItem(Theme.Heading.Sprint(title))
	l.Indent()
	for _, group := range groups {
		l.AppendItem(Theme.Accent.Sprint(group))
		l.Indent()
		for _, item := range items[group] {
			l.AppendItem(item)
		}
		l.UnIndent()
	}
	fmt.Println(l.Render())
}

// ProgressOptions defines options for progress tracking
type ProgressOptions struct {
	AutoStop bool
	Style    progress.Style
	Output   io.Writer
}

// DefaultProgressOptions returns default progress options
func DefaultProgressOptions() ProgressOptions {
	return ProgressOptions{
		AutoStop: true,
		Style:    progress.StyleDefault,
		Output:   os.Stdout,
	}
}

// CreateProgressWriter creates a progress writer to track multiple tasks
func CreateProgressWriter(options ...ProgressOptions) progress.Writer {
	opts := DefaultProgressOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	pw := progress.NewWriter()
	pw.SetAutoStop(opts.AutoStop)
	pw.SetTrackerLength(25)
	pw.SetMessageLength(32)
	pw.SetNumTrackersExpected(1)
	pw.SetStyle(opts.Style)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.Style().Colors.Message = Theme.Info
	pw.Style().Colors.Percent = Theme.Important
	pw.Style().Colors.Time = Theme.Subtle
	pw.Style().Colors.Value = Theme.Success
	pw.Style().Options.PercentFormat = " %.1f%%"
	pw.SetOutputWriter(opts.Output)

	return pw
}

// CreateProgressTracker creates a tracker for a task of totalUnits
func CreateProgressTracker(message string, totalUnits int64) *progress.Tracker {
	return &progress.Tracker{
		Message: message,
		Total:   totalUnits,
		Units:   progress.UnitsDefault,
	}
}
