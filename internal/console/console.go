// Package console renders terminal output for the ngx-extract CLI.
// Styling is applied only when stdout is a terminal.
package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/mvp-joe/ngx-extract/internal/processor"
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))
)

// isTTY checks if stdout is a terminal
func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func applyStyle(style lipgloss.Style, text string) string {
	if isTTY() {
		return style.Render(text)
	}
	return text
}

// ToRelativePath converts an absolute path to one relative to the working directory.
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}

	return relPath
}

// FormatDiagnostic renders a diagnostic in the IDE-parseable form
// "file:line:col: severity: message [rule]".
func FormatDiagnostic(filename string, d processor.Diagnostic) string {
	var output strings.Builder

	location := fmt.Sprintf("%s:%d:%d:", ToRelativePath(filename), d.Line, d.Column)
	output.WriteString(applyStyle(filePathStyle, location))
	output.WriteString(" ")

	name := processor.SeverityName(d.Severity)
	style := infoStyle
	switch d.Severity {
	case processor.SeverityError:
		style = errorStyle
	case processor.SeverityWarning:
		style = warningStyle
	}
	output.WriteString(applyStyle(style, name+":"))
	output.WriteString(" ")
	output.WriteString(d.Message)

	if d.RuleID != "" {
		output.WriteString(" ")
		output.WriteString(applyStyle(ruleStyle, "["+d.RuleID+"]"))
	}

	return output.String()
}

// FormatErrorMessage formats an error message
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}

// FormatWarningMessage formats a warning message
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ ") + message
}

// FormatInfoMessage formats an informational message
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ ") + message
}

// FormatSuccessMessage formats a success message
func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✓ ") + message
}

// FormatDocument renders a one-line summary of a virtual document.
func FormatDocument(index int, doc processor.VirtualDocument) string {
	lines := strings.Count(doc.Text, "\n") + 1
	if doc.Text == "" {
		lines = 0
	}
	return fmt.Sprintf("  [%d] %s (%d bytes, %d lines)",
		index, applyStyle(filePathStyle, ToRelativePath(doc.Filename)), len(doc.Text), lines)
}
