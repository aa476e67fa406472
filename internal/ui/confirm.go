package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Confirm asks the user for a yes/no confirmation
// Default is no (returns false on empty input)
func Confirm(message string, input io.Reader, output io.Writer) (bool, error) {
	return ConfirmWithDefault(message, false, input, output)
}

// ConfirmWithDefault asks the user for a yes/no confirmation with a specified default
func ConfirmWithDefault(message string, defaultYes bool, input io.Reader, output io.Writer) (bool, error) {
	scanner := bufio.NewScanner(input)

	var prompt string
	if defaultYes {
		prompt = fmt.Sprintf("%s [Y/n]: ", message)
	} else {
		prompt = fmt.Sprintf("%s [y/N]: ", message)
	}

	for {
		_, err := fmt.Fprint(output, prompt)
		if err != nil {
			return false, err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return false, err
			}
			return false, io.EOF
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))

		switch response {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			_, err := fmt.Fprintln(output, "Please enter 'y' or 'n'")
			if err != nil {
				return false, err
			}
			// Continue the loop to ask again
		}
	}
}

// ShowCommitMessage displays a formatted commit message
func ShowCommitMessage(message string, output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	_, err := bold.Fprintln(output, "\n📝 Generated Commit Message:")
	if err != nil {
		return err
	}

	_, err = cyan.Fprintln(output, "─────────────────────────────")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(output, message)
	if err != nil {
		return err
	}

	_, err = cyan.Fprintln(output, "─────────────────────────────")
	return err
}

// ShowInfo prints an informational status line
func ShowInfo(message string, output io.Writer) {
	blue := color.New(color.FgBlue)
	blue.Fprintf(output, "ℹ %s\n", message)
}

// ShowSuccess prints a success status line
func ShowSuccess(message string, output io.Writer) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(output, "✅ %s\n", message)
}

// ShowError prints an error status line
func ShowError(message string, output io.Writer) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(output, "✗ %s\n", message)
}

// ShowDiffPreview prints the first maxLines lines of the diff and asks
// whether to proceed. Returns false when the user declines.
func ShowDiffPreview(diff string, maxLines int, input io.Reader, output io.Writer) (bool, error) {
	bold := color.New(color.Bold)
	if _, err := bold.Fprintln(output, "\nDiff preview:"); err != nil {
		return false, err
	}

	lines := strings.Split(diff, "\n")
	shown := lines
	if maxLines > 0 && len(lines) > maxLines {
		shown = lines[:maxLines]
	}
	for _, line := range shown {
		var c *color.Color
		switch {
		case strings.HasPrefix(line, "+"):
			c = color.New(color.FgGreen)
		case strings.HasPrefix(line, "-"):
			c = color.New(color.FgRed)
		default:
			c = color.New(color.Reset)
		}
		if _, err := c.Fprintln(output, line); err != nil {
			return false, err
		}
	}
	if len(shown) < len(lines) {
		dim := color.New(color.FgHiBlack)
		if _, err := dim.Fprintf(output, "... (%d more lines)\n", len(lines)-len(shown)); err != nil {
			return false, err
		}
	}

	return ConfirmWithDefault("Generate a commit message for these changes?", true, input, output)
}
