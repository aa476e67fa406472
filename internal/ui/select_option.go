package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// SelectOption presents a numbered menu and returns the index of the
// chosen option. Empty input picks defaultIndex; invalid input re-prompts.
func SelectOption(message string, options []string, defaultIndex int, input io.Reader, output io.Writer) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("no options provided")
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	if _, err := bold.Fprintf(output, "\n%s\n", message); err != nil {
		return -1, err
	}
	for i, option := range options {
		marker := " "
		if i == defaultIndex {
			marker = "*"
		}
		if _, err := cyan.Fprintf(output, "  %s %d) %s\n", marker, i+1, option); err != nil {
			return -1, err
		}
	}

	scanner := bufio.NewScanner(input)
	for {
		if _, err := fmt.Fprintf(output, "Choice [%d]: ", defaultIndex+1); err != nil {
			return -1, err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return -1, err
			}
			return -1, io.EOF
		}

		response := strings.TrimSpace(scanner.Text())
		if response == "" {
			return defaultIndex, nil
		}

		n, err := strconv.Atoi(response)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}

		if _, err := fmt.Fprintf(output, "Please enter a number between 1 and %d\n", len(options)); err != nil {
			return -1, err
		}
	}
}
