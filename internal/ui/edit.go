package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	// ErrEmptyInput is returned when the user provides no input
	ErrEmptyInput = errors.New("empty input")

	// ErrInterrupted is returned when the user interrupts input with Ctrl+C
	ErrInterrupted = errors.New("input interrupted")
)

// EditMessage lets the user replace a generated commit message with their
// own text. The current message is shown for reference; empty input keeps
// it unchanged. Multi-line input is terminated with Ctrl+D.
func EditMessage(current string, input io.Reader, output io.Writer) (string, error) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	if _, err := bold.Fprintln(output, "\nCurrent message:"); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintln(output, current); err != nil {
		return "", err
	}
	if _, err := bold.Fprintln(output, "\nEnter the replacement message:"); err != nil {
		return "", err
	}
	if _, err := dim.Fprintln(output, "   Finish with Ctrl+D. Leave empty to keep the current message."); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(output, "\n> "); err != nil {
		return "", err
	}

	edited, err := readMultiline(input)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) || errors.Is(err, io.EOF) {
			return current, nil
		}
		return "", err
	}
	return edited, nil
}

// PromptAPIKey asks for an API key on a single line. Used as the last
// resort when neither flags, config nor environment provide one.
func PromptAPIKey(provider string, input io.Reader, output io.Writer) (string, error) {
	bold := color.New(color.Bold)
	if _, err := bold.Fprintf(output, "Enter your %s API key: ", provider); err != nil {
		return "", err
	}

	scanner := bufio.NewScanner(input)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	key := strings.TrimSpace(scanner.Text())
	if key == "" {
		return "", ErrEmptyInput
	}
	return key, nil
}

// readMultiline reads lines until EOF (Ctrl+D). A readline editor is used
// on a real terminal for a better input experience (CJK input, arrows);
// any other reader falls back to a plain scanner so tests can script it.
func readMultiline(input io.Reader) (string, error) {
	if input == os.Stdin {
		return readMultilineReadline()
	}

	scanner := bufio.NewScanner(input)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return joinLines(lines)
}

func readMultilineReadline() (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return readMultilineScanner(os.Stdin)
	}
	defer rl.Close()

	var lines []string
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				return "", ErrInterrupted
			}
			if err == io.EOF {
				break
			}
			return "", err
		}
		lines = append(lines, line)
	}
	return joinLines(lines)
}

func readMultilineScanner(input io.Reader) (string, error) {
	scanner := bufio.NewScanner(input)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return joinLines(lines)
}

func joinLines(lines []string) (string, error) {
	result := strings.TrimSpace(strings.Join(lines, "\n"))
	if result == "" {
		if len(lines) > 0 {
			return "", ErrEmptyInput
		}
		return "", io.EOF
	}
	return result, nil
}
