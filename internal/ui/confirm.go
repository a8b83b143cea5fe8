package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm prompts the user with a yes/no question. Returns true for yes.
func Confirm(prompt string) bool {
	return confirm(os.Stdin, os.Stdout, StyleWarning, prompt)
}

// ConfirmDanger is like Confirm but styled with the error color (for destructive actions).
func ConfirmDanger(prompt string) bool {
	return confirm(os.Stdin, os.Stdout, StyleError, "⚠ "+prompt)
}

// Prompt reads one line of input, returning def when the line is empty.
func Prompt(label, def string) string {
	return prompt(os.Stdin, os.Stdout, label, def)
}

func confirm(r io.Reader, w io.Writer, style lipgloss.Style, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", style.Render(prompt))
	line := readLine(r)
	line = strings.ToLower(line)
	return line == "y" || line == "yes"
}

func prompt(r io.Reader, w io.Writer, label, def string) string {
	if def != "" {
		fmt.Fprintf(w, "%s %s: ", StyleValue.Render(label), StyleMeta.Render("["+def+"]"))
	} else {
		fmt.Fprintf(w, "%s: ", StyleValue.Render(label))
	}
	if line := readLine(r); line != "" {
		return line
	}
	return def
}

func readLine(r io.Reader) string {
	line, _ := bufio.NewReader(r).ReadString('\n')
	return strings.TrimSpace(line)
}
