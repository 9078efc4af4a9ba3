package main

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/term"
)

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readSecret reads without echo when stdin is a terminal, otherwise it
// falls back to a plain line read so piped input keeps working.
func readSecret(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if secret, err := term.ReadPassword(int(os.Stdin.Fd())); err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

// isQuitCommand reports whether the interactive loop should exit.
func isQuitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "quit", "exit", "종료":
		return true
	}
	return false
}
