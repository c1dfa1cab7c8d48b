package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode selects how the lint command renders progress: a live terminal
// view, plain output, or whichever fits the attached stream.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("--ui accepts auto, on or off, got %q", value)
	}
}

// shouldUseTUI decides whether the progress view runs. Auto means "only on
// a real terminal"; a pipe or redirect gets plain output.
func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
