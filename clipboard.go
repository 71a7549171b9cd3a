package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
		if output, err := exec.Command("pbpaste").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.TrimRight(normalized, "\n")
}

func copyNodeText(n *Node) error {
	return clipboard.WriteAll(n.GetText())
}

// pasteNoteAt creates a note node at the given world position from the
// system clipboard. Returns nil when the clipboard is empty or
// unreadable.
func pasteNoteAt(g *Graph, at Point) *Node {
	text, err := readClipboardText()
	if err != nil {
		return nil
	}
	text = cleanClipboardText(text)
	if text == "" {
		return nil
	}
	n := g.AddNode(at.X, at.Y, NodeNote)
	n.SetText(text)
	return n
}
