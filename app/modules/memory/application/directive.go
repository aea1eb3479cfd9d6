package memoryservice

import (
	"regexp"
	"strings"
)

var memoryPattern = regexp.MustCompile(`(?i)^\[\[MEMORY:\s*(.+?)\s*\]\]$`)

// ExtractMemoryDirective splits a model reply into the visible content and an
// optional trailing memory directive of the form [[MEMORY: ...]] on the last
// line.
func ExtractMemoryDirective(text string) (content string, memory string) {
	if text == "" {
		return text, ""
	}

	trimmed := strings.TrimRight(text, " \t\n")
	lines := strings.Split(trimmed, "\n")
	lastLine := strings.TrimSpace(lines[len(lines)-1])

	match := memoryPattern.FindStringSubmatch(lastLine)
	if match == nil {
		return text, ""
	}

	content = strings.TrimRight(strings.Join(lines[:len(lines)-1], "\n"), " \t\n")
	return content, strings.TrimSpace(match[1])
}
