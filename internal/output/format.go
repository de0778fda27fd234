// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"ftask/internal/service"
)

// FormatTask formats one task line.
// Format: "{N:>4}  [{x| }] {DUE}  {PRIORITY:<6}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s  %-6s  %s\n",
		num, mark, task.DueDate.Format("2006-01-02"), task.Priority, normalizeText(task.Title))
}

// FormatTaskLong formats a task line followed by its description,
// indented to align under the title column.
func FormatTaskLong(w io.Writer, num int, task service.Task) {
	FormatTask(w, num, task)
	if strings.TrimSpace(task.Description) != "" {
		fmt.Fprintf(w, "%30s%s\n", "", normalizeText(task.Description))
	}
}

// normalizeText normalizes a task title or description for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
