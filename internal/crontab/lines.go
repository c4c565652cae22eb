// Package crontab provides backends for the per-user schedule list.
package crontab

import "strings"

// splitLines turns a crontab body into lines. The trailing newline does not
// produce an extra empty line; blank lines and comments inside are kept.
func splitLines(body string) []string {
	body = strings.TrimSuffix(body, "\n")
	if body == "" {
		return []string{}
	}
	return strings.Split(body, "\n")
}

// joinLines renders lines as a crontab body. cron ignores a final line
// without a newline, so every line gets one.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
