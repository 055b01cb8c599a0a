package topics

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
)

// Map associates a topic name with its subreddits in declaration order.
type Map map[string][]string

// Names returns the topic names. Order follows map iteration and is not
// significant.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

// Load parses a topic list file. A line like "# Tech" opens a topic
// section (a line both starting and ending with '#' is a decorative
// divider, not a topic); lines like "/r/golang" under an open section are
// subreddit entries. Everything else is ignored.
//
// Load is fail-soft: a missing or unreadable file yields an empty map so
// callers degrade to "no topics known" instead of erroring.
func Load(path string) Map {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("Failed to load topic mapping", "path", path, "err", err)
		return Map{}
	}
	defer f.Close()

	m := Map{}
	current := ""

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "#") && !strings.HasSuffix(line, "#"):
			current = strings.TrimSpace(line[1:])
			if _, ok := m[current]; !ok {
				m[current] = []string{}
			}
		case strings.HasPrefix(line, "/r/") && current != "":
			sub := strings.TrimSuffix(strings.TrimPrefix(line, "/r/"), "/")
			sub = strings.TrimSpace(sub)
			if sub != "" {
				m[current] = append(m[current], sub)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("Failed to read topic mapping", "path", path, "err", err)
		return Map{}
	}
	return m
}
