// Package docs holds the documentation topics printed by `rcx topic`.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing the others, it is not a topic itself.
const index = "readme"

// GetTopic returns the markdown of the named topic, or of every topic for "*".
func GetTopic(name string) (string, error) {
	if name == "*" {
		names, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(names...)
	}
	md, err := docs.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("no topic %q, see 'rcx topic': %w", name, err)
	}
	return string(md), nil
}

// GetTopics returns the named topics one after the other.
func GetTopics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		md, err := GetTopic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(md)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns the topic names in alphabetical order.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md") // sorted
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if name := strings.TrimSuffix(f, ".md"); name != index {
			names = append(names, name)
		}
	}
	return names, nil
}
