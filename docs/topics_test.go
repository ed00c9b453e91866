package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() failed: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}

	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(nope) succeeded")
	}
}

// TestTitles checks that every topic starts with a level 1 heading.
func TestTitles(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			doc := goldmark.DefaultParser().Parse(text.NewReader(src))
			first := doc.FirstChild()
			if first == nil || first.Kind() != ast.KindHeading || first.(*ast.Heading).Level != 1 {
				t.Errorf("%s does not start with a title", file)
			}
		})
	}
}

func TestGetAll(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) failed: %v", err)
	}
	for _, title := range []string{"# Columns", "# Formulas", "# Policy"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopic(*) does not contain %q", title)
		}
	}
}

func TestGetAllTopics(t *testing.T) {
	got, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() failed: %v", err)
	}
	want := []string{"columns", "formulas", "policy"}
	if !slices.Equal(got, want) {
		t.Errorf("GetAllTopics() = %v, want %v", got, want)
	}
}
