// Package docs embeds the help topics of the alloc command.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing every other topic, it is not a topic itself.
const index = "readme"

// Topic is a documentation page.
type Topic struct {
	Name  string // file name without extension
	Title string // first level one heading
}

// GetTopic returns the markdown content of a topic. The special topic "*"
// returns all topics.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(all...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of several topics, one after the other.
func GetTopics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns the names of all topics, sorted.
func GetAllTopics() ([]string, error) {
	matches, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, m := range matches {
		name := strings.TrimSuffix(m, path.Ext(m))
		if name != index {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics, nil
}

// Index returns the topic listing.
func Index() (string, error) {
	return GetTopic(index)
}

// Topics returns all topics with their title.
func Topics() ([]Topic, error) {
	names, err := GetAllTopics()
	if err != nil {
		return nil, err
	}
	res := make([]Topic, 0, len(names))
	for _, name := range names {
		content, err := GetTopic(name)
		if err != nil {
			return nil, err
		}
		res = append(res, Topic{Name: name, Title: title(content)})
	}
	return res, nil
}

// title returns the text of the first "# " line.
func title(content string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		if t, ok := strings.CutPrefix(scanner.Text(), "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return ""
}
