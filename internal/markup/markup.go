// Package markup turns Markdown documents into prose for analysis.
package markup

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// IsMarkdown reports whether path has a Markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	}
	return false
}

// ParseFrontMatter splits a leading YAML front matter block from content.
// Content without valid front matter is returned unchanged.
func ParseFrontMatter(content []byte) (map[string]interface{}, []byte) {
	s := string(content)
	if !strings.HasPrefix(s, "---") {
		return nil, content
	}
	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content
	}
	var fm map[string]interface{}
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(rest[:endIdx])), &fm); err != nil {
		return nil, content
	}
	remaining := strings.TrimPrefix(rest[endIdx+4:], "\n")
	return fm, []byte(remaining)
}

// PlainText renders Markdown to prose. Every heading, paragraph and list
// item ends as its own sentence; code, HTML and images are dropped.
func PlainText(source []byte) string {
	_, body := ParseFrontMatter(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(body))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML, *ast.Image:
			return ast.WalkSkipChildren, nil
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			if !entering {
				endSentence(&b)
			}
		case *ast.Text:
			if entering {
				b.Write(node.Segment.Value(body))
				if node.SoftLineBreak() || node.HardLineBreak() {
					b.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				b.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				b.Write(node.Label(body))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// endSentence closes the current block so headings and list items are not
// merged into the following sentence.
func endSentence(b *strings.Builder) {
	current := strings.TrimRightFunc(b.String(), unicode.IsSpace)
	b.Reset()
	b.WriteString(current)
	if current == "" {
		return
	}
	last, _ := utf8.DecodeLastRuneInString(current)
	if !strings.ContainsRune(".!?", last) {
		b.WriteByte('.')
	}
	b.WriteByte('\n')
}
