package bookmarklet

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
)

//go:embed bookmarklet.js
var sourceJS string

//go:embed page.gohtml
var pageHTML string

// Source returns the un-minified bookmarklet JavaScript.
func Source() string {
	return sourceJS
}

// GeneratePage renders the instructional HTML page with the minified
// javascript: link embedded in it.
func GeneratePage() (string, error) {
	tmpl, err := template.New("page").Parse(pageHTML)
	if err != nil {
		return "", fmt.Errorf("parsing bookmarklet page template: %w", err)
	}

	var buf bytes.Buffer
	data := struct{ Bookmarklet template.URL }{Bookmarklet: template.URL(URL(sourceJS))}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering bookmarklet page: %w", err)
	}
	return buf.String(), nil
}

// WritePage generates the page and writes it to path.
func WritePage(path string) error {
	page, err := GeneratePage()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
