// Package bookmarklet turns the embedded standings-scraper JavaScript into
// a javascript:-scheme link and wraps it in an instructional HTML page.
package bookmarklet

import (
	"regexp"
	"strings"
)

var (
	blockComments = regexp.MustCompile(`(?s)/\*.*?\*/`)
	whitespace    = regexp.MustCompile(`\s+`)
	aroundOps     = regexp.MustCompile(`\s*([{}();,=<>!+\-*/&|])\s*`)
)

// Minify compresses the bookmarklet source enough to survive as a single
// bookmark URL: comments out, whitespace collapsed, double quotes turned
// into single quotes so the result can sit inside a double-quoted href.
// It is not a general JS minifier and only needs to handle our own source.
func Minify(js string) string {
	js = stripLineComments(js)
	js = blockComments.ReplaceAllString(js, "")
	js = whitespace.ReplaceAllString(js, " ")
	js = aroundOps.ReplaceAllString(js, "$1")
	js = strings.ReplaceAll(js, `"`, `'`)
	return strings.TrimSpace(js)
}

// URL returns the javascript: link for the minified source.
func URL(js string) string {
	return "javascript:" + Minify(js)
}

// stripLineComments removes // comments while keeping protocol-relative
// and absolute URLs intact: a // preceded by ':' is part of a URL, not a
// comment.
func stripLineComments(js string) string {
	var out strings.Builder
	for _, line := range strings.Split(js, "\n") {
		for i := 0; i+1 < len(line); i++ {
			if line[i] != '/' || line[i+1] != '/' {
				continue
			}
			if i > 0 && line[i-1] == ':' {
				continue
			}
			line = line[:i]
			break
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String()
}
