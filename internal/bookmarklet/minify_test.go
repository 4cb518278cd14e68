package bookmarklet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinify(t *testing.T) {
	t.Run("strips line comments", func(t *testing.T) {
		out := Minify("var a = 1; // counter\nvar b = 2;")
		assert.NotContains(t, out, "counter")
		assert.Contains(t, out, "var b")
	})

	t.Run("keeps URLs containing double slashes", func(t *testing.T) {
		out := Minify(`fetch("http://127.0.0.1:7860/api/import");`)
		assert.Contains(t, out, "http://127.0.0.1:7860/api/import")
	})

	t.Run("strips block comments across lines", func(t *testing.T) {
		out := Minify("var a = 1;\n/* multi\nline\ncomment */\nvar b = 2;")
		assert.NotContains(t, out, "comment")
		assert.Contains(t, out, "var b")
	})

	t.Run("collapses whitespace around operators", func(t *testing.T) {
		out := Minify("if (a  ==  b) {\n  run( a , b );\n}")
		assert.Equal(t, "if(a==b){run(a,b);}", out)
	})

	t.Run("rewrites double quotes to single quotes", func(t *testing.T) {
		out := Minify(`var s = "hello";`)
		assert.NotContains(t, out, `"`)
		assert.Contains(t, out, "'hello'")
	})

	t.Run("result is a single line", func(t *testing.T) {
		out := Minify(Source())
		assert.NotContains(t, out, "\n")
	})
}

func TestURL(t *testing.T) {
	u := URL("alert(1);")
	assert.True(t, strings.HasPrefix(u, "javascript:"))
	assert.Contains(t, u, "alert(1);")
}

func TestGeneratePage(t *testing.T) {
	page, err := GeneratePage()
	require.NoError(t, err)

	assert.Contains(t, page, `href="javascript:`)
	assert.Contains(t, page, "/api/import", "the scraper must target the import endpoint")
}
