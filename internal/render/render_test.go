package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCanonicalURL(t *testing.T) {
	t.Parallel()

	html := Page(PageData{
		Title:   "Intro",
		Content: "<p>Hi</p>",
		Domain:  "example.com",
		Path:    "/seo/intro",
	})
	assert.Contains(t, html, `<link rel="canonical" href="https://example.com/seo/intro">`)
	assert.Contains(t, html, `<meta property="og:url" content="https://example.com/seo/intro">`)
	assert.Contains(t, html, "<title>Intro</title>")
}

func TestPageEscapesHeadValuesButNotContent(t *testing.T) {
	t.Parallel()

	html := Page(PageData{
		Title:           "<script>alert(1)</script>",
		Content:         "<h1>Hi</h1>",
		MetaDescription: `a "quoted" & <desc>`,
		Domain:          "example.com",
		Path:            "/p",
	})
	assert.Contains(t, html, "<title>&lt;script&gt;alert(1)&lt;/script&gt;</title>")
	assert.Contains(t, html, `<meta property="og:title" content="&lt;script&gt;alert(1)&lt;/script&gt;">`)
	assert.Contains(t, html, `<meta name="twitter:title" content="&lt;script&gt;alert(1)&lt;/script&gt;">`)
	assert.Contains(t, html, `content="a &quot;quoted&quot; &amp; &lt;desc&gt;"`)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	// Author content is trusted markup and goes through verbatim.
	assert.Contains(t, html, "<h1>Hi</h1>")
}

func TestPageEscapesSingleQuotes(t *testing.T) {
	t.Parallel()

	html := Page(PageData{Title: "it's", Domain: "example.com", Path: "/p"})
	assert.Contains(t, html, "<title>it&#039;s</title>")
}

func TestPageOmitsEmptyMetaTags(t *testing.T) {
	t.Parallel()

	html := Page(PageData{Title: "T", Content: "c", Domain: "example.com", Path: "/p"})
	assert.NotContains(t, html, `name="description"`)
	assert.NotContains(t, html, `name="keywords"`)
	assert.NotContains(t, html, `og:description`)
	assert.NotContains(t, html, `twitter:description`)

	html = Page(PageData{
		Title:           "T",
		MetaDescription: "d",
		MetaKeywords:    "k1, k2",
		Domain:          "example.com",
		Path:            "/p",
	})
	assert.Contains(t, html, `<meta name="description" content="d">`)
	assert.Contains(t, html, `<meta name="keywords" content="k1, k2">`)
	assert.Contains(t, html, `<meta property="og:description" content="d">`)
	assert.Contains(t, html, `<meta name="twitter:description" content="d">`)
}

func TestPageDeterministic(t *testing.T) {
	t.Parallel()

	data := PageData{
		Title:           "Intro",
		Content:         "<p>Hi</p>",
		MetaDescription: "desc",
		MetaKeywords:    "a,b",
		Domain:          "example.com",
		Path:            "/seo/intro",
	}
	require.Equal(t, Page(data), Page(data))
}

func TestPageStructure(t *testing.T) {
	t.Parallel()

	html := Page(PageData{Title: "T", Content: "<p>body</p>", Domain: "example.com", Path: "/p"})
	require.True(t, strings.HasPrefix(html, "<!DOCTYPE html>\n"))
	assert.Contains(t, html, "<article>\n    <p>body</p>\n  </article>")
	assert.Contains(t, html, `<meta name="twitter:card" content="summary">`)
	assert.Contains(t, html, `<meta property="og:type" content="website">`)
	assert.Contains(t, html, "font-family: -apple-system")
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	html := ErrorPage("Project Not Found", "This project does not exist or is not active.")
	assert.Contains(t, html, "<h1>Project Not Found</h1>")
	assert.Contains(t, html, "<p>This project does not exist or is not active.</p>")
	assert.Contains(t, html, `class="error"`)

	escaped := ErrorPage("<b>oops</b>", "a & b")
	assert.Contains(t, escaped, "<h1>&lt;b&gt;oops&lt;/b&gt;</h1>")
	assert.Contains(t, escaped, "<p>a &amp; b</p>")
}
