// Package render generates the HTML documents served by the proxy.
// Rendering is deterministic: the same inputs always produce the same
// bytes, so responses are safe to cache at the edge.
package render

import "strings"

// PageData carries everything needed to render one page document.
// Path is the full externally-visible path, path_prefix included.
type PageData struct {
	Title           string
	Content         string
	MetaDescription string
	MetaKeywords    string
	Domain          string
	Path            string
}

// escaper maps the five characters that can break out of an attribute or
// text node. Content is exempt: it is author-authored markup and is
// injected verbatim.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func escapeHTML(value string) string {
	return escaper.Replace(value)
}

const pageStyle = `    * { margin: 0; padding: 0; box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
      line-height: 1.6;
      color: #333;
      max-width: 800px;
      margin: 0 auto;
      padding: 2rem;
    }
    h1, h2, h3, h4, h5, h6 { margin: 1.5rem 0 1rem; line-height: 1.3; }
    h1 { font-size: 2rem; }
    h2 { font-size: 1.5rem; }
    h3 { font-size: 1.25rem; }
    p { margin: 1rem 0; }
    a { color: #2563eb; text-decoration: none; }
    a:hover { text-decoration: underline; }
    ul, ol { margin: 1rem 0; padding-left: 2rem; }
    li { margin: 0.5rem 0; }
    code { background: #f3f4f6; padding: 0.2rem 0.4rem; border-radius: 0.25rem; font-size: 0.875em; }
    pre { background: #1f2937; color: #f9fafb; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; margin: 1rem 0; }
    pre code { background: none; padding: 0; }
    blockquote { border-left: 4px solid #e5e7eb; padding-left: 1rem; margin: 1rem 0; color: #6b7280; }
    img { max-width: 100%; height: auto; }
    table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
    th, td { border: 1px solid #e5e7eb; padding: 0.75rem; text-align: left; }
    th { background: #f9fafb; }
`

const errorStyle = `    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
      display: flex;
      align-items: center;
      justify-content: center;
      min-height: 100vh;
      margin: 0;
      background: #f3f4f6;
    }
    .error {
      text-align: center;
      padding: 2rem;
    }
    h1 { color: #1f2937; margin-bottom: 0.5rem; }
    p { color: #6b7280; }
`

// Page renders a complete HTML document for a published page: escaped
// title and meta tags in the head, canonical link, Open Graph and
// Twitter Card tags mirroring title/description, the fixed stylesheet,
// and the trusted content inside an <article> wrapper. Empty description
// or keywords omit the corresponding tags entirely.
func Page(data PageData) string {
	canonicalURL := "https://" + data.Domain + data.Path
	title := escapeHTML(data.Title)
	description := escapeHTML(data.MetaDescription)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n")
	b.WriteString("<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("  <title>" + title + "</title>\n")
	if data.MetaDescription != "" {
		b.WriteString("  <meta name=\"description\" content=\"" + description + "\">\n")
	}
	if data.MetaKeywords != "" {
		b.WriteString("  <meta name=\"keywords\" content=\"" + escapeHTML(data.MetaKeywords) + "\">\n")
	}
	b.WriteString("  <link rel=\"canonical\" href=\"" + canonicalURL + "\">\n")
	b.WriteString("  <meta property=\"og:title\" content=\"" + title + "\">\n")
	if data.MetaDescription != "" {
		b.WriteString("  <meta property=\"og:description\" content=\"" + description + "\">\n")
	}
	b.WriteString("  <meta property=\"og:url\" content=\"" + canonicalURL + "\">\n")
	b.WriteString("  <meta property=\"og:type\" content=\"website\">\n")
	b.WriteString("  <meta name=\"twitter:card\" content=\"summary\">\n")
	b.WriteString("  <meta name=\"twitter:title\" content=\"" + title + "\">\n")
	if data.MetaDescription != "" {
		b.WriteString("  <meta name=\"twitter:description\" content=\"" + description + "\">\n")
	}
	b.WriteString("  <style>\n")
	b.WriteString(pageStyle)
	b.WriteString("  </style>\n")
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString("  <article>\n")
	b.WriteString("    " + data.Content + "\n")
	b.WriteString("  </article>\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>")
	return b.String()
}

// ErrorPage renders the minimal centered-message document used for
// "Project Not Found" and "Page Not Found" responses.
func ErrorPage(title, message string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n")
	b.WriteString("<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("  <title>" + escapeHTML(title) + "</title>\n")
	b.WriteString("  <style>\n")
	b.WriteString(errorStyle)
	b.WriteString("  </style>\n")
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString("  <div class=\"error\">\n")
	b.WriteString("    <h1>" + escapeHTML(title) + "</h1>\n")
	b.WriteString("    <p>" + escapeHTML(message) + "</p>\n")
	b.WriteString("  </div>\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>")
	return b.String()
}
