// Package export writes the note sequence as a Markdown or HTML document.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/marcus/jot/internal/notes"
)

// Format is an export output format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "md", "markdown" and "html", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown", "":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension for the format, with the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Options control timestamps in the output.
type Options struct {
	// DateFormat is a time layout; empty means "Jan 2, 2006, 03:04 PM".
	DateFormat string
	// Location for timestamps; nil means UTC.
	Location *time.Location
	// Title heads the document; empty means "Notes".
	Title string
}

func (o Options) withDefaults() Options {
	if o.DateFormat == "" {
		o.DateFormat = "Jan 2, 2006, 03:04 PM"
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Title == "" {
		o.Title = "Notes"
	}
	return o
}

func (o Options) stamp(t time.Time) string {
	return t.In(o.Location).Format(o.DateFormat)
}

// Write renders seq in format f to w.
func Write(w io.Writer, f Format, seq notes.Notes, opts Options) error {
	switch f {
	case FormatMarkdown:
		return Markdown(w, seq, opts)
	case FormatHTML:
		return HTML(w, seq, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Markdown writes one section per note in sequence order.
func Markdown(w io.Writer, seq notes.Notes, opts Options) error {
	opts = opts.withDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", opts.Title)
	for _, n := range seq {
		b.WriteString("\n---\n\n")
		fmt.Fprintf(&b, "## %s\n\n", n.Title)
		fmt.Fprintf(&b, "_%s_\n", metaLine(n, opts))
		if content := strings.TrimSpace(n.Content); content != "" {
			b.WriteString("\n")
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func metaLine(n notes.Note, opts Options) string {
	s := "Created " + opts.stamp(n.CreatedAt)
	if n.Edited() {
		s += " · Updated " + opts.stamp(n.UpdatedAt)
	}
	return s
}

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML in notes is escaped, not passed through.
		html.WithHardWraps(),
	),
)

// renderHTML converts note content to HTML, falling back to escaped text.
func renderHTML(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(b.String())
}

type htmlNote struct {
	ID   string
	Name string
	Meta string
	Body template.HTML
}

type htmlPage struct {
	Title string
	Count int
	Notes []htmlNote
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #111827; }
article { border-top: 1px solid #e5e7eb; padding: 1rem 0; }
.meta { color: #6b7280; font-size: 0.875rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{.Count}} notes</p>
{{range .Notes}}<article id="note-{{.ID}}">
<h2>{{.Name}}</h2>
<p class="meta">{{.Meta}}</p>
{{.Body}}
</article>
{{end}}</body>
</html>
`))

// HTML writes a standalone page with each note's content rendered as
// Markdown.
func HTML(w io.Writer, seq notes.Notes, opts Options) error {
	opts = opts.withDefaults()

	page := htmlPage{Title: opts.Title, Count: len(seq)}
	for _, n := range seq {
		page.Notes = append(page.Notes, htmlNote{
			ID:   n.ID,
			Name: n.Title,
			Meta: metaLine(n, opts),
			Body: renderHTML(n.Content),
		})
	}
	return pageTmpl.Execute(w, page)
}
