// Package templates renders the HTML pages of the portal as templ components.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// html accumulates markup; text is escaped, raw is not.
type html struct {
	b strings.Builder
}

func (h *html) raw(s string) {
	h.b.WriteString(s)
}

func (h *html) text(s string) {
	h.b.WriteString(templ.EscapeString(s))
}

func component(build func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var h html
		build(&h)
		_, err := io.WriteString(w, h.b.String())
		return err
	})
}

func layout(h *html, title, userName string, body func(h *html)) {
	h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	h.raw(`<title>`)
	h.text(title)
	h.raw(` | College Portal</title></head><body>`)
	h.raw(`<header><h1>College Portal</h1>`)
	if userName != "" {
		h.raw(`<nav><span>`)
		h.text(userName)
		h.raw(`</span> <a href="/logout">Logout</a></nav>`)
	}
	h.raw(`</header><main>`)
	body(h)
	h.raw(`</main></body></html>`)
}

func stat(h *html, label string, value string) {
	h.raw(`<div class="stat"><span class="stat-value">`)
	h.text(value)
	h.raw(`</span><span class="stat-label">`)
	h.text(label)
	h.raw(`</span></div>`)
}

// table writes a header row and one row per entry of rows.
func table(h *html, id string, headers []string, rows [][]string) {
	h.raw(`<table id="`)
	h.text(id)
	h.raw(`"><thead><tr>`)
	for _, hd := range headers {
		h.raw(`<th>`)
		h.text(hd)
		h.raw(`</th>`)
	}
	h.raw(`</tr></thead><tbody>`)
	for _, row := range rows {
		h.raw(`<tr>`)
		for _, cell := range row {
			h.raw(`<td>`)
			h.text(cell)
			h.raw(`</td>`)
		}
		h.raw(`</tr>`)
	}
	h.raw(`</tbody></table>`)
}
