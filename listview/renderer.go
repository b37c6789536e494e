// Package listview implements the paginated list pattern every AloTra list
// screen (storefront grid, admin tables) used to copy-paste: one renderer
// with four exclusive states and one controller driving it.
package listview

import (
	"encoding/json"
	"html/template"
	"log"
	"strings"
)

// Renderer turns one list state into a complete markup fragment. Exactly one
// of the four states is ever rendered; the controller swaps the whole
// fragment in a single write so the view never shows a partial update.
type Renderer interface {
	Loading() template.HTML
	Error(message string) template.HTML
	Empty(message string) template.HTML
	Populated(items []json.RawMessage) (template.HTML, error)
}

const frameTemplate = `
{{define "loading"}}<div class="list-state list-state--loading"><div class="spinner"></div></div>{{end}}
{{define "error"}}<div class="list-state list-state--error"><p>{{.Message}}</p><button class="btn-retry" data-action="retry">Thử lại</button></div>{{end}}
{{define "empty"}}<div class="list-state list-state--empty"><p>{{.Message}}</p></div>{{end}}
{{define "populated"}}<div class="list-grid">{{range .Items}}{{template "item" .}}{{end}}</div>{{end}}
`

// HTMLRenderer renders list fragments from an item template. The item
// template receives the decoded JSON record of one backend row.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer builds a renderer around itemTemplate, the markup for a
// single row or card, e.g.
//
//	<div class="product-card"><h3>{{.name}}</h3><span>{{.price}}</span></div>
func NewHTMLRenderer(name, itemTemplate string) (*HTMLRenderer, error) {
	tmpl, err := template.New(name).Parse(frameTemplate)
	if err != nil {
		return nil, err
	}
	if _, err := tmpl.Parse(`{{define "item"}}` + itemTemplate + `{{end}}`); err != nil {
		return nil, err
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Loading() template.HTML {
	return r.execStatic("loading", nil)
}

func (r *HTMLRenderer) Error(message string) template.HTML {
	return r.execStatic("error", map[string]any{"Message": message})
}

func (r *HTMLRenderer) Empty(message string) template.HTML {
	return r.execStatic("empty", map[string]any{"Message": message})
}

func (r *HTMLRenderer) Populated(items []json.RawMessage) (template.HTML, error) {
	decoded := make([]map[string]any, 0, len(items))
	for _, raw := range items {
		var row map[string]any
		if err := json.Unmarshal(raw, &row); err != nil {
			return "", err
		}
		decoded = append(decoded, row)
	}
	return r.exec("populated", map[string]any{"Items": decoded})
}

// execStatic renders the loading/error/empty frames, which take no record
// data and cannot meaningfully fail at runtime; a failure is still logged
// rather than dropped.
func (r *HTMLRenderer) execStatic(state string, data any) template.HTML {
	html, err := r.exec(state, data)
	if err != nil {
		log.Printf("⚠️ rendering %s fragment failed: %v", state, err)
	}
	return html
}

func (r *HTMLRenderer) exec(state string, data any) (template.HTML, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, state, data); err != nil {
		return "", err
	}
	return template.HTML(sb.String()), nil
}
