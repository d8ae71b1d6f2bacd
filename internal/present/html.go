package present

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*
var templateFS embed.FS

// Page is everything the widget page shows
type Page struct {
	Query    string
	TimeZone string
	Recent   []string
	State    *State
}

// HTML renders the widget page
type HTML struct {
	tpl *template.Template
}

// NewHTML parses the embedded page template
func NewHTML() *HTML {
	return &HTML{
		tpl: template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
}

// Render writes the page to w
func (h *HTML) Render(w io.Writer, p Page) error {
	if p.State == nil {
		p.State = &State{}
	}
	if err := h.tpl.Execute(w, p); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
