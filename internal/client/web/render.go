package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/nav"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// renderer handles template rendering.
type renderer struct {
	baseTemplate *template.Template
	templatesFS  fs.FS
}

func newRenderer(baseTemplate *template.Template, templatesFS fs.FS) *renderer {
	return &renderer{baseTemplate: baseTemplate, templatesFS: templatesFS}
}

// PageData contains common data for all pages.
type PageData struct {
	Title       string
	CurrentPath string
	// Screen is the guarded screen the page belongs to, "" on login.
	Screen   string
	UserName string
	Role     string
	Links    []nav.Link
	Toasts   []ToastView
	Data     any
}

// ToastView is a toast as the page shows it: it fades out after Millis.
type ToastView struct {
	Kind    models.ToastKind
	Message string
	Millis  int64
}

// render clones the base layout and parses the page template into it, so
// "content" blocks of different pages never collide.
func (r *renderer) render(w http.ResponseWriter, status int, name string, page PageData) error {
	tmpl, err := r.baseTemplate.Clone()
	if err != nil {
		return fmt.Errorf("clone template: %w", err)
	}

	path := "templates/" + name
	if _, err := tmpl.ParseFS(r.templatesFS, path); err != nil {
		return fmt.Errorf("parse page template %s: %w", path, err)
	}

	// Execute into a buffer so a template error still yields a clean 500.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

var (
	markdown = goldmark.New()
	policy   = bluemonday.UGCPolicy()
)

// specs renders item specifications as sanitised markdown. Empty
// specifications show as "N/A".
func specs(s string) template.HTML {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

func stockClass(it models.Item) string {
	if it.LowStock() {
		return "stock-low"
	}
	return "stock-ok"
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"specs":      specs,
		"stockClass": stockClass,
		"categories": func() []models.Category { return models.Categories },
		"suppliers":  func() []models.Supplier { return models.Suppliers },
	}
}
