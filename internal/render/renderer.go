package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"portfolio-web/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Nombres de las plantillas, uno por estado de la vista.
const (
	TemplateLoading   = "loading.html"
	TemplateError     = "error.html"
	TemplateEmpty     = "empty.html"
	TemplatePortfolio = "portfolio.html"
)

// Options configura los enlaces de accion de las paginas.
// BaseURL es el origen del backend: las rutas relativas de media y admin se resuelven contra el.
type Options struct {
	BaseURL        string
	AdminURL       string
	RetryPath      string
	RefreshSeconds int
}

// Renderer convierte un view.State en un documento HTML.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
	base *url.URL
	opts Options
}

// New parsea las plantillas embebidas.
func New(opts Options) (*Renderer, error) {
	if opts.AdminURL == "" {
		opts.AdminURL = "/admin/"
	}
	if opts.RetryPath == "" {
		opts.RetryPath = "/retry"
	}
	if opts.RefreshSeconds <= 0 {
		opts.RefreshSeconds = 1
	}

	var base *url.URL
	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil || !u.IsAbs() {
			return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
		}
		base = u
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	// Sin html.WithUnsafe el HTML crudo del markdown se descarta.
	md := goldmark.New(
		goldmark.WithExtensions(extension.Linkify, emoji.Emoji),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	return &Renderer{tmpl: tmpl, md: md, base: base, opts: opts}, nil
}

// Template expone el set parseado para gin (SetHTMLTemplate).
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

// Page elige la plantilla y arma sus datos para el estado dado.
func (r *Renderer) Page(st view.State) (string, any) {
	switch st.Status() {
	case view.StatusLoading:
		return TemplateLoading, LoadingPage{Meta: Meta{Refresh: r.opts.RefreshSeconds}}
	case view.StatusErrored:
		return TemplateError, ErrorPage{Message: st.Err, RetryPath: r.opts.RetryPath}
	case view.StatusEmpty:
		return TemplateEmpty, EmptyPage{AdminURL: safeURL(r.base, r.opts.AdminURL)}
	default:
		return TemplatePortfolio, BuildPage(st.Data, r.markdown, r.base)
	}
}

// Render escribe el documento completo del estado en w.
func (r *Renderer) Render(w io.Writer, st view.State) error {
	name, data := r.Page(st)
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	return nil
}

func (r *Renderer) markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
