package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed templates
var templatesFS embed.FS

// Context is the data passed to a page template.
type Context map[string]any

type Renderer struct {
	pages map[string]*template.Template
}

// DefaultFuncs are available in every template. imageURL is expected to be
// overridden by the caller with the storage URL builder.
func DefaultFuncs() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format("02.01.2006 15:04")
		},
		"year": func() int {
			return time.Now().Year()
		},
		"imageURL": func(objectName string) string {
			return objectName
		},
	}
}

// New parses the layout and includes together with every page under
// templates/pages. Page names are file names without extension.
func New(funcs template.FuncMap) (*Renderer, error) {
	merged := DefaultFuncs()
	for name, fn := range funcs {
		merged[name] = fn
	}

	pageFiles, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		t, err := template.New(path.Base(page)).
			Funcs(merged).
			ParseFS(templatesFS, "templates/layout.html", "templates/includes/*.html", page)
		if err != nil {
			return nil, fmt.Errorf("ошибка разбора шаблона %s: %w", page, err)
		}

		name := strings.TrimSuffix(path.Base(page), ".html")
		pages[name] = t
	}

	return &Renderer{pages: pages}, nil
}

// Execute renders the page into w.
func (r *Renderer) Execute(w *bytes.Buffer, name string, data Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("шаблон %s не найден", name)
	}

	return t.ExecuteTemplate(w, "layout", data)
}

// HTML renders the page with status. The page is buffered so that a failed
// render produces a clean 500 instead of a half-written body.
func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, data Context) {
	var buf bytes.Buffer
	if err := r.Execute(&buf, name, data); err != nil {
		log.Printf("Ошибка рендеринга %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}
