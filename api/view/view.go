package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/flash"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names
const (
	PageIndex   = "index"
	PageResult  = "result"
	PageGallery = "gallery"
)

// Page holds the fields shared by every view
type Page struct {
	Title  string
	Active string
	Notice *flash.Notice
}

// IndexPage is the generator form
type IndexPage struct {
	Page
	BoxSize    int
	Border     int
	MaxBoxSize int
	MaxBorder  int
}

// ResultPage shows a freshly generated code
type ResultPage struct {
	Page
	URL         string
	ImageURI    template.URL
	Filename    string
	DownloadURL string
}

// GalleryPage lists recent codes
type GalleryPage struct {
	Page
	Entries []generator.GalleryEntry
}

// NewIndexPage fills the form defaults
func NewIndexPage(notice *flash.Notice) IndexPage {
	return IndexPage{
		Page:       Page{Title: "Generate", Active: PageIndex, Notice: notice},
		BoxSize:    constant.DefaultBoxSize,
		Border:     constant.DefaultBorder,
		MaxBoxSize: constant.MaxBoxSize,
		MaxBorder:  constant.MaxBorder,
	}
}

// NewResultPage builds the result view for a generation
func NewResultPage(result *generator.Result, notice *flash.Notice) ResultPage {
	return ResultPage{
		Page:     Page{Title: "Result", Active: PageIndex, Notice: notice},
		URL:      result.TargetURL,
		ImageURI: template.URL("data:" + constant.ContentTypePNG + ";base64," + result.Base64()),
		Filename: result.Filename,
		// filenames are restricted to [A-Za-z0-9_.-] so no escaping is needed
		DownloadURL: fmt.Sprintf(constant.RouteDownloadFmt, result.Filename),
	}
}

// NewGalleryPage builds the gallery view
func NewGalleryPage(entries []generator.GalleryEntry, notice *flash.Notice) GalleryPage {
	return GalleryPage{
		Page:    Page{Title: "Gallery", Active: PageGallery, Notice: notice},
		Entries: entries,
	}
}

// Renderer executes the embedded page templates
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageIndex, PageResult, PageGallery} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes the page with the given status. Nothing is written on error.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}

	w.Header().Set(constant.HeaderContentType, constant.ContentTypeHTML)
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
