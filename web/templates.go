// Package web holds the embedded HTML templates and their helper funcs.
package web

import (
	"embed"
	"html/template"

	"metadologie.com/portal/pkg/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// AppCSS is the portal stylesheet, served from memory.
//
//go:embed static/app.css
var AppCSS []byte

// Templates parses the embedded page templates. Embedding keeps the binary
// self-contained and lets tests render pages without caring about the
// working directory.
func Templates() *template.Template {
	t := template.New("").Funcs(template.FuncMap{
		"display": view.Display,
	})
	return template.Must(t.ParseFS(templateFS, "templates/*.html"))
}
