// Package ui embeds the server-rendered pages.
package ui

import (
	"embed"
	"html/template"
)

const ConsultPage = "consult.html"

//go:embed templates/*.html
var Files embed.FS

func Templates() (*template.Template, error) {
	return template.ParseFS(Files, "templates/*.html")
}
