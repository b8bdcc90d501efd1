// Package templates embeds the server-rendered HTML pages.
//
// Every file defines its template under its path relative to this directory,
// e.g. "movies/detail.html", so handlers refer to pages by path.
package templates

import (
	"embed"
	"html/template"
)

//go:embed base/*.html movies/*.html users/*.html error.html
var files embed.FS

// Parse loads all pages with funcs available to them.
func Parse(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files,
		"base/*.html",
		"movies/*.html",
		"users/*.html",
		"error.html",
	)
}
