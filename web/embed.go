// Package web embeds the HTML templates and static assets so the server ships
// as a single binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html static/*
var files embed.FS

// Templates holds the HTML templates, rooted at the templates directory.
var Templates = mustSub("templates")

// Static holds the CSS and JS served under /static.
var Static = mustSub("static")

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
