package site

import (
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} | {{.SiteTitle}}</title>
</head>
<body>
<header><a href="{{.HomeURL}}">{{.SiteTitle}}</a> | <a href="{{.PagesURL}}">All pages</a></header>
<nav id="{{.ContainerID}}" class="breadcrumb"></nav>
<main>
{{.Content}}
</main>
</body>
</html>
`))

var listingTemplate = template.Must(template.New("listing").Parse(`<ul class="pages">
{{- range .}}
<li><a href="{{.URL}}">{{.Title}}</a></li>
{{- end}}
</ul>`))

type layoutData struct {
	Title       string
	SiteTitle   string
	HomeURL     string
	PagesURL    string
	ContainerID string
	Content     template.HTML
}

func renderLayout(w io.Writer, data layoutData) error {
	return pageTemplate.Execute(w, data)
}
