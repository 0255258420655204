package web

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #0b0f14; color: #c8f7c5; font-family: "JetBrains Mono", monospace; margin: 0; }
nav { display: flex; gap: 1.5rem; padding: 1rem 2rem; border-bottom: 1px solid #1f2a36; }
nav a { color: #00e5ff; text-decoration: none; }
nav .brand { color: #ff9e3d; font-weight: bold; margin-right: auto; }
section { padding: 1.5rem 2rem; border-bottom: 1px dashed #1f2a36; }
section h2.rule { color: #5c6b7a; font-size: 0.9rem; }
a { color: #00e5ff; }
</style>
</head>
<body>
<nav>
<span class="brand">RETRO://FOLIO</span>
{{range .Nav}}<a href="/#{{.ID}}">{{.Label}}</a>
{{end}}</nav>
{{range .Sections}}<section id="{{.ID}}">
<h2 class="rule">// {{.Label}} <small>{{.Filename}}</small></h2>
{{.HTML}}
</section>
{{end}}</body>
</html>
`))

type navItem struct {
	ID    string
	Label string
}

type pageSection struct {
	ID       string
	Label    string
	Filename string
	HTML     template.HTML
}

type pageData struct {
	Title    string
	Nav      []navItem
	Sections []pageSection
}
