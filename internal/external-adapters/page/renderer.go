// Package page renders the static download page of a release.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

// Signature links one detached signature to its signer's public label
type Signature struct {
	Label string
	URL   string
}

// Download is one artifact row of the page
type Download struct {
	Title      string
	Filename   string
	URL        string
	Signatures []Signature
}

// Data is everything the page template needs
type Data struct {
	Version   string
	Downloads []Download
	Signers   []string // public labels, in signer-list order
}

const downloadTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Electrum {{.Version}} downloads</title>
</head>
<body>
<h1>Electrum {{.Version}}</h1>
<table>
{{- range .Downloads}}
<tr>
<td>{{.Title}}</td>
<td><a href="{{.URL}}">{{.Filename}}</a></td>
<td>{{range $i, $s := .Signatures}}{{if $i}} {{end}}<a href="{{$s.URL}}">{{$s.Label}}</a>{{end}}</td>
</tr>
{{- end}}
</table>
<p>Signed by: {{range $i, $s := .Signers}}{{if $i}}, {{end}}{{$s}}{{end}}</p>
</body>
</html>
`

// Renderer renders download pages from an html/template
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer using the built-in template
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("download").Parse(downloadTemplate)),
	}
}

// NewRendererFromFile creates a renderer from a custom template file
func NewRendererFromFile(path string) (*Renderer, error) {
	tmpl, err := template.New(filepath.Base(path)).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page for data to w
func (r *Renderer) Render(w io.Writer, data *Data) error {
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render download page: %w", err)
	}
	return nil
}

// RenderFile renders into memory first so a template error never leaves a truncated page
func (r *Renderer) RenderFile(path string, data *Data) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, data); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil { //nolint:gosec // G306: the page is public
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
