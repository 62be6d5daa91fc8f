package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jwulff/medscribe/internal/transcript"
)

var printTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
      body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; line-height: 1.6; }
      h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
      h2 { color: #34495e; margin-top: 20px; }
      .section { background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin-bottom: 15px; }
      .section p { white-space: pre-wrap; }
      .empty { color: #7f8c8d; font-style: italic; }
    </style>
  </head>
  <body>
    <h1>{{.Title}}</h1>
{{range .Sections}}
    <div class="section" id="{{.Key}}">
      <h2>{{.Heading}}</h2>
      <p{{if .Empty}} class="empty"{{end}}>{{.Text}}</p>
    </div>
{{end}}
    <script>window.onload = function () { window.print(); };</script>
  </body>
</html>
`))

type htmlSection struct {
	Key     string
	Heading string
	Text    string
	Empty   bool
}

// HTML renders a self-contained printable document that opens the print
// dialog when loaded. Section text is escaped.
func HTML(doc Document) ([]byte, error) {
	data := struct {
		Title    string
		Sections []htmlSection
	}{Title: Title}

	for _, sec := range transcript.All() {
		data.Sections = append(data.Sections, htmlSection{
			Key:     sec.Key(),
			Heading: sec.Heading(),
			Text:    SectionText(doc, sec),
			Empty:   strings.TrimSpace(doc.Get(sec)) == "",
		})
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render printable report: %w", err)
	}
	return buf.Bytes(), nil
}
