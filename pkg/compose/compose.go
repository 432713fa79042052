// Package compose wraps rendered SVG fragments in a standalone HTML document.
//
// The document is self-contained: styles are inlined and the fragment is
// embedded directly, so the output can be opened from disk or served as-is.
package compose

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/vizforge/vizforge/pkg/model"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>VizForge - {{.Title}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
  background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
  min-height: 100vh;
  padding: 20px;
}
.container {
  max-width: 1600px;
  margin: 0 auto;
  background: white;
  border-radius: 12px;
  box-shadow: 0 20px 40px rgba(0,0,0,0.1);
  overflow: hidden;
}
.header {
  background: linear-gradient(135deg, #2c3e50 0%, #34495e 100%);
  color: white;
  padding: 30px;
  text-align: center;
}
.header h1 { font-size: 2.5rem; margin-bottom: 10px; font-weight: 300; }
.header p { opacity: 0.9; font-size: 1.1rem; }
.visual-container {
  padding: 20px;
  background: white;
  display: flex;
  align-items: flex-start;
  justify-content: center;
  min-height: 600px;
  overflow: auto;
}
.visual-svg { display: block; max-width: 100%; height: auto; }
.node { cursor: pointer; transition: all 0.2s ease; }
.node:hover rect,
.node:hover ellipse,
.node:hover polygon { filter: brightness(1.1); stroke-width: 3; }
.connection { transition: all 0.2s ease; }
.connection:hover { stroke-width: 3; }
.bar:hover { opacity: 0.8; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>VizForge</h1>
    <p>Generated {{.Title}}</p>
  </div>
  <div class="visual-container">
{{.Fragment}}
  </div>
</div>
</body>
</html>
`))

type pageData struct {
	Title    string
	Fragment template.HTML
}

// Document wraps an SVG fragment for the given kind in a full HTML page.
// The fragment must be trusted renderer output; it is embedded verbatim.
func Document(kind model.Kind, fragment []byte) ([]byte, error) {
	if len(fragment) == 0 {
		return nil, fmt.Errorf("compose: empty fragment")
	}
	var buf bytes.Buffer
	data := pageData{
		Title:    titleFor(kind),
		Fragment: template.HTML(fragment),
	}
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	return buf.Bytes(), nil
}

func titleFor(kind model.Kind) string {
	s := string(kind)
	if s == "" {
		return "Visual"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
