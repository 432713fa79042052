package server

import (
	"fmt"
	"strings"
)

// indexPage is the demo page served at /. It posts the textarea content to
// /api/render and swaps the returned SVG into the preview pane.
var indexPage = buildIndexPage()

func buildIndexPage() string {
	var kinds strings.Builder
	for _, k := range kindOptions {
		fmt.Fprintf(&kinds, `<option value=%q>%s</option>`, k, k)
	}

	return `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>VizForge</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
       background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
       min-height: 100vh; margin: 0; padding: 20px; }
.panel { max-width: 1200px; margin: 0 auto; background: white;
         border-radius: 12px; padding: 24px;
         box-shadow: 0 20px 40px rgba(0,0,0,0.1); }
textarea { width: 100%; height: 140px; font-family: monospace; font-size: 14px; }
select, button { font-size: 14px; padding: 6px 14px; margin-top: 8px; }
#preview { margin-top: 20px; overflow: auto; }
</style>
</head>
<body>
<div class="panel">
<h1>VizForge</h1>
<p>Describe a flowchart, relation diagram, or chart in plain text.</p>
<textarea id="text">Start
Validate input
Is valid?
Yes: Save record
No: Show error
End</textarea>
<div>
<select id="kind">` + kinds.String() + `</select>
<button onclick="render()">Render</button>
</div>
<div id="preview"></div>
</div>
<script>
async function render() {
  const text = document.getElementById('text').value;
  const kind = document.getElementById('kind').value;
  const params = new URLSearchParams({text, kind, format: 'svg'});
  const res = await fetch('/api/render?' + params);
  const body = await res.text();
  document.getElementById('preview').innerHTML =
    res.ok ? body : '<pre>' + body + '</pre>';
}
</script>
</body>
</html>
`
}
