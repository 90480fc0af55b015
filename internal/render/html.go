package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/muurk/edtable/internal/table"
)

// Layout metrics used to estimate the frame height in pixels. They mirror
// the stylesheet in the page template.
const (
	SaveBarHeight   = 40 // button plus its bottom margin
	RowChrome       = 17 // 8px padding top and bottom plus the collapsed border
	LineHeight      = 24 // matches the textarea min-height
	framePadding    = 8
	defaultPageName = "Editable table"
)

var templates = template.Must(template.New("edtable").Parse(`
{{- define "cell" -}}
<td class="edt-cell{{if .Last}} edt-last{{end}}">
{{- if .Editable -}}
<textarea rows="1" data-row="{{.Coord.Row}}" data-col="{{.Coord.Col}}">
{{.Value}}</textarea>
{{- else -}}
<p>{{.Value}}</p>
{{- end -}}
</td>
{{- end -}}

{{- define "row" -}}
<tr data-row="{{.Index}}">{{range .Cells}}{{template "cell" .}}{{end}}</tr>
{{- end -}}

{{- define "table" -}}
<button id="edt-save" type="button"{{if .View.Disabled}} disabled{{end}}{{if .View.Dirty}} data-dirty="true"{{end}}>Save Changes</button>
<table class="edt-table"><tbody>{{range .View.Rows}}{{template "row" .}}{{end}}</tbody></table>
{{- end -}}

{{- define "page" -}}
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
:root {
  --edt-text: {{.Colors.Text}};
  --edt-background: {{.Colors.Background}};
  --edt-border: {{.Colors.SecondaryBackground}};
  --edt-primary: {{.Colors.Primary}};
}
body { margin: 0; background: var(--edt-background); color: var(--edt-text); font-family: sans-serif; }
#edt-root { overflow: auto; height: 100%; }
#edt-save { margin-bottom: 10px; padding: 5px 10px; background: var(--edt-primary); color: white; border: none; border-radius: 4px; cursor: pointer; }
#edt-save:disabled { cursor: not-allowed; opacity: 0.6; }
.edt-table { border-collapse: collapse; width: 100%; }
.edt-cell { padding: 8px; border: 1px solid var(--edt-border); width: 10em; vertical-align: top; }
.edt-cell.edt-last { width: auto; }
.edt-cell p { margin: 0; white-space: pre-wrap; }
.edt-cell textarea { width: 100%; border: none; background: transparent; color: var(--edt-text); resize: none; min-height: 24px; min-width: 100px; overflow: hidden; font-family: inherit; padding: 0; margin: 0; }
</style>
</head>
<body>
<div id="edt-root">{{template "table" .}}</div>
<script>
(function () {
  var root = document.getElementById("edt-root");
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws");

  function grow(el) {
    el.style.height = "0";
    el.style.height = el.scrollHeight + "px";
  }
  function growAll() {
    root.querySelectorAll("textarea").forEach(grow);
  }
  function send(msg) {
    if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }

  root.addEventListener("input", function (e) {
    var el = e.target;
    if (el.tagName !== "TEXTAREA") return;
    send({type: "edit", row: +el.dataset.row, col: +el.dataset.col, value: el.value});
    grow(el);
  });
  root.addEventListener("focusin", function (e) {
    if (e.target.tagName === "TEXTAREA") grow(e.target);
  });
  root.addEventListener("click", function (e) {
    if (e.target.id === "edt-save" && !e.target.disabled) send({type: "save"});
  });

  ws.onmessage = function (e) {
    var msg = JSON.parse(e.data);
    if (msg.type === "render") {
      root.innerHTML = msg.html;
      growAll();
    } else if (msg.type === "frameHeight") {
      window.parent.postMessage({type: "edtable:setFrameHeight", height: msg.height}, "*");
    } else if (msg.type === "value") {
      window.parent.postMessage({type: "edtable:setComponentValue", value: msg.value}, "*");
    }
  };
  growAll();
})();
</script>
</body>
</html>
{{- end -}}
`))

type tableData struct {
	View  table.View
	Theme Theme
}

// PageData is the input of Page.
type PageData struct {
	Title string
	View  table.View
	Theme Theme
}

// Cell writes one cell: a pre-wrapped paragraph when read-only, an
// auto-growing textarea when editable.
func Cell(w io.Writer, c table.Cell) error {
	if err := templates.ExecuteTemplate(w, "cell", c); err != nil {
		return fmt.Errorf("failed to render cell %s: %w", c.Coord, err)
	}
	return nil
}

// Row writes one table row.
func Row(w io.Writer, r table.Row) error {
	if err := templates.ExecuteTemplate(w, "row", r); err != nil {
		return fmt.Errorf("failed to render row %d: %w", r.Index, err)
	}
	return nil
}

// Table writes the save control and the table body.
func Table(w io.Writer, v table.View, theme Theme) error {
	data := tableData{View: v, Theme: theme.WithDefaults()}
	if err := templates.ExecuteTemplate(w, "table", data); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// TableHTML renders Table to a string.
func TableHTML(v table.View, theme Theme) (string, error) {
	var buf bytes.Buffer
	if err := Table(&buf, v, theme); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Page writes a complete HTML document that connects back to the server's
// websocket endpoint.
func Page(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = defaultPageName
	}
	page := struct {
		PageData
		Colors colors
	}{data, data.Theme.css()}
	if err := templates.ExecuteTemplate(w, "page", page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// FrameHeight estimates the rendered height of v in pixels. It is a
// table.MeasureFunc.
func FrameHeight(v table.View) int {
	height := SaveBarHeight + framePadding
	for _, row := range v.Rows {
		lines := 1
		for _, c := range row.Cells {
			if n := strings.Count(c.Value, "\n") + 1; n > lines {
				lines = n
			}
		}
		height += RowChrome + lines*LineHeight
	}
	return height
}
