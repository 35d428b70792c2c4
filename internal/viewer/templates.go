package viewer

import (
	"bytes"
	"html/template"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
)

type templates struct {
	index *template.Template
}

// cssColors maps palette entries to page colors.
var cssColors = map[core.Color]string{
	core.ColorDefault:       "#888",
	core.ColorRed:           "#c0392b",
	core.ColorGreen:         "#27ae60",
	core.ColorYellow:        "#d4ac0d",
	core.ColorBlue:          "#2e6fd8",
	core.ColorMagenta:       "#a83279",
	core.ColorCyan:          "#17a2b8",
	core.ColorWhite:         "#ddd",
	core.ColorBrightRed:     "#ff5c5c",
	core.ColorBrightGreen:   "#5cff7a",
	core.ColorBrightYellow:  "#fff35c",
	core.ColorBrightBlue:    "#5c9dff",
	core.ColorBrightMagenta: "#ff5cf0",
	core.ColorBrightCyan:    "#5cf6ff",
	core.ColorBrightWhite:   "#fff",
	core.ColorOrange:        "#ff9f1a",
	core.ColorGray:          "#777",
}

type indexView struct {
	Size    int
	PollMS  int64
	Palette []string
	Cells   []int
}

func loadTemplates() *templates {
	return &templates{index: template.Must(template.New("index").Parse(indexHTML))}
}

func (t *templates) renderIndex(opts Options) []byte {
	palette := []string{"transparent"}
	for _, c := range opts.Colors {
		css, ok := cssColors[c]
		if !ok {
			css = cssColors[core.ColorDefault]
		}
		palette = append(palette, css)
	}
	view := indexView{
		Size:    lines.Size,
		PollMS:  opts.PollInterval.Milliseconds(),
		Palette: palette,
		Cells:   make([]int, lines.Size*lines.Size),
	}
	var buf bytes.Buffer
	if err := t.index.Execute(&buf, view); err != nil {
		return []byte("template error")
	}
	return buf.Bytes()
}

const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Lines</title>
  <style>
    body { background: #1b1b1b; color: #ccc; font-family: monospace; }
    #board { display: grid; grid-template-columns: repeat({{.Size}}, 40px); gap: 2px; width: max-content; margin: 2em auto; }
    .cell { width: 40px; height: 40px; background: #2a2a2a; display: flex; align-items: center; justify-content: center; }
    .ball { width: 28px; height: 28px; border-radius: 50%; }
    #status { text-align: center; }
  </style>
</head>
<body>
  <div id="board">{{range .Cells}}<div class="cell"><div class="ball"></div></div>{{end}}</div>
  <p id="status">waiting for a board</p>
  <script>
    const size = {{.Size}};
    const palette = {{.Palette}};
    const cells = document.querySelectorAll("#board .ball");
    async function poll() {
      try {
        const res = await fetch("/load-map", {cache: "no-store"});
        if (!res.ok) {
          document.getElementById("status").textContent = "no board published";
          return;
        }
        const cols = await res.json();
        for (let y = 0; y < size; y++) {
          for (let x = 0; x < size; x++) {
            const v = cols[x][y];
            cells[y * size + x].style.background = palette[v] || "transparent";
          }
        }
        document.getElementById("status").textContent = "live";
      } catch (e) {
        document.getElementById("status").textContent = "viewer offline";
      }
    }
    poll();
    setInterval(poll, {{.PollMS}});
  </script>
</body>
</html>
`
