package server

import (
	"html/template"
	"net/http"

	"github.com/greenzone-vis/greenzone/pkg/chart"
)

var pageTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 1.5rem; }
  .toolbar { display: flex; gap: 0.5rem; margin-bottom: 1rem; }
  .toolbar input { flex: 1; max-width: 24rem; padding: 0.4rem 0.6rem; font-size: 1rem; }
  .toolbar button { padding: 0.4rem 1rem; font-size: 1rem; cursor: pointer; }
  #chart { max-width: 100%; }
</style>
</head>
<body>
<div class="toolbar">
  <input id="search" list="regions" placeholder="{{.Placeholder}}"
         {{if .Query}}value="{{.Query}}"{{end}}>
  <button id="go">Search</button>
  <button id="reset">{{.ResetText}}</button>
</div>
<datalist id="regions">
{{range .Completions}}  <option value="{{.}}"></option>
{{end}}</datalist>
<img id="chart" src="/chart.svg" alt="{{.Title}}">
<script>
  const reload = () => { document.getElementById('chart').src = '/chart.svg?t=' + Date.now(); };
  const search = () => {
    const q = document.getElementById('search').value;
    fetch('/search', { method: 'POST', headers: {'Content-Type': 'application/x-www-form-urlencoded'},
      body: 'q=' + encodeURIComponent(q) }).then(reload);
  };
  document.getElementById('go').addEventListener('click', search);
  document.getElementById('search').addEventListener('keydown', e => { if (e.key === 'Enter') search(); });
  document.getElementById('reset').addEventListener('click', () => {
    document.getElementById('search').value = '';
    fetch('/reset', { method: 'POST' }).then(reload);
  });
</script>
</body>
</html>
`))

type pageData struct {
	Title       string
	Placeholder string
	ResetText   string
	Query       string
	Completions []string
}

func (s *Server) renderPage(w http.ResponseWriter, ch *chart.Chart) {
	cfg := ch.Config()
	data := pageData{
		Title:       cfg.Title,
		Placeholder: cfg.SearchbarPlaceholder,
		ResetText:   cfg.ResetButtonText,
		Query:       ch.LastSearched(),
		Completions: ch.Completions(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Error("rendering page", "err", err)
	}
}
