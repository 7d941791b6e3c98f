package web

import "html/template"

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"pct": func(v float64) float64 { return v * 100 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Stock Data Analyzer</title>
<style>
body { font-family: sans-serif; margin: 16px; max-width: 1400px; }
form { display: grid; grid-template-columns: 220px 200px; gap: 6px 10px; align-items: center; }
.status { margin: 12px 0; font-weight: bold; }
.status.failed { color: #b00020; }
.charts { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; }
.charts img { width: 100%; }
table { border-collapse: collapse; margin-top: 16px; font-size: 12px; }
td, th { border: 1px solid #ccc; padding: 2px 6px; }
</style>
</head>
<body>
<h1>Stock Data Analyzer</h1>
<form method="post" action="/analyze">
  <label for="ticker">Ticker:</label>
  <input id="ticker" name="ticker" list="tickers" value="{{.Ticker}}">
  <datalist id="tickers">{{range .Tickers}}<option value="{{.}}">{{end}}</datalist>
  <label for="start_date">Start Date (YYYY-MM-DD):</label>
  <input id="start_date" name="start_date" value="{{.StartDate}}">
  <label for="end_date">End Date (YYYY-MM-DD):</label>
  <input id="end_date" name="end_date" value="{{.EndDate}}">
  <span></span>
  <button type="submit">Analyze</button>
</form>
<div class="status{{if .Failed}} failed{{end}}" id="status">{{.Status}}</div>
{{if .PriceImg}}
<p>{{.Rows}} rows from {{.Source}}{{with .Range}} · 52-week range {{printf "%.2f" .Low}} – {{printf "%.2f" .High}} (at {{printf "%.0f" (pct .Position)}}%){{end}}</p>
<div class="charts">
  <img alt="price chart" src="{{.PriceImg}}">
  <img alt="seasonal decomposition" src="{{.SeasonImg}}">
</div>
{{end}}
{{if .Runs}}
<table>
<tr><th>When</th><th>Ticker</th><th>Range</th><th>Rows</th><th>Source</th><th>Status</th><th>Error</th></tr>
{{range .Runs}}<tr><td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td><td>{{.Ticker}}</td><td>{{.StartDate}} → {{.EndDate}}</td><td>{{.Rows}}</td><td>{{.Source}}</td><td>{{.Status}}</td><td>{{.Error}}</td></tr>
{{end}}</table>
{{end}}
</body>
</html>
`))
