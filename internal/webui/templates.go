// =============================================================================
// Store Sales Analyzer - Viewer Templates
// =============================================================================
//
// Inline HTML templates for the upload form and the report page. The report
// page shows the store summary, the product matrix and, when present, the
// two time-slot matrices; otherwise it shows the advisory banner.
//
// =============================================================================

package webui

import (
	"html/template"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/analyzer"
)

// indexView is the data for the upload form.
type indexView struct {
	// Error is a banner message for a rejected upload; empty otherwise.
	Error string
}

// reportView is the data for the report page.
type reportView struct {
	ID       string
	Report   *analyzer.Report
	Advisory string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>店舗別売上・来客・販売個数 分析</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.error { color: #b00020; border: 1px solid #b00020; padding: 0.5em 1em; }
</style>
</head>
<body>
<h1>🥟 店舗別売上・来客・販売個数 分析</h1>
<p>販売CSVまたはExcelファイルをアップロードしてください</p>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form action="/analyze" method="post" enctype="multipart/form-data">
  <input type="file" name="file" accept=".csv,.xlsx" required>
  <button type="submit">分析する</button>
</form>
</body>
</html>
`))

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>分析結果</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #999; padding: 0.3em 0.8em; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.advisory { color: #8a6d00; border: 1px solid #8a6d00; padding: 0.5em 1em; }
</style>
</head>
<body>
<h1>分析結果</h1>
<p>
  <a href="/reports/{{.ID}}/download">📥 結果をExcelでダウンロード</a> |
  <a href="/api/reports/{{.ID}}">JSON</a> |
  <a href="/">新しいファイルを分析</a>
</p>

<h2>📊 店舗別売上・来客数・客単価</h2>
<table>
  <tr><th>店舗名</th><th>売上金額</th><th>来客数</th><th>客単価</th></tr>
  {{range .Report.Stores.Rows}}
  <tr><td>{{.Store}}</td><td>{{.Revenue}}</td><td>{{.Visits}}</td><td>{{.AvgTicket}}</td></tr>
  {{end}}
</table>

<h2>📦 店舗別・商品別の販売数／総販売個数</h2>
<table>
  <tr><th>{{.Report.Products.Index}}</th>{{range .Report.Products.Columns}}<th>{{.}}</th>{{end}}</tr>
  {{range $i, $store := .Report.Products.Stores}}
  <tr><td>{{$store}}</td>{{range index $.Report.Products.Cells $i}}<td>{{.}}</td>{{end}}</tr>
  {{end}}
</table>

{{if .Advisory}}
<p class="advisory">⚠️ {{.Advisory}}</p>
{{else}}
<h2>📍 店舗別・時間帯別 来客数（30分刻み）</h2>
<table>
  <tr><th>{{.Report.Buckets.Visits.Index}}</th>{{range .Report.Buckets.Visits.Columns}}<th>{{.}}</th>{{end}}</tr>
  {{range $i, $store := .Report.Buckets.Visits.Stores}}
  <tr><td>{{$store}}</td>{{range index $.Report.Buckets.Visits.Cells $i}}<td>{{.}}</td>{{end}}</tr>
  {{end}}
</table>

<h2>📍 店舗別・時間帯別 総販売個数（30分刻み）</h2>
<table>
  <tr><th>{{.Report.Buckets.Units.Index}}</th>{{range .Report.Buckets.Units.Columns}}<th>{{.}}</th>{{end}}</tr>
  {{range $i, $store := .Report.Buckets.Units.Stores}}
  <tr><td>{{$store}}</td>{{range index $.Report.Buckets.Units.Cells $i}}<td>{{.}}</td>{{end}}</tr>
  {{end}}
</table>
{{end}}
</body>
</html>
`))
