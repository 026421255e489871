package web

import "html/template"

var pages = template.Must(template.New("web").Parse(`
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Stock News Analyzer</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; }
.msg { padding: .4rem .6rem; margin: .3rem 0; border-radius: 4px; }
.info { background: #e8f0fe; }
.success { background: #e6f4ea; }
.warning { background: #fef7e0; }
.error { background: #fce8e6; }
.text { color: #555; }
pre { white-space: pre-wrap; background: #f6f6f6; padding: .6rem; }
</style>
</head>
<body>
<h1>Stock News Analyzer</h1>
<p>Summarizes recent financial news about a company: key positive and negative points, then one overall outlook.</p>
{{end}}

{{define "form"}}<form method="post" action="/analyze">
<label>Company name <input name="company" value="{{.Company}}" required></label>
<label>Ticker <input name="ticker" value="{{.Ticker}}"></label>
<button type="submit">Analyze news</button>
</form>
{{if .Error}}<div class="msg error">{{.Error}}</div>{{end}}
{{end}}

{{define "message"}}{{if eq .Level "heading"}}<h3>{{.Text}}</h3>
{{else if eq .Level "block"}}<h4>{{.Title}}</h4><pre>{{.Text}}</pre>
{{else}}<div class="msg {{.Level}}">{{.Text}}</div>
{{end}}{{end}}

{{define "foot"}}</body>
</html>
{{end}}
`))

type formData struct {
	Company string
	Ticker  string
	Error   string
}
