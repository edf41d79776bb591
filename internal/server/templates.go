package server

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>QuizifyAI</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
fieldset { margin-bottom: 1rem; }
textarea { width: 100%; height: 24rem; }
.error { color: #b00020; }
.warning { color: #8a6d00; }
</style>
</head>
<body>
<h1>QuizifyAI</h1>
<p>Generate MCQs, QnA, Flashcards, or a Summary from your PDF</p>
<form method="post" action="/generate" enctype="multipart/form-data">
<fieldset>
<label>PDF file <input type="file" name="file" accept="application/pdf,.pdf" required></label>
</fieldset>
<fieldset>
<legend>Mode</legend>
{{range .Modes}}<label><input type="radio" name="mode" value="{{.}}"{{if eq . $.Mode}} checked{{end}}> {{.}}</label>
{{end}}</fieldset>
<fieldset>
<label>Difficulty
<select name="difficulty">
{{range .Difficulties}}<option value="{{.}}"{{if eq . $.Difficulty}} selected{{end}}>{{.}}</option>
{{end}}</select></label>
<label>Number of questions <input type="number" name="count" min="{{.MinCount}}" max="{{.MaxCount}}" step="1" value="{{.Count}}"></label>
<small>Ignored for Summary.</small>
</fieldset>
<button type="submit">Generate</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Result}}
<h2>Result</h2>
{{range .Result.Warnings}}<p class="warning">{{.}}</p>
{{end}}<div class="rendered">{{.Rendered}}</div>
<textarea readonly>{{.Result.Final}}</textarea>
{{end}}
</body>
</html>
`))
