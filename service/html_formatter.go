package service

import (
	"html/template"
	"io"

	"github.com/ludo-technologies/jsplit/domain"
)

// htmlData is the view model of the HTML report
type htmlData struct {
	*domain.AnalyzeResponse
	Title     string
	ShowLimit int
}

var htmlFuncs = template.FuncMap{
	"pct": func(part, total int) int {
		if total <= 0 {
			return 0
		}
		return part * 100 / total
	},
}

var htmlReport = template.Must(template.New("report").Funcs(htmlFuncs).Parse(htmlTemplate))

// writeHTML renders the response as a standalone HTML page
func (f *OutputFormatterImpl) writeHTML(response *domain.AnalyzeResponse, w io.Writer) error {
	return htmlReport.Execute(w, htmlData{
		AnalyzeResponse: response,
		Title:           "jsplit Complexity Report",
		ShowLimit:       50,
	})
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #eef1f7;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .panel {
            background: white;
            border-radius: 10px;
            padding: 24px;
            margin-bottom: 20px;
            box-shadow: 0 6px 20px rgba(0,0,0,0.08);
        }
        h1 { color: #3f51b5; margin-bottom: 6px; }
        .subtitle { color: #666; font-size: 14px; }
        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 16px;
            margin-top: 16px;
        }
        .metric-card { background: #f8f9fa; padding: 16px; border-radius: 8px; text-align: center; }
        .metric-value { font-size: 28px; font-weight: bold; color: #3f51b5; }
        .metric-label { color: #666; }
        .risk-bar { display: flex; height: 14px; border-radius: 7px; overflow: hidden; margin-top: 16px; }
        .score-good { background: #4caf50; }
        .score-fair { background: #ff9800; }
        .score-poor { background: #f44336; }
        .table { width: 100%; border-collapse: collapse; margin-top: 12px; }
        .table th, .table td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; vertical-align: top; }
        .table th { background: #f8f9fa; }
        .risk-low { color: #4caf50; }
        .risk-medium { color: #ff9800; }
        .risk-high { color: #f44336; font-weight: bold; }
        .extraction { margin-top: 6px; font-size: 13px; }
        .extraction code { background: #f3f3f3; padding: 1px 4px; border-radius: 3px; }
        .issue { color: #c62828; }
        .tip { color: #555; font-style: italic; font-size: 13px; }
        .messages li { margin-left: 20px; }
    </style>
</head>
<body>
<div class="container">
    <div class="panel">
        <h1>{{.Title}}</h1>
        <p class="subtitle">Generated: {{.GeneratedAt}} | Version: {{.Version}}</p>
        <div class="metric-grid">
            <div class="metric-card">
                <div class="metric-value">{{.Summary.FilesAnalyzed}}</div>
                <div class="metric-label">Files Analyzed</div>
            </div>
            <div class="metric-card">
                <div class="metric-value">{{.Summary.TotalFunctions}}</div>
                <div class="metric-label">Functions</div>
            </div>
            <div class="metric-card">
                <div class="metric-value">{{printf "%.2f" .Summary.AverageCognitive}}</div>
                <div class="metric-label">Avg Cognitive</div>
            </div>
            <div class="metric-card">
                <div class="metric-value">{{.Summary.MaxCognitive}}</div>
                <div class="metric-label">Max Cognitive</div>
            </div>
            <div class="metric-card">
                <div class="metric-value">{{.Summary.ExtractionCandidates}}</div>
                <div class="metric-label">Extraction Candidates</div>
            </div>
        </div>
        {{if gt .Summary.TotalFunctions 0}}
        <div class="risk-bar">
            <div class="score-good" style="width: {{pct .Summary.LowRiskFunctions .Summary.TotalFunctions}}%"></div>
            <div class="score-fair" style="width: {{pct .Summary.MediumRiskFunctions .Summary.TotalFunctions}}%"></div>
            <div class="score-poor" style="width: {{pct .Summary.HighRiskFunctions .Summary.TotalFunctions}}%"></div>
        </div>
        <p class="subtitle">High: {{.Summary.HighRiskFunctions}} | Medium: {{.Summary.MediumRiskFunctions}} | Low: {{.Summary.LowRiskFunctions}}</p>
        {{end}}
    </div>

    {{if .Functions}}
    <div class="panel">
        <h2>Functions</h2>
        <table class="table">
            <thead>
                <tr><th>Function</th><th>Location</th><th>Cognitive</th><th>Cyclomatic</th><th>Nesting</th><th>Risk</th></tr>
            </thead>
            <tbody>
            {{range $i, $f := .Functions}}{{if lt $i $.ShowLimit}}
                <tr>
                    <td>
                        {{$f.Name}}
                        {{range $f.Extractions}}
                        <div class="extraction">
                            Extract lines {{.StartLine}}-{{.EndLine}} ({{.ComplexityPercentage}}%, {{.Confidence}})
                            {{if .SuggestedSignature}}<br><code>{{.SuggestedSignature}}</code>{{end}}
                            {{range .Issues}}<br><span class="issue">line {{.Line}}: {{.Message}}</span>{{end}}
                        </div>
                        {{end}}
                        {{range $f.Tips}}<div class="tip">{{.}}</div>{{end}}
                    </td>
                    <td>{{$f.FilePath}}:{{$f.StartLine}}-{{$f.EndLine}}</td>
                    <td class="risk-{{$f.RiskLevel}}">{{$f.Cognitive}}</td>
                    <td>{{$f.Cyclomatic}}</td>
                    <td>{{$f.MaxNesting}}</td>
                    <td><span class="risk-{{$f.RiskLevel}}">{{$f.RiskLevel}}</span></td>
                </tr>
            {{end}}{{end}}
            </tbody>
        </table>
        {{if gt (len .Functions) .ShowLimit}}
        <p class="subtitle">Showing top {{.ShowLimit}} of {{len .Functions}} functions</p>
        {{end}}
    </div>
    {{end}}

    {{if or .Warnings .Errors}}
    <div class="panel">
        {{if .Warnings}}<h3>Warnings</h3><ul class="messages">{{range .Warnings}}<li>{{.}}</li>{{end}}</ul>{{end}}
        {{if .Errors}}<h3>Errors</h3><ul class="messages">{{range .Errors}}<li class="issue">{{.}}</li>{{end}}</ul>{{end}}
    </div>
    {{end}}
</div>
</body>
</html>`
