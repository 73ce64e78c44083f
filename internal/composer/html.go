package composer

import (
	"bytes"
	"fmt"
	"html/template"
)

var printTemplate = template.Must(template.New("proposal").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"qty":   func(v float64) string { return fmt.Sprintf("%.0f", v) },
	"area":  func(v float64) string { return fmt.Sprintf("%g", v) },
}).Parse(printTemplateText))

// RenderHTML renders the layout as a self-contained printable HTML page
func RenderHTML(layout *Layout) (string, error) {
	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, layout); err != nil {
		return "", fmt.Errorf("rendering proposal html: %w", err)
	}
	return buf.String(), nil
}

const printTemplateText = `<!DOCTYPE html>
<html lang="uk">
<head>
<meta charset="utf-8">
<title>{{.Title}} - {{.ProjectName}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 12px; color: #1a1a1a; margin: 24px; }
h1 { font-size: 18px; text-align: center; margin: 12px 0 4px; }
h2 { font-size: 14px; margin: 16px 0 6px; }
.subtitle { text-align: center; color: #444; margin-bottom: 12px; }
.requisites { font-size: 10px; color: #333; border-bottom: 2px solid #2b6cb0; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin: 6px 0; }
th, td { border: 1px solid #bbb; padding: 4px 6px; text-align: left; }
th { background: #eef2f7; }
td.num, th.num { text-align: right; }
.totals td { border: none; text-align: right; padding: 2px 6px; }
.grand { font-size: 15px; font-weight: bold; text-align: right; background: #eef2f7; padding: 8px; margin: 10px 0; }
.footer { margin-top: 20px; border-top: 1px solid #bbb; padding-top: 8px; }
ul { margin: 4px 0 4px 18px; padding: 0; }
@media print { body { margin: 8mm; } }
</style>
</head>
<body>
<div class="requisites">
<strong>{{.Company.Name}}</strong> · {{.Company.Phones}}<br>
{{.Company.Address}}<br>
ЄДРПОУ {{.Company.EDRPOU}} · ІПН {{.Company.IPN}} · {{.Company.IBAN}}<br>
{{.Company.Bank}}
</div>

<h1>{{.Title}}</h1>
<div class="subtitle">{{.Subtitle}}{{if .TotalArea}} · {{area .TotalArea}} м²{{end}}{{if .Location}} · {{.Location}}{{end}}</div>

<table>
<tr><td><strong>Замовник:</strong> {{.Client}}</td><td><strong>Об'єкт:</strong> {{.ProjectName}}</td><td><strong>Дата:</strong> {{.Date}}</td></tr>
</table>

{{if .Description}}<p>{{.Description}}</p>{{end}}

<h2>Призначене для</h2>
<ul>{{range .Purposes}}<li>{{.}}</li>{{end}}</ul>

{{range .Rooms}}
<h2>{{.Name}} · {{area .Area}} м² · {{.TotalLayers}} шарів</h2>
<table>
<tr><th>Матеріал</th><th class="num">Шарів</th><th class="num">Витрата, кг/м²</th><th class="num">Кількість, кг</th><th class="num">Ціна за кг</th><th class="num">Сума</th></tr>
{{range .Rows}}<tr><td>{{.Name}}</td><td class="num">{{.Layers}}</td><td class="num">{{.Consumption}}</td><td class="num">{{qty .Quantity}}</td><td class="num">{{money .UnitPrice}}</td><td class="num">{{money .LineTotal}}</td></tr>
{{end}}</table>
<table class="totals">
<tr><td>Разом по приміщенню: {{money .Subtotal}} {{$.Currency}}</td></tr>
{{if .DiscountAmount}}<tr><td>Знижка {{.DiscountPercent}}%: -{{money .DiscountAmount}} {{$.Currency}}</td></tr>
<tr><td>До сплати: {{money .Final}} {{$.Currency}}</td></tr>{{end}}
</table>
{{end}}

<div class="grand">РАЗОМ: {{money .GrandTotal}} {{.Currency}}</div>

<table>
<tr><td><strong>Термін виконання:</strong> {{.ProductionTime}}</td><td><strong>Гарантія:</strong> {{.Warranty}}</td></tr>
</table>

{{if .Advantages}}<h2>Переваги покриття</h2>
<ul>{{range .Advantages}}<li>{{.}}</li>{{end}}</ul>{{end}}

{{if .TechnicalParams}}<h2>Технічні характеристики</h2>
<table>
{{range .TechnicalParams}}<tr><td>{{.Param}}</td><td>{{.Value}}</td></tr>
{{end}}</table>{{end}}

{{if .Photos}}<h2>Фото виконаних робіт</h2>
<table><tr>{{range .Photos}}<td><img src="{{.URL}}" alt="{{.Name}}" style="max-width:220px;max-height:160px"></td>{{end}}</tr></table>{{end}}

<div class="footer">
{{.Manager.Position}} {{.Manager.Name}} · {{.Manager.Phone}} · {{.Manager.Email}}
</div>
</body>
</html>
`
