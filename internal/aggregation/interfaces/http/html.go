package http

import (
	"bytes"
	"html/template"
	"net/http"

	aggregation "commerce-views/internal/aggregation/domain"
)

const tablePage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
    <link href="https://stackpath.bootstrapcdn.com/bootstrap/4.5.2/css/bootstrap.min.css" rel="stylesheet">
    <title>{{.Title}}</title>
</head>
<body>
    <div class="container">
        <h1 class="mt-5">{{.Title}}</h1>
        <table class="table table-striped mt-3">
            <thead>
                <tr>
                    <th>Customer ID</th>
                    <th>Customer Name</th>
                    <th>Order ID</th>
                    <th>Product Name</th>
                    <th>Quantity</th>
{{- if .Monetary}}
                    <th>Product Price</th>
                    <th>Total</th>
{{- end}}
                </tr>
            </thead>
            <tbody>
{{- range .Summaries}}
{{- $customer := .}}
{{- range .Entries}}
                <tr>
                    <td>{{$customer.CustomerID}}</td>
                    <td>{{$customer.CustomerName}}</td>
                    <td>{{.OrderID}}</td>
                    <td>{{.ProductName}}</td>
                    <td>{{.Quantity}}</td>
{{- if $.Monetary}}
                    <td>${{.Price}}</td>
                    <td>${{.Total}}</td>
{{- end}}
                </tr>
{{- end}}
{{- if $.Monetary}}
                <tr>
                    <td colspan="6"><strong>Total for {{.CustomerName}}</strong></td>
                    <td><strong>${{.Total}}</strong></td>
                </tr>
{{- else}}
                <tr>
                    <td colspan="4"><strong>Total quantity for {{.CustomerName}}</strong></td>
                    <td><strong>{{.Total}}</strong></td>
                </tr>
{{- end}}
{{- end}}
{{- if .Monetary}}
                <tr>
                    <td colspan="6"><strong>Total</strong></td>
                    <td><strong>${{.GrandTotal}}</strong></td>
                </tr>
{{- else}}
                <tr>
                    <td colspan="4"><strong>Total quantity</strong></td>
                    <td><strong>{{.GrandTotal}}</strong></td>
                </tr>
{{- end}}
            </tbody>
        </table>
    </div>
</body>
</html>
`

var tableTemplate = template.Must(template.New("resource-table").Parse(tablePage))

type htmlEntry struct {
	OrderID     int64
	ProductName string
	Quantity    int64
	Price       string
	Total       string
}

type htmlSummary struct {
	CustomerID   int64
	CustomerName string
	Total        string
	Entries      []htmlEntry
}

type htmlView struct {
	Title      string
	Monetary   bool
	Summaries  []htmlSummary
	GrandTotal string
}

func (h *ResourceHandler) handleHTML(w http.ResponseWriter, r *http.Request) {
	result := h.service.Build(r.Context())
	view := h.htmlView(result)

	var buf bytes.Buffer
	if err := tableTemplate.Execute(&buf, view); err != nil {
		h.respondFault(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *ResourceHandler) htmlView(result *aggregation.Result) htmlView {
	monetary := h.service.Mode() == aggregation.ModeMonetary
	view := htmlView{
		Title:    h.display + " Service on " + h.hostname,
		Monetary: monetary,
	}
	for _, s := range result.Summaries() {
		block := htmlSummary{CustomerID: s.CustomerID, CustomerName: s.CustomerName}
		if monetary {
			block.Total = s.Total.StringFixed(2)
		} else {
			block.Total = s.Total.String()
		}
		for _, e := range s.Entries {
			entry := htmlEntry{OrderID: e.OrderID, ProductName: e.ProductName, Quantity: e.Quantity}
			if monetary {
				entry.Price = e.UnitPrice.StringFixed(2)
				entry.Total = e.LineTotal.StringFixed(2)
			}
			block.Entries = append(block.Entries, entry)
		}
		view.Summaries = append(view.Summaries, block)
	}
	if monetary {
		view.GrandTotal = result.GrandTotal().StringFixed(2)
	} else {
		view.GrandTotal = result.GrandTotal().String()
	}
	return view
}
