package render

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"stockdesk/model"
)

const tableColumns = 7

// PageData is everything the product page needs.
type PageData struct {
	Categories []string
	// CategoryCounts, when set, labels each category option with its product count.
	CategoryCounts map[string]int
	Category       string
	Search         string
	SortBy         string
	SortOrder      string
	Records        []model.DisplayRecord
	RefreshedAt    string
}

// ProductTableHTML renders the product table. Records is the current selection;
// an empty category shows the "select a category" row instead.
func ProductTableHTML(category string, records []model.DisplayRecord) string {
	var sb strings.Builder

	sb.WriteString(`<thead><tr>`)
	sb.WriteString(`<th class="col-name">Product Name</th>`)
	sb.WriteString(`<th class="col-category">Category</th>`)
	sb.WriteString(`<th class="col-quantity">Stock Quantity</th>`)
	sb.WriteString(`<th class="col-size">Stock Size</th>`)
	sb.WriteString(`<th class="col-roll">Roll Number</th>`)
	sb.WriteString(`<th class="col-updated">Last Updated</th>`)
	sb.WriteString(`<th class="col-status">Status</th>`)
	sb.WriteString(`</tr></thead>`)

	sb.WriteString(`<tbody id="products-tbody">`)
	switch {
	case category == "":
		sb.WriteString(fmt.Sprintf(`<tr><td colspan="%d" class="center muted">Please select a category to view products</td></tr>`, tableColumns))
	case len(records) == 0:
		sb.WriteString(fmt.Sprintf(`<tr><td colspan="%d" class="center muted">No products found</td></tr>`, tableColumns))
	default:
		for _, rec := range records {
			sb.WriteString(`<tr>`)
			sb.WriteString(fmt.Sprintf(`<td class="col-name">%s <button class="info-btn" data-id="%s" title="More Info"><i>i</i></button></td>`,
				esc(rec.DisplayName), esc(rec.ID)))
			sb.WriteString(fmt.Sprintf(`<td class="col-category">%s</td>`, esc(rec.Category)))
			sb.WriteString(fmt.Sprintf(`<td class="right col-quantity">%s <span class="unit">[%s]</span></td>`, esc(rec.Quantity), esc(rec.QuantityUnit)))
			sb.WriteString(fmt.Sprintf(`<td class="right col-size">%s`, esc(rec.Size)))
			if rec.SizeUnit != "" {
				sb.WriteString(fmt.Sprintf(` <span class="unit">[%s]</span>`, esc(rec.SizeUnit)))
			}
			sb.WriteString(`</td>`)
			sb.WriteString(fmt.Sprintf(`<td class="center col-roll">%s</td>`, esc(rec.RollNumber)))
			sb.WriteString(fmt.Sprintf(`<td class="center col-updated">%s</td>`, esc(rec.LastUpdated)))
			sb.WriteString(fmt.Sprintf(`<td class="center col-status"><span class="status %s">%s</span></td>`, esc(rec.StatusClass), esc(rec.StockStatus)))
			sb.WriteString(`</tr>`)
		}
	}
	sb.WriteString(`</tbody>`)

	return sb.String()
}

// ProductDetailHTML renders the product information modal body.
func ProductDetailHTML(d model.ProductDetail) string {
	var sb strings.Builder

	sb.WriteString(`<div class="product-info-modal"><div class="modal-content">`)
	sb.WriteString(fmt.Sprintf(`<div class="modal-header"><h3>%s</h3><button class="close-btn">&times;</button></div>`, esc(d.Record.Name)))
	sb.WriteString(`<div class="modal-body">`)

	writeSection(&sb, "Basic Information", []model.Detail{
		{Label: "Product Name", Value: d.Record.Name},
		{Label: "Category", Value: d.Record.Category},
		{Label: "Stock Level", Value: d.Record.Quantity + " " + d.Record.QuantityUnit},
		{Label: "Last Updated", Value: d.Record.LastUpdated},
	})
	if len(d.Dimensions) > 0 {
		writeSection(&sb, "Dimensions", d.Dimensions)
	}
	writeSection(&sb, "Stock Information", d.Stocking)

	sb.WriteString(`</div></div></div>`)
	return sb.String()
}

func writeSection(sb *strings.Builder, title string, rows []model.Detail) {
	sb.WriteString(fmt.Sprintf(`<div class="info-section"><h4>%s</h4>`, esc(title)))
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf(`<p><strong>%s:</strong> %s</p>`, esc(row.Label), esc(row.Value)))
	}
	sb.WriteString(`</div>`)
}

// ProductPageHTML renders the whole product page with the table pre-filled.
func ProductPageHTML(data PageData) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	sb.WriteString(`<title>Products</title></head><body>`)
	sb.WriteString(`<header><h1>Products</h1>`)
	if data.RefreshedAt != "" {
		sb.WriteString(fmt.Sprintf(`<p class="muted">Last refreshed %s</p>`, esc(data.RefreshedAt)))
	}
	sb.WriteString(`</header>`)

	sb.WriteString(`<form id="product-filter" method="get" action="/">`)
	sb.WriteString(`<select id="category-filter" name="category"><option value="">Select Category</option>`)
	for _, c := range data.Categories {
		selected := ""
		if c == data.Category {
			selected = ` selected`
		}
		label := c
		if n, ok := data.CategoryCounts[c]; ok {
			label = fmt.Sprintf("%s (%d)", c, n)
		}
		sb.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`, esc(c), selected, esc(label)))
	}
	sb.WriteString(`</select>`)
	sb.WriteString(fmt.Sprintf(`<input id="search" name="search" type="search" placeholder="Search products" value="%s">`, esc(data.Search)))
	sb.WriteString(fmt.Sprintf(`<input type="hidden" name="sortBy" value="%s">`, esc(data.SortBy)))
	sb.WriteString(fmt.Sprintf(`<input type="hidden" name="sortOrder" value="%s">`, esc(data.SortOrder)))
	sb.WriteString(`<button type="submit">Filter</button>`)
	sb.WriteString(`</form>`)

	sb.WriteString(`<p class="actions">`)
	filtered := url.Values{}
	filtered.Set("scope", "filtered")
	filtered.Set("format", "csv")
	filtered.Set("category", data.Category)
	filtered.Set("search", data.Search)
	if data.SortBy != "" {
		filtered.Set("sortBy", data.SortBy)
	}
	if data.SortOrder != "" {
		filtered.Set("sortOrder", data.SortOrder)
	}
	sb.WriteString(fmt.Sprintf(`<a href="/api/products/export?%s">Export filtered (CSV)</a> `, esc(filtered.Encode())))
	sb.WriteString(`<a href="/api/products/export?scope=all&amp;format=csv">Export all (CSV)</a> `)
	sb.WriteString(`<a href="/api/products/export?scope=all&amp;format=xlsx">Export all (XLSX)</a>`)
	sb.WriteString(`</p>`)

	sb.WriteString(`<table id="products-table">`)
	sb.WriteString(ProductTableHTML(data.Category, data.Records))
	sb.WriteString(`</table>`)
	sb.WriteString(`<div id="product-info"></div>`)
	sb.WriteString(`</body></html>`)
	return sb.String()
}

func esc(s string) string {
	return html.EscapeString(s)
}
