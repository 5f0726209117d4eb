package model

// Stock status labels.
const (
	StatusOutOfStock = "Out of Stock"
	StatusLow        = "Low Stock"
	StatusMedium     = "Medium Stock"
	StatusInStock    = "In Stock"
)

// DisplayRecord is the normalized view of one product shared by the table,
// the detail view and the exporters.
type DisplayRecord struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DisplayName   string  `json:"displayName"`
	Category      string  `json:"category"`
	Quantity      string  `json:"quantity"`
	QuantityValue float64 `json:"quantityValue"`
	QuantityUnit  string  `json:"quantityUnit"`
	Size          string  `json:"size"`
	SizeValue     float64 `json:"sizeValue"`
	SizeUnit      string  `json:"sizeUnit"`
	RollNumber    string  `json:"rollNumber"`
	StockStatus   string  `json:"stockStatus"`
	StatusClass   string  `json:"statusClass"`
	DetailsText   string  `json:"detailsText"`
	LastUpdated   string  `json:"lastUpdated"`
	Imported      bool    `json:"imported"`
	Pieces        bool    `json:"pieces"`
}

// Detail is one labelled line of the product detail view.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProductDetail backs GET /api/products/{id}.
type ProductDetail struct {
	Record     DisplayRecord `json:"record"`
	Stock      float64       `json:"stock"`
	Dimensions []Detail      `json:"dimensions"`
	Stocking   []Detail      `json:"stocking"`
}
