package model

// StockMovement is the payload of POST /stock/in and POST /stock/out.
type StockMovement struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Type      string  `json:"type,omitempty"`
}

// DetailedStockIn is the stock-in form. Roll-only and piece-only fields are
// nil when they do not apply so the backend receives explicit nulls.
type DetailedStockIn struct {
	ProductType    string   `json:"productType"`
	ProductName    string   `json:"productName"`
	StockType      string   `json:"stockType"`
	Length         *float64 `json:"length"`
	Width          *float64 `json:"width"`
	Thickness      *float64 `json:"thickness"`
	LengthUnit     *string  `json:"lengthUnit"`
	WidthUnit      *string  `json:"widthUnit"`
	ThicknessUnit  string   `json:"thicknessUnit"`
	RollNumber     string   `json:"rollNumber"`
	NumberOfPieces *int     `json:"numberOfPieces"`
	SqMtr          *float64 `json:"sqMtr"`
	ImportDate     *string  `json:"importDate"`
	TakenDate      *string  `json:"takenDate"`
}

// ExistingRoll describes the roll the backend matched as a possible duplicate.
type ExistingRoll struct {
	RollNumber string `json:"rollNumber"`
	Length     any    `json:"length"`
	Width      any    `json:"width"`
	ImportDate any    `json:"importDate"`
}

// ConfirmDuplicateInput is the user's answer to the duplicate-roll question.
type ConfirmDuplicateInput struct {
	IsDuplicate bool            `json:"isDuplicate"`
	ImportDate  string          `json:"importDate"`
	RollData    DetailedStockIn `json:"rollData"`
}

// ConfirmDuplicateRequest is what the backend expects on confirm-duplicate.
type ConfirmDuplicateRequest struct {
	Action   string          `json:"action"`
	RollData DetailedStockIn `json:"rollData"`
}

type ConfirmDuplicateResult struct {
	Message    string `json:"message,omitempty"`
	UniqueName string `json:"uniqueName"`
}

// StockSummary is the GET /stock response.
type StockSummary struct {
	Total    float64 `json:"total"`
	LowStock int     `json:"lowStock"`
}

type UploadResult struct {
	Count   int    `json:"count"`
	Message string `json:"message,omitempty"`
}

type ReportRow struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Stock       float64   `json:"stock"`
	LastUpdated Timestamp `json:"lastUpdated"`
}

// ReportView is a report row ready for display.
type ReportView struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Stock       float64 `json:"stock"`
	LastUpdated string  `json:"lastUpdated"`
}

// ExportLogEntry is one row of the export log.
type ExportLogEntry struct {
	ID        string `db:"id" json:"id"`
	Filename  string `db:"filename" json:"filename"`
	Scope     string `db:"scope" json:"scope"`
	Format    string `db:"format" json:"format"`
	Rows      int    `db:"row_count" json:"rows"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
