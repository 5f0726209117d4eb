package model

type Company struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	ShortForm string `json:"short_form"`
}

type Specifications struct {
	Thickness *string `json:"thickness"`
	Length    *string `json:"length"`
	Width     *string `json:"width"`
	Barring   *string `json:"barring"`
	BarNumber *string `json:"barNumber"`
}

// SKUForm is what the SKU page submits to stockdesk.
type SKUForm struct {
	Company          string `json:"company"`
	NewCompanyName   string `json:"newCompanyName"`
	CompanyShortForm string `json:"companyShortForm"`
	ProductName      string `json:"productName"`
	ProductType      string `json:"productType"`
	Thickness        string `json:"thickness"`
	Length           string `json:"length"`
	Width            string `json:"width"`
	Barring          string `json:"barring"`
	BarNumber        string `json:"barNumber"`
}

// SKURequest is the POST /sku/generate payload.
type SKURequest struct {
	Company          string         `json:"company"`
	CompanyShortForm string         `json:"companyShortForm,omitempty"`
	ProductName      string         `json:"productName"`
	ProductType      string         `json:"productType"`
	Specifications   Specifications `json:"specifications"`
}

type SKUResult struct {
	Message   string `json:"message,omitempty"`
	SKU       string `json:"sku"`
	ProductID string `json:"productId"`
	Existing  bool   `json:"existing,omitempty"`
}

type DuplicateCheck struct {
	Exists    bool   `json:"exists"`
	SKU       string `json:"sku,omitempty"`
	ProductID string `json:"productId,omitempty"`
}
