// Package sku validates the product-creation form and drives SKU generation on the backend.
package sku

import (
	"errors"
	"strings"
	"unicode/utf8"

	"stockdesk/model"
)

// NewCompany is the company-select value for a company not yet registered.
const NewCompany = "new"

// ShortForm suggests a company short form: the first two letters, upper-cased.
func ShortForm(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > 2 {
		r := []rune(name)
		name = string(r[:2])
	}
	return strings.ToUpper(name)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// BuildRequest validates the SKU form and turns it into the generate request.
func BuildRequest(form model.SKUForm) (model.SKURequest, error) {
	company := strings.TrimSpace(form.Company)
	name := strings.TrimSpace(form.ProductName)
	productType := strings.TrimSpace(form.ProductType)
	if company == "" || name == "" || productType == "" {
		return model.SKURequest{}, errors.New("please fill all required fields")
	}

	req := model.SKURequest{
		Company:     company,
		ProductName: name,
		ProductType: productType,
	}
	if company == NewCompany {
		newName := strings.TrimSpace(form.NewCompanyName)
		short := strings.TrimSpace(form.CompanyShortForm)
		if newName == "" || short == "" {
			return model.SKURequest{}, errors.New("please fill in the new company details")
		}
		req.Company = newName
		req.CompanyShortForm = strings.ToUpper(short)
	}

	barring := strings.ToLower(strings.TrimSpace(form.Barring))
	req.Specifications = model.Specifications{
		Thickness: optional(form.Thickness),
		Length:    optional(form.Length),
		Width:     optional(form.Width),
		Barring:   optional(barring),
	}
	if barring == "yes" {
		req.Specifications.BarNumber = optional(form.BarNumber)
		if req.Specifications.BarNumber == nil {
			return model.SKURequest{}, errors.New("bar number is required when barring is yes")
		}
	}
	return req, nil
}
