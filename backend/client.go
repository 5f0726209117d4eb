// Package backend is the HTTP client for the inventory REST backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"stockdesk/model"
)

// DefaultBaseURL is where the backend listens in a stock installation.
const DefaultBaseURL = "http://localhost:5000/api"

// HTTPError is a non-2xx backend response.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	return fmt.Sprintf("HTTP error! status: %d: %s", e.Status, e.Message)
}

// DuplicateRollError is the backend's 409 answer to a stock-in of a roll it
// already knows.
type DuplicateRollError struct {
	Message  string
	Existing model.ExistingRoll
}

func (e *DuplicateRollError) Error() string {
	return "duplicate roll: " + e.Message
}

// StatusCode extracts the backend status from err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	var de *DuplicateRollError
	if errors.As(err, &de) {
		return http.StatusConflict
	}
	return 0
}

// Message returns the reason the backend gave for err, or err's own text.
func Message(err error) string {
	var he *HTTPError
	if errors.As(err, &he) && he.Message != "" {
		return he.Message
	}
	var de *DuplicateRollError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return err.Error()
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for baseURL. A zero timeout means no client-side limit.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

type errorBody struct {
	Error           string             `json:"error"`
	Message         string             `json:"message"`
	ExistingProduct model.ExistingRoll `json:"existingProduct"`
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encode: %w", method, endpoint, err)
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.send(req, endpoint, out)
}

func (c *Client) send(req *http.Request, endpoint string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", req.Method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		if resp.StatusCode == http.StatusConflict && eb.Error == "DUPLICATE_ROLL" {
			return &DuplicateRollError{Message: eb.Message, Existing: eb.ExistingProduct}
		}
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		return &HTTPError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", req.Method, endpoint, err)
	}
	return nil
}

// Products fetches the full product list.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) AddProduct(ctx context.Context, in model.NewProductInput) error {
	return c.do(ctx, http.MethodPost, "/products", in, nil)
}

func (c *Client) StockIn(ctx context.Context, m model.StockMovement) error {
	m.Type = "in"
	return c.do(ctx, http.MethodPost, "/stock/in", m, nil)
}

// StockInDetailed submits the detailed stock-in form. A roll the backend
// already has comes back as *DuplicateRollError.
func (c *Client) StockInDetailed(ctx context.Context, in model.DetailedStockIn) error {
	return c.do(ctx, http.MethodPost, "/stock/in/detailed", in, nil)
}

// ConfirmDuplicate re-submits a roll the user declared distinct, tagged with an import date.
func (c *Client) ConfirmDuplicate(ctx context.Context, rollData model.DetailedStockIn) (model.ConfirmDuplicateResult, error) {
	var res model.ConfirmDuplicateResult
	req := model.ConfirmDuplicateRequest{Action: "add_with_date", RollData: rollData}
	err := c.do(ctx, http.MethodPost, "/stock/in/detailed/confirm-duplicate", req, &res)
	return res, err
}

func (c *Client) StockOut(ctx context.Context, m model.StockMovement) error {
	m.Type = "out"
	return c.do(ctx, http.MethodPost, "/stock/out", m, nil)
}

func (c *Client) StockSummary(ctx context.Context) (model.StockSummary, error) {
	var s model.StockSummary
	err := c.do(ctx, http.MethodGet, "/stock", nil, &s)
	return s, err
}

func (c *Client) Report(ctx context.Context) ([]model.ReportRow, error) {
	var rows []model.ReportRow
	if err := c.do(ctx, http.MethodGet, "/reports", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) Companies(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := c.do(ctx, http.MethodGet, "/sku/companies", nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (c *Client) GenerateSKU(ctx context.Context, in model.SKURequest) (model.SKUResult, error) {
	var res model.SKUResult
	err := c.do(ctx, http.MethodPost, "/sku/generate", in, &res)
	return res, err
}

func (c *Client) CheckDuplicate(ctx context.Context, productName string) (model.DuplicateCheck, error) {
	var res model.DuplicateCheck
	err := c.do(ctx, http.MethodPost, "/sku/check-duplicate", map[string]string{"productName": productName}, &res)
	return res, err
}

// UploadStockFile forwards a stock import file as multipart field "excel-file".
func (c *Client) UploadStockFile(ctx context.Context, filename string, content []byte) (model.UploadResult, error) {
	var res model.UploadResult
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("excel-file", filename)
	if err != nil {
		return res, fmt.Errorf("upload %s: %w", filename, err)
	}
	if _, err := part.Write(content); err != nil {
		return res, fmt.Errorf("upload %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return res, fmt.Errorf("upload %s: %w", filename, err)
	}

	const endpoint = "/stock/upload-excel"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &body)
	if err != nil {
		return res, fmt.Errorf("upload %s: %w", filename, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	err = c.send(req, endpoint, &res)
	return res, err
}
