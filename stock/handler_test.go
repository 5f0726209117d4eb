package stock

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdesk/backend"
	"stockdesk/model"
)

type fakeAPI struct {
	movements []model.StockMovement
	detailed  []model.DetailedStockIn
	confirmed []model.DetailedStockIn
	uploaded  string
	detailErr error
	err       error
}

func (f *fakeAPI) StockIn(_ context.Context, m model.StockMovement) error {
	m.Type = "in"
	f.movements = append(f.movements, m)
	return f.err
}

func (f *fakeAPI) StockOut(_ context.Context, m model.StockMovement) error {
	m.Type = "out"
	f.movements = append(f.movements, m)
	return f.err
}

func (f *fakeAPI) StockInDetailed(_ context.Context, in model.DetailedStockIn) error {
	f.detailed = append(f.detailed, in)
	return f.detailErr
}

func (f *fakeAPI) ConfirmDuplicate(_ context.Context, in model.DetailedStockIn) (model.ConfirmDuplicateResult, error) {
	f.confirmed = append(f.confirmed, in)
	return model.ConfirmDuplicateResult{UniqueName: in.ProductName + " (" + *in.ImportDate + ")"}, f.err
}

func (f *fakeAPI) StockSummary(context.Context) (model.StockSummary, error) {
	return model.StockSummary{Total: 120, LowStock: 3}, f.err
}

func (f *fakeAPI) UploadStockFile(_ context.Context, filename string, _ []byte) (model.UploadResult, error) {
	f.uploaded = filename
	return model.UploadResult{Count: 2}, f.err
}

func newMux(api *fakeAPI) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/stock/in", StockInHandler(api, nil))
	mux.HandleFunc("POST /api/stock/in/detailed", DetailedStockInHandler(api, nil))
	mux.HandleFunc("POST /api/stock/in/detailed/confirm-duplicate", ConfirmDuplicateHandler(api, nil))
	mux.HandleFunc("POST /api/stock/out", StockOutHandler(api, nil))
	mux.HandleFunc("GET /api/stock", SummaryHandler(api))
	mux.HandleFunc("GET /api/stock/sqmtr", SqMtrHandler())
	mux.HandleFunc("GET /api/stock/template", TemplateHandler())
	mux.HandleFunc("POST /api/stock/upload-excel", UploadHandler(api, nil))
	return mux
}

func serve(mux http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func post(mux http.Handler, target, body string) *httptest.ResponseRecorder {
	return serve(mux, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStockOut(t *testing.T) {
	api := &fakeAPI{}
	mux := newMux(api)

	rec := post(mux, "/api/stock/out", `{"productId":"p1","quantity":2}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, api.movements, 1)
	assert.Equal(t, "out", api.movements[0].Type)

	rec = post(mux, "/api/stock/out", `{"productId":"p1","quantity":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, api.movements, 1, "invalid requests are not forwarded")
}

func TestStockOutRelaysInsufficientStock(t *testing.T) {
	api := &fakeAPI{err: &backend.HTTPError{Status: http.StatusBadRequest, Message: "Insufficient stock"}}
	rec := post(newMux(api), "/api/stock/out", `{"productId":"p1","quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "Insufficient stock")
}

func TestStockIn(t *testing.T) {
	api := &fakeAPI{}
	rec := post(newMux(api), "/api/stock/in", `{"productId":"p1","quantity":10}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "in", api.movements[0].Type)
}

const rollForm = `{"productType":"blankets","productName":"Blanket","stockType":"roll",
	"length":1000,"width":500,"lengthUnit":"mm","widthUnit":"mm","thickness":1.95,"rollNumber":"R1"}`

func TestDetailedStockIn(t *testing.T) {
	api := &fakeAPI{}
	rec := post(newMux(api), "/api/stock/in/detailed", rollForm)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, api.detailed, 1)
	require.NotNil(t, api.detailed[0].SqMtr)
	assert.Equal(t, 0.5, *api.detailed[0].SqMtr)
}

func TestDetailedStockInValidation(t *testing.T) {
	api := &fakeAPI{}
	rec := post(newMux(api), "/api/stock/in/detailed", `{"productType":"blankets","productName":"x","stockType":"roll","thickness":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, api.detailed)
}

func TestDetailedStockInDuplicateRoll(t *testing.T) {
	api := &fakeAPI{detailErr: &backend.DuplicateRollError{
		Message:  "Roll R1 already exists",
		Existing: model.ExistingRoll{RollNumber: "R1", Length: 1000.0},
	}}
	rec := post(newMux(api), "/api/stock/in/detailed", rollForm)
	require.Equal(t, http.StatusConflict, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "DUPLICATE_ROLL", body["error"])
	assert.Equal(t, "Roll R1 already exists", body["message"])
	prompt, _ := body["prompt"].(string)
	assert.Contains(t, prompt, "Roll Number: R1")
	assert.Contains(t, prompt, "Import Date: N/A")
}

func TestConfirmDuplicate(t *testing.T) {
	api := &fakeAPI{}
	mux := newMux(api)

	rec := post(mux, "/api/stock/in/detailed/confirm-duplicate", `{"isDuplicate":true,"rollData":{"rollNumber":"R1"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, api.confirmed)

	rec = post(mux, "/api/stock/in/detailed/confirm-duplicate", `{"isDuplicate":false,"importDate":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Import date is required for separate entry", decode(t, rec)["message"])

	rec = post(mux, "/api/stock/in/detailed/confirm-duplicate", `{"isDuplicate":false,"importDate":"12/01/2024"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, api.confirmed)

	rec = post(mux, "/api/stock/in/detailed/confirm-duplicate", `{"isDuplicate":false,"importDate":"2024-01-12","rollData":`+rollForm+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, api.confirmed, 1)
	assert.Equal(t, "2024-01-12", *api.confirmed[0].ImportDate)
	require.NotNil(t, api.confirmed[0].SqMtr)
	assert.Equal(t, 0.5, *api.confirmed[0].SqMtr)
	assert.Equal(t, "Blanket (2024-01-12)", decode(t, rec)["uniqueName"])
}

func TestConfirmDuplicateValidatesRollData(t *testing.T) {
	api := &fakeAPI{}
	mux := newMux(api)

	rec := post(mux, "/api/stock/in/detailed/confirm-duplicate",
		`{"isDuplicate":false,"importDate":"2024-01-12","rollData":{"productName":"X","stockType":"bogus"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "product type, product name and stock type are required", decode(t, rec)["message"])

	rec = post(mux, "/api/stock/in/detailed/confirm-duplicate",
		`{"isDuplicate":false,"importDate":"2024-01-12","rollData":{"productType":"blankets","productName":"B","stockType":"roll","thickness":1.95,"length":1000,"width":500,"lengthUnit":"mm","widthUnit":"mm"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "roll number is required for blanket rolls", decode(t, rec)["message"])

	assert.Empty(t, api.confirmed)
}

func TestSummaryAndSqMtr(t *testing.T) {
	mux := newMux(&fakeAPI{})

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/api/stock", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":120,"lowStock":3}`, rec.Body.String())

	rec = serve(mux, httptest.NewRequest(http.MethodGet, "/api/stock/sqmtr?length=1.5&lengthUnit=mtr&width=333", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, 0.5, body["sqMtr"])
	assert.Equal(t, "0.50", body["formatted"])
}

func TestTemplate(t *testing.T) {
	rec := serve(newMux(&fakeAPI{}), httptest.NewRequest(http.MethodGet, "/api/stock/template", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "stock_import_template.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "productType,productName,stockType"))
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("excel-file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/stock/upload-excel", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	api := &fakeAPI{}
	mux := newMux(api)

	csv := "productType,productName,stockType,numberOfPieces\nblankets,Cut,pieces,4\nblankets,Bad,pieces,\n"
	rec := serve(mux, uploadRequest(t, "stock.csv", csv))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, 2.0, body["count"])
	assert.Equal(t, 1.0, body["validRows"])
	assert.Len(t, body["skipped"], 1)
	assert.Equal(t, "stock.csv", api.uploaded)
}

func TestUploadRejected(t *testing.T) {
	api := &fakeAPI{}
	mux := newMux(api)

	rec := serve(mux, uploadRequest(t, "stock.txt", "x"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(mux, uploadRequest(t, "stock.csv", "productName\nx\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(mux, httptest.NewRequest(http.MethodPost, "/api/stock/upload-excel", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, api.uploaded)
}
