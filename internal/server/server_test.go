package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/gyeh/claimstats/internal/config"
	"github.com/gyeh/claimstats/internal/export"
)

const uploadCSV = `Remittance_Date,Payer_Name,Submitted_Amount,Resubmitted_Amount_1,Resubmitted_Amount_2,Paid_Amount,Resubmission_Paid_Amount_1,Resubmission_Paid_Amount_2,Denied_Amount,Resubmission_Denied_Amount_1,Resubmission_Denied_Amount_2
2021-03-15,Acme,100,0,0,80,0,0,20,0,0
2021-07-02,Acme,200,50,0,100,25,0,75,10,0
2022-01-20,Blue Shield,300,0,0,abc,0,0,0,0,0
not-a-date,Acme,999,0,0,999,0,0,0,0,0
`

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	ts := httptest.NewServer(New(zerolog.Nop(), cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func upload(t *testing.T, ts *httptest.Server, name, content string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	resp, err := http.Post(ts.URL+"/datasets", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST /datasets: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func uploaded(t *testing.T, ts *httptest.Server) uploadResponse {
	t.Helper()
	resp := upload(t, ts, "remittance.csv", uploadCSV)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d", resp.StatusCode)
	}
	return decode[uploadResponse](t, resp)
}

func TestUpload(t *testing.T) {
	ts := newTestServer(t, nil)
	up := uploaded(t, ts)

	if len(up.ID) != 64 {
		t.Errorf("id = %q, want sha256 hex", up.ID)
	}
	if up.Format != "csv" || up.Rows != 3 || up.DroppedRows != 1 || up.CoercedCells != 1 {
		t.Errorf("unexpected upload stats: %+v", up)
	}
	if diff := cmp.Diff([]int{2021, 2022}, up.Years); diff != "" {
		t.Errorf("years (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Acme", "Blue Shield"}, up.Payers); diff != "" {
		t.Errorf("payers (-want +got):\n%s", diff)
	}

	again := uploaded(t, ts)
	if again.ID != up.ID {
		t.Errorf("re-upload id = %q, want %q", again.ID, up.ID)
	}
}

func TestUpload_MissingColumns(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := upload(t, ts, "bad.csv", "Remittance_Date,Submitted_Amount\n2021-01-01,10\n")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	body := decode[errorResponse](t, resp)
	if diff := cmp.Diff([]string{"Payer_Name", "Paid_Amount"}, body.Missing); diff != "" {
		t.Errorf("missing columns (-want +got):\n%s", diff)
	}
	if body.RequestID == "" {
		t.Error("expected request id in error body")
	}
}

func TestUpload_UnsupportedFormat(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := upload(t, ts, "claims.json", "{}")
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", resp.StatusCode)
	}
}

func TestUpload_TooLarge(t *testing.T) {
	ts := newTestServer(t, &config.Config{MaxUploadBytes: 64})
	resp := upload(t, ts, "remittance.csv", uploadCSV)
	if resp.StatusCode != http.StatusRequestEntityTooLarge && resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 413 or 400", resp.StatusCode)
	}
}

func TestSummary_Filters(t *testing.T) {
	ts := newTestServer(t, nil)
	up := uploaded(t, ts)
	base := ts.URL + "/datasets/" + up.ID + "/summary"

	tests := []struct {
		name  string
		query string
		want  [][]string
	}{
		{
			name:  "all",
			query: "",
			want: [][]string{
				{"2021", "Acme", "350.00", "205.00", "55.00", "40.00"},
				{"2022", "Blue Shield", "300.00", "0.00", "0.00", "300.00"},
			},
		},
		{
			name:  "year",
			query: "?year=2022",
			want:  [][]string{{"2022", "Blue Shield", "300.00", "0.00", "0.00", "300.00"}},
		},
		{
			name:  "all_overrides_explicit",
			query: "?year=ALL&year=2022&payer=Acme",
			want:  [][]string{{"2021", "Acme", "350.00", "205.00", "55.00", "40.00"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, base+tt.query)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			body := decode[tableResponse](t, resp)
			if diff := cmp.Diff(tt.want, body.Rows); diff != "" {
				t.Errorf("rows (-want +got):\n%s", diff)
			}
			if body.Warning != "" {
				t.Errorf("unexpected warning %q", body.Warning)
			}
		})
	}
}

func TestMonthly(t *testing.T) {
	ts := newTestServer(t, nil)
	up := uploaded(t, ts)

	resp := get(t, ts.URL+"/datasets/"+up.ID+"/monthly?payer=Acme")
	body := decode[tableResponse](t, resp)
	if len(body.Columns) != 14 || body.Columns[2] != "Jan" {
		t.Errorf("columns = %v", body.Columns)
	}
	want := [][]string{{"2021", "Acme", "0.00", "0.00", "80.00", "0.00", "0.00", "0.00", "125.00", "0.00", "0.00", "0.00", "0.00", "0.00"}}
	if diff := cmp.Diff(want, body.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestClaims_EmptyResult(t *testing.T) {
	ts := newTestServer(t, nil)
	up := uploaded(t, ts)

	resp := get(t, ts.URL+"/datasets/"+up.ID+"/claims?year=1999")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode[tableResponse](t, resp)
	if body.Warning == "" {
		t.Error("expected empty-result warning")
	}
	if body.Rows == nil || len(body.Rows) != 0 {
		t.Errorf("rows = %v, want []", body.Rows)
	}
	if len(body.Columns) == 0 {
		t.Error("columns should be present for an empty result")
	}
}

func TestView_BadYear(t *testing.T) {
	ts := newTestServer(t, nil)
	up := uploaded(t, ts)
	resp := get(t, ts.URL+"/datasets/"+up.ID+"/summary?year=twenty")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestView_UnknownDataset(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := get(t, ts.URL+"/datasets/"+strings.Repeat("0", 64)+"/summary")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestExport(t *testing.T) {
	ts := newTestServer(t, nil)
	up := uploaded(t, ts)

	resp := get(t, ts.URL+"/datasets/"+up.ID+"/export?year=2021")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, config.DefaultReportName) {
		t.Errorf("content disposition = %q", cd)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if diff := cmp.Diff(export.Sheets, f.GetSheetList()); diff != "" {
		t.Errorf("sheets (-want +got):\n%s", diff)
	}
	rows, err := f.GetRows(export.SheetRaw)
	if err != nil {
		t.Fatalf("read raw sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("raw sheet rows = %d, want header + 2", len(rows))
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Error("expected request id header")
	}
}

func TestDatasetStore_EvictsOldest(t *testing.T) {
	s := newDatasetStore()
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxDatasets+2; i++ {
		id := strings.Repeat(string(rune('a'+i)), 4)
		s.put(&storedDataset{ID: id, UploadedAt: epoch.Add(time.Duration(i) * time.Minute)})
	}
	if s.len() != maxDatasets {
		t.Fatalf("len = %d, want %d", s.len(), maxDatasets)
	}
	if _, ok := s.get("aaaa"); ok {
		t.Error("oldest dataset should have been evicted")
	}
	if _, ok := s.get(strings.Repeat(string(rune('a'+maxDatasets+1)), 4)); !ok {
		t.Error("newest dataset should be present")
	}
}

func TestUpload_SameBytesDifferentFormat(t *testing.T) {
	ts := newTestServer(t, nil)
	tsv := "Remittance_Date\tPayer_Name\tPaid_Amount\n2021-01-01\tAcme\t5\n"

	first := upload(t, ts, "claims.tsv", tsv)
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("tsv upload status = %d", first.StatusCode)
	}
	firstBody := decode[uploadResponse](t, first)
	if firstBody.Format != "tsv" || firstBody.Rows != 1 {
		t.Fatalf("unexpected tsv upload: %+v", firstBody)
	}

	// Read as CSV the same bytes have a single column, so the cached TSV
	// parse must not be returned.
	second := upload(t, ts, "claims.csv", tsv)
	if second.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("csv re-upload status = %d, want 422", second.StatusCode)
	}
}

func TestUpload_SameBytesNewFileName(t *testing.T) {
	ts := newTestServer(t, nil)
	upload(t, ts, "january.csv", uploadCSV)

	resp := upload(t, ts, "february.csv", uploadCSV)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body := decode[uploadResponse](t, resp); body.FileName != "february.csv" {
		t.Errorf("file name = %q, want february.csv", body.FileName)
	}
}

func TestView_ConfiguredDefaultFilters(t *testing.T) {
	ts := newTestServer(t, &config.Config{Years: []string{"2022"}, Payers: []string{"Blue Shield"}})
	up := uploaded(t, ts)
	base := ts.URL + "/datasets/" + up.ID + "/summary"

	body := decode[tableResponse](t, get(t, base))
	want := [][]string{{"2022", "Blue Shield", "300.00", "0.00", "0.00", "300.00"}}
	if diff := cmp.Diff(want, body.Rows); diff != "" {
		t.Errorf("default filters (-want +got):\n%s", diff)
	}

	body = decode[tableResponse](t, get(t, base+"?year=ALL&payer=ALL"))
	if len(body.Rows) != 2 {
		t.Errorf("explicit ALL should override defaults, got %v", body.Rows)
	}
}
