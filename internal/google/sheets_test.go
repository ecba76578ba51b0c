package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const testSpreadsheetID = "sheet-123"

type recorded struct {
	method string
	path   string
	body   map[string]interface{}
	query  string
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*SheetsClient, *[]recorded) {
	t.Helper()

	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if r.Body != nil && r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		calls = append(calls, rec)
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	return NewSheetsClient(service, testSpreadsheetID, zap.NewNop()), &calls
}

func TestValues(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"range":"'2026'!A1:C3","values":[["March","1","2"],["Exercise","TRUE"]]}`))
	})

	g, err := client.Values(context.Background(), "'2026'")
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if len(g) != 2 || g[1][1] != "TRUE" {
		t.Fatalf("grid = %v", g)
	}

	got := (*calls)[0]
	if got.method != http.MethodGet || got.path != "/v4/spreadsheets/sheet-123/values/'2026'" {
		t.Errorf("request = %s %s", got.method, got.path)
	}
}

func TestBatchUpdateValues(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"spreadsheetId":"sheet-123","totalUpdatedCells":2}`))
	})

	n, err := client.BatchUpdateValues(context.Background(), []CellWrite{
		{Range: "'2026'!B2", Value: "TRUE"},
		{Range: "'2026'!C2", Value: "FALSE"},
	})
	if err != nil {
		t.Fatalf("BatchUpdateValues: %v", err)
	}
	if n != 2 {
		t.Errorf("updated = %d, want 2", n)
	}

	got := (*calls)[0]
	if got.path != "/v4/spreadsheets/sheet-123/values:batchUpdate" {
		t.Errorf("path = %s", got.path)
	}
	if got.body["valueInputOption"] != "USER_ENTERED" {
		t.Errorf("valueInputOption = %v", got.body["valueInputOption"])
	}
	data, _ := got.body["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("data = %v", got.body["data"])
	}
	first := data[0].(map[string]interface{})
	if first["range"] != "'2026'!B2" {
		t.Errorf("range = %v", first["range"])
	}
}

func TestBatchUpdateError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"Invalid requests[0]"}}`))
	})

	err := client.BatchUpdate(context.Background(), []*sheets.Request{InsertRows(0, 0, 3)})
	if err == nil || !strings.Contains(err.Error(), "unable to update spreadsheet") {
		t.Fatalf("err = %v", err)
	}
}

func TestSheetID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sheets":[{"properties":{"sheetId":0,"title":"Config"}},{"properties":{"sheetId":42,"title":"2026"}}]}`))
	})

	id, ok, err := client.SheetID(context.Background(), "2026")
	if err != nil || !ok || id != 42 {
		t.Fatalf("SheetID(2026) = %d, %v, %v", id, ok, err)
	}

	id, ok, err = client.SheetID(context.Background(), "Config")
	if err != nil || !ok || id != 0 {
		t.Fatalf("SheetID(Config) = %d, %v, %v", id, ok, err)
	}

	_, ok, err = client.SheetID(context.Background(), "2025")
	if err != nil || ok {
		t.Fatalf("SheetID(2025) found = %v, err = %v", ok, err)
	}
}

func TestAppendRow(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"updates":{"updatedCells":3}}`))
	})

	if err := client.AppendRow(context.Background(), "Config!A:C", []string{"Read", "FALSE", "TRUE"}); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	got := (*calls)[0]
	if got.path != "/v4/spreadsheets/sheet-123/values/Config!A:C:append" {
		t.Errorf("path = %s", got.path)
	}
	if !strings.Contains(got.query, "valueInputOption=USER_ENTERED") {
		t.Errorf("query = %s", got.query)
	}
}

func TestTitle(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties":{"title":"Habits"}}`))
	})

	title, err := client.Title(context.Background())
	if err != nil || title != "Habits" {
		t.Fatalf("Title = %q, %v", title, err)
	}
}
