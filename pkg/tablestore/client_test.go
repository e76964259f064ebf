package tablestore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkojima-works/agency-billing/pkg/apperr"
)

// newTestServer serves the token endpoint plus the given records handler.
func newTestServer(t *testing.T, records http.HandlerFunc) (*httptest.Server, *Client, *int) {
	t.Helper()

	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/open-apis/auth/v3/tenant_access_token/internal", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad token request body: %v", err)
		}
		if body["app_id"] != "app123" || body["app_secret"] != "secret456" {
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `{"code":99991663,"msg":"app not found"}`)
			return
		}
		fmt.Fprint(w, `{"code":0,"msg":"ok","tenant_access_token":"t-abc","expire":7200}`)
	})
	mux.HandleFunc("/open-apis/bitable/v1/apps/base1/tables/tbl1/records", records)
	mux.HandleFunc("/open-apis/bitable/v1/apps/base1/tables/tbl1/records/", records)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:   server.URL,
		AppID:     "app123",
		AppSecret: "secret456",
		AppToken:  "base1",
		TableID:   "tbl1",
	})
	return server, client, &tokenCalls
}

func TestFetchAllRecordsPaginates(t *testing.T) {
	_, client, tokenCalls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer t-abc" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Query().Get("page_token") == "" {
			fmt.Fprint(w, `{"code":0,"msg":"ok","data":{
				"items":[{"record_id":"rec1","fields":{"案件名":"夏季キャンペーン"}}],
				"total":2,"has_more":true,"page_token":"next"}}`)
			return
		}
		fmt.Fprint(w, `{"code":0,"msg":"ok","data":{
			"items":[{"record_id":"rec2","fields":{"案件名":"会社案内"}}],
			"total":2,"has_more":false,"page_token":""}}`)
	})

	records, err := client.FetchAllRecords(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, expected 2", len(records))
	}
	if records[0].ID != "rec1" || records[1].ID != "rec2" {
		t.Errorf("records = %s, %s", records[0].ID, records[1].ID)
	}
	if StringValue(records[0].Fields["案件名"]) != "夏季キャンペーン" {
		t.Errorf("field = %q", StringValue(records[0].Fields["案件名"]))
	}

	// The cached token serves both pages.
	if *tokenCalls != 1 {
		t.Errorf("token endpoint called %d times, expected 1", *tokenCalls)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	_, client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"code":1254043,"msg":"record not found"}`)
	})

	_, err := client.GetRecord(context.Background(), "recX")
	if !apperr.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestEnvelopeErrorCode(t *testing.T) {
	_, client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":1254001,"msg":"invalid table id"}`)
	})

	_, err := client.ListRecords(context.Background(), 10, "")
	if apperr.CodeOf(err) != apperr.CodeRemoteAPIError {
		t.Fatalf("expected remote-api error, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid table id") {
		t.Errorf("error %q does not carry the remote message", err)
	}
}

func TestUpdateRecordSendsFields(t *testing.T) {
	var captured map[string]any
	_, client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, expected PUT", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		fmt.Fprint(w, `{"code":0,"msg":"ok","data":{"record":{"record_id":"rec1","fields":{"請求済み":true}}}}`)
	})

	record, err := client.UpdateRecord(context.Background(), "rec1", map[string]any{"請求済み": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields, ok := captured["fields"].(map[string]any)
	if !ok || fields["請求済み"] != true {
		t.Errorf("request body = %v", captured)
	}
	if !BoolValue(record.Fields["請求済み"]) {
		t.Error("response record not decoded")
	}
}

func TestTokenRejected(t *testing.T) {
	server, _, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("records endpoint reached without a token")
	})

	client := NewClient(ClientConfig{
		BaseURL:   server.URL,
		AppID:     "wrong",
		AppSecret: "wrong",
		AppToken:  "base1",
		TableID:   "tbl1",
	})

	_, err := client.ListRecords(context.Background(), 10, "")
	if apperr.CodeOf(err) != apperr.CodeUnauthorized {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}
