// Package tablestore provides a client for the hosted table-store HTTP API
// that holds the agency's line-item records.
package tablestore

// Record is one row of a remote table. Fields maps the table's column labels
// to raw values whose JSON shape varies by column type; use the Value
// coercers to read them.
type Record struct {
	ID           string         `json:"record_id"`
	Fields       map[string]any `json:"fields"`
	CreatedTime  int64          `json:"created_time"`
	ModifiedTime int64          `json:"modified_time"`
}

// RecordPage is one page of a record listing.
type RecordPage struct {
	Items     []Record `json:"items"`
	Total     int      `json:"total"`
	HasMore   bool     `json:"has_more"`
	PageToken string   `json:"page_token"`
}

// RecordUpdate pairs a record ID with the fields to change.
type RecordUpdate struct {
	RecordID string         `json:"record_id"`
	Fields   map[string]any `json:"fields"`
}

// envelope is the common response wrapper of the table-store API.
type envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type recordData struct {
	Record Record `json:"record"`
}

type recordsData struct {
	Records []Record `json:"records"`
}

type pageData struct {
	Items     []Record `json:"items"`
	Total     int      `json:"total"`
	HasMore   bool     `json:"has_more"`
	PageToken string   `json:"page_token"`
}

// tokenResponse is the response of the token endpoint.
type tokenResponse struct {
	Code        int    `json:"code"`
	Msg         string `json:"msg"`
	AccessToken string `json:"tenant_access_token"`
	ExpiresIn   int64  `json:"expire"`
}
