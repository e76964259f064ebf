package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mkojima-works/agency-billing/pkg/apperr"
)

// ClientConfig represents the configuration for the table-store API client.
type ClientConfig struct {
	BaseURL   string
	AppID     string
	AppSecret string
	AppToken  string // identifies the base (the spreadsheet-database document)
	TableID   string
	Timeout   time.Duration // Default: 30 seconds
}

// Client is a table-store API client for a single table.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appToken   string
	tableID    string
	tokens     *TokenSource
}

// NewClient creates a new table-store API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}

	return &Client{
		httpClient: httpClient,
		baseURL:    config.BaseURL,
		appToken:   config.AppToken,
		tableID:    config.TableID,
		tokens:     NewTokenSource(config.BaseURL, config.AppID, config.AppSecret, httpClient),
	}
}

// ListRecords lists one page of records.
func (c *Client) ListRecords(ctx context.Context, pageSize int, pageToken string) (*RecordPage, error) {
	const op = "tablestore.ListRecords"

	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	if pageToken != "" {
		query.Set("page_token", pageToken)
	}

	var data pageData
	if err := c.do(ctx, op, http.MethodGet, c.recordsPath("")+"?"+query.Encode(), nil, &data); err != nil {
		return nil, err
	}

	return &RecordPage{
		Items:     data.Items,
		Total:     data.Total,
		HasMore:   data.HasMore,
		PageToken: data.PageToken,
	}, nil
}

// FetchAllRecords fetches every record of the table, following pagination.
func (c *Client) FetchAllRecords(ctx context.Context) ([]Record, error) {
	var all []Record
	pageToken := ""

	for {
		page, err := c.ListRecords(ctx, 100, pageToken)
		if err != nil {
			return nil, fmt.Errorf("failed to list records (page_token=%q): %w", pageToken, err)
		}

		all = append(all, page.Items...)

		if !page.HasMore || page.PageToken == "" {
			break
		}
		pageToken = page.PageToken
	}

	return all, nil
}

// GetRecord fetches a single record by ID.
func (c *Client) GetRecord(ctx context.Context, id string) (*Record, error) {
	const op = "tablestore.GetRecord"

	var data recordData
	if err := c.do(ctx, op, http.MethodGet, c.recordsPath(id), nil, &data); err != nil {
		return nil, err
	}
	return &data.Record, nil
}

// CreateRecord creates a record with the given fields.
func (c *Client) CreateRecord(ctx context.Context, fields map[string]any) (*Record, error) {
	const op = "tablestore.CreateRecord"

	body := map[string]any{"fields": fields}
	var data recordData
	if err := c.do(ctx, op, http.MethodPost, c.recordsPath(""), body, &data); err != nil {
		return nil, err
	}
	return &data.Record, nil
}

// UpdateRecord updates the given fields of a record.
func (c *Client) UpdateRecord(ctx context.Context, id string, fields map[string]any) (*Record, error) {
	const op = "tablestore.UpdateRecord"

	body := map[string]any{"fields": fields}
	var data recordData
	if err := c.do(ctx, op, http.MethodPut, c.recordsPath(id), body, &data); err != nil {
		return nil, err
	}
	return &data.Record, nil
}

// DeleteRecord deletes a record by ID.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	const op = "tablestore.DeleteRecord"
	return c.do(ctx, op, http.MethodDelete, c.recordsPath(id), nil, nil)
}

// BatchCreateRecords creates multiple records in one call.
func (c *Client) BatchCreateRecords(ctx context.Context, fieldsList []map[string]any) ([]Record, error) {
	const op = "tablestore.BatchCreateRecords"

	records := make([]map[string]any, 0, len(fieldsList))
	for _, fields := range fieldsList {
		records = append(records, map[string]any{"fields": fields})
	}

	var data recordsData
	if err := c.do(ctx, op, http.MethodPost, c.recordsPath("batch_create"), map[string]any{"records": records}, &data); err != nil {
		return nil, err
	}
	return data.Records, nil
}

// BatchUpdateRecords updates multiple records in one call.
func (c *Client) BatchUpdateRecords(ctx context.Context, updates []RecordUpdate) ([]Record, error) {
	const op = "tablestore.BatchUpdateRecords"

	var data recordsData
	if err := c.do(ctx, op, http.MethodPost, c.recordsPath("batch_update"), map[string]any{"records": updates}, &data); err != nil {
		return nil, err
	}
	return data.Records, nil
}

// BatchDeleteRecords deletes multiple records in one call.
func (c *Client) BatchDeleteRecords(ctx context.Context, ids []string) error {
	const op = "tablestore.BatchDeleteRecords"
	return c.do(ctx, op, http.MethodPost, c.recordsPath("batch_delete"), map[string]any{"records": ids}, nil)
}

// recordsPath builds the records endpoint path, with an optional suffix
// (a record ID or a batch verb).
func (c *Client) recordsPath(suffix string) string {
	p := fmt.Sprintf("%s/open-apis/bitable/v1/apps/%s/tables/%s/records", c.baseURL, c.appToken, c.tableID)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// do performs one API call: acquires a token, sends the request, checks the
// HTTP status and the envelope code, and decodes the data payload into out.
func (c *Client) do(ctx context.Context, op, method, rawURL string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(apperr.CodeInvalidInput, op, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return apperr.Wrap(apperr.CodeRequestFailed, op, err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.CodeRequestFailed, op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Wrap(apperr.CodeRequestFailed, op, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return apperr.New(apperr.CodeNotFound, op, "record not found")
	}
	if resp.StatusCode != http.StatusOK {
		return parseError(op, resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return apperr.Wrap(apperr.CodeRemoteAPIError, op, err)
	}
	if env.Code != 0 {
		return apperr.New(apperr.CodeRemoteAPIError, op,
			fmt.Sprintf("table store error %d: %s", env.Code, env.Msg))
	}

	if out != nil {
		var payload struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return apperr.Wrap(apperr.CodeRemoteAPIError, op, err)
		}
		if err := json.Unmarshal(payload.Data, out); err != nil {
			return apperr.Wrap(apperr.CodeRemoteAPIError, op, err)
		}
	}

	return nil
}

// parseError converts a non-success response into an apperr error.
func parseError(op string, status int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Msg != "" {
		return apperr.New(apperr.CodeRemoteAPIError, op,
			fmt.Sprintf("table store error (status %d): %s", status, env.Msg))
	}
	return apperr.New(apperr.CodeRemoteAPIError, op,
		fmt.Sprintf("table store error (status %d): %s", status, string(body)))
}
