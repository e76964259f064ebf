package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mkojima-works/agency-billing/pkg/apperr"
)

// tokenExpiryBuffer is the safety margin before the reported expiry at which
// a cached token is considered stale.
const tokenExpiryBuffer = 5 * time.Minute

// TokenSource acquires and caches the tenant access token used to call the
// table-store API. Refresh is lazy, on first use after staleness, and is not
// deduplicated: concurrent callers may race to refresh redundantly. The
// refresh is idempotent, so the race is wasteful but harmless.
type TokenSource struct {
	baseURL    string
	appID      string
	appSecret  string
	httpClient *http.Client

	accessToken string
	expiresAt   time.Time
}

// NewTokenSource creates a token source for the given app credentials.
func NewTokenSource(baseURL, appID, appSecret string, httpClient *http.Client) *TokenSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &TokenSource{
		baseURL:    baseURL,
		appID:      appID,
		appSecret:  appSecret,
		httpClient: httpClient,
	}
}

// Token returns a valid access token, refreshing first if the cached one is
// absent or within the expiry buffer.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if s.accessToken != "" && time.Now().Add(tokenExpiryBuffer).Before(s.expiresAt) {
		return s.accessToken, nil
	}
	return s.refresh(ctx)
}

// refresh obtains a fresh tenant access token.
func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	const op = "tablestore.Token"

	body, err := json.Marshal(map[string]string{
		"app_id":     s.appID,
		"app_secret": s.appSecret,
	})
	if err != nil {
		return "", apperr.Wrap(apperr.CodeRequestFailed, op, err)
	}

	tokenURL := s.baseURL + "/open-apis/auth/v3/tenant_access_token/internal"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Wrap(apperr.CodeRequestFailed, op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeRequestFailed, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.New(apperr.CodeUnauthorized, op,
			fmt.Sprintf("token request failed (status %d)", resp.StatusCode))
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", apperr.Wrap(apperr.CodeRemoteAPIError, op, err)
	}
	if tokenResp.Code != 0 {
		return "", apperr.New(apperr.CodeUnauthorized, op,
			fmt.Sprintf("token request rejected: %d %s", tokenResp.Code, tokenResp.Msg))
	}

	s.accessToken = tokenResp.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	return s.accessToken, nil
}
