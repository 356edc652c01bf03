package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCredential struct {
	token string
	err   error
}

func (c staticCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if c.err != nil {
		return azcore.AccessToken{}, c.err
	}
	return azcore.AccessToken{Token: c.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

type capturedRequest struct {
	method string
	path   string
	query  string
	auth   string
	body   []byte
}

func newCaptureServer(t *testing.T, status int, captured *[]capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		*captured = append(*captured, capturedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   body,
		})
		w.WriteHeader(status)
	}))
}

func newTestFallback(endpoint string, cred azcore.TokenCredential) *Fallback {
	return NewFallbackForEndpoint(cred, testContext, endpoint, http.DefaultClient, discardLogger())
}

func TestFallback_CreateTableDirect(t *testing.T) {
	var captured []capturedRequest
	server := newCaptureServer(t, http.StatusOK, &captured)
	defer server.Close()

	f := newTestFallback(server.URL, staticCredential{token: "tok-123"})
	ok := f.CreateTableDirect(context.Background(), specTable("VersaAnalytics"))
	require.True(t, ok)
	require.Len(t, captured, 1)
	req := captured[0]

	t.Run("request shape", func(t *testing.T) {
		assert.Equal(t, http.MethodPut, req.method)
		assert.Equal(t,
			"/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/rg-observability/providers/Microsoft.OperationalInsights/workspaces/law-central/tables/VersaAnalytics_CL",
			req.path)
		assert.Equal(t, "api-version=2023-01-01-preview", req.query)
		assert.Equal(t, "Bearer tok-123", req.auth)
	})

	t.Run("body carries schema, retention, and plan", func(t *testing.T) {
		var body struct {
			Properties struct {
				Schema struct {
					Name    string `json:"name"`
					Columns []struct {
						Name string `json:"name"`
						Type string `json:"type"`
					} `json:"columns"`
				} `json:"schema"`
				TotalRetentionInDays int    `json:"totalRetentionInDays"`
				Plan                 string `json:"plan"`
			} `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(req.body, &body))
		assert.Equal(t, "VersaAnalytics_CL", body.Properties.Schema.Name)
		require.Len(t, body.Properties.Schema.Columns, 2)
		assert.Equal(t, "TimeGenerated", body.Properties.Schema.Columns[0].Name)
		assert.Equal(t, "datetime", body.Properties.Schema.Columns[0].Type)
		assert.Equal(t, 365, body.Properties.TotalRetentionInDays)
		assert.Equal(t, "Auxiliary", body.Properties.Plan)
	})
}

// Create-or-replace: repeating the call sends an identical definition and
// succeeds again.
func TestFallback_Idempotent(t *testing.T) {
	var captured []capturedRequest
	server := newCaptureServer(t, http.StatusOK, &captured)
	defer server.Close()

	f := newTestFallback(server.URL, staticCredential{token: "tok"})
	table := specTable("VersaAuditLog")
	assert.True(t, f.CreateTableDirect(context.Background(), table))
	assert.True(t, f.CreateTableDirect(context.Background(), table))

	require.Len(t, captured, 2)
	assert.JSONEq(t, string(captured[0].body), string(captured[1].body))
}

func TestFallback_Failures(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		var captured []capturedRequest
		server := newCaptureServer(t, http.StatusConflict, &captured)
		defer server.Close()

		f := newTestFallback(server.URL, staticCredential{token: "tok"})
		assert.False(t, f.CreateTableDirect(context.Background(), specTable("VersaAlarm")))
	})

	t.Run("transport error", func(t *testing.T) {
		var captured []capturedRequest
		server := newCaptureServer(t, http.StatusOK, &captured)
		server.Close()

		f := newTestFallback(server.URL, staticCredential{token: "tok"})
		assert.False(t, f.CreateTableDirect(context.Background(), specTable("VersaAlarm")))
	})

	t.Run("token acquisition error", func(t *testing.T) {
		var captured []capturedRequest
		server := newCaptureServer(t, http.StatusOK, &captured)
		defer server.Close()

		f := newTestFallback(server.URL, staticCredential{err: errors.New("no credential")})
		assert.False(t, f.CreateTableDirect(context.Background(), specTable("VersaAlarm")))
		assert.Empty(t, captured, "no request without a token")
	})
}
