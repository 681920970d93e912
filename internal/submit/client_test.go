package submit

import (
	"context"
	"errors"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobflow-engine/internal/domain"
)

func TestClientSend(t *testing.T) {
	var got domain.JobRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/apply", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true,"job_id":12,"application_id":34}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL + "/"})
	assert.Equal(t, srv.URL+"/apply", c.Endpoint())

	rec := domain.JobRecord{ExternalID: "u", URL: "u", Position: "Engineer", Stage: "Applied", Outcome: "Active"}
	receipt, err := c.Send(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, domain.Receipt{OK: true, JobID: 12, ApplicationID: 34}, receipt)
	assert.Equal(t, rec, got)
}

func TestClientSendAPIError(t *testing.T) {
	long := strings.Repeat("x", 300)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, long, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(ClientConfig{BaseURL: srv.URL}).Send(context.Background(), domain.JobRecord{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, strings.Repeat("x", 140)+"…", ShortText(apiErr.Body))
}

func TestClientSendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(ClientConfig{BaseURL: url}).Send(context.Background(), domain.JobRecord{})
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClientSendEmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	receipt, err := NewClient(ClientConfig{BaseURL: srv.URL}).Send(context.Background(), domain.JobRecord{})
	require.NoError(t, err)
	assert.Zero(t, receipt.JobID)
}

func TestShortText(t *testing.T) {
	assert.Equal(t, "short", ShortText("  short  "))
	assert.Equal(t, strings.Repeat("é", 140), ShortText(strings.Repeat("é", 140)))
	assert.Equal(t, strings.Repeat("é", 140)+"…", ShortText(strings.Repeat("é", 141)))
}

func TestDefaultEndpoint(t *testing.T) {
	assert.Equal(t, "http://localhost:8081/apply", NewClient(ClientConfig{}).Endpoint())
}
