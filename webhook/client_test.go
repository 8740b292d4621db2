package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewRequestTimestamp(t *testing.T) {
	at := time.Date(2026, 10, 19, 14, 3, 7, 250_000_000, time.FixedZone("CEST", 2*3600))
	req := NewRequest("book a call", "session_1_abc", at)

	require.Equal(t, "2026-10-19T12:03:07.250Z", req.Timestamp)
	require.Equal(t, "book a call", req.Message)
	require.Equal(t, "session_1_abc", req.SessionID)
}

func TestSendPostsJSONContract(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"Meeting booked"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), "calchat-test")
	req := NewRequest("Book Tuesday 3pm", "session_42_xyz", time.Unix(0, 0))

	reply, err := client.Send(context.Background(), srv.URL, req)
	require.NoError(t, err)
	require.Equal(t, "Meeting booked", reply)

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, map[string]any{
		"message":   "Book Tuesday 3pm",
		"sessionId": "session_42_xyz",
		"timestamp": "1970-01-01T00:00:00.000Z",
	}, gotBody)
}

func TestSendNon2xxIsTransportError(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusNotFound, http.StatusMultipleChoices} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"response":"ignored on failure"}`))
		}))

		_, err := NewClient(srv.Client(), "").Send(context.Background(), srv.URL, NewRequest("hi", "s", time.Now()))
		srv.Close()

		var te *TransportError
		require.True(t, errors.As(err, &te), "status %d", status)
		require.Equal(t, status, te.StatusCode)
		require.Contains(t, err.Error(), "status")
	}
}

func TestSendInvalidJSONIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(nil, "").Send(context.Background(), srv.URL, NewRequest("hi", "s", time.Now()))

	var te *TransportError
	require.True(t, errors.As(err, &te))
	require.Zero(t, te.StatusCode)
	require.Error(t, te.Err)
	require.Contains(t, err.Error(), "parse reply")
}

func TestSendNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(nil, "").Send(context.Background(), url, NewRequest("hi", "s", time.Now()))

	var te *TransportError
	require.True(t, errors.As(err, &te))
	require.Contains(t, err.Error(), "post webhook")
	require.NotNil(t, pkgerrors.Cause(err))
}

func TestSendFallsBackToRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foo": "bar"}`))
	}))
	defer srv.Close()

	reply, err := NewClient(nil, "").Send(context.Background(), srv.URL, NewRequest("hi", "s", time.Now()))
	require.NoError(t, err)
	require.Equal(t, `{"foo":"bar"}`, reply)
}
