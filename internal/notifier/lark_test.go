package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendToLark(t *testing.T) {
	var got larkMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"code":0,"msg":"success"}`))
	}))
	defer srv.Close()

	require.NoError(t, SendToLark(context.Background(), "🚀 PUMP", srv.URL))
	assert.Equal(t, "text", got.MsgType)
	assert.Equal(t, "🚀 PUMP", got.Content.Text)
}

func TestSendToLarkErrors(t *testing.T) {
	assert.Error(t, SendToLark(context.Background(), "x", ""))
	assert.NoError(t, SendToLark(context.Background(), "", "http://unused"))

	apiErr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":19001,"msg":"param invalid"}`))
	}))
	defer apiErr.Close()
	assert.ErrorContains(t, SendToLark(context.Background(), "x", apiErr.URL), "19001")

	status := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer status.Close()
	assert.ErrorContains(t, SendToLark(context.Background(), "x", status.URL), "400")
}
