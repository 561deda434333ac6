package orderclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

func newTestClient(t *testing.T, h http.HandlerFunc, retry RetryPolicy) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", retry)
	require.NoError(t, err)
	return c
}

func TestListPartLocations_DecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, partsPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req partsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"ORD-1", "ORD-2"}, req.OrderNumbers)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"success":true,"message":"ok","data":{"partLocations":[
			{"location":"A5","partName":"Bolt","orderNumber":"ORD-1","partId":7},
			{"location":"C12-3","partName":"Gear","orderNumber":"ORD-2","partId":9,"weightKg":2.5}
		]}}`))
	}, fastRetry)

	parts, err := c.ListPartLocations(context.Background(), []string{"ORD-1", "ORD-2"})
	require.NoError(t, err)
	require.Len(t, parts, 2)

	assert.Equal(t, "A5", parts[0].Location)
	assert.Equal(t, "Bolt", parts[0].PartName)
	assert.Equal(t, int64(7), parts[0].PartID)
	assert.Zero(t, parts[0].WeightKg)
	assert.Equal(t, "ORD-2", parts[1].OrderNumber)
	assert.InDelta(t, 2.5, parts[1].WeightKg, 1e-9)
}

func TestListPartLocations_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"partLocations":[]}}`))
	}, fastRetry)

	parts, err := c.ListPartLocations(context.Background(), []string{"ORD-1"})
	require.NoError(t, err)
	assert.Empty(t, parts)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListPartLocations_StopsAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"status":502,"success":false,"message":"inventory backend unavailable"}`))
	}, RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond})

	_, err := c.ListPartLocations(context.Background(), []string{"ORD-1"})

	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Code)
	assert.Equal(t, "inventory backend unavailable", se.Message)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListPartLocations_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode int
		wantMsg  string
	}{
		{"envelope message", http.StatusNotFound, `{"status":404,"success":false,"message":"order SMO-9 not found"}`, http.StatusNotFound, "order SMO-9 not found"},
		{"plain body", http.StatusNotFound, "unknown order\n", http.StatusNotFound, "unknown order"},
		{"success false on 200", http.StatusOK, `{"status":409,"success":false,"message":"order already picked"}`, http.StatusConflict, "order already picked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, fastRetry)

			_, err := c.ListPartLocations(context.Background(), []string{"SMO-9"})

			var se *ServerError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.wantCode, se.Code)
			assert.Equal(t, tt.wantMsg, se.Message)
			assert.Equal(t, int32(1), calls.Load(), "client errors are not retried")
		})
	}
}

func TestListPartLocations_MissingData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":200,"success":true,"message":"ok"}`))
	}, fastRetry)

	_, err := c.ListPartLocations(context.Background(), []string{"ORD-1"})
	assert.ErrorContains(t, err, "no data")
}

func TestListPartLocations_CanceledContext(t *testing.T) {
	c, err := New("http://127.0.0.1:1", DefaultRetryPolicy())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.ListPartLocations(ctx, []string{"ORD-1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Validation(t *testing.T) {
	_, err := New("  ", DefaultRetryPolicy())
	assert.Error(t, err)

	_, err = New("http://orders", RetryPolicy{MaxAttempts: 0})
	assert.Error(t, err)

	_, err = New("http://orders", RetryPolicy{MaxAttempts: 1, Backoff: -time.Second})
	assert.Error(t, err)
}
