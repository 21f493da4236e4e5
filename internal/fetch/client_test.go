package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, 5*time.Second, 3, nil)
	c.retryDelay = time.Millisecond
	return c
}

func TestClientMETAR(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/metar", r.URL.Path)
		assert.Equal(t, "KJFK", r.URL.Query().Get("ids"))
		assert.Equal(t, "raw", r.URL.Query().Get("format"))
		w.Write([]byte("KJFK 151751Z 18004KT 10SM FEW055 23/17 A3012\nKJFK 151651Z 17005KT 10SM FEW055 23/17 A3013\n"))
	}))

	raw, err := c.METAR(context.Background(), "kjfk")
	require.NoError(t, err)
	assert.Equal(t, "KJFK 151751Z 18004KT 10SM FEW055 23/17 A3012", raw)
}

func TestClientMETAR_noData(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\n"))
	}))

	_, err := c.METAR(context.Background(), "KJFK")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestClientTAF_multiline(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/taf", r.URL.Path)
		w.Write([]byte("TAF KJFK 041130Z 0412/0518 18005KT P6SM SCT050\n  FM050000 28015G25KT P6SM SCT050\nTAF KLGA 041130Z 0412/0518 20008KT P6SM BKN060\n"))
	}))

	raw, err := c.TAF(context.Background(), "KJFK")
	require.NoError(t, err)
	assert.Equal(t, "TAF KJFK 041130Z 0412/0518 18005KT P6SM SCT050\nFM050000 28015G25KT P6SM SCT050", raw)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("KJFK 151751Z 18004KT 10SM FEW055 23/17 A3012"))
	}))

	raw, err := c.METAR(context.Background(), "KJFK")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.NotEmpty(t, raw)
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.METAR(context.Background(), "KJFK")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClientGivesUpAfterRetries(t *testing.T) {
	var calls int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.METAR(context.Background(), "KJFK")
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestSplitTAFBlocks(t *testing.T) {
	t.Parallel()

	text := "TAF KJFK 041130Z 0412/0518 18005KT\n  FM050000 28015KT\nTAF AMD KBOS 041200Z 0412/0518 20010KT\n"
	blocks := SplitTAFBlocks(text)
	require.Len(t, blocks, 2)
	assert.Equal(t, "TAF KJFK 041130Z 0412/0518 18005KT\nFM050000 28015KT", blocks[0])
	assert.Equal(t, "TAF AMD KBOS 041200Z 0412/0518 20010KT", blocks[1])

	assert.Empty(t, SplitTAFBlocks(""))
}
