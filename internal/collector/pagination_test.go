package collector

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPageCursor_Properties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     int
		limit     int
		wantPages int
	}{
		{name: "single page", total: 3, limit: 500, wantPages: 1},
		{name: "exact multiple", total: 6, limit: 2, wantPages: 2},
		{name: "uneven", total: 10, limit: 3, wantPages: 2},
		{name: "limit one", total: 5, limit: 1, wantPages: 2},
		{name: "empty", total: 0, limit: 10, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)

			var offsets []int
			httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
				q := req.URL.Query()
				off, err := strconv.Atoi(q.Get("offset"))
				require.NoError(t, err)
				assert.Equal(t, strconv.Itoa(tt.limit), q.Get("limit"))
				assert.Equal(t, "AAPL", q.Get("symbols"))
				offsets = append(offsets, off)
				return jsonResponse(http.StatusOK, `{"pagination":{"total":`+strconv.Itoa(tt.total)+`},"data":[]}`), nil
			}).AnyTimes()

			cur := NewPageCursor(httpClient, "http://marketstack.test/v1/eod", url.Values{"symbols": {"AAPL"}}, tt.limit)
			assert.Equal(t, -1, cur.Total(), "total is unknown before the first page")

			for cur.Next(context.Background()) {
				assert.Equal(t, tt.total, cur.Total())
			}
			require.NoError(t, cur.Err())

			assert.Equal(t, tt.wantPages, cur.Pages())
			require.Len(t, offsets, tt.wantPages)
			maxCalls := (tt.total + tt.limit - 1) / tt.limit
			if maxCalls < 1 {
				maxCalls = 1
			}
			assert.LessOrEqual(t, len(offsets), maxCalls)
			assert.Equal(t, 0, offsets[0])
			for i := 1; i < len(offsets); i++ {
				assert.Greater(t, offsets[i], offsets[i-1], "offsets strictly increase")
			}

			// Exhausted cursors issue no further requests.
			assert.False(t, cur.Next(context.Background()))
			assert.Len(t, offsets, tt.wantPages)
		})
	}
}

func TestPageCursor_DoesNotMutateParams(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusOK, `{"pagination":{"total":1},"data":[{"symbol":"AAPL"}]}`), nil)

	params := url.Values{"symbols": {"AAPL"}}
	cur := NewPageCursor(httpClient, "http://marketstack.test/v1/eod", params, 10)
	require.True(t, cur.Next(context.Background()))
	assert.Len(t, cur.Page(), 1)
	assert.Equal(t, "AAPL", cur.Page()[0].Get("symbol").String())
	assert.False(t, cur.Next(context.Background()))
	assert.Nil(t, cur.Page())

	assert.Equal(t, url.Values{"symbols": {"AAPL"}}, params)
}

func TestPageCursor_StopsOnError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusOK, `not json`), nil).Times(1)

	cur := NewPageCursor(httpClient, "http://marketstack.test/v1/eod", nil, 10)
	assert.False(t, cur.Next(context.Background()))
	assert.ErrorIs(t, cur.Err(), ErrMalformedResponse)
	assert.False(t, cur.Next(context.Background()))
	assert.Equal(t, 0, cur.Pages())
}
