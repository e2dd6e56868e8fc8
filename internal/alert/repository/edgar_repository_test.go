package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"golang-investment-alert/internal/alert/config"
	"golang-investment-alert/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const edgarListingHTML = `<html><body><table>
<tr><th>Form</th><th>Company</th><th>CIK</th><th>Date Filed</th><th>File Number</th></tr>
<tr>
  <td>13F-HR</td>
  <td><a href="/cgi-bin/browse-edgar?action=getcompany&amp;CIK=0001">BERKSHIRE HATHAWAY INC</a></td>
  <td>0001</td>
  <td>2026-08-28</td>
  <td>028-00001</td>
</tr>
<tr>
  <td>13F-HR</td>
  <td>NO LINK CAPITAL LP</td>
  <td>0002</td>
  <td>2026-08-27</td>
  <td>028-00002</td>
</tr>
<tr><td>too</td><td>few</td><td>columns</td></tr>
</table></body></html>`

func newEdgarRepo(baseURL string) EdgarRepository {
	cfg := &config.Config{}
	cfg.Edgar.BaseURL = baseURL
	cfg.Edgar.MaxRequestPerMinute = 600
	return NewEdgarRepository(cfg, logger.NewNop())
}

func TestGetRecentFilings(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "getcurrent", r.URL.Query().Get("action"))
		assert.Equal(t, "13F-HR", r.URL.Query().Get("type"))
		assert.Equal(t, "10", r.URL.Query().Get("count"))
		fmt.Fprint(w, edgarListingHTML)
	}))
	defer srv.Close()

	repo := newEdgarRepo(srv.URL)

	filings, err := repo.GetRecentFilings(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, filings, 2, "header and short rows must be skipped")

	assert.Equal(t, "2026-08-28", filings[0].Date)
	assert.Contains(t, filings[0].Company, "BERKSHIRE HATHAWAY INC")
	assert.Equal(t, srv.URL+"/cgi-bin/browse-edgar?action=getcompany&CIK=0001", filings[0].Link)

	assert.Equal(t, "NO LINK CAPITAL LP", filings[1].Company)
	assert.Empty(t, filings[1].Link, "rows without an anchor keep an empty link")

	// second call for the same listing is served from the cache
	_, err = repo.GetRecentFilings(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())
}

func TestGetRecentInsiderTrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "form4", r.URL.Query().Get("type"))
		fmt.Fprint(w, edgarListingHTML)
	}))
	defer srv.Close()

	trades, err := newEdgarRepo(srv.URL).GetRecentInsiderTrades(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "2026-08-28", trades[0].Date)
	assert.Contains(t, trades[0].Filer, "BERKSHIRE HATHAWAY INC")
}

func TestGetRecentFilingsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newEdgarRepo(srv.URL).GetRecentFilings(context.Background(), 10)
	assert.Error(t, err)
}
