package server

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"testing"

	"github.com/jonathan/vendor-insights/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHandleExportXLSX(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	rec := serve(t, srv, http.MethodGet, "/api/export.xlsx?period=90d", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="vendor-insights-90d.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup

	assert.Equal(t, []string{
		export.SheetVendors, export.SheetRoles, export.SheetJobFamilies, export.SheetRateCards, export.SheetRegions,
	}, f.GetSheetList())

	rows, err := f.GetRows(export.SheetVendors)
	require.NoError(t, err)
	assert.Len(t, rows, len(srv.dataset.Vendors)+1)
}

func TestHandleExportCSV(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)
	vendor := srv.dataset.Vendors[0]

	rec := serve(t, srv, http.MethodGet, "/api/export.csv?vendor="+vendor.ID, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeCSV, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="vendor-insights-30d.csv"`, rec.Header().Get("Content-Disposition"))

	// Vendor filters match on name, so an id selects nothing
	records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ID", records[0][0])

	rec = serve(t, srv, http.MethodGet, "/api/export.csv?q="+vendor.Name[:4], "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	records, err = csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(records), 2)
	assert.Equal(t, vendor.ID, records[1][0])
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "vendor-insights-7d.xlsx", exportFilename("export.xlsx", "7d"))
	assert.Equal(t, "vendor-insights-2y.csv", exportFilename("export.csv", "2y"))
}
