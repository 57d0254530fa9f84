package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/domain"
	"backend/internal/service"
)

func TestParseDateAcceptsBothLayouts(t *testing.T) {
	plain, err := parseDate("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), plain)

	stamped, err := parseDate("2026-03-05T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC), stamped)

	_, err = parseDate("05/03/2026")
	assert.Error(t, err)
}

func TestParseUUIDRejectsGarbage(t *testing.T) {
	_, err := parseUUID("not-a-uuid")
	assert.Error(t, err)
}

func TestParseReportFilter(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/reports/goods?"+url.Values{
		"range":     {"custom"},
		"startDate": {"2026-01-01"},
		"endDate":   {"2026-02-01"},
		"search":    {"fabric"},
	}.Encode(), nil)

	filter, err := parseReportFilter(r)
	require.NoError(t, err)
	assert.Equal(t, "custom", filter.Range)
	require.NotNil(t, filter.CustomStart)
	require.NotNil(t, filter.CustomEnd)
	assert.Equal(t, "fabric", filter.Search)

	bad := httptest.NewRequest(http.MethodGet, "/reports/goods?startDate=soon", nil)
	_, err = parseReportFilter(bad)
	assert.Error(t, err)
}

func TestWriteServiceErrorMapsStatusCodes(t *testing.T) {
	h := &Handler{}

	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: bad input", service.ErrInvalid), http.StatusBadRequest},
		{fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.writeServiceError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}
