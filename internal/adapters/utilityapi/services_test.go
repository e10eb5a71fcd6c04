package utilityapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/utilityapi-cli/internal/domain"
)

func TestServicesListForAccountUsesQuery(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("accounts"))
		_, _ = w.Write([]byte(`[{"uid":"7","account_uid":"42"}]`))
	}))

	services, err := client.Services.ListForAccount(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, domain.AccountUID("42"), services[0].AccountUID)
}

func TestServicesListForUnknownAccountIsInternalServerError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Services.ListForAccount(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrInternalServerError)
}

func TestServicesBillsDecodesBreakdown(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services/7/bills", r.URL.Path)
		_, _ = w.Write([]byte(`[{"service_uid":"7","bill_total":10.5,"bill_total_kWh":120,"bill_breakdown":{"energy":8.5,"fees":2}}]`))
	}))

	bills, err := client.Services.Bills(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, 120.0, bills[0].TotalKWh)
	assert.Equal(t, domain.BillBreakdown{{Name: "energy", Amount: 8.5}, {Name: "fees", Amount: 2}}, bills[0].Breakdown)
}

func TestServicesBillsEmptyIsNotNil(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	bills, err := client.Services.Bills(context.Background(), "7")
	require.NoError(t, err)
	assert.NotNil(t, bills)
	assert.Empty(t, bills)
}

func TestServicesBillRawEscapesFilename(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services/7/bills/june 2015.pdf", r.URL.Path)
		assert.Equal(t, "/api/services/7/bills/june%202015.pdf", r.URL.EscapedPath())
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))

	data, err := client.Services.BillRaw(context.Background(), "7", "june 2015.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestServicesBillsArchive(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services/7/bills.zip", r.URL.Path)
		_, _ = w.Write([]byte("PK"))
	}))

	data, err := client.Services.BillsArchive(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data)
}

func TestServicesIntervals(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services/7/intervals", r.URL.Path)
		_, _ = w.Write([]byte(`[{"service_uid":"7","interval_kWh":1.5,"interval_kW":6,"interval_start":"2015-01-01T00:00:00Z","interval_end":"2015-01-01T00:15:00Z"}]`))
	}))

	intervals, err := client.Services.Intervals(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, 1.5, intervals[0].KWh)
	assert.Equal(t, 15*60.0, intervals[0].Duration().Seconds())
}

func TestServicesReset(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services/7/reset", r.URL.Path)
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"code":"abc"}`))
			return
		}
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "abc", payload["code"])
		_, _ = w.Write([]byte(`{"success":true,"service_uid":"7"}`))
	}))

	code, err := client.Services.ResetCode(context.Background(), "7")
	require.NoError(t, err)

	result, err := client.Services.Reset(context.Background(), "7", code)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.ServiceUID("7"), result.ServiceUID)
}
