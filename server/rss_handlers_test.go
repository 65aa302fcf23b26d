package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/truckscope/pkg/domain"
	"github.com/umputun/truckscope/server/mocks"
)

func TestServer_rssHandler(t *testing.T) {
	db := &mocks.DatabaseMock{
		GetSchedulesFunc: func(ctx context.Context, vendorID, from, to string) ([]domain.Schedule, error) {
			return []domain.Schedule{schedule("taco", "2025-09-05", 0.9)}, nil
		},
		GetVendorsFunc: func(ctx context.Context, enabledOnly bool) ([]domain.Vendor, error) {
			return []domain.Vendor{{ID: "taco", Name: "Taco Truck", Enabled: true}}, nil
		},
	}
	srv := testServer(t, db, nil, nil)

	t.Run("vendor feed", func(t *testing.T) {
		w := do(srv, "GET", "/rss/taco", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), `<title>Truckscope - Taco Truck</title>`)
		assert.Contains(t, w.Body.String(), `<title>2025-09-05 Central Park, 11:00-14:00</title>`)
		assert.Contains(t, w.Body.String(), `href="https://trucks.example.com/rss/taco"`)

		call := db.GetSchedulesCalls()[len(db.GetSchedulesCalls())-1]
		assert.Equal(t, "taco", call.VendorID)
		assert.Equal(t, "2025-09-03", call.From)
		assert.Equal(t, "2025-09-17", call.To, "14 days ahead by default")
	})

	t.Run("all vendors with custom window", func(t *testing.T) {
		w := do(srv, "GET", "/rss?days=3", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<title>Truckscope - All Vendors</title>`)
		assert.Contains(t, w.Body.String(), `<title>Taco Truck: 2025-09-05 Central Park, 11:00-14:00</title>`)

		call := db.GetSchedulesCalls()[len(db.GetSchedulesCalls())-1]
		assert.Empty(t, call.VendorID)
		assert.Equal(t, "2025-09-06", call.To)
	})

	t.Run("vendor in query and capped window", func(t *testing.T) {
		w := do(srv, "GET", "/rss?vendor=taco&days=1000", "")
		require.Equal(t, http.StatusOK, w.Code)
		call := db.GetSchedulesCalls()[len(db.GetSchedulesCalls())-1]
		assert.Equal(t, "taco", call.VendorID)
		assert.Equal(t, "2025-12-02", call.To)
	})

	t.Run("store error", func(t *testing.T) {
		broken := &mocks.DatabaseMock{
			GetSchedulesFunc: func(context.Context, string, string, string) ([]domain.Schedule, error) {
				return nil, errors.New("locked")
			},
		}
		w := do(testServer(t, broken, nil, nil), "GET", "/rss/taco", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to generate RSS feed")
	})
}

func TestServer_opmlHandler(t *testing.T) {
	db := &mocks.DatabaseMock{
		GetVendorsFunc: func(ctx context.Context, enabledOnly bool) ([]domain.Vendor, error) {
			return []domain.Vendor{{ID: "taco", Name: "Taco Truck", Enabled: true}}, nil
		},
	}
	srv := testServer(t, db, nil, nil)

	w := do(srv, "GET", "/opml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/x-opml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `xmlUrl="https://trucks.example.com/rss/taco"`)
	require.Len(t, db.GetVendorsCalls(), 1)
	assert.True(t, db.GetVendorsCalls()[0].EnabledOnly)
}
