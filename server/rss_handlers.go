package server

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/umputun/truckscope/pkg/feed"
)

const maxFeedDays = 90

// rssHandler serves schedule feed of upcoming stops.
// Supports both /rss/{vendorID} and /rss?vendor=... patterns, no vendor means all vendors.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vendorID := r.PathValue("vendorID")
	if vendorID == "" {
		vendorID = r.URL.Query().Get("vendor")
	}

	baseURL, days := s.config.GetFeedConfig()
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 {
			days = min(d, maxFeedDays)
		}
	}

	today := s.now()
	from := today.Format(time.DateOnly)
	to := today.AddDate(0, 0, days).Format(time.DateOnly)
	schedules, err := s.db.GetSchedules(ctx, vendorID, from, to)
	if err != nil {
		log.Printf("[ERROR] failed to get schedules for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	vendors, err := s.db.GetVendors(ctx, false)
	if err != nil {
		log.Printf("[ERROR] failed to get vendors for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}
	names := make(map[string]string, len(vendors))
	for _, v := range vendors {
		names[v.ID] = v.Name
	}

	rss, err := feed.NewGenerator(baseURL).GenerateRSS(schedules, names, vendorID)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler serves OPML with schedule feeds of enabled vendors
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.db.GetVendors(r.Context(), true)
	if err != nil {
		log.Printf("[ERROR] failed to get vendors for OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	baseURL, _ := s.config.GetFeedConfig()
	opml, err := feed.NewGenerator(baseURL).GenerateOPML(vendors)
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
