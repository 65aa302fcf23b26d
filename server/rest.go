package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/truckscope/pkg/domain"
	"github.com/umputun/truckscope/pkg/reconcile"
	"github.com/umputun/truckscope/pkg/repository"
	"github.com/umputun/truckscope/pkg/tracker"
)

const (
	defaultActivityLimit = 100
	maxActivityLimit     = 1000
	maxBatchVendors      = 50
)

// parseRequest is the body of the parse-only endpoint
type parseRequest struct {
	Text     string `json:"text"`
	VendorID string `json:"vendor_id,omitempty"`
}

// processRequest is the body of the process-with-logging endpoint
type processRequest struct {
	VendorID string            `json:"vendor_id"`
	Posts    []domain.Post     `json:"posts"`
	Existing []domain.Schedule `json:"existing_schedules,omitempty"` // loaded from the store when omitted
	Persist  bool              `json:"persist,omitempty"`
}

// batchRequest is the body of the batch crawl endpoint
type batchRequest struct {
	Vendors []tracker.Request `json:"vendors"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":         "ok",
		"version":        s.version,
		"time":           s.now().UTC(),
		"min_confidence": s.tracker.MinConfidence(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// crawlHandler crawls a single vendor described by the request body and persists the outcome
func (s *Server) crawlHandler(w http.ResponseWriter, r *http.Request) {
	var req tracker.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if req.VendorID == "" {
		renderError(w, r, errors.New("vendor_id is required"), http.StatusBadRequest)
		return
	}

	res, err := s.scheduler.Crawl(r.Context(), req)
	if err != nil {
		log.Printf("[WARN] failed to crawl vendor %s: %v", req.VendorID, err)
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// crawlBatchHandler crawls the listed vendors sequentially, failures are reported per vendor
func (s *Server) crawlBatchHandler(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if len(req.Vendors) == 0 {
		renderError(w, r, errors.New("vendors list is empty"), http.StatusBadRequest)
		return
	}
	if len(req.Vendors) > maxBatchVendors {
		renderError(w, r, fmt.Errorf("too many vendors, max %d", maxBatchVendors), http.StatusBadRequest)
		return
	}
	for i, v := range req.Vendors {
		if v.VendorID == "" {
			renderError(w, r, fmt.Errorf("vendors[%d]: vendor_id is required", i), http.StatusBadRequest)
			return
		}
	}

	renderJSON(w, r, http.StatusOK, s.scheduler.CrawlRequests(r.Context(), req.Vendors))
}

// crawlAllHandler crawls every enabled vendor
func (s *Server) crawlAllHandler(w http.ResponseWriter, r *http.Request) {
	rep, err := s.scheduler.CrawlAll(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to crawl vendors: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rep)
}

// crawlVendorHandler crawls a stored vendor immediately
func (s *Server) crawlVendorHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	res, err := s.scheduler.CrawlVendorNow(r.Context(), id)
	if err != nil {
		log.Printf("[WARN] failed to crawl vendor %s: %v", id, err)
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// parseHandler parses text without crawling or storing anything
func (s *Server) parseHandler(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		renderError(w, r, errors.New("text is required"), http.StatusBadRequest)
		return
	}
	renderJSON(w, r, http.StatusOK, s.tracker.ParseText(req.Text, req.VendorID))
}

// processHandler reconciles posts given in the body and returns schedules with their activity entries
func (s *Server) processHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if req.VendorID == "" {
		renderError(w, r, errors.New("vendor_id is required"), http.StatusBadRequest)
		return
	}

	if req.Existing == nil {
		existing, err := s.db.GetSchedules(ctx, req.VendorID, "", "")
		if err != nil {
			log.Printf("[ERROR] failed to get schedules of %s: %v", req.VendorID, err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
		req.Existing = existing
	}

	batch := s.tracker.ProcessPosts(req.Posts, req.VendorID, req.Existing)
	if req.Persist {
		if err := s.db.SaveCrawl(ctx, batch.Schedules, batch.ActivityLogs); err != nil {
			log.Printf("[ERROR] failed to save processed posts of %s: %v", req.VendorID, err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
	}
	renderJSON(w, r, http.StatusOK, batch)
}

// schedulesHandler returns stored schedules filtered by vendor, date range and confidence.
// With review=true only schedules in the manual review band are returned.
func (s *Server) schedulesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			renderError(w, r, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", d), http.StatusBadRequest)
			return
		}
	}
	if from != "" && to != "" && from > to {
		renderError(w, r, errors.New("from is after to"), http.StatusBadRequest)
		return
	}

	schedules, err := s.db.GetSchedules(r.Context(), q.Get("vendor_id"), from, to)
	if err != nil {
		log.Printf("[ERROR] failed to get schedules: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	if v := q.Get("min_confidence"); v != "" {
		minConf, err := strconv.ParseFloat(v, 64)
		if err != nil || minConf < 0 || minConf > 1 {
			renderError(w, r, fmt.Errorf("invalid min_confidence %q", v), http.StatusBadRequest)
			return
		}
		schedules = reconcile.FilterByConfidence(schedules, minConf)
	}
	if q.Get("review") == "true" {
		schedules = reconcile.ForManualReview(schedules, reconcile.ReviewMinConfidence, reconcile.ReviewMaxConfidence)
	}
	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	renderJSON(w, r, http.StatusOK, schedules)
}

// analyticsHandler returns aggregated activity analytics of a vendor
func (s *Server) analyticsHandler(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")
	res, err := s.db.Analytics(r.Context(), vendorID)
	if err != nil {
		log.Printf("[ERROR] failed to get analytics of %s: %v", vendorID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// listActivityHandler returns activity entries, newest first
func (s *Server) listActivityHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.ActivityFilter{VendorID: q.Get("vendor_id"), Source: q.Get("source"), Limit: defaultActivityLimit}
	if v := q.Get("action"); v != "" {
		action, ok := domain.ParseAction(v)
		if !ok {
			renderError(w, r, fmt.Errorf("unknown action %q", v), http.StatusBadRequest)
			return
		}
		f.Action = action
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			renderError(w, r, fmt.Errorf("invalid limit %q", v), http.StatusBadRequest)
			return
		}
		f.Limit = min(limit, maxActivityLimit)
	}

	logs, err := s.db.ListActivities(r.Context(), f)
	if err != nil {
		log.Printf("[ERROR] failed to list activity: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []domain.ActivityLog{}
	}
	renderJSON(w, r, http.StatusOK, logs)
}

// createActivityHandler stores an activity entry, id and timestamp are assigned when missing
func (s *Server) createActivityHandler(w http.ResponseWriter, r *http.Request) {
	var entry domain.ActivityLog
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if entry.VendorID == "" {
		renderError(w, r, errors.New("vendor_id is required"), http.StatusBadRequest)
		return
	}
	if _, ok := domain.ParseAction(string(entry.Action)); !ok {
		renderError(w, r, fmt.Errorf("unknown action %q", entry.Action), http.StatusBadRequest)
		return
	}
	if entry.ConfidenceScore < 0 || entry.ConfidenceScore > 1 {
		renderError(w, r, fmt.Errorf("confidence_score %v: %w", entry.ConfidenceScore, domain.ErrInvalidConfidence),
			http.StatusBadRequest)
		return
	}

	if err := s.db.CreateActivity(r.Context(), &entry); err != nil {
		log.Printf("[ERROR] failed to create activity: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusCreated, entry)
}

// getActivityHandler returns a single activity entry
func (s *Server) getActivityHandler(w http.ResponseWriter, r *http.Request) {
	entry, err := s.db.GetActivity(r.Context(), r.PathValue("id"))
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, entry)
}

// deleteActivityHandler deletes a single activity entry
func (s *Server) deleteActivityHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteActivity(r.Context(), r.PathValue("id")); err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listVendorsHandler returns tracked vendors, enabled=true limits to enabled ones
func (s *Server) listVendorsHandler(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.db.GetVendors(r.Context(), r.URL.Query().Get("enabled") == "true")
	if err != nil {
		log.Printf("[ERROR] failed to get vendors: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if vendors == nil {
		vendors = []domain.Vendor{}
	}
	renderJSON(w, r, http.StatusOK, vendors)
}

// getVendorHandler returns a single vendor
func (s *Server) getVendorHandler(w http.ResponseWriter, r *http.Request) {
	v, err := s.db.GetVendor(r.Context(), r.PathValue("id"))
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, v)
}

// createVendorHandler adds a vendor to track, enabled unless the body says otherwise
func (s *Server) createVendorHandler(w http.ResponseWriter, r *http.Request) {
	v := domain.Vendor{Enabled: true}
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(v.Name) == "" {
		renderError(w, r, errors.New("name is required"), http.StatusBadRequest)
		return
	}

	if err := s.db.CreateVendor(r.Context(), &v); err != nil {
		log.Printf("[ERROR] failed to create vendor %s: %v", v.Name, err)
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			code = http.StatusConflict
		}
		renderError(w, r, err, code)
		return
	}
	renderJSON(w, r, http.StatusCreated, v)
}

// minConfidenceHandler changes the acceptance threshold at runtime and stores it
func (s *Server) minConfidenceHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MinConfidence *float64 `json:"min_confidence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if req.MinConfidence == nil {
		renderError(w, r, errors.New("min_confidence is required"), http.StatusBadRequest)
		return
	}

	if err := s.tracker.SetMinConfidence(*req.MinConfidence); err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	if err := s.db.SetMinConfidence(r.Context(), *req.MinConfidence); err != nil {
		log.Printf("[WARN] failed to store min confidence: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	log.Printf("[INFO] min confidence changed to %.2f", *req.MinConfidence)
	renderJSON(w, r, http.StatusOK, map[string]float64{"min_confidence": s.tracker.MinConfidence()})
}

// errorCode maps configuration errors to 400 and missing records to 404
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery), errors.Is(err, domain.ErrInvalidConfidence):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
