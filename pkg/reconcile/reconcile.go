// Package reconcile classifies schedule candidates against a vendor's known schedules
// as created, updated, rejected or duplicate, and produces an audit entry for every attempt.
package reconcile

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/umputun/truckscope/pkg/domain"
	"github.com/umputun/truckscope/pkg/extract"
)

// DefaultMinConfidence is the acceptance threshold used when nothing else is configured
const DefaultMinConfidence = 0.5

// Outcome of reconciling one candidate
type Outcome string

// reconciliation outcomes
const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeRejected  Outcome = "rejected"
	OutcomeDuplicate Outcome = "duplicate"
)

// Candidate is a parsed post waiting for a decision
type Candidate struct {
	VendorID string
	Parsed   extract.Result
	Text     string
	Platform domain.Platform
	PostID   string
}

// CandidateFromPost parses the post and wraps it as a candidate for vendorID
func CandidateFromPost(post domain.Post, vendorID string) Candidate {
	return Candidate{
		VendorID: vendorID,
		Parsed:   extract.ParsePost(post, vendorID),
		Text:     post.Text,
		Platform: post.Platform,
		PostID:   post.ID,
	}
}

// Result of a single reconciliation. Schedule is nil for rejected candidates.
type Result struct {
	Outcome     Outcome            `json:"outcome"`
	Schedule    *domain.Schedule   `json:"schedule,omitempty"`
	ActivityLog domain.ActivityLog `json:"activity_log"`
	Reason      string             `json:"reason,omitempty"`
}

// Summary counts outcomes of a batch
type Summary struct {
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Rejected   int `json:"rejected"`
	Duplicates int `json:"duplicates"`
}

// Add increments the counter for the outcome
func (s *Summary) Add(o Outcome) {
	switch o {
	case OutcomeCreated:
		s.Created++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeRejected:
		s.Rejected++
	case OutcomeDuplicate:
		s.Duplicates++
	}
}

// BatchResult is the outcome of reconciling a list of posts
type BatchResult struct {
	Schedules    []domain.Schedule    `json:"schedules"`
	ActivityLogs []domain.ActivityLog `json:"activity_logs"`
	Results      []Result             `json:"-"`
	Summary      Summary              `json:"summary"`
}

// Reconciler decides what to do with schedule candidates. Safe for concurrent use.
type Reconciler struct {
	mu            sync.RWMutex
	minConfidence float64

	now   func() time.Time
	newID func() string
}

// New makes a reconciler with the given acceptance threshold, which must be in [0,1]
func New(minConfidence float64) (*Reconciler, error) {
	if err := checkConfidence(minConfidence); err != nil {
		return nil, err
	}
	return &Reconciler{minConfidence: minConfidence, now: time.Now, newID: uuid.NewString}, nil
}

// SetMinConfidence changes acceptance threshold
func (r *Reconciler) SetMinConfidence(v float64) error {
	if err := checkConfidence(v); err != nil {
		return err
	}
	r.mu.Lock()
	r.minConfidence = v
	r.mu.Unlock()
	return nil
}

// MinConfidence returns current acceptance threshold
func (r *Reconciler) MinConfidence() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.minConfidence
}

// ReconcilePost parses the post and reconciles it against existing schedules of vendorID
func (r *Reconciler) ReconcilePost(post domain.Post, vendorID string, existing []domain.Schedule) Result {
	return r.Reconcile(CandidateFromPost(post, vendorID), existing)
}

// Reconcile classifies the candidate against existing schedules.
// Existing schedules are never modified, an update is returned as a new value with the same key.
func (r *Reconciler) Reconcile(c Candidate, existing []domain.Schedule) Result {
	return r.decide(c, func(key domain.ScheduleKey) (domain.Schedule, bool) {
		for _, s := range existing {
			if s.Key() == key {
				return s, true
			}
		}
		return domain.Schedule{}, false
	})
}

// ReconcileMany folds Reconcile over posts sequentially. Schedules accepted earlier in the batch
// take part in later decisions. The returned schedules are unique by identity key and sorted by date.
func (r *Reconciler) ReconcileMany(posts []domain.Post, vendorID string, existing []domain.Schedule) BatchResult {
	known := make(map[domain.ScheduleKey]domain.Schedule, len(existing))
	for _, s := range existing {
		if _, ok := known[s.Key()]; !ok {
			known[s.Key()] = s
		}
	}
	lookup := func(key domain.ScheduleKey) (domain.Schedule, bool) {
		s, ok := known[key]
		return s, ok
	}

	res := BatchResult{Schedules: []domain.Schedule{}, ActivityLogs: make([]domain.ActivityLog, 0, len(posts))}
	touched := map[domain.ScheduleKey]int{} // key to index in res.Schedules
	for _, post := range posts {
		rr := r.decide(CandidateFromPost(post, vendorID), lookup)
		res.Results = append(res.Results, rr)
		res.ActivityLogs = append(res.ActivityLogs, rr.ActivityLog)
		res.Summary.Add(rr.Outcome)
		if rr.Schedule == nil {
			continue
		}
		sch := *rr.Schedule
		known[sch.Key()] = sch
		if idx, ok := touched[sch.Key()]; ok {
			res.Schedules[idx] = sch
			continue
		}
		touched[sch.Key()] = len(res.Schedules)
		res.Schedules = append(res.Schedules, sch)
	}

	res.Schedules = DedupeSchedules(res.Schedules)
	return res
}

// DedupeSchedules drops schedules repeating an identity key, first one wins, and sorts by date
func DedupeSchedules(schedules []domain.Schedule) []domain.Schedule {
	seen := make(map[domain.ScheduleKey]bool, len(schedules))
	res := make([]domain.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if seen[s.Key()] {
			continue
		}
		seen[s.Key()] = true
		res = append(res, s)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Date < res[j].Date })
	return res
}

func (r *Reconciler) decide(c Candidate, lookup func(domain.ScheduleKey) (domain.Schedule, bool)) Result {
	now := r.now()
	minConf := r.MinConfidence()
	log := r.activityLog(c, now)
	conf := c.Parsed.Schedule.Confidence

	if !c.Parsed.Valid || conf < minConf {
		threshold := minConf
		reason := confidenceReason(conf, minConf)
		switch {
		case !c.Parsed.Schedule.HasFields():
			reason = "No date, time or location found"
		case conf < extract.MinValidConfidence && minConf < extract.MinValidConfidence:
			threshold = extract.MinValidConfidence
			reason = confidenceReason(conf, threshold)
		}
		return r.reject(log, reason, threshold)
	}

	candidate, ok := extract.ToSchedule(c.Parsed, c.VendorID, now)
	if !ok {
		return r.reject(log, "Failed to convert parsed data to valid schedule", minConf)
	}

	current, found := lookup(candidate.Key())
	switch {
	case !found:
		log.Action = domain.ActionScheduleDetected
		log.Metadata.ScheduleID = candidate.ID()
		return Result{Outcome: OutcomeCreated, Schedule: &candidate, ActivityLog: log}
	case candidate.Confidence > current.Confidence:
		updated := current
		updated.Confidence = candidate.Confidence
		updated.Source = candidate.Source
		updated.UpdatedAt = now
		log.Action = domain.ActionScheduleUpdated
		log.Metadata.ScheduleID = updated.ID()
		return Result{Outcome: OutcomeUpdated, Schedule: &updated, ActivityLog: log}
	default:
		log.Action = domain.ActionScheduleDetected
		log.Metadata.ScheduleID = current.ID()
		return Result{Outcome: OutcomeDuplicate, Schedule: &current, ActivityLog: log,
			Reason: fmt.Sprintf("Existing schedule has confidence %d%%", percent(current.Confidence))}
	}
}

func (r *Reconciler) reject(log domain.ActivityLog, reason string, threshold float64) Result {
	log.Action = domain.ActionScheduleRejected
	log.Metadata.Reason = reason
	log.Metadata.Threshold = &threshold
	return Result{Outcome: OutcomeRejected, ActivityLog: log, Reason: reason}
}

func (r *Reconciler) activityLog(c Candidate, now time.Time) domain.ActivityLog {
	p := c.Parsed.Schedule
	log := domain.ActivityLog{
		ID:              r.newID(),
		VendorID:        c.VendorID,
		Timestamp:       now,
		Source:          c.Parsed.Source,
		ConfidenceScore: p.Confidence,
		Action:          domain.ActionScheduleDetected,
		Metadata: domain.ActivityMetadata{
			OriginalText: c.Text,
			Platform:     string(c.Platform),
			PostID:       c.PostID,
		},
	}
	if p.HasFields() {
		log.Metadata.ParsedData = &domain.ParsedFragments{Date: p.Date, TimeRange: p.TimeRange, Location: p.Location}
	}
	return log
}

func confidenceReason(conf, threshold float64) string {
	return fmt.Sprintf("Confidence %d%% below threshold %d%%", percent(conf), percent(threshold))
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}

func checkConfidence(v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return fmt.Errorf("%w, got %v", domain.ErrInvalidConfidence, v)
	}
	return nil
}
