package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sentinellock/sentinel-web/internal/bounded"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/observability/metrics"
	"github.com/sentinellock/sentinel-web/internal/observability/statsd"
	"github.com/sentinellock/sentinel-web/internal/ports"
	"github.com/sentinellock/sentinel-web/internal/util"
)

const (
	defaultAttemptTimeout = 8 * time.Second
	// PendingStorageKey is the local-store key holding the pending envelope.
	PendingStorageKey = "pendingContactSubmissions"
)

// SubmissionQueueOptions groups dependencies for SubmissionQueue.
type SubmissionQueueOptions struct {
	Strategies []ports.PersistenceStrategy // Required: ordered, first is primary
	Store      ports.LocalStore            // Required: pending queue storage
	Config     SubmissionQueueConfig
}

// SubmissionQueueConfig holds timeouts and optional observers.
type SubmissionQueueConfig struct {
	AttemptTimeout time.Duration
	StorageKey     string

	Metrics statsd.Sink  // Optional
	Logger  *slog.Logger // Optional
	Now     func() time.Time
	NewID   func() string
}

// SubmissionQueue delivers contact submissions through an ordered strategy chain and
// parks failures in a client-local pending queue for manual retry.
type SubmissionQueue struct {
	strategies []ports.PersistenceStrategy
	store      ports.LocalStore
	cfg        SubmissionQueueConfig
	logger     *slog.Logger

	// mu serializes read-modify-write cycles on the stored envelope.
	mu sync.Mutex
}

// NewSubmissionQueue constructs a SubmissionQueue.
func NewSubmissionQueue(opts SubmissionQueueOptions) *SubmissionQueue {
	if len(opts.Strategies) == 0 {
		panic("SubmissionQueue requires at least one PersistenceStrategy")
	}
	for _, s := range opts.Strategies {
		if s == nil {
			panic("SubmissionQueue strategies must not be nil")
		}
	}
	if opts.Store == nil {
		panic("SubmissionQueue requires a LocalStore")
	}

	cfg := opts.Config
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = defaultAttemptTimeout
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = PendingStorageKey
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = util.NewIDGenerator(cfg.Now).New
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SubmissionQueue{
		strategies: append([]ports.PersistenceStrategy(nil), opts.Strategies...),
		store:      opts.Store,
		cfg:        cfg,
		logger:     logger.With("component", "submission_queue"),
	}
}

// Strategies returns the configured strategy names in attempt order.
func (q *SubmissionQueue) Strategies() []string {
	names := make([]string, len(q.strategies))
	for i, s := range q.strategies {
		names[i] = s.Name()
	}
	return names
}

// Submit validates the submission and tries each strategy in order until one succeeds.
// When every strategy fails the joined error is classified unavailable if any attempt
// failed transiently, so callers can decide to enqueue it.
func (q *SubmissionQueue) Submit(ctx context.Context, sub model.ContactSubmission) (model.SubmitResult, error) {
	sub, err := prepareSubmission(sub)
	if err != nil {
		return model.SubmitResult{}, err
	}

	errs := make([]error, 0, len(q.strategies))
	for _, strategy := range q.strategies {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		attemptErr := q.attempt(ctx, strategy, sub)
		if attemptErr == nil {
			return model.SubmitResult{Strategy: strategy.Name()}, nil
		}
		if apperrors.IsValidation(attemptErr) {
			// The backend rejected the payload itself; other strategies will too.
			return model.SubmitResult{}, attemptErr
		}
		errs = append(errs, fmt.Errorf("%s: %w", strategy.Name(), attemptErr))
	}

	return model.SubmitResult{}, aggregateFailure(errs)
}

// EnqueueLocally appends the submission to the pending queue and returns the stored entry.
func (q *SubmissionQueue) EnqueueLocally(ctx context.Context, sub model.ContactSubmission) (model.PendingSubmission, error) {
	sub, err := prepareSubmission(sub)
	if err != nil {
		return model.PendingSubmission{}, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		return model.PendingSubmission{}, err
	}

	entry := model.PendingSubmission{
		ID:                q.cfg.NewID(),
		ContactSubmission: sub,
		Timestamp:         q.cfg.Now().UTC(),
		Status:            model.PendingStatus,
	}
	entries = append(entries, entry)
	if err := q.save(ctx, entries); err != nil {
		return model.PendingSubmission{}, err
	}

	metrics.EmitQueued(q.cfg.Metrics)
	q.logger.InfoContext(ctx, "submission queued locally", "pending_id", entry.ID, "pending", len(entries))
	return entry, nil
}

// ListPending returns a copy of the queued entries, oldest first.
func (q *SubmissionQueue) ListPending(ctx context.Context) ([]model.PendingSubmission, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.PendingSubmission, len(entries))
	copy(out, entries)
	return out, nil
}

// RetryAll makes one attempt per queued entry with the primary strategy, in insertion
// order. Delivered entries are removed and the rest kept in order with a single write.
// Every failure, conflicts included, keeps the entry.
func (q *SubmissionQueue) RetryAll(ctx context.Context) (model.RetryResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		return model.RetryResult{}, err
	}
	if len(entries) == 0 {
		return model.RetryResult{}, nil
	}

	primary := q.strategies[0]
	remaining := make([]model.PendingSubmission, 0, len(entries))
	var res model.RetryResult
	for _, entry := range entries {
		if ctx.Err() != nil {
			remaining = append(remaining, entry)
			res.Failed++
			continue
		}
		attemptErr := q.attempt(ctx, primary, entry.ContactSubmission)
		if attemptErr != nil {
			q.logger.WarnContext(ctx, "pending submission retry failed",
				"pending_id", entry.ID, "error", attemptErr)
			remaining = append(remaining, entry)
			res.Failed++
			continue
		}
		res.Succeeded++
	}

	// Delivered entries must be dropped even if the caller went away mid-pass,
	// otherwise the next retry sends them again.
	if err := q.save(context.WithoutCancel(ctx), remaining); err != nil {
		return res, err
	}

	metrics.EmitRetry(q.cfg.Metrics, res.Succeeded, res.Failed)
	q.logger.InfoContext(ctx, "pending retry finished", "succeeded", res.Succeeded, "failed", res.Failed)
	return res, nil
}

// ClearAll drops every pending entry. Clearing an empty queue succeeds.
func (q *SubmissionQueue) ClearAll(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.store.Delete(ctx, q.cfg.StorageKey); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear pending submissions")
	}
	return nil
}

// SubmitOrEnqueue submits and, when the failure is transient, parks the submission
// locally instead of surfacing the error.
func (q *SubmissionQueue) SubmitOrEnqueue(ctx context.Context, sub model.ContactSubmission) (model.SubmitOutcome, error) {
	res, err := q.Submit(ctx, sub)
	if err == nil {
		return model.SubmitOutcome{Strategy: res.Strategy}, nil
	}
	if !apperrors.IsRetryable(err) {
		return model.SubmitOutcome{}, err
	}

	q.logger.WarnContext(ctx, "submission failed transiently; queueing locally", "error", err)
	// The caller's context may be the one that just expired.
	entry, enqueueErr := q.EnqueueLocally(context.WithoutCancel(ctx), sub)
	if enqueueErr != nil {
		return model.SubmitOutcome{}, errors.Join(err, enqueueErr)
	}
	return model.SubmitOutcome{Queued: true, PendingID: entry.ID}, nil
}

func (q *SubmissionQueue) attempt(ctx context.Context, strategy ports.PersistenceStrategy, sub model.ContactSubmission) error {
	start := q.cfg.Now()
	err := bounded.Do(ctx, "submission "+strategy.Name(), q.cfg.AttemptTimeout, func(c context.Context) error {
		return strategy.Persist(c, sub)
	})

	result := metrics.ResultSuccess
	switch {
	case err == nil:
	case apperrors.IsTimeout(err):
		result = metrics.ResultTimeout
	default:
		result = metrics.ResultError
	}
	metrics.EmitSubmissionAttempt(q.cfg.Metrics, metrics.AttemptMetric{
		Strategy: strategy.Name(),
		Result:   result,
		Duration: q.cfg.Now().Sub(start),
		Err:      err,
	})
	if err != nil {
		q.logger.DebugContext(ctx, "submission attempt failed", "strategy", strategy.Name(), "error", err)
	}
	return err
}

// load reads the stored envelope. Content that cannot be understood is treated as an
// empty queue; store failures are returned.
func (q *SubmissionQueue) load(ctx context.Context) ([]model.PendingSubmission, error) {
	raw, ok, err := q.store.Get(ctx, q.cfg.StorageKey)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read pending submissions")
	}
	raw = bytes.TrimSpace(raw)
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	entries, err := decodeEnvelope(raw)
	if err != nil {
		q.logger.WarnContext(ctx, "discarding unreadable pending queue", "error", err)
		return nil, nil
	}
	assigned := false
	for i := range entries {
		// Older clients stored blank optional fields as empty strings.
		entries[i].ContactSubmission = entries[i].ContactSubmission.Normalize()
		if entries[i].ID == "" {
			entries[i].ID = q.cfg.NewID()
			assigned = true
		}
		if entries[i].Status == "" {
			entries[i].Status = model.PendingStatus
		}
	}
	if assigned {
		// Persist the new ids so the same entry keeps its address across reads.
		if err := q.save(context.WithoutCancel(ctx), entries); err != nil {
			q.logger.WarnContext(ctx, "could not persist upgraded pending queue", "error", err)
		}
	}
	return entries, nil
}

func (q *SubmissionQueue) save(ctx context.Context, entries []model.PendingSubmission) error {
	if entries == nil {
		entries = []model.PendingSubmission{}
	}
	raw, err := json.Marshal(model.PendingEnvelope{Version: model.PendingEnvelopeVersion, Entries: entries})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode pending submissions")
	}
	if err := q.store.Set(ctx, q.cfg.StorageKey, raw); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "write pending submissions")
	}
	return nil
}

// decodeEnvelope accepts the versioned envelope and the older bare array layout.
func decodeEnvelope(raw []byte) ([]model.PendingSubmission, error) {
	if raw[0] == '[' {
		var legacy []model.PendingSubmission
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, fmt.Errorf("decode legacy queue: %w", err)
		}
		return legacy, nil
	}

	var env model.PendingEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode queue envelope: %w", err)
	}
	if env.Version > model.PendingEnvelopeVersion {
		return nil, fmt.Errorf("unsupported queue version %d", env.Version)
	}
	return env.Entries, nil
}

func prepareSubmission(sub model.ContactSubmission) (model.ContactSubmission, error) {
	sub = sub.Normalize()
	return sub, validationError(sub.Validate())
}

func aggregateFailure(errs []error) error {
	joined := errors.Join(errs...)
	if joined == nil {
		return apperrors.Internal("no submission strategy attempted")
	}
	if apperrors.IsRetryable(joined) {
		return apperrors.Wrap(joined, apperrors.ErrCodeUnavailable, "could not deliver submission")
	}
	return apperrors.Wrap(joined, apperrors.ErrCodeInternal, "could not deliver submission")
}
