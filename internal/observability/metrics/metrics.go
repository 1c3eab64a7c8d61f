package metrics

import (
	"time"

	obserrors "github.com/sentinellock/sentinel-web/internal/observability/errors"
	"github.com/sentinellock/sentinel-web/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultTimeout = "timeout"
)

// Metric names.
const (
	SubmissionAttempt = "submission.attempt"
	SubmissionQueued  = "submission.queued"
	SubmissionRetry   = "submission.retry"
	AuthRoleCheck     = "auth.role_check"
)

// AttemptMetric describes one persistence attempt.
type AttemptMetric struct {
	Strategy string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitSubmissionAttempt records the outcome and latency of a persistence attempt.
func EmitSubmissionAttempt(sink statsd.Sink, in AttemptMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"strategy": in.Strategy,
		"result":   in.Result,
	}
	if in.Err != nil && in.Result != ResultSuccess {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count(SubmissionAttempt, 1, tags)
	if in.Duration > 0 {
		sink.Timing(SubmissionAttempt+".duration", in.Duration, CloneTags(tags))
	}
}

// EmitQueued counts a submission parked in the local pending queue.
func EmitQueued(sink statsd.Sink) {
	if sink == nil {
		return
	}
	sink.Count(SubmissionQueued, 1, nil)
}

// EmitRetry records a retry pass over the pending queue.
func EmitRetry(sink statsd.Sink, succeeded, failed int) {
	if sink == nil {
		return
	}
	sink.Count(SubmissionRetry, int64(succeeded), map[string]string{"result": ResultSuccess})
	sink.Count(SubmissionRetry, int64(failed), map[string]string{"result": ResultError})
	sink.Gauge("submission.pending", float64(failed), nil)
}

// EmitRoleCheck records an admin role lookup.
func EmitRoleCheck(sink statsd.Sink, result string, granted bool, d time.Duration) {
	if sink == nil {
		return
	}
	tags := map[string]string{"result": result, "granted": boolTag(granted)}
	sink.Count(AuthRoleCheck, 1, tags)
	if d > 0 {
		sink.Timing(AuthRoleCheck+".duration", d, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
