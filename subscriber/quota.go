package subscriber

import (
	"context"
	"strings"
)

// maxSubscriptionFilters is the external per-log-group quota enforced
// by the log service
const maxSubscriptionFilters = 2

// QuotaEnforcer decides whether a log group can take one more
// subscription filter without breaching the external quota
type QuotaEnforcer struct {
	logs LogService
}

// NewQuotaEnforcer creates a quota enforcer backed by the log service
func NewQuotaEnforcer(logs LogService) *QuotaEnforcer {
	return &QuotaEnforcer{logs: logs}
}

// CanSubscribe queries the filters currently attached to the log group.
// A query failure usually means the log group does not exist yet, so it
// counts as zero existing filters rather than an error. A filter whose
// name carries our expected prefix is ours from a previous pass and
// will be superseded, so it always allows. Otherwise the fixed quota
// applies. Returns the decision and the observed filter count.
func (q *QuotaEnforcer) CanSubscribe(ctx context.Context, logGroupName, filterPrefix string) (bool, int) {
	filters, err := q.logs.ListSubscriptionFilters(ctx, logGroupName)
	if err != nil {
		return true, 0
	}

	for _, filter := range filters {
		if strings.HasPrefix(filter.FilterName, filterPrefix) {
			return true, len(filters)
		}
	}

	return len(filters) < maxSubscriptionFilters, len(filters)
}
