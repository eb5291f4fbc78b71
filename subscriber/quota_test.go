package subscriber

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockLogService for testing
type mockLogService struct {
	filters map[string][]SubscriptionFilter
	err     error
	calls   []string
}

func (m *mockLogService) ListSubscriptionFilters(ctx context.Context, logGroupName string) ([]SubscriptionFilter, error) {
	m.calls = append(m.calls, logGroupName)
	if m.err != nil {
		return nil, m.err
	}
	return m.filters[logGroupName], nil
}

func TestQuotaEnforcer_CanSubscribe(t *testing.T) {
	const prefix = "payments-dev-FooLogGroupSubscription-"

	tests := []struct {
		name         string
		filters      []SubscriptionFilter
		err          error
		wantAllowed  bool
		wantExisting int
	}{
		{
			name:        "no existing filters",
			wantAllowed: true,
		},
		{
			name: "one foreign filter leaves room",
			filters: []SubscriptionFilter{
				{FilterName: "someone-else"},
			},
			wantAllowed:  true,
			wantExisting: 1,
		},
		{
			name: "two foreign filters hit the quota",
			filters: []SubscriptionFilter{
				{FilterName: "someone-else"},
				{FilterName: "another-system"},
			},
			wantAllowed:  false,
			wantExisting: 2,
		},
		{
			name: "own filter at the quota still allows",
			filters: []SubscriptionFilter{
				{FilterName: prefix + "abc123"},
				{FilterName: "someone-else"},
			},
			wantAllowed:  true,
			wantExisting: 2,
		},
		{
			name:        "query failure counts as zero filters",
			err:         errors.New("log group does not exist"),
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &mockLogService{
				filters: map[string][]SubscriptionFilter{"/aws/lambda/foo": tt.filters},
				err:     tt.err,
			}
			enforcer := NewQuotaEnforcer(logs)

			allowed, existing := enforcer.CanSubscribe(context.Background(), "/aws/lambda/foo", prefix)
			assert.Equal(t, tt.wantAllowed, allowed)
			assert.Equal(t, tt.wantExisting, existing)
		})
	}
}
