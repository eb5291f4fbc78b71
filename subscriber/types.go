package subscriber

import (
	"context"
	"time"

	"github.com/yairfalse/virta/types"
)

// SubscriptionFilter is the remote descriptor reported by the log
// service. Virta only reads these; their lifecycle is external.
type SubscriptionFilter struct {
	FilterName     string
	DestinationArn string
	FilterPattern  string
	LogGroupName   string
	Distribution   string
	RoleArn        string
	CreationTime   time.Time
}

// LogService lists the subscription filters currently attached to a log
// group
type LogService interface {
	ListSubscriptionFilters(ctx context.Context, logGroupName string) ([]SubscriptionFilter, error)
}

// FunctionService answers whether a function identifier names a real,
// deployed function
type FunctionService interface {
	FunctionExists(ctx context.Context, name string) (bool, error)
}

// ExclusionPolicy lets callers veto individual candidates. The engine
// consults it between eligibility and the quota check.
type ExclusionPolicy interface {
	Excluded(ctx context.Context, logicalID, logGroupName string) (bool, string, error)
}

// Input is everything one planning pass needs besides the graph itself
type Input struct {
	// Destination is a literal forwarder ARN or an intrinsic expression
	Destination any

	Extension              bool
	IntegrationTesting     bool
	SubscribeAccessLogs    bool
	SubscribeExecutionLogs bool

	RestAccess         bool
	RestExecution      bool
	HTTPAccess         bool
	WebsocketAccess    bool
	WebsocketExecution bool

	Handlers []types.Handler

	// StackName takes precedence for filter name prefixes; Service and
	// Stage are the fallback pair
	StackName string
	Service   string
	Stage     string

	// Logical ids of the API resources, for execution log group refs
	RestAPIID      string
	WebsocketAPIID string
}

// Plan is the output of one pass: an explicit patch the caller merges
// into the graph, plus ordered decisions and warnings
type Plan struct {
	Patch     types.Patch
	Decisions []types.Decision
	Warnings  []string
}
