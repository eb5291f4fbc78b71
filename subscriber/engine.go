package subscriber

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yairfalse/virta/telemetry"
	"github.com/yairfalse/virta/types"
)

// Log group name prefixes for the candidate categories. The three API
// prefixes are disjoint; a name matches at most one category.
const (
	lambdaLogPrefix       = "/aws/lambda/"
	restAccessPrefix      = "/aws/api-gateway/"
	httpAccessPrefix      = "/aws/http-api/"
	websocketAccessPrefix = "/aws/websocket/"
)

// subscriptionSuffix scopes the logical id of a planned filter to its
// log group
const subscriptionSuffix = "Subscription"

// Engine walks the resource graph and plans subscription filter
// insertions. It never mutates the graph itself: callers merge the
// returned patch, which keeps repeated passes idempotent and the
// planning logic testable.
type Engine struct {
	quota  *QuotaEnforcer
	policy ExclusionPolicy
	logger *telemetry.Logger
}

// NewEngine creates a decision engine backed by the log service.
// policy may be nil when no exclusion policy is configured.
func NewEngine(logs LogService, policy ExclusionPolicy) *Engine {
	return &Engine{
		quota:  NewQuotaEnforcer(logs),
		policy: policy,
		logger: telemetry.NewLogger("subscriber"),
	}
}

// Plan runs one subscription pass over the graph. Candidates are
// visited in sorted logical id order, so decisions and warnings are
// deterministic. The only fatal error path is forwarder validation,
// which callers run before this; everything here degrades to warnings.
func (e *Engine) Plan(ctx context.Context, graph types.Graph, input Input) *Plan {
	ctx, span := telemetry.Tracer.Start(ctx, "virta.plan",
		trace.WithAttributes(
			attribute.String("deployed.service", input.Service),
			attribute.String("deployed.stage", input.Stage),
			attribute.Int("graph.resources", len(graph)),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	started := time.Now()
	plan := &Plan{Patch: types.Patch{}}

	if len(graph) == 0 {
		plan.Warnings = append(plan.Warnings, "no resource graph available, skipping log subscription wiring")
		span.SetStatus(codes.Ok, "nothing to plan")
		return plan
	}

	handlerIDs := trackedHandlerIDs(input.Handlers)

	for _, id := range graph.SortedIDs() {
		e.planCandidate(ctx, plan, graph, id, handlerIDs, input)
	}

	telemetry.RecordPassDuration(ctx, time.Since(started).Seconds(), true)
	span.SetAttributes(
		attribute.Int("subscriptions.planned", len(plan.Patch)),
		attribute.Int("warnings", len(plan.Warnings)),
	)
	span.SetStatus(codes.Ok, "pass completed")

	e.logger.LogPassComplete(ctx, len(plan.Patch), len(plan.Decisions)-len(plan.Patch), len(plan.Warnings))

	return plan
}

// planCandidate applies the full decision chain to one graph entry
func (e *Engine) planCandidate(ctx context.Context, plan *Plan, graph types.Graph, id string, handlerIDs map[string]bool, input Input) {
	resource := graph[id]
	if !resource.IsLogGroup() {
		return
	}

	// Intrinsic-named groups are synthesized execution log groups;
	// they carry their own subscription already.
	name, ok := resource.LogGroupName()
	if !ok {
		return
	}

	telemetry.RecordCandidate(ctx)

	eligible, skip := e.eligibility(id, name, handlerIDs, input)
	if skip != nil {
		plan.Decisions = append(plan.Decisions, *skip)
	}
	if !eligible {
		return
	}

	if e.excludedByPolicy(ctx, plan, id, name) {
		return
	}

	scopedID := id + subscriptionSuffix
	prefix := filterNamePrefix(input, scopedID)

	allowed, existing := e.quota.CanSubscribe(ctx, name, prefix)
	if !allowed {
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("log group %s already has %d subscription filters, skipping", name, existing))
		plan.Decisions = append(plan.Decisions, types.Decision{
			Action:     types.ActionSkipQuota,
			ResourceID: id,
			LogGroup:   name,
			Reason:     fmt.Sprintf("%d existing subscription filters", existing),
			CreatedAt:  time.Now(),
		})
		telemetry.RecordSkipped(ctx, "quota")
		return
	}

	plan.Patch[scopedID] = types.NewSubscriptionFilter(input.Destination, id)
	plan.Decisions = append(plan.Decisions, types.Decision{
		Action:     types.ActionSubscribe,
		ResourceID: id,
		LogGroup:   name,
		Reason:     "log group eligible for forwarding",
		CreatedAt:  time.Now(),
	})
	telemetry.RecordPlanned(ctx, attribute.String("log_group", name))

	e.logger.WithContext(ctx).Debug().
		Str("logical_id", id).
		Str("log_group", name).
		Msg("subscription planned")
}

// eligibility decides whether a literal-named log group is a candidate.
// The second return carries an advisory skip decision when the log
// group would have matched but a mode rules it out.
func (e *Engine) eligibility(id, name string, handlerIDs map[string]bool, input Input) (bool, *types.Decision) {
	if strings.HasPrefix(name, lambdaLogPrefix) {
		if input.Extension {
			// The extension ships lambda logs itself; subscribing
			// would double-deliver.
			if handlerIDs[id] {
				return false, &types.Decision{
					Action:     types.ActionSkipExtension,
					ResourceID: id,
					LogGroup:   name,
					Reason:     "extension owns lambda log forwarding",
					CreatedAt:  time.Now(),
				}
			}
			return false, nil
		}
		return handlerIDs[id], nil
	}

	if input.Extension {
		return e.apiAccessEligible(name, input), nil
	}

	if handlerIDs[id] {
		return true, nil
	}

	return e.apiAccessEligible(name, input), nil
}

// apiAccessEligible matches the three disjoint API access log prefixes
// against their resolved category flags
func (e *Engine) apiAccessEligible(name string, input Input) bool {
	if !input.SubscribeAccessLogs {
		return false
	}

	switch {
	case strings.HasPrefix(name, restAccessPrefix):
		return input.RestAccess
	case strings.HasPrefix(name, httpAccessPrefix):
		return input.HTTPAccess
	case strings.HasPrefix(name, websocketAccessPrefix):
		return input.WebsocketAccess
	default:
		return false
	}
}

// excludedByPolicy consults the optional exclusion policy. Policy
// evaluation failures are advisory, not fatal: the candidate proceeds.
func (e *Engine) excludedByPolicy(ctx context.Context, plan *Plan, id, name string) bool {
	if e.policy == nil {
		return false
	}

	excluded, reason, err := e.policy.Excluded(ctx, id, name)
	if err != nil {
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("exclusion policy failed for %s: %v", id, err))
		return false
	}
	if !excluded {
		return false
	}

	plan.Warnings = append(plan.Warnings,
		fmt.Sprintf("log group %s excluded by policy: %s", name, reason))
	plan.Decisions = append(plan.Decisions, types.Decision{
		Action:     types.ActionSkipPolicy,
		ResourceID: id,
		LogGroup:   name,
		Reason:     reason,
		CreatedAt:  time.Now(),
	})
	telemetry.RecordSkipped(ctx, "policy")
	return true
}

// trackedHandlerIDs precomputes the logical ids the naming transform
// yields for every known handler. Empty handler names map to the empty
// id, which is dropped so it can never match a resource.
func trackedHandlerIDs(handlers []types.Handler) map[string]bool {
	ids := make(map[string]bool, len(handlers))
	for _, handler := range handlers {
		if id := LogGroupLogicalID(handler.Name); id != "" {
			ids[id] = true
		}
	}
	return ids
}

// filterNamePrefix is the external subscription filter name prefix this
// system would use for the scoped id. Stack name wins when resolvable;
// the service/stage pair is the fallback.
func filterNamePrefix(input Input, scopedID string) string {
	if input.StackName != "" {
		return input.StackName + "-" + scopedID + "-"
	}
	return input.Service + "-" + input.Stage + "-" + scopedID + "-"
}
