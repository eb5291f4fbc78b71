package policy

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/yairfalse/virta/telemetry"
)

// Engine holds compiled exclusion policies. Policies live in the
// data.virta namespace and contribute reasons to a deny set:
//
//	package virta
//
//	deny contains reason if {
//	    contains(input.log_group_name, "noisy")
//	    reason := "noisy workload"
//	}
type Engine struct {
	service string
	stage   string
	logger  *telemetry.Logger
	queries map[string]rego.PreparedEvalQuery
}

// NewEngine creates a policy engine scoped to one service/stage pair
func NewEngine(service, stage string) *Engine {
	return &Engine{
		service: service,
		stage:   stage,
		logger:  telemetry.NewLogger("policy"),
		queries: make(map[string]rego.PreparedEvalQuery),
	}
}

// LoadPolicy compiles a Rego module and registers its deny set
func (e *Engine) LoadPolicy(ctx context.Context, name, code string) error {
	query := rego.New(
		rego.Query("data.virta.deny"),
		rego.Module(name, code),
	)

	prepared, err := query.PrepareForEval(ctx)
	if err != nil {
		return fmt.Errorf("failed to compile policy %s: %w", name, err)
	}

	e.queries[name] = prepared

	e.logger.WithContext(ctx).Info().
		Str("policy_name", name).
		Msg("exclusion policy loaded")

	return nil
}

// LoadPolicyFile reads and compiles a Rego policy from disk
func (e *Engine) LoadPolicyFile(ctx context.Context, path string) error {
	code, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return fmt.Errorf("failed to read policy file: %w", err)
	}
	return e.LoadPolicy(ctx, path, string(code))
}

// Excluded evaluates every loaded policy against the candidate. The
// first deny reason wins. Implements subscriber.ExclusionPolicy.
func (e *Engine) Excluded(ctx context.Context, logicalID, logGroupName string) (bool, string, error) {
	input := Input{
		LogicalID:    logicalID,
		LogGroupName: logGroupName,
		Service:      e.service,
		Stage:        e.stage,
	}

	for name, query := range e.queries {
		decision, err := evaluate(ctx, query, input)
		if err != nil {
			return false, "", fmt.Errorf("policy %s: %w", name, err)
		}
		if decision.Result == ResultDeny {
			return true, decision.Reason, nil
		}
	}

	return false, "", nil
}

// evaluate runs one prepared query and interprets its deny set
func evaluate(ctx context.Context, query rego.PreparedEvalQuery, input Input) (Decision, error) {
	results, err := query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return Decision{}, fmt.Errorf("evaluation failed: %w", err)
	}

	for _, result := range results {
		for _, expression := range result.Expressions {
			reasons, ok := expression.Value.([]any)
			if !ok || len(reasons) == 0 {
				continue
			}
			reason, _ := reasons[0].(string)
			if reason == "" {
				reason = "denied by policy"
			}
			return Decision{Result: ResultDeny, Reason: reason}, nil
		}
	}

	return Decision{Result: ResultAllow}, nil
}
