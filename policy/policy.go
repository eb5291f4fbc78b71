// Package policy evaluates optional Rego exclusion rules against
// subscription candidates. A denied candidate is skipped by the
// decision engine with a warning; without any loaded policy every
// candidate passes.
package policy

// Result of evaluating one candidate
type Result string

const (
	ResultAllow Result = "allow"
	ResultDeny  Result = "deny"
)

// Input is the document handed to the Rego evaluator for one candidate
type Input struct {
	LogicalID    string `json:"logical_id"`
	LogGroupName string `json:"log_group_name"`
	Service      string `json:"service"`
	Stage        string `json:"stage"`
}

// Decision is the outcome for one candidate
type Decision struct {
	Result Result
	Reason string
}
