package types

import (
	"fmt"
	"time"
)

// Subscription decision actions
const (
	ActionSubscribe     = "subscribe"      // subscription filter planned
	ActionSkipQuota     = "skip_quota"     // log group at the external filter quota
	ActionSkipPolicy    = "skip_policy"    // exclusion policy denied the candidate
	ActionSkipExtension = "skip_extension" // extension owns lambda log groups
)

// Decision records what the engine chose to do with one candidate log
// group. Decisions are advisory output; the patch carries the actual
// graph mutations.
type Decision struct {
	Action     string    `json:"action"`
	ResourceID string    `json:"resource_id"`
	LogGroup   string    `json:"log_group,omitempty"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate ensures the decision has required fields
func (d *Decision) Validate() error {
	if d.Action == "" {
		return fmt.Errorf("decision action cannot be empty")
	}
	if d.ResourceID == "" {
		return fmt.Errorf("decision resource ID cannot be empty")
	}
	if d.Reason == "" {
		return fmt.Errorf("decision reason cannot be empty")
	}
	return nil
}

// IsSkip reports whether the decision left the graph untouched
func (d *Decision) IsSkip() bool {
	return d.Action != ActionSubscribe
}
