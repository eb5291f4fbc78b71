package types

import "sort"

// Resource kinds virta knows how to act on. Everything else passes
// through the graph untouched.
const (
	KindLogGroup           = "AWS::Logs::LogGroup"
	KindSubscriptionFilter = "AWS::Logs::SubscriptionFilter"
)

// Property keys used by the log resource kinds
const (
	PropLogGroupName   = "LogGroupName"
	PropDestinationArn = "DestinationArn"
	PropFilterPattern  = "FilterPattern"
)

// Resource is a single entry in a generated resource graph
type Resource struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
}

// Graph maps logical identifiers to resources. Virta receives it from
// the build phase and only ever inserts or overwrites entries.
type Graph map[string]Resource

// Patch is a set of insertions keyed by logical identifier. Applying a
// patch twice yields the same graph as applying it once.
type Patch map[string]Resource

// IsLogGroup reports whether the resource is a log group
func (r Resource) IsLogGroup() bool {
	return r.Type == KindLogGroup
}

// LogGroupName returns the literal log group name. The second return is
// false when the name is absent or an intrinsic expression, which is
// only resolvable at deploy time.
func (r Resource) LogGroupName() (string, bool) {
	if r.Properties == nil {
		return "", false
	}
	name, ok := r.Properties[PropLogGroupName].(string)
	return name, ok
}

// Apply merges a patch into the graph, overwriting existing entries
func (g Graph) Apply(patch Patch) {
	for id, resource := range patch {
		g[id] = resource
	}
}

// SortedIDs returns logical identifiers in lexical order so that every
// pass walks the graph deterministically
func (g Graph) SortedIDs() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewSubscriptionFilter builds the subscription filter resource wired
// to a log group by logical identifier. The filter pattern is empty so
// every log line is forwarded; destination may be a literal ARN or an
// intrinsic expression.
func NewSubscriptionFilter(destination any, logGroupID string) Resource {
	return Resource{
		Type: KindSubscriptionFilter,
		Properties: map[string]any{
			PropDestinationArn: destination,
			PropFilterPattern:  "",
			PropLogGroupName:   Ref(logGroupID),
		},
	}
}
