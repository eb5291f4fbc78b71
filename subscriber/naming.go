package subscriber

import "strings"

// logicalIDSuffix is the convention the upstream generator uses for
// lambda log group identifiers
const logicalIDSuffix = "LogGroup"

// LogGroupLogicalID maps a handler name to the logical identifier its
// log group appears under in the resource graph. Each dash-separated
// segment is capitalized and joined with the literal token "Dash",
// underscores become the literal token "Underscore", and the LogGroup
// suffix is appended:
//
//	"my-function_test" -> "MyDashFunctionUnderscoretestLogGroup"
//
// An empty name yields an empty id, which never matches any resource.
func LogGroupLogicalID(handler string) string {
	if handler == "" {
		return ""
	}

	segments := strings.Split(handler, "-")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		segments[i] = strings.ToUpper(segment[:1]) + segment[1:]
	}

	normalized := strings.Join(segments, "Dash")
	normalized = strings.ReplaceAll(normalized, "_", "Underscore")

	return normalized + logicalIDSuffix
}
