package subscriber

import "github.com/yairfalse/virta/types"

// Fixed logical identifiers for the synthesized execution log pairs.
// They never collide with generator output, so overwriting is safe.
const (
	RestExecutionLogGroupID          = "RestExecutionLogGroup"
	RestExecutionSubscriptionID      = "RestExecutionLogGroupSubscription"
	WebsocketExecutionLogGroupID     = "WebsocketExecutionLogGroup"
	WebsocketExecutionSubscriptionID = "WebsocketExecutionLogGroupSubscription"
)

// Log group name prefixes the platform uses for API execution logs
const (
	restExecutionPrefix      = "API-Gateway-Execution-Logs_"
	websocketExecutionPrefix = "/aws/apigateway/"
)

// SynthesizeExecutionLogGroups builds the log group + subscription
// pairs for API execution logs. These cannot be found by scanning the
// graph: the platform names execution log groups after the API id,
// which is only known at deploy time, so the names are intrinsic joins.
// The output is deterministic for the same input, making repeated
// synthesis idempotent.
func SynthesizeExecutionLogGroups(input Input) types.Patch {
	patch := types.Patch{}

	if !input.SubscribeExecutionLogs {
		return patch
	}

	if input.RestExecution {
		addExecutionPair(patch, RestExecutionLogGroupID, RestExecutionSubscriptionID,
			restExecutionPrefix, input.RestAPIID, input.Stage, input.Destination)
	}

	if input.WebsocketExecution {
		addExecutionPair(patch, WebsocketExecutionLogGroupID, WebsocketExecutionSubscriptionID,
			websocketExecutionPrefix, input.WebsocketAPIID, input.Stage, input.Destination)
	}

	return patch
}

// addExecutionPair inserts one log group and its subscription filter
func addExecutionPair(patch types.Patch, logGroupID, subscriptionID, prefix, apiID, stage string, destination any) {
	patch[logGroupID] = types.Resource{
		Type: types.KindLogGroup,
		Properties: map[string]any{
			types.PropLogGroupName: types.Join("", []any{prefix, types.Ref(apiID), "/", stage}),
		},
	}
	patch[subscriptionID] = types.NewSubscriptionFilter(destination, logGroupID)
}
