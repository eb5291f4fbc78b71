package types

// Intrinsic expressions are untyped maps resolved by the deployment
// mechanism, never by virta. A value is literal iff it is a Go string.

// Ref builds a graph-internal reference to another resource
func Ref(logicalID string) map[string]any {
	return map[string]any{"Ref": logicalID}
}

// Join builds a deploy-time string concatenation
func Join(separator string, parts []any) map[string]any {
	return map[string]any{"Fn::Join": []any{separator, parts}}
}

// IsIntrinsic reports whether a value must wait for deploy time to
// resolve. Anything that is not a plain string qualifies.
func IsIntrinsic(v any) bool {
	_, literal := v.(string)
	return !literal
}
