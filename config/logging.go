package config

import "fmt"

// Logging configuration categories and sub-flags as they appear in the
// raw YAML value
const (
	categoryRestAPI   = "rest_api"
	categoryHTTPAPI   = "http_api"
	categoryWebsocket = "websocket"

	flagAccessLogging    = "access_logging"
	flagExecutionLogging = "execution_logging"
)

// Resolved is the flat view of the logging configuration. The rest of
// the engine only ever reads these booleans; the raw tri-state shape is
// inspected exactly once, here.
type Resolved struct {
	RestAccess         bool
	RestExecution      bool
	HTTPAccess         bool
	WebsocketAccess    bool
	WebsocketExecution bool
}

// InvalidLoggingError reports a wrong-typed field in the raw logging
// configuration. Raised before any resolution proceeds.
type InvalidLoggingError struct {
	Path  string
	Value any
}

func (e *InvalidLoggingError) Error() string {
	return fmt.Sprintf("invalid logging configuration at %q: unexpected %T", e.Path, e.Value)
}

// ResolveLogging normalizes the raw logging value into concrete
// enablement flags. Each category is independently absent, a bool, or a
// mapping with access_logging / execution_logging bools:
//   - absent          -> both flags disabled
//   - false           -> both flags disabled, sub-flags ignored
//   - true            -> both flags enabled, sub-flags ignored
//   - mapping         -> each flag follows its own sub-bool
//
// Any other shape at any level is an InvalidLoggingError.
func ResolveLogging(raw any) (Resolved, error) {
	categories, err := loggingCategories(raw)
	if err != nil {
		return Resolved{}, err
	}

	if err := validateCategories(categories); err != nil {
		return Resolved{}, err
	}

	return Resolved{
		RestAccess:         categoryFlag(categories[categoryRestAPI], flagAccessLogging),
		RestExecution:      categoryFlag(categories[categoryRestAPI], flagExecutionLogging),
		HTTPAccess:         categoryFlag(categories[categoryHTTPAPI], flagAccessLogging),
		WebsocketAccess:    categoryFlag(categories[categoryWebsocket], flagAccessLogging),
		WebsocketExecution: categoryFlag(categories[categoryWebsocket], flagExecutionLogging),
	}, nil
}

// loggingCategories checks the top-level shape
func loggingCategories(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	default:
		return nil, &InvalidLoggingError{Path: "logging", Value: raw}
	}
}

// validateCategories rejects wrong-typed fields before any flag is read
func validateCategories(categories map[string]any) error {
	for _, name := range []string{categoryRestAPI, categoryHTTPAPI, categoryWebsocket} {
		value, ok := categories[name]
		if !ok || value == nil {
			continue
		}

		switch v := value.(type) {
		case bool:
		case map[string]any:
			if err := validateSubFlags(name, v); err != nil {
				return err
			}
		default:
			return &InvalidLoggingError{Path: "logging." + name, Value: value}
		}
	}
	return nil
}

// validateSubFlags checks the nested flag types within one category
func validateSubFlags(category string, flags map[string]any) error {
	for _, flag := range []string{flagAccessLogging, flagExecutionLogging} {
		value, ok := flags[flag]
		if !ok || value == nil {
			continue
		}
		if _, isBool := value.(bool); !isBool {
			return &InvalidLoggingError{Path: "logging." + category + "." + flag, Value: value}
		}
	}
	return nil
}

// categoryFlag resolves a single flag from an already validated
// category value. A bare false short-circuits everything below it.
func categoryFlag(value any, flag string) bool {
	switch v := value.(type) {
	case bool:
		return v
	case map[string]any:
		enabled, _ := v[flag].(bool)
		return enabled
	default:
		return false
	}
}
