package types

// Handler describes a function handler discovered by the build phase.
// The runtime classification tags where the handler came from; only the
// name participates in log group matching.
type Handler struct {
	Name    string `yaml:"name" json:"name"`
	Runtime string `yaml:"runtime,omitempty" json:"runtime,omitempty"`
}
