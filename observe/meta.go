package observe

import "strings"

// FuncMeta identifies a wrapped function for telemetry purposes.
type FuncMeta struct {
	ID        string   // Fully qualified ID (namespace.name or just name)
	Namespace string   // Package-like grouping (may be empty)
	Name      string   // Function name
	Version   string   // Optional
	Tags      []string // Optional
}

// SpanName returns the deterministic span name for this function.
// Format: func.call.<namespace>.<name> or func.call.<name>
func (m FuncMeta) SpanName() string {
	if m.Namespace != "" {
		return "func.call." + m.Namespace + "." + m.Name
	}
	return "func.call." + m.Name
}

// FuncID returns the fully qualified identifier.
// If ID is set, returns it. Otherwise constructs from namespace and name.
func (m FuncMeta) FuncID() string {
	if m.ID != "" {
		return m.ID
	}
	if m.Namespace != "" {
		return m.Namespace + "." + m.Name
	}
	return m.Name
}

// Validate reports whether the metadata can name a span.
func (m FuncMeta) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrMissingFuncName
	}
	return nil
}
