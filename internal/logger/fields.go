package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields, propagated through the call chain via
// context.
const (
	// FieldRequestID is the HTTP request ID (UUID).
	FieldRequestID = "request_id"

	// FieldUserID is the authenticated owner identity.
	FieldUserID = "user_id"

	// FieldAnalysisID is the analysis record ID.
	FieldAnalysisID = "analysis_id"

	// FieldComponent is the component/module name.
	FieldComponent = "component"
)

// Standard metric fields, attached at the log call site.
const (
	// FieldDurationMs is the execution duration in milliseconds.
	FieldDurationMs = "duration_ms"

	// FieldStatus is the operation status.
	FieldStatus = "status"

	// FieldSize is the data size in bytes.
	FieldSize = "size"

	// FieldLabel is the classification verdict.
	FieldLabel = "label"
)
