package log

// Field names shared by every structured logging call site, so one
// vocabulary holds across both binaries.
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldUserAgent     = "user_agent"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldNamespace     = "namespace"
	FieldRecordKind    = "record_kind"
	FieldCount         = "count"
	FieldTransactionID = "transaction_id"
	FieldGoalID        = "goal_id"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentWorker = "worker"
)
