package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "url"
	FieldStatusCode = "status"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldCollection = "collection"
	FieldRecordID   = "record_id"
	FieldMonth      = "month"
	FieldFile       = "file"
	FieldRevision   = "revision"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentStore  = "store"
	ComponentAMQP   = "amqp"
	ComponentWorker = "worker"
	ComponentExport = "export"
	ComponentPrefs  = "prefs"
)
