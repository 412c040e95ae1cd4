package log

// Field names shared by every component
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCollection = "collection"
	FieldKey        = "key"
	FieldBackend    = "backend"
	FieldReminderID = "reminder_id"
	FieldBudgetID   = "budget_id"
	FieldExpenseID  = "expense_id"
	FieldAmount     = "amount"
	FieldCategory   = "category"
	FieldTriggerAt  = "trigger_at"
)

const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentData     = "data"
	ComponentStorage  = "storage"
	ComponentNotify   = "notify"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentCache    = "cache"
	ComponentTrace    = "trace"
	ComponentBackend  = "backend"
	ComponentCLI      = "cli"
	ComponentTelegram = "telegram"
)

const (
	OpLoad     = "load"
	OpSave     = "save"
	OpEncode   = "encode"
	OpDecode   = "decode"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpSchedule = "schedule"
	OpCancel   = "cancel"
	OpDeliver  = "deliver"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// Fields is a small builder for structured log attributes.
type Fields map[string]any

func NewFields() Fields {
	return make(Fields)
}

func (f Fields) WithOperation(op string) Fields {
	f[FieldOperation] = op
	return f
}

func (f Fields) WithCollection(collection string) Fields {
	f[FieldCollection] = collection
	return f
}

func (f Fields) WithError(err error) Fields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f Fields) With(key string, value any) Fields {
	f[key] = value
	return f
}

// ToSlice flattens the fields into slog key/value pairs.
func (f Fields) ToSlice() []any {
	out := make([]any, 0, len(f)*2)
	for k, v := range f {
		out = append(out, k, v)
	}
	return out
}
