package schema

// SessionKVTable represents the 'dashboard_session_kv' table
type SessionKVTable struct {
	Table     string
	Key       string
	Value     string
	ExpiresAt string
	UpdatedAt string
}

var SessionKV = SessionKVTable{
	Table:     "dashboard_session_kv",
	Key:       "key",
	Value:     "value",
	ExpiresAt: "expires_at",
	UpdatedAt: "updated_at",
}
