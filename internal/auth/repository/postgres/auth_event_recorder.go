package postgres

import (
	"context"
	"encoding/json"

	"github.com/kanenguyen264/library-management-sub008/internal/observability"
)

// AuthEventRecorder implements domain.AuditSink by appending rows to the
// auth_events table. Writes are best-effort: failures are logged and
// dropped so an audit outage can never block a login.
type AuthEventRecorder struct {
	db     DBTX
	logger *observability.Logger
}

func NewAuthEventRecorder(db DBTX, logger *observability.Logger) *AuthEventRecorder {
	return &AuthEventRecorder{db: db, logger: logger}
}

func (r *AuthEventRecorder) RecordAuthSuccess(ctx context.Context, userID, ip, userAgent string, details map[string]string) {
	r.record(ctx, true, userID, "", ip, "", userAgent, details)
}

func (r *AuthEventRecorder) RecordAuthFailure(ctx context.Context, identifier, ip, reason, userAgent string, details map[string]string) {
	r.record(ctx, false, "", identifier, ip, reason, userAgent, details)
}

func (r *AuthEventRecorder) record(ctx context.Context, successful bool, userID, identifier, ip, reason, userAgent string, details map[string]string) {
	var encoded []byte
	if len(details) > 0 {
		encoded, _ = json.Marshal(details)
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO auth_events (id, user_id, identifier, ip_address, user_agent, successful, reason, details, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, now())
	`, nullable(userID), nullable(identifier), ip, userAgent, successful, nullable(reason), encoded)
	if err != nil {
		r.logger.Error("record_auth_event_failed", map[string]any{"error": err.Error()})
		observability.CaptureError(err)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
