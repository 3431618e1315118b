package logs

import (
	"context"
	"log/slog"
)

// SecurityEvent names an authentication or authorization outcome worth auditing.
type SecurityEvent string

const (
	EventRegisterSucceeded SecurityEvent = "register_succeeded"
	EventRegisterRejected  SecurityEvent = "register_rejected"
	EventLoginSucceeded    SecurityEvent = "login_succeeded"
	EventLoginFailed       SecurityEvent = "login_failed"
	EventTokenRejected     SecurityEvent = "token_rejected"
	EventAccessDenied      SecurityEvent = "access_denied"
)

// level maps failures to warn and successes to info.
func (e SecurityEvent) level() slog.Level {
	switch e {
	case EventRegisterSucceeded, EventLoginSucceeded:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Security writes one audit record. Callers must never pass passwords,
// password hashes or raw tokens in attrs.
func Security(ctx context.Context, logger *slog.Logger, event SecurityEvent, attrs ...slog.Attr) {
	if logger == nil {
		return
	}

	all := make([]slog.Attr, 0, len(attrs)+1)
	all = append(all, slog.String("securityEvent", string(event)))
	all = append(all, attrs...)

	logger.LogAttrs(ctx, event.level(), "Security event", all...)
}
