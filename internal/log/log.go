// Package log builds the tool's slog logger. Records pass through a
// SecureHandler that masks passwords, login/CSRF tokens and session cookies
// before they reach the underlying handler.
package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue replaces sensitive values
const MaskValue = "***REDACTED***"

// sensitiveKeys are attribute keys that are always masked
var sensitiveKeys = map[string]bool{
	"password":      true,
	"lgpassword":    true,
	"lgtoken":       true,
	"token":         true,
	"logintoken":    true,
	"csrftoken":     true,
	"cookie":        true,
	"set-cookie":    true,
	"session":       true,
	"authorization": true,
}

// sensitiveKeywords mask any key that contains them
var sensitiveKeywords = []string{"password", "passwd", "secret", "token", "cookie"}

// mediaWikiToken matches login and CSRF tokens, which end in "+\"
var mediaWikiToken = regexp.MustCompile(`^[0-9a-f]{32,}\+\\$`)

// SecureHandler wraps an slog.Handler and sanitizes attributes.
// Besides key and pattern based masking it replaces every occurrence of the
// configured secret strings inside string values.
type SecureHandler struct {
	handler slog.Handler
	secrets []string
}

// NewSecureHandler wraps handler. Non-empty secrets are masked wherever they appear.
func NewSecureHandler(handler slog.Handler, secrets ...string) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &SecureHandler{handler: handler}
	for _, s := range secrets {
		if s != "" {
			h.secrets = append(h.secrets, s)
		}
	}
	return h
}

// Enabled delegates to the underlying handler
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's message and attributes
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, h.scrub(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with sanitized attributes added
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitized[i] = h.sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitized), secrets: h.secrets}
}

// WithGroup returns a new handler with the given group name
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name), secrets: h.secrets}
}

func (h *SecureHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitized := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			sanitized[i] = h.sanitizeAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitized...)}
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		v := a.Value.String()
		if mediaWikiToken.MatchString(v) {
			return slog.String(a.Key, MaskValue)
		}
		return slog.String(a.Key, h.scrub(v))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, h.scrub(err.Error()))
		}
	}
	return a
}

// scrub replaces configured secrets inside s
func (h *SecureHandler) scrub(s string) string {
	for _, secret := range h.secrets {
		s = strings.ReplaceAll(s, secret, MaskValue)
	}
	return s
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if sensitiveKeys[key] {
		return true
	}
	for _, kw := range sensitiveKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// NewSecureLogger creates a text logger writing to w at Info level
// (Debug when debug is set) that masks the given secrets.
func NewSecureLogger(w io.Writer, debug bool, secrets ...string) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSecureHandler(handler, secrets...))
}
