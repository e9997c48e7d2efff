// Package ctxkeys holds the request-scoped values set by middleware and read
// by handlers and UI components.
package ctxkeys

import (
	"context"

	"github.com/skillbloom/skillbloom/internal/config"
)

type key[T any] struct{ name string }

func (k key[T]) with(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, k, v)
}

func (k key[T]) from(ctx context.Context) T {
	v, _ := ctx.Value(k).(T)
	return v
}

var (
	learnerID = key[string]{"learner_id"}
	urlPath   = key[string]{"url_path"}
	csrfToken = key[string]{"csrf_token"}
	appConfig = key[*config.Config]{"config"}
)

// LearnerID is the anonymous learner resolved from the learner cookie, or ""
// outside the Learner middleware.
func LearnerID(ctx context.Context) string { return learnerID.from(ctx) }

func WithLearnerID(ctx context.Context, id string) context.Context {
	return learnerID.with(ctx, id)
}

func URLPath(ctx context.Context) string { return urlPath.from(ctx) }

func WithURLPath(ctx context.Context, path string) context.Context {
	return urlPath.with(ctx, path)
}

func CSRFToken(ctx context.Context) string { return csrfToken.from(ctx) }

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return csrfToken.with(ctx, token)
}

// Config is the sanitized config; nil when the Config middleware did not run.
func Config(ctx context.Context) *config.Config { return appConfig.from(ctx) }

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return appConfig.with(ctx, cfg)
}
