package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the process-wide logger, also installed as slog's default.
var Log *slog.Logger

type Options struct {
	AppName   string
	AppEnv    string
	SentryDSN string
}

// Init logs text at debug level in development and JSON at info level
// elsewhere. With a Sentry DSN, error records are also sent to Sentry.
func Init(opts Options) {
	handler := consoleHandler(opts.AppEnv == "development")

	if sink := sentryHandler(opts); sink != nil {
		handler = slogmulti.Fanout(handler, sink)
	}

	Log = slog.New(handler).With("app", opts.AppName)
	slog.SetDefault(Log)
}

func consoleHandler(dev bool) slog.Handler {
	if dev {
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
}

func sentryHandler(opts Options) slog.Handler {
	if opts.SentryDSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.SentryDSN,
		Environment: opts.AppEnv,
		Release:     opts.AppName,
	})
	if err != nil {
		slog.Warn("sentry disabled", "error", err)
		return nil
	}

	return slogsentry.Option{Level: slog.LevelError}.NewSentryHandler()
}

// Flush waits briefly for queued Sentry events.
func Flush() {
	sentry.Flush(2 * time.Second)
}
