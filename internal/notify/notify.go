// Package notify delivers toasts to the browser. Handlers receive a Notifier
// explicitly; there is no global toast queue.
package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/skillbloom/skillbloom/internal/ui"
	"github.com/skillbloom/skillbloom/internal/ui/components"
)

const triggerHeader = "HX-Trigger"

type Toast struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Variant     components.ToastVariant `json:"variant"`
}

func Success(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: components.ToastSuccess}
}

func Error(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: components.ToastError}
}

func Info(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: components.ToastInfo}
}

// Notifier attaches a toast to the response.
type Notifier interface {
	Notify(w http.ResponseWriter, r *http.Request, t Toast)
}

// HeaderNotifier emits toasts as an HX-Trigger event: {"toast": [...]}.
// Several toasts on one response accumulate in the same event. It must run
// before the response body is written.
type HeaderNotifier struct{}

func (HeaderNotifier) Notify(w http.ResponseWriter, _ *http.Request, t Toast) {
	events := map[string]json.RawMessage{}
	if existing := w.Header().Get(triggerHeader); existing != "" {
		err := json.Unmarshal([]byte(existing), &events)
		if err != nil {
			slog.Warn("overwriting malformed HX-Trigger header", "error", err)
			events = map[string]json.RawMessage{}
		}
	}

	var toasts []Toast
	if raw, ok := events["toast"]; ok {
		_ = json.Unmarshal(raw, &toasts)
	}
	toasts = append(toasts, t)

	raw, err := json.Marshal(toasts)
	if err != nil {
		slog.Error("failed to encode toast", "error", err)
		return
	}
	events["toast"] = raw

	value, err := json.Marshal(events)
	if err != nil {
		slog.Error("failed to encode HX-Trigger", "error", err)
		return
	}
	w.Header().Set(triggerHeader, string(value))
}

// OOBNotifier renders the toast as an out-of-band swap into #toast-container.
// Use it for HTML fragment responses, where it writes into the body.
type OOBNotifier struct{}

func (OOBNotifier) Notify(w http.ResponseWriter, r *http.Request, t Toast) {
	ui.RenderOOB(w, r, components.Toast(components.ToastProps{
		Title:       t.Title,
		Description: t.Description,
		Variant:     t.Variant,
	}), "beforeend:#toast-container")
}
