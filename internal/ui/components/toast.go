package components

import (
	"context"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/skillbloom/skillbloom/internal/ui"
)

type ToastVariant string

const (
	ToastSuccess ToastVariant = "success"
	ToastError   ToastVariant = "error"
	ToastInfo    ToastVariant = "info"
)

type ToastProps struct {
	Title       string
	Description string
	Variant     ToastVariant
	Class       string
}

var toastVariantClasses = map[ToastVariant]string{
	ToastSuccess: "border-green-500/40 bg-green-950 text-green-100",
	ToastError:   "border-red-500/40 bg-red-950 text-red-100",
	ToastInfo:    "border-slate-500/40 bg-slate-900 text-slate-100",
}

// Toast renders a dismissible notification, meant to be appended to
// #toast-container.
func Toast(p ToastProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := twmerge.Merge(
			"pointer-events-auto w-80 rounded-lg border px-4 py-3 shadow-lg",
			toastVariantClasses[p.Variant],
			p.Class,
		)

		h := ui.NewHTML(ctx, w)
		h.Raw(`<div role="status" data-toast`).Attr("class", class).Raw(">")
		if p.Title != "" {
			h.Raw(`<p class="font-semibold">`).Text(p.Title).Raw("</p>")
		}
		if p.Description != "" {
			h.Raw(`<p class="text-sm opacity-90">`).Text(p.Description).Raw("</p>")
		}
		h.Raw("</div>")
		return h.Err()
	})
}
