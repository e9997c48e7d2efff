package components

import (
	"context"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/skillbloom/skillbloom/internal/ctxkeys"
	"github.com/skillbloom/skillbloom/internal/ui"
)

const buttonClass = "rounded-lg bg-green-500 px-6 py-2 font-semibold text-slate-950"

// CSRFField is the hidden token input every posted form carries.
func CSRFField() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := ui.NewHTML(ctx, w)
		h.Raw(`<input type="hidden" name="csrf_token"`).Attr("value", ctxkeys.CSRFToken(ctx)).Raw(">")
		return h.Err()
	})
}

// ActionButton is a form with a single submit button posting to action.
// class is merged over the default button style.
func ActionButton(action, label, class string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := ui.NewHTML(ctx, w)
		h.Raw(`<form method="post"`).Attr("action", action).Raw(">").Component(CSRFField())
		h.Raw("<button").Attr("class", twmerge.Merge(buttonClass, class)).Raw(">").Text(label).Raw("</button></form>")
		return h.Err()
	})
}

// FormError renders msg as an alert, or nothing when msg is empty.
func FormError(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if msg == "" {
			return nil
		}
		h := ui.NewHTML(ctx, w)
		h.Raw(`<p role="alert" class="mt-4 text-red-400">`).Text(msg).Raw("</p>")
		return h.Err()
	})
}
