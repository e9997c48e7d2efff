package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/skillbloom/skillbloom/internal/ctxkeys"
	"github.com/skillbloom/skillbloom/internal/ui"
)

var navLinks = []struct {
	Href  string
	Label string
}{
	{"/", "Home"},
	{"/learn", "Learn"},
	{"/garden", "Garden"},
	{"/about", "About"},
}

// Layout wraps body in the page shell: head with the CSRF meta tag, the
// navigation, and the toast container.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		appName := "SkillBloom"
		if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
			appName = cfg.AppName
		}
		pageTitle := appName
		if title != "" {
			pageTitle = title + " | " + appName
		}
		path := ctxkeys.URLPath(ctx)

		h := ui.NewHTML(ctx, w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<meta name="csrf-token"`).Attr("content", ctxkeys.CSRFToken(ctx)).Raw(">")
		h.Raw("<title>").Text(pageTitle).Raw("</title></head>")
		h.Raw(`<body class="min-h-screen bg-slate-950 text-slate-100">`)

		h.Raw(`<nav class="flex gap-6 px-6 py-4"><a href="/" class="font-bold text-green-400">`).Text(appName).Raw("</a>")
		for _, link := range navLinks {
			class := "text-slate-300 hover:text-white"
			if link.Href == path {
				class = "text-white underline"
			}
			h.Raw("<a").Attr("href", link.Href).Attr("class", class).Raw(">").Text(link.Label).Raw("</a>")
		}
		h.Raw("</nav>")

		h.Raw(`<main class="mx-auto max-w-4xl px-6 py-10">`).Component(body).Raw("</main>")
		h.Raw(`<div id="toast-container" class="pointer-events-none fixed bottom-4 right-4 flex flex-col gap-2"></div>`)
		h.Raw("</body></html>")
		return h.Err()
	})
}
