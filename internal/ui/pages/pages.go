package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/skillbloom/skillbloom/internal/catalog"
	"github.com/skillbloom/skillbloom/internal/ctxkeys"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/skillbloom/skillbloom/internal/ui"
	"github.com/skillbloom/skillbloom/internal/ui/components"
	"github.com/skillbloom/skillbloom/internal/ui/garden"
)

func Home(c *catalog.Catalog) templ.Component {
	return components.Layout("", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tagline := "Grow a skill five minutes at a time"
		if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppTagline != "" {
			tagline = cfg.AppTagline
		}

		h := ui.NewHTML(ctx, w)
		h.Raw(`<section class="py-16 text-center"><h1 class="text-5xl font-bold">`).Text(tagline).Raw("</h1>")
		h.Raw(`<p class="mt-4 text-lg text-slate-400">Bite-sized lessons written for you, a quick quiz after each one, and a garden that grows as you learn.</p>`)
		h.Raw(`<a href="/onboarding" class="mt-8 inline-block rounded-full bg-green-500 px-8 py-3 font-semibold text-slate-950">Start growing</a></section>`)

		h.Raw(`<section class="grid grid-cols-2 gap-4 sm:grid-cols-3">`)
		for _, category := range c.Categories {
			h.Raw(`<div class="rounded-xl border border-slate-800 p-4"><h2 class="font-semibold">`).
				Text(category.Emoji + " " + category.Name).Raw(`</h2><ul class="mt-2 text-sm text-slate-400">`)
			for _, skill := range category.Skills {
				h.Raw("<li>").Text(skill).Raw("</li>")
			}
			h.Raw("</ul></div>")
		}
		h.Raw("</section>")
		return h.Err()
	}))
}

func About(page *service.Page) templ.Component {
	return components.Layout(page.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := ui.NewHTML(ctx, w)
		h.Raw(`<article class="prose prose-invert">`).Raw(page.Content).Raw("</article>")
		return h.Err()
	}))
}

// Garden renders the garden with a form for planting another skill. An HTMX
// submit swaps #garden in place; a plain submit redirects back here.
func Garden(r garden.Renderer, g *service.Garden, errMsg string) templ.Component {
	return components.Layout("Your garden", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := ui.NewHTML(ctx, w)
		h.Component(r.Garden(g))
		h.Raw(`<form method="post" action="/garden/skills" hx-post="/garden/skills" hx-target="#garden" hx-swap="outerHTML" class="mt-8 flex gap-3">`)
		h.Component(components.CSRFField())
		h.Raw(`<input name="name" class="flex-1 rounded-lg bg-slate-900 px-4 py-2" placeholder="Plant another skill">`)
		h.Raw(`<button class="rounded-lg bg-green-500 px-6 py-2 font-semibold text-slate-950">Plant</button></form>`)
		h.Component(components.FormError(errMsg))
		return h.Err()
	}))
}

func NotFound() templ.Component {
	return components.Layout("Page not found", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := ui.NewHTML(ctx, w)
		h.Raw(`<section class="py-24 text-center"><p class="text-6xl">🥀</p>`)
		h.Raw(`<h1 class="mt-6 text-3xl font-bold">Nothing grows here</h1>`)
		h.Raw(`<p class="mt-2 text-slate-400">The page you were looking for does not exist.</p>`)
		h.Raw(`<a href="/" class="mt-6 inline-block text-green-400">Back home</a></section>`)
		return h.Err()
	}))
}
