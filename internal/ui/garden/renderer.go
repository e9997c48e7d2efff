// Package garden renders a learner's skills as plants whose look follows
// their growth tier.
package garden

import (
	"context"
	"fmt"
	"io"
	"net/url"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/skillbloom/skillbloom/internal/ui"
)

// Renderer draws the garden. The learn flow and the services only deal in
// tiers and effect names; how they look is up to the renderer.
type Renderer interface {
	Garden(g *service.Garden) templ.Component
	Plant(skill *model.Skill) templ.Component
}

type tierStyle struct {
	emoji    string
	gradient string
}

var tierStyles = map[model.Tier]tierStyle{
	model.TierSeed:        {emoji: "🌱", gradient: "from-amber-600 to-yellow-500"},
	model.TierSprout:      {emoji: "🌿", gradient: "from-lime-500 to-green-500"},
	model.TierGrowing:     {emoji: "🪴", gradient: "from-green-500 to-emerald-500"},
	model.TierBlooming:    {emoji: "🌸", gradient: "from-emerald-500 to-teal-500"},
	model.TierFlourishing: {emoji: "🌺", gradient: "from-pink-500 to-purple-500"},
}

// TierRenderer is the default HTML renderer.
type TierRenderer struct {
	// PlantClass is merged into every plant card.
	PlantClass string
}

func NewTierRenderer() *TierRenderer {
	return &TierRenderer{}
}

func (r *TierRenderer) Garden(g *service.Garden) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := ui.NewHTML(ctx, w)
		h.Raw(`<section id="garden" class="space-y-8">`)

		h.Raw(`<dl class="grid grid-cols-4 gap-4 text-center">`)
		stat(h, "Skills", g.Stats.Skills)
		stat(h, "Lessons", g.Stats.LessonsTotal)
		stat(h, "Best streak", g.Stats.LongestStreak)
		stat(h, "XP today", g.XPEarned)
		h.Raw("</dl>")

		if len(g.Skills) == 0 {
			h.Raw(`<p class="text-slate-400">Your garden is empty. Plant your first skill to get started.</p>`)
		} else {
			h.Raw(`<div class="grid grid-cols-1 gap-4 sm:grid-cols-2">`)
			for _, skill := range g.Skills {
				h.Component(r.Plant(skill))
			}
			h.Raw("</div>")
		}

		h.Raw(`<ul class="space-y-2" aria-label="Daily goals">`)
		for _, goal := range g.DailyGoals {
			class := "flex justify-between rounded border border-slate-800 px-4 py-2"
			if goal.Done {
				class = twmerge.Merge(class, "border-green-700 text-slate-500 line-through")
			}
			h.Raw("<li").Attr("class", class).Attr("data-goal", goal.ID).Raw("><a").Attr("href", goal.Action).Raw(">").
				Text(goal.Title).Raw("</a><span>").Text(fmt.Sprintf("+%d XP", goal.XP)).Raw("</span></li>")
		}
		h.Raw("</ul></section>")
		return h.Err()
	})
}

func (r *TierRenderer) Plant(skill *model.Skill) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		style, ok := tierStyles[skill.Level]
		if !ok {
			style = tierStyles[model.TierSeed]
		}
		class := twmerge.Merge("rounded-xl border border-slate-800 bg-slate-900 p-5", r.PlantClass)

		h := ui.NewHTML(ctx, w)
		h.Raw("<article").Attr("class", class).Attr("data-tier", string(skill.Level)).Raw(">")
		h.Raw(`<div class="flex items-center gap-3"><span class="text-4xl" aria-hidden="true">`).Raw(style.emoji).Raw("</span>")
		h.Raw(`<div><h3 class="font-semibold">`).Text(skill.Name).Raw(`</h3><p class="text-sm text-slate-400">`).
			Text(skill.Level.Label()).Raw("</p></div></div>")

		h.Raw(`<div class="mt-4 h-2 rounded bg-slate-800"><div`).
			Attr("class", twmerge.Merge("h-2 rounded bg-gradient-to-r", style.gradient)).
			Attr("style", fmt.Sprintf("width: %d%%", skill.Progress)).Raw("></div></div>")

		h.Raw(`<p class="mt-2 text-sm text-slate-400">`).
			Text(fmt.Sprintf("%d%% · %d lessons · %d day streak", skill.Progress, skill.LessonsCompleted, skill.Streak)).Raw("</p>")
		h.Raw("<a").Attr("class", "mt-3 inline-block text-green-400").
			Attr("href", "/learn?skill="+url.QueryEscape(skill.Name)).Raw(">Practice</a>")
		h.Raw("</article>")
		return h.Err()
	})
}

func stat(h *ui.HTML, label string, value int) {
	h.Raw(`<div><dt class="text-sm text-slate-400">`).Text(label).Raw(`</dt><dd class="text-2xl font-bold">`).
		Text(fmt.Sprint(value)).Raw("</dd></div>")
}
