package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/skillbloom/skillbloom/internal/catalog"
	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/ui"
	"github.com/skillbloom/skillbloom/internal/ui/components"
)

// Onboarding renders every wizard step as one form posted to /onboarding.
// form refills the fields after a rejected submit.
func Onboarding(c *catalog.Catalog, form model.OnboardingForm, errMsg string) templ.Component {
	return components.Layout("Get started", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := ui.NewHTML(ctx, w)
		h.Raw(`<form id="onboarding" method="post" action="/onboarding" class="space-y-12">`).Component(components.CSRFField())

		for _, step := range c.Steps {
			h.Raw("<fieldset").Attr("data-step-id", step.ID).Raw(">")
			h.Raw(`<legend class="text-3xl font-bold">`).Text(step.Title).Raw(`</legend><p class="mt-2 text-slate-400">`).Text(step.Subtitle).Raw("</p>")

			switch step.ID {
			case model.StepSkill:
				h.Raw(`<div class="mt-6 grid grid-cols-2 gap-4">`)
				for _, category := range c.Categories {
					h.Raw(`<div class="rounded-xl border border-slate-800 p-4"><p class="font-semibold">`).Text(category.Emoji + " " + category.Name).Raw("</p>")
					for _, skill := range category.Skills {
						h.Raw(`<label class="block"><input type="radio" name="skill"`).Attr("value", skill)
						if skill == form.Skill {
							h.Raw(" checked")
						}
						h.Raw("> ").Text(skill).Raw("</label>")
					}
					h.Raw("</div>")
				}
				h.Raw(`</div><input name="customSkill" class="mt-4 w-full rounded-lg bg-slate-900 px-4 py-2" placeholder="Or type your own"`).
					Attr("value", form.CustomSkill).Raw(">")
			case model.StepGoal:
				h.Raw(`<textarea name="goal" class="mt-6 w-full rounded-lg bg-slate-900 px-4 py-2" rows="3">`).Text(form.Goal).Raw("</textarea>")
			case model.StepTime:
				for _, option := range c.TimeOptions {
					h.Raw(`<label class="mt-2 block"><input type="radio" name="timePerDay"`).Attr("value", strconv.Itoa(option.Value))
					if option.Value == form.TimePerDay {
						h.Raw(" checked")
					}
					h.Raw("> ").Text(option.Label + " · " + option.Description).Raw("</label>")
				}
			case model.StepReady:
				h.Component(components.FormError(errMsg))
				h.Raw(`<button class="mt-6 rounded-lg bg-green-500 px-6 py-2 font-semibold text-slate-950">Plant my garden</button>`)
			}
			h.Raw("</fieldset>")
		}

		h.Raw("</form>")
		return h.Err()
	}))
}
