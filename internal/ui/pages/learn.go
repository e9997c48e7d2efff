package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/skillbloom/skillbloom/internal/flow"
	"github.com/skillbloom/skillbloom/internal/model"
	"github.com/skillbloom/skillbloom/internal/ui"
	"github.com/skillbloom/skillbloom/internal/ui/components"
)

const secondaryButton = "bg-slate-800 text-slate-100"

// Learn renders the learner's session at its current stage. Every action is
// a form posted to /learn/{action}, which redirects back here.
func Learn(st flow.State, errMsg string) templ.Component {
	return components.Layout("Learn", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := ui.NewHTML(ctx, w)
		h.Raw(`<section id="learn"`).Attr("data-stage", string(st.Stage)).Raw(">")

		if st.Pending {
			h.Raw(`<p class="text-slate-400">Preparing your content… <a href="/learn" class="text-green-400">Refresh</a></p>`)
		} else {
			switch st.Stage {
			case flow.StageLesson:
				lessonPage(h, st)
			case flow.StageQuiz:
				quizQuestion(h, st)
			case flow.StageComplete:
				lessonComplete(h, st)
			default:
				selectSkill(h, st)
			}
		}

		h.Component(components.FormError(errMsg))
		if st.Stage != flow.StageSelect {
			h.Raw(`<div class="mt-10">`).Component(components.ActionButton("/learn/reset", "Start over", secondaryButton)).Raw("</div>")
		}
		h.Raw("</section>")
		return h.Err()
	}))
}

func selectSkill(h *ui.HTML, st flow.State) {
	h.Raw(`<h1 class="text-3xl font-bold">What do you want to learn today?</h1>`)
	h.Component(components.FormError(st.Error))
	h.Raw(`<form method="post" action="/learn/start" class="mt-6 flex gap-3">`).Component(components.CSRFField())
	h.Raw(`<input name="skill" class="flex-1 rounded-lg bg-slate-900 px-4 py-2" placeholder="e.g. Guitar"`).Attr("value", st.Skill).Raw(">")
	h.Raw(`<button class="rounded-lg bg-green-500 px-6 py-2 font-semibold text-slate-950">Start lesson</button></form>`)
}

// lessonPage shows the introduction, then one concept per page, then the exercise.
func lessonPage(h *ui.HTML, st flow.State) {
	lesson := st.Lesson
	h.Raw(`<p class="text-sm text-slate-400">`).Text(fmt.Sprintf("%s · page %d of %d", st.Skill, st.Page+1, st.PageCount)).Raw("</p>")
	h.Raw(`<h1 class="mt-2 text-3xl font-bold">`).Text(lesson.Title).Raw("</h1>")

	last := st.Page == st.PageCount-1
	switch {
	case st.Page == 0:
		h.Raw(`<p class="mt-6 text-lg">`).Text(lesson.Introduction).Raw("</p>")
	case !last && st.Page-1 < len(lesson.Concepts):
		concept := lesson.Concepts[st.Page-1]
		h.Raw(`<h2 class="mt-6 text-xl font-semibold">`).Text(concept.Name).Raw(`</h2><p class="mt-2">`).Text(concept.Explanation).Raw("</p>")
		if concept.Example != "" {
			h.Raw(`<p class="mt-4 rounded-lg bg-slate-900 p-4 text-slate-300">`).Text(concept.Example).Raw("</p>")
		}
	default:
		exercise(h, lesson, st.ExerciseAnswer)
	}

	nextLabel := "Next"
	if last {
		nextLabel = "Take the quiz"
	}
	h.Raw(`<div class="mt-8 flex gap-3">`)
	if st.Page > 0 {
		h.Component(components.ActionButton("/learn/prev", "Back", secondaryButton))
	}
	h.Component(components.ActionButton("/learn/next", nextLabel, "")).Raw("</div>")
}

func exercise(h *ui.HTML, lesson *model.LessonContent, answer string) {
	h.Raw(`<h2 class="mt-6 text-xl font-semibold">Try it</h2><p class="mt-2">`).Text(lesson.Exercise.Question).Raw("</p>")
	if lesson.Exercise.Hint != "" {
		h.Raw(`<p class="mt-2 text-sm text-slate-400">Hint: `).Text(lesson.Exercise.Hint).Raw("</p>")
	}
	h.Raw(`<form method="post" action="/learn/exercise" class="mt-4">`).Component(components.CSRFField())
	h.Raw(`<textarea name="answer" rows="3" class="w-full rounded-lg bg-slate-900 px-4 py-2">`).Text(answer).Raw("</textarea>")
	h.Raw(`<button class="mt-2 rounded-lg bg-slate-800 px-4 py-2">Save answer</button></form>`)
	if lesson.Summary != "" {
		h.Raw(`<p class="mt-6 italic text-slate-300">`).Text(lesson.Summary).Raw("</p>")
	}
}

func quizQuestion(h *ui.HTML, st flow.State) {
	q := st.Quiz[st.QuestionIndex]
	h.Raw(`<p class="text-sm text-slate-400">`).Text(fmt.Sprintf("Question %d of %d", st.QuestionIndex+1, len(st.Quiz))).Raw("</p>")
	h.Raw(`<h1 class="mt-2 text-2xl font-bold">`).Text(q.Question).Raw("</h1>")

	h.Raw(`<form method="post" action="/learn/answer" class="mt-6 grid gap-3">`).Component(components.CSRFField())
	for i, option := range q.Options {
		class := "rounded-lg border border-slate-800 px-4 py-3 text-left"
		if st.ShowAnswer {
			switch {
			case i == q.CorrectIndex:
				class += " border-green-500"
			case st.SelectedAnswer != nil && i == *st.SelectedAnswer:
				class += " border-red-500"
			}
		}
		h.Raw(`<button name="index"`).Attr("value", strconv.Itoa(i)).Attr("class", class)
		if st.ShowAnswer {
			h.Raw(" disabled")
		}
		h.Raw(">").Text(option).Raw("</button>")
	}
	h.Raw("</form>")

	if st.ShowAnswer {
		h.Raw(`<p class="mt-4 text-slate-300">`).Text(q.Explanation).Raw("</p>")
		label := "Next question"
		if st.QuestionIndex == len(st.Quiz)-1 {
			label = "Finish lesson"
		}
		h.Raw(`<div class="mt-6">`).Component(components.ActionButton("/learn/continue", label, "")).Raw("</div>")
	}
}

func lessonComplete(h *ui.HTML, st flow.State) {
	h.Raw(`<div class="text-center"><p class="text-6xl">🌸</p><h1 class="mt-4 text-3xl font-bold">Lesson complete!</h1>`)
	h.Raw(`<p class="mt-2 text-slate-400">`).Text(fmt.Sprintf("You got %d of %d right.", st.CorrectAnswers, len(st.Quiz))).Raw("</p>")
	if st.Progress != nil {
		h.Raw(`<p class="mt-2" data-progress>`).
			Text(fmt.Sprintf("%s is at %d%% (%s), %d lessons, %d day streak.",
				st.Progress.Name, st.Progress.Progress, st.Progress.Level.Label(), st.Progress.LessonsCompleted, st.Progress.Streak)).
			Raw("</p>")
	}
	h.Raw(`<a href="/garden" class="mt-6 inline-block text-green-400">See your garden</a></div>`)
}
