package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/skillbloom/skillbloom/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply string
	err   error
	calls []*llm.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req *llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": llm.ChatMessage{Role: "assistant", Content: f.reply}},
		},
	})
	if err != nil {
		return nil, err
	}
	resp := &llm.ChatCompletionResponse{}
	err = json.Unmarshal(body, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

const lessonReply = `Here you go:
{
  "title": "Your First Chords",
  "introduction": "Chords are the backbone of most songs.",
  "concepts": [
    {"name": "Open chords", "explanation": "Chords using open strings", "example": "G, C, D"},
    {"name": "Strumming", "explanation": "Rhythmic brushing of strings"}
  ],
  "exercise": {"question": "Which chord will you practice first?", "hint": "Start with G"},
  "summary": "Three open chords unlock hundreds of songs."
}`

func TestGenerateLesson(t *testing.T) {
	completer := &fakeCompleter{reply: lessonReply}
	svc := NewContentService(completer, "mistral-small-latest", 0, nil)

	lesson, err := svc.GenerateLesson(context.Background(), LessonRequest{Skill: "Guitar"})
	require.NoError(t, err)

	assert.Equal(t, "Your First Chords", lesson.Title)
	assert.Len(t, lesson.Concepts, 2)
	require.Len(t, completer.calls, 1)
	assert.Equal(t, 0.7, completer.calls[0].Temperature)
	assert.Equal(t, 1000, completer.calls[0].MaxTokens)
	assert.Contains(t, completer.calls[0].Messages[0].Content, "first lesson")
}

func TestGenerateLesson_PreviousTopics(t *testing.T) {
	completer := &fakeCompleter{reply: lessonReply}
	svc := NewContentService(completer, "m", 0, nil)

	_, err := svc.GenerateLesson(context.Background(), LessonRequest{
		Skill:          "Guitar",
		Level:          "intermediate",
		PreviousTopics: []string{"Open chords", "Tuning"},
	})
	require.NoError(t, err)
	assert.Contains(t, completer.calls[0].Messages[0].Content, "Open chords, Tuning")
}

func TestGenerateLesson_Fallback(t *testing.T) {
	tests := []struct {
		name      string
		completer *fakeCompleter
	}{
		{"malformed reply", &fakeCompleter{reply: "I cannot help with that"}},
		{"upstream error", &fakeCompleter{err: errors.New("connection refused")}},
		{"missing api key", &fakeCompleter{err: llm.ErrMissingAPIKey}},
		{"untitled lesson", &fakeCompleter{reply: `{"title": "  "}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewContentService(tt.completer, "m", 0, nil)

			lesson, err := svc.GenerateLesson(context.Background(), LessonRequest{Skill: "Guitar"})
			require.NoError(t, err)
			assert.Equal(t, "Introduction to Guitar", lesson.Title)
			assert.Equal(t, 3, lesson.PageCount())
		})
	}
}

func TestGenerateLesson_Validation(t *testing.T) {
	svc := NewContentService(&fakeCompleter{}, "m", 0, nil)

	_, err := svc.GenerateLesson(context.Background(), LessonRequest{Skill: "  "})
	assert.ErrorIs(t, err, ErrSkillRequired)

	_, err = svc.GenerateLesson(context.Background(), LessonRequest{Skill: "Guitar", Level: "expert"})
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestGenerateQuiz(t *testing.T) {
	completer := &fakeCompleter{reply: `[
		{"question": "Q1", "options": ["a", "b"], "correctIndex": 0, "explanation": "e"},
		{"question": "broken", "options": ["a"], "correctIndex": 3},
		{"question": "Q2", "options": ["a", "b"], "correctIndex": 1},
		{"question": "Q3", "options": ["a", "b"], "correctIndex": 1}
	]`}
	svc := NewContentService(completer, "m", 0, nil)

	quiz, err := svc.GenerateQuiz(context.Background(), QuizRequest{
		Skill:         "Guitar",
		LessonContent: "Chords",
		NumQuestions:  2,
	})
	require.NoError(t, err)

	require.Len(t, quiz, 2)
	assert.Equal(t, "Q1", quiz[0].Question)
	assert.Equal(t, "Q2", quiz[1].Question)
	assert.Equal(t, 0.5, completer.calls[0].Temperature)
	assert.Equal(t, 800, completer.calls[0].MaxTokens)
}

func TestGenerateQuiz_CapsQuestionCount(t *testing.T) {
	completer := &fakeCompleter{reply: "[]"}
	svc := NewContentService(completer, "m", 4, nil)

	quiz, err := svc.GenerateQuiz(context.Background(), QuizRequest{
		Skill:         "Guitar",
		LessonContent: "Chords",
		NumQuestions:  50,
	})
	require.NoError(t, err)

	assert.Equal(t, FallbackQuiz(), quiz)
	assert.Contains(t, completer.calls[0].Messages[0].Content, "Write 4 quiz questions")
}

func TestGenerateQuiz_Validation(t *testing.T) {
	svc := NewContentService(&fakeCompleter{}, "m", 0, nil)

	_, err := svc.GenerateQuiz(context.Background(), QuizRequest{LessonContent: "x"})
	assert.ErrorIs(t, err, ErrSkillRequired)

	_, err = svc.GenerateQuiz(context.Background(), QuizRequest{Skill: "Guitar"})
	assert.ErrorIs(t, err, ErrLessonContentRequired)
}

func TestGenerateLearningPath(t *testing.T) {
	completer := &fakeCompleter{reply: `["Tuning", " ", "Open chords"]`}
	svc := NewContentService(completer, "m", 0, nil)

	path, err := svc.GenerateLearningPath(context.Background(), PathRequest{Skill: "Guitar", Goal: "Play at a campfire"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tuning", "Open chords"}, path)

	svc = NewContentService(&fakeCompleter{err: errors.New("boom")}, "m", 0, nil)
	path, err = svc.GenerateLearningPath(context.Background(), PathRequest{Skill: "Guitar"})
	require.NoError(t, err)
	assert.Equal(t, FallbackLearningPath("Guitar"), path)
}
