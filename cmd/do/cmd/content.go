package cmd

import (
	"encoding/json"
	"os"

	"github.com/skillbloom/skillbloom/internal/config"
	"github.com/skillbloom/skillbloom/internal/llm"
	"github.com/skillbloom/skillbloom/internal/service"
	"github.com/spf13/cobra"
)

func LessonCmd() *cobra.Command {
	var level string
	var previous []string

	cmd := &cobra.Command{
		Use:   "lesson <skill>",
		Short: "Generate a lesson and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lesson, err := contentService().GenerateLesson(cmd.Context(), service.LessonRequest{
				Skill:          args[0],
				Level:          level,
				PreviousTopics: previous,
			})
			if err != nil {
				return err
			}
			return printJSON(lesson)
		},
	}

	cmd.Flags().StringVar(&level, "level", "beginner", "beginner, intermediate or advanced")
	cmd.Flags().StringSliceVar(&previous, "previous", nil, "topics already covered")
	return cmd
}

func QuizCmd() *cobra.Command {
	var questions int

	cmd := &cobra.Command{
		Use:   "quiz <skill> <lesson text>",
		Short: "Generate a quiz for a lesson and print it as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, err := contentService().GenerateQuiz(cmd.Context(), service.QuizRequest{
				Skill:         args[0],
				LessonContent: args[1],
				NumQuestions:  questions,
			})
			if err != nil {
				return err
			}
			return printJSON(quiz)
		},
	}

	cmd.Flags().IntVarP(&questions, "questions", "n", service.DefaultQuizQuestions, "number of questions")
	return cmd
}

func contentService() *service.ContentService {
	cfg := config.Load()
	client := llm.NewClient(cfg.MistralEndpoint, cfg.MistralAPIKey, cfg.MistralTimeout)
	return service.NewContentService(client, cfg.MistralModel, cfg.FlowMaxQuizQuestions, nil)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
