// Package cmd holds the subcommands of the do tool.
package cmd

import "github.com/spf13/cobra"

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:          "do",
		Short:        "Development and operations tools for SkillBloom",
		SilenceUsage: true,
	}
	root.AddCommand(DevCmd(), MigrateCmd(), LessonCmd(), QuizCmd())
	return root
}
