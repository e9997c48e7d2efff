package cmd

import (
	"errors"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

func DevCmd() *cobra.Command {
	var noReload bool
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the server locally, rebuilding on change with air",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := devCommand(noReload)
			if err != nil {
				return err
			}
			c.Stdout, c.Stderr = cmd.OutOrStdout(), cmd.ErrOrStderr()
			c.Env = devEnv()
			return c.Run()
		},
	}
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "go run the server once instead of watching with air")
	return cmd
}

func devCommand(noReload bool) (*exec.Cmd, error) {
	if noReload {
		return exec.Command("go", "run", "./cmd/server"), nil
	}

	air, err := exec.LookPath("air")
	if err != nil {
		return nil, errors.New("air not found, install with: go install github.com/air-verse/air@latest (or pass --no-reload)")
	}

	return exec.Command(air,
		"-c", os.DevNull,
		"-root", ".",
		"-build.cmd", "go build -o ./tmp/skillbloom ./cmd/server",
		"-build.bin", "./tmp/skillbloom",
		"-build.exclude_dir", "bin,tmp,data,_examples",
		"-build.exclude_regex", "_test.go$",
		"-build.include_ext", "go,yaml,sql,md",
		"-build.send_interrupt", "true",
	), nil
}

// devEnv defaults APP_ENV so the built-in learner secret is accepted.
func devEnv() []string {
	env := os.Environ()
	if os.Getenv("APP_ENV") == "" {
		env = append(env, "APP_ENV=development")
	}
	return env
}
