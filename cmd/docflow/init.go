package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a docflow.yml in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat("docflow.yml"); err == nil {
			return fmt.Errorf("docflow.yml already exists")
		}

		var answers struct {
			Database string
			Port     int
			Secret   string
		}

		questions := []*survey.Question{
			{
				Name: "database",
				Prompt: &survey.Select{
					Message: "Database:",
					Options: []string{"sqlite", "postgres"},
					Default: "sqlite",
				},
			},
			{
				Name: "port",
				Prompt: &survey.Input{
					Message: "Server port:",
					Default: "8080",
				},
			},
			{
				Name: "secret",
				Prompt: &survey.Password{
					Message: "JWT secret (empty for header-based identity):",
				},
			},
		}
		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}

		dbURL := "sqlite://docflow.db"
		if answers.Database == "postgres" {
			if err := survey.AskOne(&survey.Input{
				Message: "Postgres URL:",
				Default: "postgres://localhost:5432/docflow",
			}, &dbURL, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
		}

		content := fmt.Sprintf(`database:
  url: %s

server:
  host: localhost
  port: %d

auth:
  jwt_secret: %q

log:
  level: info
`, dbURL, answers.Port, answers.Secret)

		if err := os.WriteFile("docflow.yml", []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write docflow.yml: %w", err)
		}

		success := color.New(color.FgGreen, color.Bold)
		success.Println("Created docflow.yml")
		info := color.New(color.FgCyan)
		info.Println("Next steps:")
		info.Println("  docflow migrate")
		info.Println("  docflow serve")
		return nil
	},
}
