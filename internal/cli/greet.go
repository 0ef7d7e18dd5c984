package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/task-cli/internal/core"
)

var (
	greetName     string
	greetGreeting string
)

// promptGreeting asks for any missing values. Overridden in tests.
var promptGreeting = func(name, greeting *string) error {
	var fields []huh.Field
	if strings.TrimSpace(*name) == "" {
		fields = append(fields, huh.NewInput().
			Title("What is your name?").
			Validate(requireNonEmpty("name")).
			Value(name))
	}
	if strings.TrimSpace(*greeting) == "" {
		fields = append(fields, huh.NewInput().
			Title("What should I say to greet you?").
			Validate(requireNonEmpty("greeting")).
			Value(greeting))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func requireNonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

var greetCmd = &cobra.Command{
	Use:         "greet",
	Short:       "Say hello",
	Long:        `Ask for your name and a greeting, then print a welcome message. Values passed with --name and --greeting are not prompted for.`,
	Args:        argsBetween(0, 0, ""),
	Annotations: map[string]string{skipInitAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, greeting := greetName, greetGreeting
		if err := promptGreeting(&name, &greeting); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("greeting form: %w", err)
		}

		name = strings.TrimSpace(name)
		greeting = strings.TrimSpace(greeting)
		if name == "" {
			return &core.ValidationError{Field: "name", Message: "must not be empty"}
		}
		if greeting == "" {
			return &core.ValidationError{Field: "greeting", Message: "must not be empty"}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Hello %s, %s! Thank you for using task-cli.\n", name, greeting)
		return nil
	},
}

func init() {
	greetCmd.Flags().StringVar(&greetName, "name", "", "Your name")
	greetCmd.Flags().StringVar(&greetGreeting, "greeting", "", "Greeting to print")
	rootCmd.AddCommand(greetCmd)
}
