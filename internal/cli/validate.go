package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/sigstyle/registry"
)

type ValidationResult struct {
	Valid        bool     `yaml:"valid"`
	Declarations int      `yaml:"declarations"`
	Keyframes    int      `yaml:"keyframes"`
	Problems     []string `yaml:"problems,omitempty"`
}

func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rules-file>",
		Short: "Check a rule file without resolving anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	rules, err := registry.LoadFile(path)
	if err == nil {
		err = registry.Validate(rules)
	}

	result := ValidationResult{
		Valid:        err == nil,
		Declarations: len(rules.Declarations),
		Keyframes:    len(rules.Keyframes),
	}

	var regErr *registry.RegistrationError
	switch {
	case errors.As(err, &regErr):
		result.Problems = regErr.Problems
	case err != nil:
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format == "yaml" {
		if err := yaml.NewEncoder(out).Encode(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(out, "%s: %d declarations, %d keyframes, valid\n", path, result.Declarations, result.Keyframes)
	} else {
		for _, p := range result.Problems {
			fmt.Fprintf(out, "%s: %s\n", path, p)
		}
	}

	if !result.Valid {
		return fmt.Errorf("%s: %d problems", path, len(result.Problems))
	}

	return nil
}
