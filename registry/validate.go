package registry

import (
	"fmt"
	"strings"

	"github.com/AnatoleLucet/sigstyle/style"
)

// Validate checks the shape of a registration. Registration is a developer
// time configuration step, so every problem is reported at once.
func Validate(opts Options) error {
	var problems []string

	for name, entries := range opts.Declarations {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t\n") {
			problems = append(problems, fmt.Sprintf("declaration name %q is not a single class name", name))
		}
		if len(entries) == 0 {
			problems = append(problems, fmt.Sprintf("%s: no style entries", name))
		}
		for i, entry := range entries {
			for _, p := range validateStyle(entry) {
				problems = append(problems, fmt.Sprintf("%s[%d]: %s", name, i, p))
			}
		}
	}

	for name, anim := range opts.Keyframes {
		if name == "" {
			problems = append(problems, "keyframes without a name")
		}
		if anim == nil {
			problems = append(problems, fmt.Sprintf("keyframes %s: missing", name))
			continue
		}
		for i, frame := range anim.Frames {
			if frame.Selector < 0 || frame.Selector > 1 {
				problems = append(problems, fmt.Sprintf("keyframes %s[%d]: selector %v outside [0, 1]", name, i, frame.Selector))
			}
			problems = append(problems, validateValues(fmt.Sprintf("keyframes %s[%d]", name, i), frame.Style)...)
		}
	}

	for label, vars := range map[string]map[string]style.Value{
		"rootVariables":        opts.RootVariables,
		"rootDarkVariables":    opts.RootDarkVariables,
		"defaultVariables":     opts.DefaultVariables,
		"defaultDarkVariables": opts.DefaultDarkVariables,
	} {
		problems = append(problems, validateVariables(label, vars)...)
	}

	if opts.DarkMode != nil {
		problems = append(problems, validateDarkMode(opts.DarkMode)...)
	}

	if len(problems) > 0 {
		return &RegistrationError{Problems: problems}
	}

	return nil
}

func validateStyle(s *style.ExtractedStyle) []string {
	if s == nil {
		return []string{"nil style entry"}
	}

	var problems []string

	problems = append(problems, validateValues("style", s.Style)...)
	problems = append(problems, validateVariables("variables", s.Variables)...)

	for _, q := range s.Media {
		problems = append(problems, validateMedia(q)...)
	}

	for _, q := range s.ContainerQuery {
		if q.Condition != nil {
			problems = append(problems, validateCondition(*q.Condition)...)
		}
	}

	if s.Container != nil {
		for _, name := range s.Container.Names {
			if name == "" {
				problems = append(problems, "empty container name")
			}
		}
		switch s.Container.Type {
		case "", style.ContainerNormal, style.ContainerSize, style.ContainerInlineSize:
		default:
			problems = append(problems, fmt.Sprintf("unknown container type %q", s.Container.Type))
		}
	}

	if s.Prop != nil && s.Prop.Target == "" {
		problems = append(problems, "prop mapping without a target")
	}

	return problems
}

func validateValues(label string, values map[string]style.Value) []string {
	var problems []string
	for key, v := range values {
		if key == "" {
			problems = append(problems, fmt.Sprintf("%s: empty property name", label))
		}
		if v == nil {
			problems = append(problems, fmt.Sprintf("%s.%s: missing value", label, key))
		}
	}
	return problems
}

func validateVariables(label string, vars map[string]style.Value) []string {
	problems := validateValues(label, vars)
	for name := range vars {
		if !strings.HasPrefix(name, "--") {
			problems = append(problems, fmt.Sprintf("%s: variable %q must start with --", label, name))
		}
	}
	return problems
}

func validateMedia(q style.MediaQuery) []string {
	var problems []string

	switch q.Qualifier {
	case "", "not", "only":
	default:
		problems = append(problems, fmt.Sprintf("unknown media qualifier %q", q.Qualifier))
	}

	switch q.MediaType {
	case "", "all", "screen", "print":
	default:
		problems = append(problems, fmt.Sprintf("unknown media type %q", q.MediaType))
	}

	for _, f := range q.Features {
		problems = append(problems, validateFeature(f)...)
	}

	return problems
}

func validateFeature(f style.Feature) []string {
	var problems []string

	if f.Name == "" {
		problems = append(problems, "feature without a name")
	}

	switch f.Operator {
	case "", "=", ">", ">=", "<", "<=":
	default:
		problems = append(problems, fmt.Sprintf("feature %s: unknown operator %q", f.Name, f.Operator))
	}

	return problems
}

func validateCondition(c style.ContainerCondition) []string {
	switch c.Type {
	case style.ConditionFeature:
		if c.Feature == nil {
			return []string{"feature condition without a feature"}
		}
		return validateFeature(*c.Feature)

	case style.ConditionAnd, style.ConditionOr, style.ConditionNot:
		if len(c.Conditions) == 0 {
			return []string{fmt.Sprintf("%s condition without operands", c.Type)}
		}
		if c.Type == style.ConditionNot && len(c.Conditions) != 1 {
			return []string{"not condition takes exactly one operand"}
		}

		var problems []string
		for _, sub := range c.Conditions {
			problems = append(problems, validateCondition(sub)...)
		}
		return problems
	}

	return []string{fmt.Sprintf("unknown container condition type %q", c.Type)}
}

func validateDarkMode(mode *style.DarkMode) []string {
	switch mode.Type {
	case style.DarkModeMedia:
		return nil
	case style.DarkModeClass, style.DarkModeAttribute:
		if mode.Value == "" {
			return []string{fmt.Sprintf("dark mode %s needs a value", mode.Type)}
		}
		return nil
	}

	return []string{fmt.Sprintf("unknown dark mode type %q", mode.Type)}
}
