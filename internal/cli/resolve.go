package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/sigstyle"
	"github.com/AnatoleLucet/sigstyle/device"
	"github.com/AnatoleLucet/sigstyle/registry"
	"github.com/AnatoleLucet/sigstyle/sig"
)

type ResolveOptions struct {
	Classes    string
	Width      float64
	Height     float64
	PixelRatio float64
	FontScale  float64
	OS         string
	Scheme     string
	Dark       bool
	Hover      bool
	Active     bool
	Focus      bool
}

type ResolveResult struct {
	Props          map[string]any `yaml:"props"`
	RequiresLayout bool           `yaml:"requiresLayout,omitempty"`
	Interactions   []string       `yaml:"interactions,omitempty"`
	Warnings       []string       `yaml:"warnings,omitempty"`
}

func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	m := device.DefaultMetrics
	opts := &ResolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <rules-file>",
		Short: "Resolve class names against a simulated device",
		Long: `Register a rule file, mount a single component with the given class names
and print the props it would render with.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, opts, args[0], cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Classes, "class", "c", "", "space separated class names")
	f.Float64Var(&opts.Width, "width", m.Width, "window width")
	f.Float64Var(&opts.Height, "height", m.Height, "window height")
	f.Float64Var(&opts.PixelRatio, "pixel-ratio", m.PixelRatio, "device pixel ratio")
	f.Float64Var(&opts.FontScale, "font-scale", m.FontScale, "font scale")
	f.StringVar(&opts.OS, "os", m.OS, "platform (ios|android|web)")
	f.StringVar(&opts.Scheme, "scheme", string(registry.SchemeSystem), "color scheme (light|dark|system)")
	f.BoolVar(&opts.Dark, "dark", false, "device prefers a dark color scheme")
	f.BoolVar(&opts.Hover, "hover", false, "resolve as hovered")
	f.BoolVar(&opts.Active, "active", false, "resolve as pressed")
	f.BoolVar(&opts.Focus, "focus", false, "resolve as focused")

	return cmd
}

func runResolve(rootOpts *RootOptions, opts *ResolveOptions, path string, cmd *cobra.Command) error {
	m := device.DefaultMetrics
	m.Width, m.Height = opts.Width, opts.Height
	m.PixelRatio, m.FontScale = opts.PixelRatio, opts.FontScale
	m.OS = opts.OS
	if opts.Dark {
		m.ColorScheme = device.Dark
	}

	defer sig.Release()

	eng, err := sigstyle.New(
		sigstyle.WithLogger(rootOpts.logger()),
		sigstyle.WithDevice(m),
		sigstyle.WithRulesFile(path),
	)
	if err != nil {
		return err
	}

	if err := eng.Registry().SetColorScheme(registry.ColorScheme(opts.Scheme)); err != nil {
		return err
	}

	c := eng.NewComponent("View")
	c.SetHover(opts.Hover)
	c.SetActive(opts.Active)
	c.SetFocus(opts.Focus)

	res := c.Interop(map[string]any{"className": opts.Classes}, nil, nil)

	result := ResolveResult{Props: res.Props, RequiresLayout: res.RequiresLayout}
	for name, on := range map[string]bool{"hover": res.HasHover, "active": res.HasActive, "focus": res.HasFocus} {
		if on {
			result.Interactions = append(result.Interactions, name)
		}
	}
	slices.Sort(result.Interactions)
	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, w.String())
	}

	out := cmd.OutOrStdout()
	if rootOpts.Format == "yaml" {
		return yaml.NewEncoder(out).Encode(result)
	}

	for _, key := range slices.Sorted(maps.Keys(result.Props)) {
		fmt.Fprintf(out, "%s: %v\n", key, result.Props[key])
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}

	return nil
}
