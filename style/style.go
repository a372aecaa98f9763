// Package style holds the records produced by the stylesheet compiler and
// consumed by the resolver. Nothing in here is mutated after registration.
package style

// ExtractedStyle is one compiled style rule.
type ExtractedStyle struct {
	Style          map[string]Value    `mapstructure:"style"`
	Media          []MediaQuery        `mapstructure:"media"`
	PseudoClasses  *PseudoClassesQuery `mapstructure:"pseudoClasses"`
	ContainerQuery []ContainerQuery    `mapstructure:"containerQuery"`
	Container      *Container          `mapstructure:"container"`
	Variables      map[string]Value    `mapstructure:"variables"`
	Animations     *Animations         `mapstructure:"animations"`
	Transition     *Transition         `mapstructure:"transition"`
	Prop           *PropMapping        `mapstructure:"prop"`
	RequiresLayout bool                `mapstructure:"requiresLayout"`
	IsDynamic      bool                `mapstructure:"isDynamic"`
	Warnings       []Warning           `mapstructure:"warnings"`
}

// Dynamic reports whether the rule holds runtime values, either flagged by the
// compiler or discovered in its style.
func (s *ExtractedStyle) Dynamic() bool {
	if s.IsDynamic {
		return true
	}

	for _, v := range s.Style {
		if IsDynamic(v) {
			return true
		}
	}

	return false
}

// NeedsLayout reports whether the owning component has to be measured for
// this rule: explicitly, or because it declares a container.
func (s *ExtractedStyle) NeedsLayout() bool {
	return s.RequiresLayout || s.Container != nil
}

// PropMapping moves style out of the target prop into another prop.
// With an Attribute, only that style attribute is moved
// (e.g. color -> placeholderTextColor); without it the whole style is.
type PropMapping struct {
	Target    string `mapstructure:"target"`
	Attribute string `mapstructure:"attribute"`
}

type PseudoClassesQuery struct {
	Hover  bool `mapstructure:"hover"`
	Active bool `mapstructure:"active"`
	Focus  bool `mapstructure:"focus"`
}

func (q *PseudoClassesQuery) Empty() bool {
	return q == nil || (!q.Hover && !q.Active && !q.Focus)
}

type ContainerType string

const (
	ContainerNormal     ContainerType = "normal"
	ContainerSize       ContainerType = "size"
	ContainerInlineSize ContainerType = "inline-size"
)

// Container declares the component a named container for its subtree.
type Container struct {
	Names []string      `mapstructure:"names"`
	Type  ContainerType `mapstructure:"type"`
}

// Animations mirrors the CSS animation-* longhands, one entry per animation.
type Animations struct {
	Name           []string `mapstructure:"name"`
	Duration       []string `mapstructure:"duration"`
	Delay          []string `mapstructure:"delay"`
	IterationCount []string `mapstructure:"iterationCount"`
	TimingFunction []string `mapstructure:"timingFunction"`
	Direction      []string `mapstructure:"direction"`
	FillMode       []string `mapstructure:"fillMode"`
	PlayState      []string `mapstructure:"playState"`
}

type Transition struct {
	Property       []string `mapstructure:"property"`
	Duration       []string `mapstructure:"duration"`
	Delay          []string `mapstructure:"delay"`
	TimingFunction []string `mapstructure:"timingFunction"`
}

// Animation is a named keyframes block.
type Animation struct {
	Frames         []Keyframe `mapstructure:"frames"`
	RequiresLayout bool       `mapstructure:"requiresLayout"`
}

type Keyframe struct {
	Selector float64          `mapstructure:"selector"`
	Style    map[string]Value `mapstructure:"style"`
}

type DarkModeType string

const (
	DarkModeMedia     DarkModeType = "media"
	DarkModeClass     DarkModeType = "class"
	DarkModeAttribute DarkModeType = "attribute"
)

// DarkMode tells how the stylesheet switches to dark mode.
type DarkMode struct {
	Type  DarkModeType `mapstructure:"type"`
	Value string       `mapstructure:"value"`
}
