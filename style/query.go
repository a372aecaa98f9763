package style

// MediaQuery is one entry of a media query list. Features are AND-ed;
// the entries of a list are OR-ed.
type MediaQuery struct {
	Qualifier string    `mapstructure:"qualifier"` // "", "not" or "only"
	MediaType string    `mapstructure:"mediaType"` // "", "all", "screen" or "print"
	Features  []Feature `mapstructure:"features"`
}

// Feature is a single media or container feature test, e.g. min-width >= 640.
type Feature struct {
	Name     string `mapstructure:"name"`
	Operator string `mapstructure:"operator"` // "=", ">", ">=", "<", "<="; empty means "="
	Value    any    `mapstructure:"value"`
}

// ContainerQuery targets the nearest ancestor container with Name, or the
// nearest container at all when Name is empty.
type ContainerQuery struct {
	Name          string              `mapstructure:"name"`
	Condition     *ContainerCondition `mapstructure:"condition"`
	PseudoClasses *PseudoClassesQuery `mapstructure:"pseudoClasses"`
}

type ConditionType string

const (
	ConditionFeature ConditionType = "feature"
	ConditionAnd     ConditionType = "and"
	ConditionOr      ConditionType = "or"
	ConditionNot     ConditionType = "not"
)

// ContainerCondition is a boolean tree of size features.
type ContainerCondition struct {
	Type       ConditionType        `mapstructure:"type"`
	Feature    *Feature             `mapstructure:"feature"`
	Conditions []ContainerCondition `mapstructure:"conditions"`
}
