package style

import "fmt"

type WarningType string

const (
	WarningProperty      WarningType = "IncompatibleNativeProperty"
	WarningValue         WarningType = "IncompatibleNativeValue"
	WarningFunctionValue WarningType = "IncompatibleNativeFunctionValue"
)

// Warning reports a property or value the platform cannot express.
// Warnings never stop resolution.
type Warning struct {
	Type     WarningType `mapstructure:"type"`
	Property string      `mapstructure:"property"`
	Value    any         `mapstructure:"value"`
}

func (w Warning) String() string {
	if w.Value == nil {
		return fmt.Sprintf("%s: %s", w.Type, w.Property)
	}
	return fmt.Sprintf("%s: %s=%v", w.Type, w.Property, w.Value)
}
