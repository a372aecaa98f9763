// Package registry holds the rules supplied by the stylesheet compiler along
// with the root and default variables and the color scheme setting.
//
// A Registry is an explicit value created at startup and handed to the
// resolver. Every read goes through a version signal, so re-registering the
// rule set (hot reload) invalidates every resolved style that used it.
package registry

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/AnatoleLucet/sigstyle/device"
	"github.com/AnatoleLucet/sigstyle/internal/logging"
	"github.com/AnatoleLucet/sigstyle/sig"
	"github.com/AnatoleLucet/sigstyle/style"
)

// DefaultRem is the root font size used to resolve rem units.
const DefaultRem = 16

type ColorScheme string

const (
	SchemeLight  ColorScheme = "light"
	SchemeDark   ColorScheme = "dark"
	SchemeSystem ColorScheme = "system"
)

// Options is the payload of a registration. Declarations map a class-like
// name to its rules in declaration order.
type Options struct {
	Declarations         map[string][]*style.ExtractedStyle `mapstructure:"declarations"`
	Keyframes            map[string]*style.Animation        `mapstructure:"keyframes"`
	RootVariables        map[string]style.Value             `mapstructure:"rootVariables"`
	RootDarkVariables    map[string]style.Value             `mapstructure:"rootDarkVariables"`
	DefaultVariables     map[string]style.Value             `mapstructure:"defaultVariables"`
	DefaultDarkVariables map[string]style.Value             `mapstructure:"defaultDarkVariables"`
	DarkMode             *style.DarkMode                    `mapstructure:"darkMode"`
	ColorSchemeClass     string                             `mapstructure:"colorSchemeClass"`
}

type Registry struct {
	logger *slog.Logger
	device *device.Device

	version *sig.Signal[uint64]

	declarations         map[string][]*style.ExtractedStyle
	keyframes            map[string]*style.Animation
	rootVariables        map[string]style.Value
	rootDarkVariables    map[string]style.Value
	defaultVariables     map[string]style.Value
	defaultDarkVariables map[string]style.Value

	darkMode         style.DarkMode
	colorSchemeClass string

	colorScheme *sig.Signal[ColorScheme]
	rem         *sig.Signal[float64]
}

func New(dev *device.Device, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}

	r := &Registry{
		logger:      logger,
		device:      dev,
		version:     sig.NewSignal[uint64](0),
		colorScheme: sig.NewSignal(SchemeSystem),
		rem:         sig.NewSignal[float64](DefaultRem),
	}
	r.clear()

	return r
}

func (r *Registry) clear() {
	r.declarations = make(map[string][]*style.ExtractedStyle)
	r.keyframes = make(map[string]*style.Animation)
	r.rootVariables = make(map[string]style.Value)
	r.rootDarkVariables = make(map[string]style.Value)
	r.defaultVariables = make(map[string]style.Value)
	r.defaultDarkVariables = make(map[string]style.Value)
	r.darkMode = style.DarkMode{Type: style.DarkModeMedia}
	r.colorSchemeClass = "dark"
}

// Register validates opts and merges it into the registry. Nothing is
// applied when validation fails.
func (r *Registry) Register(opts Options) error {
	if err := Validate(opts); err != nil {
		return err
	}

	maps.Copy(r.declarations, opts.Declarations)
	maps.Copy(r.keyframes, opts.Keyframes)
	maps.Copy(r.rootVariables, opts.RootVariables)
	maps.Copy(r.rootDarkVariables, opts.RootDarkVariables)
	maps.Copy(r.defaultVariables, opts.DefaultVariables)
	maps.Copy(r.defaultDarkVariables, opts.DefaultDarkVariables)

	if opts.DarkMode != nil {
		r.darkMode = *opts.DarkMode
	}
	if opts.ColorSchemeClass != "" {
		r.colorSchemeClass = opts.ColorSchemeClass
	}

	version := r.version.Snapshot() + 1
	r.version.Write(version)

	r.logger.Info("styles registered",
		"declarations", len(opts.Declarations),
		"keyframes", len(opts.Keyframes),
		"version", version,
	)

	return nil
}

// MustRegister is Register for rule sets known to be valid; it panics otherwise.
func (r *Registry) MustRegister(opts Options) {
	if err := r.Register(opts); err != nil {
		panic(err)
	}
}

// Reset drops every rule, variable and setting, as if the registry was new.
func (r *Registry) Reset() {
	r.clear()

	sig.NewBatch(func() {
		r.colorScheme.Write(SchemeSystem)
		r.rem.Write(DefaultRem)
		r.version.Write(r.version.Snapshot() + 1)
	})

	r.logger.Debug("styles reset")
}

// Version increments on every registration and reset.
func (r *Registry) Version(e *sig.Effect) uint64 {
	return r.version.Get(e)
}

// Lookup returns the rules registered under name.
func (r *Registry) Lookup(e *sig.Effect, name string) []*style.ExtractedStyle {
	r.version.Get(e)
	return r.declarations[name]
}

// Styles returns the rules of every whitespace separated name in classNames,
// in the order the names appear.
func (r *Registry) Styles(e *sig.Effect, classNames string) []*style.ExtractedStyle {
	r.version.Get(e)

	var styles []*style.ExtractedStyle
	for _, name := range strings.Fields(classNames) {
		styles = append(styles, r.declarations[name]...)
	}

	return styles
}

func (r *Registry) Keyframes(e *sig.Effect, name string) (*style.Animation, bool) {
	r.version.Get(e)
	anim, ok := r.keyframes[name]
	return anim, ok
}

// Variable looks a variable up in the registered defaults. Universal defaults
// win over root variables, and dark variants win over light ones while dark
// mode is active. The color scheme is only read when a dark variant exists,
// so light-only variables never depend on it.
func (r *Registry) Variable(e *sig.Effect, name string) (style.Value, bool) {
	r.version.Get(e)

	for _, layer := range []struct{ light, dark map[string]style.Value }{
		{r.defaultVariables, r.defaultDarkVariables},
		{r.rootVariables, r.rootDarkVariables},
	} {
		if v, ok := layer.dark[name]; ok && r.IsDark(e) {
			return v, true
		}
		if v, ok := layer.light[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// IsDark reports whether dark styles apply, following the system appearance
// when the scheme is "system".
func (r *Registry) IsDark(e *sig.Effect) bool {
	switch r.colorScheme.Get(e) {
	case SchemeDark:
		return true
	case SchemeLight:
		return false
	}

	return r.device != nil && r.device.ColorScheme(e) == device.Dark
}

func (r *Registry) ColorScheme(e *sig.Effect) ColorScheme {
	return r.colorScheme.Get(e)
}

func (r *Registry) SetColorScheme(scheme ColorScheme) error {
	switch scheme {
	case SchemeLight, SchemeDark, SchemeSystem:
	default:
		return fmt.Errorf("%w: %q", ErrColorScheme, scheme)
	}

	r.colorScheme.Write(scheme)
	r.logger.Debug("color scheme changed", "scheme", scheme)

	return nil
}

func (r *Registry) DarkMode() style.DarkMode {
	return r.darkMode
}

func (r *Registry) SetDarkMode(mode style.DarkMode) error {
	if problems := validateDarkMode(&mode); len(problems) > 0 {
		return &RegistrationError{Problems: problems}
	}

	r.darkMode = mode
	r.version.Write(r.version.Snapshot() + 1)

	return nil
}

func (r *Registry) ColorSchemeClass() string {
	return r.colorSchemeClass
}

func (r *Registry) Rem(e *sig.Effect) float64 {
	return r.rem.Get(e)
}

func (r *Registry) SetRem(rem float64) {
	r.rem.Write(rem)
}

// Names returns the registered declaration names, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.declarations))
}
