package registry

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/sigstyle/style"
)

// Decode turns loosely typed compiler output (decoded JSON or YAML) into
// Options. A declaration may be a single rule or a list of rules. Unknown
// keys are errors.
func Decode(raw map[string]any) (Options, error) {
	var opts Options

	if decls, ok := raw["declarations"].(map[string]any); ok {
		normalized := make(map[string]any, len(decls))
		for name, entries := range decls {
			if _, single := entries.(map[string]any); single {
				entries = []any{entries}
			}
			normalized[name] = entries
		}

		raw = maps.Clone(raw)
		raw["declarations"] = normalized
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  style.ValueHook(),
		ErrorUnused: true,
		Result:      &opts,
	})
	if err != nil {
		return Options{}, err
	}

	if err := decoder.Decode(raw); err != nil {
		var decodeErr *mapstructure.Error
		if errors.As(err, &decodeErr) {
			return Options{}, &RegistrationError{Problems: decodeErr.Errors}
		}
		return Options{}, &RegistrationError{Problems: []string{err.Error()}}
	}

	return opts, nil
}

// Load reads a YAML (or JSON) rule set.
func Load(r io.Reader) (Options, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Options{}, nil
		}
		return Options{}, fmt.Errorf("failed to parse rule set: %w", err)
	}

	return Decode(raw)
}

func LoadFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, err
	}
	defer f.Close()

	opts, err := Load(f)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}

	return opts, nil
}
