package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/fieldvar/log"
)

// resolve is a [kong.ConfigurationLoader] for YAML config files such as
// the one written by the init command:
//
//	log_level: debug
//	log_format: json
//	model: [model.yaml]
//	eval:
//	  format: yaml
//
// Keys use underscores in place of the hyphens of flag names. A mapping
// keyed by a command name holds flags that apply only when that command
// runs; it takes precedence over a top-level key of the same name.
// Scalars are passed to kong as text and lists are joined with commas.
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Warn("ignoring invalid config file", slog.Any("error", err))

		return config{}, nil
	}

	return configFrom(doc), nil
}

// config implements [kong.Resolver] over a decoded config file. Command
// sections are stored under their command name.
type config struct {
	flags    map[string]string
	commands map[string]config
}

func configFrom(doc map[string]any) config {
	c := config{
		flags:    make(map[string]string, len(doc)),
		commands: make(map[string]config),
	}

	for key, val := range doc {
		key = strings.ReplaceAll(key, "-", "_")

		if section, ok := val.(map[string]any); ok {
			c.commands[key] = configFrom(section)

			continue
		}

		if text, ok := flagText(val); ok {
			c.flags[key] = text
		}
	}

	return c
}

// flagText returns the command-line form of a config value.
func flagText(val any) (string, bool) {
	switch v := val.(type) {
	case nil:
		return "", false

	case string:
		return v, true

	case bool:
		return strconv.FormatBool(v), true

	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true

	case []any:
		parts := make([]string, 0, len(v))

		for _, e := range v {
			if text, ok := flagText(e); ok {
				parts = append(parts, text)
			}
		}

		return strings.Join(parts, ","), true

	default:
		return fmt.Sprint(v), true
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	key := strings.ReplaceAll(flag.Name, "-", "_")

	if parent != nil && parent.Command != nil {
		if section, ok := c.commands[parent.Command.Name]; ok {
			if val, ok := section.flags[key]; ok {
				return val, nil
			}
		}
	}

	if val, ok := c.flags[key]; ok {
		return val, nil
	}

	return nil, nil //nolint:nilnil
}
