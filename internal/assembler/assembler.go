// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package assembler turns a complete files snapshot into a queryable
// configuration lookup by merging layers in precedence order: file layers in
// their declaration order (later files override earlier ones), then the
// environment layer, then the command-line flag layer, each optional.
//
// The lookup engine is koanf; file payloads are parsed as YAML for .yaml and
// .yml paths and as JSON for everything else. Assembly is all-or-nothing:
// any classified failure discards the whole refresh and no partial lookup is
// ever produced.
package assembler

import (
	"flag"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/basicflag"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/MKhiriev/go-live-config/models"
)

// Delim is the key-path delimiter of every assembled lookup.
const Delim = "."

// Options selects the optional layers merged on top of the file layers.
type Options struct {
	// IncludeEnv merges process environment variables over the file layers.
	// Only variables starting with EnvPrefix participate; the prefix is
	// stripped and underscores become key-path delimiters, so with prefix
	// "APP_" the variable APP_SERVER_PORT resolves the key "server.port".
	IncludeEnv bool

	// EnvPrefix filters and rewrites environment variable names.
	// Ignored unless IncludeEnv is set.
	EnvPrefix string

	// Flags, when non-nil, is merged as the highest-precedence layer.
	// Only flags the user actually set contribute; registered flags left
	// at their defaults are not CLI input and add no layer entry. Flag
	// names containing Delim resolve to nested keys.
	Flags *flag.FlagSet
}

// Assembler builds configuration lookups from file snapshots.
type Assembler struct {
	opts Options
}

// New constructs an Assembler with the given layer options.
func New(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

// Assemble merges the snapshot into a fresh lookup. The lookup is rebuilt
// wholesale on every call; nothing is patched incrementally.
//
// Per slot, in spec order: Data contributes a parsed layer, TooLarge aborts
// with [ErrFileTooLarge], Unreadable aborts with [ErrMissingFile] unless the
// spec is optional (then the layer is skipped), ReadError aborts with
// [ErrFileRead]. An abort discards the entire refresh.
func (a *Assembler) Assemble(snapshot models.FilesSnapshot) (*koanf.Koanf, error) {
	k := koanf.New(Delim)

	for i := 0; i < snapshot.Len(); i++ {
		spec, state := snapshot.Specs[i], snapshot.States[i]

		switch state.Kind() {
		case models.FileStateData:
			if err := k.Load(rawbytes.Provider(state.Data()), parserFor(spec.Path)); err != nil {
				return nil, NewParseError(err)
			}

		case models.FileStateTooLarge:
			return nil, NewFileTooLarge(spec.Path)

		case models.FileStateUnreadable:
			if spec.Optional {
				continue
			}
			return nil, NewMissingFile(spec.Path)

		case models.FileStateReadError:
			return nil, NewFileReadError(spec.Path, state.Cause())
		}
	}

	if a.opts.IncludeEnv {
		if err := k.Load(env.Provider(a.opts.EnvPrefix, Delim, a.envKey), nil); err != nil {
			return nil, NewUnknownError(err)
		}
	}

	if a.opts.Flags != nil {
		if err := k.Load(basicflag.ProviderWithValue(a.opts.Flags, Delim, setFlagsOnly(a.opts.Flags)), nil); err != nil {
			return nil, NewUnknownError(err)
		}
	}

	return k, nil
}

// setFlagsOnly returns a provider callback admitting only flags the user
// actually passed. Unset flags must not leak their defaults into the
// highest-precedence layer, where they would shadow file and environment
// values for the same key.
func setFlagsOnly(fs *flag.FlagSet) func(key, value string) (string, any) {
	set := make(map[string]struct{})
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = struct{}{}
	})

	return func(key, value string) (string, any) {
		if _, ok := set[key]; !ok {
			return "", nil
		}
		return key, value
	}
}

// envKey rewrites an environment variable name into a lookup key:
// the prefix is stripped, the rest lowercased and underscores turned into
// key-path delimiters.
func (a *Assembler) envKey(name string) string {
	key := strings.TrimPrefix(name, a.opts.EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", Delim)
}

// parserFor selects a koanf parser by file extension.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return kjson.Parser()
	}
}
