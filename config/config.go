/*
Package config holds the settings of a wingfont compile.

Settings are read from YAML files. Keys not listed below are rejected, and
every key not present in a file keeps its default value:

	max_word_length:       7        # longer words do not produce word rules
	max_variants_per_char: 10       # annotation slots per character
	char_weight:           full     # 'full' adds the row weight, 'unit' adds 1
	min_word_weight:       1        # rows below this weight do not produce word rules
	example_words:         3        # example words kept per annotation, for diagnostics
	chunk_capacity:        500      # initial-character groups per context lookup
	max_banks:             256      # addressable substitution banks
	lookup_base:           0        # identifier of the first emitted lookup
	feature_mode:          separate # 'separate' or 'merged'
	context_feature:       calt
	swap_feature:          locl
	scripts:               [DFLT, hani]
	numeric_override:      false
	numeric_feature:       liga
	numeric_chunk_size:    5000
	glyph_prefix:          wingfont
	workers:               1

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/wingfont/ot"
	"gopkg.in/yaml.v3"
)

// WeightMode selects how a row's weight contributes to character-level
// aggregation.
type WeightMode string

// Weight modes.
const (
	WeightFull WeightMode = "full" // add the row weight
	WeightUnit WeightMode = "unit" // add 1 per row
)

// FeatureMode selects how lookups are registered with features.
type FeatureMode string

// Feature modes.
const (
	FeatureSeparate FeatureMode = "separate" // context rules and banks under different tags
	FeatureMerged   FeatureMode = "merged"   // everything under the contextual tag
)

// Config is the complete set of compile settings.
type Config struct {
	MaxWordLength      int         `yaml:"max_word_length"`
	MaxVariantsPerChar int         `yaml:"max_variants_per_char"`
	CharWeight         WeightMode  `yaml:"char_weight"`
	MinWordWeight      int         `yaml:"min_word_weight"`
	ExampleWords       int         `yaml:"example_words"`
	ChunkCapacity      int         `yaml:"chunk_capacity"`
	MaxBanks           int         `yaml:"max_banks"`
	LookupBase         int         `yaml:"lookup_base"`
	FeatureMode        FeatureMode `yaml:"feature_mode"`
	ContextFeature     string      `yaml:"context_feature"`
	SwapFeature        string      `yaml:"swap_feature"`
	Scripts            []string    `yaml:"scripts"`
	NumericOverride    bool        `yaml:"numeric_override"`
	NumericFeature     string      `yaml:"numeric_feature"`
	NumericChunkSize   int         `yaml:"numeric_chunk_size"`
	GlyphPrefix        string      `yaml:"glyph_prefix"`
	Workers            int         `yaml:"workers"`
}

// Default returns the default settings.
func Default() Config {
	return Config{
		MaxWordLength:      7,
		MaxVariantsPerChar: 10,
		CharWeight:         WeightFull,
		MinWordWeight:      1,
		ExampleWords:       3,
		ChunkCapacity:      500,
		MaxBanks:           256,
		LookupBase:         0,
		FeatureMode:        FeatureSeparate,
		ContextFeature:     "calt",
		SwapFeature:        "locl",
		Scripts:            []string{"DFLT", "hani"},
		NumericOverride:    false,
		NumericFeature:     "liga",
		NumericChunkSize:   5000,
		GlyphPrefix:        "wingfont",
		Workers:            1,
	}
}

// Load reads settings from a YAML file, starting from the defaults.
// The result is validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse reads settings from YAML data, starting from the defaults.
// The result is validated.
func Parse(data []byte) (Config, error) {
	conf := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&conf); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// Validate checks the settings for consistency. It is called before any
// compile stage runs.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.MaxWordLength >= 2, "max_word_length must be at least 2, is %d", c.MaxWordLength)
	check(c.MaxVariantsPerChar >= 1, "max_variants_per_char must be at least 1, is %d", c.MaxVariantsPerChar)
	check(c.CharWeight == WeightFull || c.CharWeight == WeightUnit,
		"char_weight must be %q or %q, is %q", WeightFull, WeightUnit, c.CharWeight)
	check(c.MinWordWeight >= 0, "min_word_weight must not be negative, is %d", c.MinWordWeight)
	check(c.ExampleWords >= 0, "example_words must not be negative, is %d", c.ExampleWords)
	check(c.ChunkCapacity >= 1 && c.ChunkCapacity <= ot.MaxCoverageCount,
		"chunk_capacity must be in 1…%d, is %d", ot.MaxCoverageCount, c.ChunkCapacity)
	check(c.MaxBanks >= 1, "max_banks must be at least 1, is %d", c.MaxBanks)
	check(c.LookupBase >= 0 && c.LookupBase < ot.MaxLookupCount,
		"lookup_base must be in 0…%d, is %d", ot.MaxLookupCount-1, c.LookupBase)
	check(c.FeatureMode == FeatureSeparate || c.FeatureMode == FeatureMerged,
		"feature_mode must be %q or %q, is %q", FeatureSeparate, FeatureMerged, c.FeatureMode)
	checkTag := func(key, tag string) {
		check(len(tag) >= 1 && len(tag) <= 4 && ot.T(tag).IsValid(),
			"%s must be a tag of 1 to 4 printable characters, is %q", key, tag)
	}
	checkTag("context_feature", c.ContextFeature)
	checkTag("swap_feature", c.SwapFeature)
	checkTag("numeric_feature", c.NumericFeature)
	check(len(c.Scripts) > 0, "scripts must not be empty")
	for _, s := range c.Scripts {
		checkTag("scripts", s)
	}
	check(c.NumericChunkSize >= 1, "numeric_chunk_size must be at least 1, is %d", c.NumericChunkSize)
	check(c.GlyphPrefix != "", "glyph_prefix must not be empty")
	check(c.Workers >= 1, "workers must be at least 1, is %d", c.Workers)
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ScriptTags returns the configured scripts as tags, in configuration order.
func (c Config) ScriptTags() []ot.Tag {
	tags := make([]ot.Tag, len(c.Scripts))
	for i, s := range c.Scripts {
		tags[i] = ot.T(s)
	}
	return tags
}
