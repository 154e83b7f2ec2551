package logward

import (
	"fmt"
)

// Feature is an optional capability supplied alongside the base
// configuration. Every feature carries a group discriminant; at most one
// feature per group may be supplied, and a conflict is a fatal configuration
// error raised before any logger is constructed.
//
// A feature can contribute in two ways: by adjusting the merged settings
// before construction (its apply step), and by publishing services into the
// scope the logger is provided in. Consumers of a feature's service must
// treat its absence as a valid no-op state.
type Feature struct {
	// Group is the mutually-exclusive group discriminant.
	Group string

	// Name identifies the feature within error messages.
	Name string

	// Services are published into the scope when the feature's bundle is
	// applied.
	Services []ServiceProvider

	apply func(*settings) error
}

// ServiceProvider names a service instance contributed to a scope.
type ServiceProvider struct {
	Name     string
	Instance any
}

// FeatureGroupColor is the group of the color decoration features.
const FeatureGroupColor = "color"

// ColorServiceName is the scope service published by the color features.
const ColorServiceName = "logward.colorizer"

// Colorizer is the capability published by the color features. Consumers
// look it up in the scope and fall back to plain output when it is absent.
type Colorizer struct {
	enabled bool
}

// Enabled reports whether color decoration is active.
func (c *Colorizer) Enabled() bool {
	return c != nil && c.enabled
}

// Decorate wraps the level name of a formatted entry in ANSI color codes.
// On a nil or disabled Colorizer it returns the entry unchanged.
func (c *Colorizer) Decorate(level Level, formatted string) string {
	if !c.Enabled() {
		return formatted
	}
	return colorizeLevel(level) + " " + formatted
}

// ColorFeature enables ANSI color decoration: console appenders built from
// configuration colorize level names, and a Colorizer service is published
// for other consumers.
func ColorFeature() Feature {
	colorizer := &Colorizer{enabled: true}
	return Feature{
		Group:    FeatureGroupColor,
		Name:     "color",
		Services: []ServiceProvider{{Name: ColorServiceName, Instance: colorizer}},
		apply: func(s *settings) error {
			for _, appender := range s.appenders {
				if console, ok := appender.(*ConsoleAppender); ok {
					console.UseColor = true
				}
			}
			return nil
		},
	}
}

// MonochromeFeature forces plain output even where a config file asked for
// color. It shares the color group, so supplying it together with
// ColorFeature fails fast.
func MonochromeFeature() Feature {
	colorizer := &Colorizer{enabled: false}
	return Feature{
		Group:    FeatureGroupColor,
		Name:     "monochrome",
		Services: []ServiceProvider{{Name: ColorServiceName, Instance: colorizer}},
		apply: func(s *settings) error {
			for _, appender := range s.appenders {
				if console, ok := appender.(*ConsoleAppender); ok {
					console.UseColor = false
				}
			}
			return nil
		},
	}
}

// validateFeatures enforces the at-most-one-per-group rule.
func validateFeatures(features []Feature) error {
	seen := make(map[string]string, len(features))
	for _, feature := range features {
		if feature.Group == "" {
			return fmt.Errorf("%w: feature %s", ErrFeatureGroupEmpty, feature.Name)
		}
		if previous, exists := seen[feature.Group]; exists {
			return fmt.Errorf("%w %q: %s and %s", ErrConflictingFeatures, feature.Group, previous, feature.Name)
		}
		seen[feature.Group] = feature.Name
	}
	return nil
}
