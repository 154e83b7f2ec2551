package logward

import (
	"fmt"

	"github.com/google/uuid"
)

// Bundle is an opaque, combinable unit of wiring instructions. Bundles are
// produced by Provide, ProvideCategory and the legacy bridge, merged with
// Merge, and consumed by Scope.Apply. A bundle never exposes its contents;
// the only things callers can do with one are combine it and apply it.
type Bundle struct {
	id   uuid.UUID
	regs []registration
}

// registration is one wiring instruction inside a bundle. Construction
// registrations run before post-construction ones, which is what guarantees
// a logger exists before any category registration fires.
type registration struct {
	construct func(*Scope) error
	postInit  func(*Scope) error
}

// ID returns the bundle's identity token. Two merges of the same bundles
// yield distinct identities.
func (b *Bundle) ID() string {
	return b.id.String()
}

// Provide builds a provider bundle that, once applied to a scope, constructs
// a logger from the supplied options merged over the defaults. The options
// and any feature descriptors are validated eagerly: conflicting features or
// invalid values fail here, at composition time, never at log time.
//
// The constructed logger resolves its parent from the scope enclosing the
// one it is applied to, so a logger can never chain to itself.
func Provide(opts ...Option) (*Bundle, error) {
	// Merge once, eagerly: configuration and feature errors surface before
	// the bundle leaves the composition root, and appenders (which may hold
	// resources like open files) are constructed exactly once.
	s, err := mergeOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		id: uuid.New(),
		regs: []registration{{
			construct: func(scope *Scope) error {
				categories := make(map[string]Appender, len(s.categories))
				for category, appender := range s.categories {
					categories[category] = appender
				}
				logger := &Logger{
					level:      s.level,
					formatter:  s.formatter,
					appenders:  s.appenders,
					chaining:   s.chaining,
					categories: categories,
					parent:     scope.resolveParentLogger(),
				}
				if err := scope.setLogger(logger); err != nil {
					return err
				}
				for _, feature := range s.features {
					for _, service := range feature.Services {
						scope.registerInstance(service.Name, service.Instance)
					}
				}
				return nil
			},
		}},
	}, nil
}

// ProvideCategory builds a bundle that registers a dedicated appender for a
// category on the nearest logger, after that logger has been constructed.
// The registration may be applied in a nested scope: it binds to the logger
// of that scope or, when the scope has none, of the closest enclosing scope.
func ProvideCategory(category string, appender Appender) *Bundle {
	return &Bundle{
		id: uuid.New(),
		regs: []registration{{
			postInit: func(scope *Scope) error {
				logger := scope.Logger()
				if logger == nil {
					return fmt.Errorf("%w: cannot register category %q", ErrLoggerNotConfigured, category)
				}
				return logger.RegisterCategoryAppender(category, appender)
			},
		}},
	}
}

// Merge combines bundles into one without exposing the contents of any of
// them. Construction ordering is preserved: all construction steps of the
// merged bundle run before any post-construction step, regardless of the
// order the inputs were merged in.
func Merge(bundles ...*Bundle) (*Bundle, error) {
	merged := &Bundle{id: uuid.New()}
	for _, bundle := range bundles {
		if bundle == nil {
			return nil, ErrNilBundle
		}
		merged.regs = append(merged.regs, bundle.regs...)
	}
	return merged, nil
}
