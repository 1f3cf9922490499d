// Package profile carries the execution context of table codecs.
//
// A Context is a non-owning handle passed explicitly to every serialize and
// deserialize call. It tells codecs which signalization standards are active,
// most notably the Japanese profile where broadcast times are JST, and where
// to log non-fatal events. Codecs never store the Context.
package profile

import (
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/internal/options"
	"github.com/rs/zerolog"
)

// Context is the decoding and encoding context.
type Context struct {
	standards format.Standards
	logger    zerolog.Logger
}

// Option configures a Context.
type Option = options.Option[*Context]

// New creates a Context. Without options no standard is active and logging is
// disabled.
func New(opts ...Option) (*Context, error) {
	ctx := &Context{logger: zerolog.Nop()}
	if err := options.Apply(ctx, opts...); err != nil {
		return nil, err
	}

	return ctx, nil
}

// Default returns a Context with no active standard and logging disabled.
func Default() *Context {
	return &Context{logger: zerolog.Nop()}
}

// WithStandards enables the given standards.
func WithStandards(s format.Standards) Option {
	return options.NoError(func(c *Context) {
		c.standards |= s
	})
}

// WithStandardNames enables standards by name, e.g. "DVB" or "JAPAN".
func WithStandardNames(names ...string) Option {
	return options.New(func(c *Context) error {
		s, err := format.ParseStandards(names...)
		if err != nil {
			return err
		}
		c.standards |= s

		return nil
	})
}

// WithLogger sets the logger used for non-fatal codec events.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(c *Context) {
		c.logger = logger
	})
}

// Standards returns the active standards. A nil Context has none.
func (c *Context) Standards() format.Standards {
	if c == nil {
		return 0
	}

	return c.standards
}

// AddStandards enables more standards, typically those of a table being
// processed.
func (c *Context) AddStandards(s format.Standards) {
	if c != nil {
		c.standards |= s
	}
}

// UsesJST reports whether broadcast MJD times are JST rather than UTC.
func (c *Context) UsesJST() bool {
	return c.Standards().Has(format.StandardJapan)
}

// Logger returns the context logger. A nil Context logs nothing.
func (c *Context) Logger() *zerolog.Logger {
	if c == nil {
		nop := zerolog.Nop()
		return &nop
	}

	return &c.logger
}
