package regrid

import (
	"github.com/sirupsen/logrus"
)

// Option defines the Converter functional option type.
type Option func(*Converter)

// WithLogger configures the logger used for conversion events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Converter) { c.logger = logger }
}

// WithRoot confines output directories to root. Default: the working directory.
func WithRoot(root string) Option {
	return func(c *Converter) { c.root = root }
}

// WithDebug dumps rejected input details to the debug log.
func WithDebug(debug bool) Option {
	return func(c *Converter) { c.debug = debug }
}
