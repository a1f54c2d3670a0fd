package config

import (
	"github.com/ninja0404/pump-signal/pkg/config/reader"
	"github.com/ninja0404/pump-signal/pkg/config/source"
)

type Options struct {
	Source []source.Source
	Reader reader.Reader
}

type Option func(o *Options)

// WithSource appends a source to list of sources
func WithSource(s source.Source) Option {
	return func(o *Options) {
		o.Source = append(o.Source, s)
	}
}

// WithReader sets the config reader
func WithReader(r reader.Reader) Option {
	return func(o *Options) {
		o.Reader = r
	}
}
