package registry

type options struct {
	configName       string
	activeConfigName string
}

// Option overrides behavior of Service.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// WithConfigName sets the named configuration value the registry lives under.
func WithConfigName(s string) Option {
	return optionFunc(func(o *options) {
		o.configName = s
	})
}

// WithActiveConfigName sets the named configuration value the active account
// selection lives under.
func WithActiveConfigName(s string) Option {
	return optionFunc(func(o *options) {
		o.activeConfigName = s
	})
}
