package cfgloader

// Options holds configuration options for Load.
type Options struct {
	// Silent disables printing the loaded config.
	Silent bool

	// Dir is the directory holding the ${ENVIRONMENT}.yaml files.
	// Defaults to $CONFIG_DIR, then "./config".
	Dir string

	// EnvFile is the dotenv file loaded before reading the config. Missing files are ignored.
	EnvFile string
}

// Option is a functional option for configuring Load behavior.
type Option func(*Options)

// WithSilent disables printing the loaded config.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithConfigDir sets the directory the config files are read from.
func WithConfigDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithEnvFile sets the dotenv file loaded before the config.
func WithEnvFile(path string) Option {
	return func(o *Options) {
		o.EnvFile = path
	}
}

func buildOptions(opts []Option) Options {
	o := Options{EnvFile: ".env"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
