// Package cfgloader loads and validates configuration at the start of an application.
package cfgloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danyloborovskyi/caption-studio-back-sub003/logger"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"

	envKey       = "ENVIRONMENT"
	configDirKey = "CONFIG_DIR"
	defaultDir   = "./config"
)

// Load reads ${ENVIRONMENT}.yaml from the config directory into a T.
//
// A dotenv file is loaded first and ${VAR} references in the YAML are expanded
// from the environment. Fields map through `yaml` tags, zero fields receive
// their `default` tag value, and the result is validated with `validate` tags
// (go-playground/validator). Unless silenced, the config is printed with
// `mask:"true"` fields hidden.
//
//	type Config struct {
//	    Bucket string `yaml:"bucket" validate:"required"`
//	    Model  string `yaml:"model" default:"gpt-4o"`
//	    APIKey string `yaml:"api_key" mask:"true"`
//	}
func Load[T any](opts ...Option) (T, error) {
	var config T
	o := buildOptions(opts)

	_ = godotenv.Load(o.EnvFile)

	env, err := defineEnvironment()
	if err != nil {
		return config, err
	}

	path := filepath.Join(configDir(o), env+".yaml")
	data, err := readConfigFile(path)
	if err != nil {
		return config, err
	}

	err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config)
	if err != nil {
		return config, errx.New(
			fmt.Sprintf("failed to unmarshal %s config file: %v", env, err),
			errx.WithCode(CodeInvalidConfig),
			errx.WithDetails(errx.D{"path": path}),
		)
	}

	err = defaults.Set(&config)
	if err != nil {
		return config, errx.Wrap(err)
	}

	err = validateConfig(&config, env)
	if err != nil {
		return config, err
	}

	if !o.Silent {
		printConfig(config)
	}
	return config, nil
}

// MustLoad is Load that logs the error and exits the process on failure.
func MustLoad[T any](opts ...Option) T {
	config, err := Load[T](opts...)
	if err != nil {
		logger.Named("cfgloader").Fatalx(err)
	}
	return config
}

func defineEnvironment() (string, error) {
	env := os.Getenv(envKey)
	choices := []string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}
	if !slices.Contains(choices, env) {
		return "", errx.New(
			"ENVIRONMENT env variable is not set or invalid",
			errx.WithCode(CodeInvalidEnvironment),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"value": env, "choices": strings.Join(choices, ", ")}),
		)
	}
	return env, nil
}

func configDir(o Options) string {
	if o.Dir != "" {
		return o.Dir
	}
	if dir := os.Getenv(configDirKey); dir != "" {
		return dir
	}
	return defaultDir
}

func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errx.New(
			"config file not found, make sure a yaml file exists for each environment",
			errx.WithCode(CodeConfigNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{"path": path}),
		)
	}
	if err != nil {
		return nil, errx.Wrap(err, errx.WithCode(CodeConfigUnreadable), errx.WithDetails(errx.D{"path": path}))
	}
	return data, nil
}

func validateConfig(config any, env string) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errx.Wrap(err)
	}

	failedFields := make([]string, 0, len(errs))
	for _, fe := range errs {
		tagErr := fe.Tag()
		if fe.Param() != "" {
			tagErr += "=" + fe.Param()
		}
		failedFields = append(failedFields, fmt.Sprintf("%s: %s", fe.Namespace(), tagErr))
	}

	return errx.New(
		fmt.Sprintf("invalid fields in %s config -> %s", env, strings.Join(failedFields, ", ")),
		errx.WithCode(CodeInvalidConfig),
		errx.WithType(errx.T_Validation),
	)
}
