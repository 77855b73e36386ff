// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"

	"github.com/aspace-tools/caption-linker/sdk/config"
)

// Settings holds all logical keys. Tags:
// - vkey: Viper key, also the key in YAML/INI files
// - env: environment variable bound to the key
// - default: value used when no source sets the key
// - secret: "true" if sensitive (redacted when printed)
type Settings struct {
	APIURL           string `vkey:"api_url"            env:"ASPACE_API_URL"`
	APIUsername      string `vkey:"api_username"       env:"ASPACE_API_USERNAME"`
	APIPassword      string `vkey:"api_password"       env:"ASPACE_API_PASSWORD"       secret:"true"`
	InputCSV         string `vkey:"input_csv"          env:"ASPACE_INPUT_CSV"`
	LogFile          string `vkey:"log_file"           env:"ASPACE_LOG_FILE"           default:"log.log"`
	LogLevel         string `vkey:"log_level"          env:"ASPACE_LOG_LEVEL"          default:"debug"`
	LogFormat        string `vkey:"log_format"         env:"ASPACE_LOG_FORMAT"         default:"text"`
	MaxLoginAttempts int    `vkey:"max_login_attempts" env:"ASPACE_MAX_LOGIN_ATTEMPTS" default:"3"`
	MaxInputAttempts int    `vkey:"max_input_attempts" env:"ASPACE_MAX_INPUT_ATTEMPTS" default:"3"`
	ReportPath       string `vkey:"report_path"        env:"ASPACE_REPORT_PATH"`

	AwsAccessKeyID     string `vkey:"aws_access_key_id"     env:"AWS_ACCESS_KEY_ID"     secret:"true"`
	AwsSecretAccessKey string `vkey:"aws_secret_access_key" env:"AWS_SECRET_ACCESS_KEY" secret:"true"`
	AwsSessionToken    string `vkey:"aws_session_token"     env:"AWS_SESSION_TOKEN"     secret:"true"`
	AwsRegion          string `vkey:"aws_region"            env:"AWS_REGION"            default:"us-east-1"`
	AwsEndpointURL     string `vkey:"aws_endpoint_url"      env:"AWS_ENDPOINT_URL"`
}

// LoadOptions selects the configuration file and, for INI files, the
// profile section.
type LoadOptions struct {
	ConfigFile string
	// Optional tolerates a missing ConfigFile (env-only mode).
	Optional bool
	// Profile picks an INI section; empty means DEFAULT.current_profile,
	// then DEFAULT.
	Profile string
}

// NewViper returns a fresh instance; settings are never read from the
// package-level viper.
func NewViper() *viper.Viper {
	return viper.New()
}

// BindEnvFromStruct binds env variables and defaults for every Settings field.
func BindEnvFromStruct(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	rt := reflect.TypeOf(Settings{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)

		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}

		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
		_ = v.BindEnv(key, env)

		if def := f.Tag.Get("default"); def != "" {
			v.SetDefault(key, def)
		}
	}
}

// LoadSettings binds env, reads the config file (YAML/JSON/TOML by
// extension, or an INI file of profiles) and decodes the result. It returns
// the profile that was applied ("" for non-INI files).
func LoadSettings(v *viper.Viper, opts LoadOptions) (Settings, string, error) {
	BindEnvFromStruct(v)

	profile := ""
	if opts.ConfigFile != "" {
		var err error
		profile, err = readConfigFile(v, opts)
		if err != nil {
			return Settings{}, "", err
		}
	}
	return settingsFromViper(v), profile, nil
}

func readConfigFile(v *viper.Viper, opts LoadOptions) (string, error) {
	if _, err := os.Stat(opts.ConfigFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) && opts.Optional {
			return "", nil
		}
		return "", fmt.Errorf("config file %s: %w", opts.ConfigFile, err)
	}

	if strings.EqualFold(filepath.Ext(opts.ConfigFile), ".ini") {
		cfg, err := ini.Load(opts.ConfigFile)
		if err != nil {
			return "", fmt.Errorf("failed to read ini file: %w", err)
		}
		return loadIniSectionIntoViper(v, cfg, opts.Profile)
	}

	v.SetConfigFile(opts.ConfigFile)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return "", nil
}

// loadIniSectionIntoViper merges [DEFAULT] with the selected section.
// Selection order: explicit profile > DEFAULT.current_profile > DEFAULT.
func loadIniSectionIntoViper(v *viper.Viper, cfg *ini.File, profile string) (string, error) {
	def := cfg.Section(ini.DefaultSection)
	if profile == "" {
		profile = def.Key(CurrentProfileKey).String()
	}

	selected := def
	if profile != "" && !strings.EqualFold(profile, ini.DefaultSection) {
		if !cfg.HasSection(profile) {
			return "", fmt.Errorf("profile [%s] not found in ini file", profile)
		}
		selected = cfg.Section(profile)
	} else {
		profile = ini.DefaultSection
	}

	merged := make(map[string]any)
	for _, k := range def.Keys() {
		if k.Name() == CurrentProfileKey {
			continue
		}
		merged[k.Name()] = k.Value()
	}
	if selected != def {
		for _, k := range selected.Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	if err := v.MergeConfigMap(merged); err != nil {
		return "", fmt.Errorf("failed to load ini into viper: %w", err)
	}
	return profile, nil
}

func settingsFromViper(v *viper.Viper) Settings {
	var s Settings
	rv := reflect.ValueOf(&s).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		key := rt.Field(i).Tag.Get("vkey")
		if key == "" {
			continue
		}
		switch fv := rv.Field(i); fv.Kind() {
		case reflect.String:
			fv.SetString(strings.TrimSpace(v.GetString(key)))
		case reflect.Int:
			fv.SetInt(int64(v.GetInt(key)))
		}
	}
	return s
}

// Validate checks what cannot be asked interactively later. Credentials and
// the input path may still be prompted for.
func (s Settings) Validate() error {
	var errs []error
	if s.APIURL == "" {
		errs = append(errs, errors.New("api_url is required"))
	} else if u, err := url.Parse(s.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_url %q is not an http(s) url", s.APIURL))
	}
	if s.LogFile == "" {
		errs = append(errs, errors.New("log_file is required"))
	}
	if s.MaxLoginAttempts < 1 {
		errs = append(errs, errors.New("max_login_attempts must be at least 1"))
	}
	if s.MaxInputAttempts < 1 {
		errs = append(errs, errors.New("max_input_attempts must be at least 1"))
	}
	return errors.Join(errs...)
}

// Config maps the settings onto what the services consume.
func (s Settings) Config() config.Config {
	return config.Config{
		Core: config.CoreConfig{
			BaseURL:  s.APIURL,
			Username: s.APIUsername,
			Password: s.APIPassword,
		},
		S3: config.S3Config{
			AccessKey:   s.AwsAccessKeyID,
			SecretKey:   s.AwsSecretAccessKey,
			AccessToken: s.AwsSessionToken,
			Region:      s.AwsRegion,
			EndpointURL: s.AwsEndpointURL,
		},
	}
}

// Redacted returns the settings keyed by vkey with secrets masked and empty
// values dropped, for echoing to the operator.
func (s Settings) Redacted() map[string]any {
	out := map[string]any{}
	rv := reflect.ValueOf(s)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		key := f.Tag.Get("vkey")
		if key == "" || rv.Field(i).IsZero() {
			continue
		}
		if f.Tag.Get("secret") == "true" {
			out[key] = "********"
			continue
		}
		out[key] = rv.Field(i).Interface()
	}
	return out
}
