package config

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/adrg/xdg"

	"github.com/input-output-hk/gofile-uploader/errors"
	"github.com/input-output-hk/gofile-uploader/fs"
	"github.com/input-output-hk/gofile-uploader/fs/billy"
)

// DefaultConfigFile is the file searched for in the XDG config directories.
var DefaultConfigFile = filepath.Join("gofile-upload", "config.cue")

// Environment variables read by Load.
const (
	EnvFile        = "GOFILE_FILE"
	EnvToken       = "GOFILE_TOKEN"
	EnvFolderID    = "GOFILE_FOLDER_ID"
	EnvEndpoint    = "GOFILE_ENDPOINT"
	EnvContentType = "GOFILE_CONTENT_TYPE"
	EnvTimeout     = "GOFILE_TIMEOUT"
	EnvLogLevel    = "GOFILE_LOG_LEVEL"
	EnvDetect      = "GOFILE_DETECT_CONTENT_TYPE"
)

// schema constrains config files. Unknown fields are rejected.
const schema = `
#Upload: {
	file?:              string
	fileName?:          string
	token?:             string
	folderId?:          string
	endpoint?:          =~"^https?://"
	contentType?:       =~"^[a-zA-Z0-9.+-]+/[a-zA-Z0-9.+-]+"
	detectContentType?: bool
	timeout?:           string
	logLevel?:          "debug" | "info" | "warn" | "error"
	headers?: [string]: string
}
`

// LoadOptions configures Load.
type LoadOptions struct {
	// Path is an explicit config file. A missing explicit file is an error.
	// When empty, DefaultConfigFile is searched in the XDG config directories
	// and silently skipped when absent.
	Path string

	// Filesystem reads the config file. Defaults to the native filesystem.
	Filesystem fs.Filesystem

	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// SkipEnv disables the environment layer.
	SkipEnv bool
}

// fileConfig is the decoded form of a config file. Pointers tell set fields apart.
type fileConfig struct {
	File              *string           `json:"file,omitempty"`
	FileName          *string           `json:"fileName,omitempty"`
	Token             *string           `json:"token,omitempty"`
	FolderID          *string           `json:"folderId,omitempty"`
	Endpoint          *string           `json:"endpoint,omitempty"`
	ContentType       *string           `json:"contentType,omitempty"`
	DetectContentType *bool             `json:"detectContentType,omitempty"`
	Timeout           *string           `json:"timeout,omitempty"`
	LogLevel          *string           `json:"logLevel,omitempty"`
	Headers           map[string]string `json:"headers,omitempty"`
}

// Load resolves defaults, the config file and the environment.
// The result is not validated; call Validate after applying flags.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg := Default()

	filesystem := opts.Filesystem
	if filesystem == nil {
		filesystem = billy.NewNativeFS()
	}

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		if found, ok := DefaultConfigPath(); ok {
			path = found
		}
	}

	if path != "" {
		exists, err := filesystem.Exists(path)
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeConfigLoadFailed, "cannot access configuration file",
				map[string]interface{}{"path": path})
		}

		switch {
		case exists:
			if err := LoadFile(ctx, filesystem, path, cfg); err != nil {
				return nil, err
			}
		case explicit:
			return nil, errors.New(errors.CodeNotFound, "configuration file not found").
				WithContext(map[string]interface{}{"path": path})
		}
	}

	if !opts.SkipEnv {
		lookup := opts.LookupEnv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if err := applyEnv(cfg, lookup); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// DefaultConfigPath searches the XDG config directories for DefaultConfigFile.
func DefaultConfigPath() (string, bool) {
	path, err := xdg.SearchConfigFile(DefaultConfigFile)
	if err != nil {
		return "", false
	}
	return path, true
}

// LoadFile reads the CUE file at path and applies the fields it sets to cfg.
//
// The function performs the following steps:
// 1. Reads the file through the filesystem abstraction
// 2. Compiles it and unifies it with the #Upload schema
// 3. Validates that every value is concrete
// 4. Decodes and merges the set fields into cfg
func LoadFile(_ context.Context, filesystem fs.Filesystem, path string, cfg *Config) error {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeConfigLoadFailed, "failed to read configuration file",
			map[string]interface{}{"path": path})
	}

	cueCtx := cuecontext.New()
	def := cueCtx.CompileString(schema).LookupPath(cue.ParsePath("#Upload"))
	if def.Err() != nil {
		return errors.Wrap(def.Err(), errors.CodeInternal, "failed to compile configuration schema")
	}

	value := cueCtx.CompileBytes(data, cue.Filename(path))
	if value.Err() != nil {
		return errors.WrapWithContext(value.Err(), errors.CodeConfigLoadFailed, "failed to parse configuration file",
			map[string]interface{}{"path": path})
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return errors.WrapWithContext(err, errors.CodeInvalidConfig, "configuration file does not match schema",
			map[string]interface{}{"path": path})
	}

	var fc fileConfig
	if err := unified.Decode(&fc); err != nil {
		return errors.WrapWithContext(err, errors.CodeConfigDecodeFailed, "failed to decode configuration file",
			map[string]interface{}{"path": path})
	}

	if err := fc.applyTo(cfg); err != nil {
		return errors.WrapWithContext(err, errors.CodeInvalidConfig, "invalid configuration file",
			map[string]interface{}{"path": path})
	}
	cfg.Source = path

	return nil
}

func (fc *fileConfig) applyTo(cfg *Config) error {
	setString(&cfg.FilePath, fc.File)
	setString(&cfg.FileName, fc.FileName)
	setString(&cfg.Token, fc.Token)
	setString(&cfg.FolderID, fc.FolderID)
	setString(&cfg.Endpoint, fc.Endpoint)
	setString(&cfg.ContentType, fc.ContentType)
	setString(&cfg.LogLevel, fc.LogLevel)

	if fc.DetectContentType != nil {
		cfg.DetectContentType = *fc.DetectContentType
	}

	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}

	for k, v := range fc.Headers {
		cfg.Headers[k] = v
	}

	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		EnvFile:        &cfg.FilePath,
		EnvToken:       &cfg.Token,
		EnvFolderID:    &cfg.FolderID,
		EnvEndpoint:    &cfg.Endpoint,
		EnvContentType: &cfg.ContentType,
		EnvLogLevel:    &cfg.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.WrapWithContext(err, errors.CodeInvalidConfig, "invalid timeout in environment",
				map[string]interface{}{"variable": EnvTimeout})
		}
		cfg.Timeout = d
	}

	if v, ok := lookup(EnvDetect); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.WrapWithContext(err, errors.CodeInvalidConfig, "invalid boolean in environment",
				map[string]interface{}{"variable": EnvDetect})
		}
		cfg.DetectContentType = b
	}

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
