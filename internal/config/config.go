// Package config holds the three mock configuration values an
// emulation recognizes (package name, signing-certificate bytes, SDK
// level), loadable from an optional YAML file that overrides
// Default()'s placeholders field by field.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// MockConfig backs Context.getPackageName,
// Signature.toByteArray/toCharsString, and Build.VERSION.SDK_INT.
// PackageInfo objects are not mocked.
type MockConfig struct {
	PackageName    string `yaml:"package_name"`
	SignatureBytes []byte `yaml:"signature_bytes"`
	SDKInt         int    `yaml:"sdk_int"`
}

// Default returns the configuration used when no file is supplied:
// a placeholder package name, an empty signature, and a recent SDK.
func Default() MockConfig {
	return MockConfig{
		PackageName:    "com.example.app",
		SignatureBytes: nil,
		SDKInt:         34,
	}
}

// Load reads a YAML configuration file, starting from Default() so
// a partial file only overrides the fields it sets.
func Load(path string) (MockConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
