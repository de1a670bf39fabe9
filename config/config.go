package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/cgsdk/cppsdkgen/plugins/cppgen"
)

// DefaultConfigFiles は FindConfigFile が探す設定ファイル名。
var DefaultConfigFiles = []string{".cppsdkgen.yml", "cppsdkgen.yml", ".cppsdkgen.yaml", "cppsdkgen.yaml", "cppsdkgen.toml"}

// Config represents the config file.
type Config struct {
	// Model はローカルのエンティティダンプ（.json / .msgpack）のパス。
	Model    string          `yaml:"model,omitempty" toml:"model,omitempty"`
	Endpoint *EndPointConfig `yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`
	Output   OutputConfig    `yaml:"output" toml:"output"`
	Cpp      CppConfig       `yaml:"cpp" toml:"cpp"`
}

// OutputConfig は生成物の出力先。
type OutputConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
	// UnitTests はレイアウト検証のテストファイルを出力するかどうか。
	UnitTests bool `yaml:"unit_tests" toml:"unit_tests"`
}

// CppConfig は C++ 変換のオプション。
type CppConfig struct {
	PrecompileSyntax       bool   `yaml:"precompile_syntax" toml:"precompile_syntax"`
	OffsetsOnly            bool   `yaml:"offsets_only" toml:"offsets_only"`
	LazyFindObject         bool   `yaml:"lazy_find_object" toml:"lazy_find_object"`
	GenerateParametersFile bool   `yaml:"generate_parameters_file" toml:"generate_parameters_file"`
	UseStrings             bool   `yaml:"use_strings" toml:"use_strings"`
	XorStrings             bool   `yaml:"xor_strings" toml:"xor_strings"`
	XorFuncName            string `yaml:"xor_func_name" toml:"xor_func_name"`
	ConvertStaticMethods   bool   `yaml:"convert_static_methods" toml:"convert_static_methods"`
}

// EndPointConfig are the allowed options for the 'endpoint' config.
type EndPointConfig struct {
	URL     string       `yaml:"url" toml:"url"`
	Headers http.Header  `yaml:"headers,omitempty" toml:"headers,omitempty"`
	Client  *http.Client `yaml:"-" toml:"-"`
}

// Default は設定ファイルで省略された項目の値を持つ Config を返す。
func Default() *Config {
	opts := cppgen.DefaultOptions()

	return &Config{
		Output: OutputConfig{
			Dir:       "sdk",
			UnitTests: true,
		},
		Cpp: CppConfig{
			PrecompileSyntax:       opts.PrecompileSyntax,
			OffsetsOnly:            opts.OffsetsOnly,
			LazyFindObject:         opts.LazyFindObject,
			GenerateParametersFile: opts.GenerateParametersFile,
			UseStrings:             opts.ShouldUseStrings,
			XorStrings:             opts.ShouldXorStrings,
			XorFuncName:            opts.XorFuncName,
			ConvertStaticMethods:   opts.ConvertStaticMethods,
		},
	}
}

// LoadConfig loads and parses the config file.
// .toml の場合は TOML、それ以外は YAML として読む。どちらも環境変数を展開してからデコードする。
func LoadConfig(configFilename string) (*Config, error) {
	configContent, err := os.ReadFile(configFilename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	c := Default()
	content := os.ExpandEnv(string(configContent))

	if strings.EqualFold(filepath.Ext(configFilename), ".toml") {
		md, err := toml.Decode(content, c)
		if err != nil {
			return nil, fmt.Errorf("unable to parse config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("unable to parse config: unknown field %q", strings.Join(keys, ", "))
		}
	} else {
		yamlDecoder := yaml.NewDecoder(bytes.NewReader([]byte(content)), yaml.DisallowUnknownField())
		if err := yamlDecoder.Decode(c); err != nil {
			return nil, fmt.Errorf("unable to parse config: %w", err)
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) validate() error {
	if c.Model != "" && c.Endpoint != nil {
		return errors.New("'model' and 'endpoint' both specified. Use model to load from a local dump, use endpoint to fetch from a running dumper")
	}

	if c.Model == "" && c.Endpoint == nil {
		return errors.New("neither 'model' nor 'endpoint' specified. Use model to load from a local dump, use endpoint to fetch from a running dumper")
	}

	if c.Endpoint != nil && c.Endpoint.URL == "" {
		return errors.New("endpoint: 'url' is required")
	}

	if c.Output.Dir == "" {
		return errors.New("output: 'dir' is required")
	}

	if c.Cpp.XorStrings && c.Cpp.XorFuncName == "" {
		return errors.New("cpp: 'xor_func_name' is required when 'xor_strings' is set")
	}

	return nil
}

// CppOptions は変換器に渡す設定を返す。
func (c *Config) CppOptions() cppgen.Options {
	return cppgen.Options{
		PrecompileSyntax:       c.Cpp.PrecompileSyntax,
		OffsetsOnly:            c.Cpp.OffsetsOnly,
		LazyFindObject:         c.Cpp.LazyFindObject,
		GenerateParametersFile: c.Cpp.GenerateParametersFile,
		ShouldUseStrings:       c.Cpp.UseStrings,
		ShouldXorStrings:       c.Cpp.XorStrings,
		XorFuncName:            c.Cpp.XorFuncName,
		ConvertStaticMethods:   c.Cpp.ConvertStaticMethods,
	}
}

// FindConfigFile は dir から names の順に設定ファイルを探し、最初に見つかったパスを返す。
func FindConfigFile(dir string, names []string) (string, error) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("unable to stat config: %w", err)
		}
		if info.IsDir() {
			continue
		}
		return path, nil
	}

	return "", fmt.Errorf("could not find config file in %s (tried %s)", dir, strings.Join(names, ", "))
}
