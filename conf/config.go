package conf

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/hailanwhu/tsfile/logger"
	"github.com/hailanwhu/tsfile/util"

	"gopkg.in/ini.v1"
)

const (
	ProtocolCompact = "compact"
	ProtocolBinary  = "binary"

	// DefaultMaxMessageSize matches thrift's own default limit.
	DefaultMaxMessageSize = 100 * 1024 * 1024
	// MaxMessageSizeLimit is the largest limit thrift can represent.
	MaxMessageSizeLimit = math.MaxInt32

	defaultConfigFile = "conf/tsfile.ini"
)

type CommandLineArgs struct {
	ConfigPath string
}

/*
[codec]
protocol         = compact
max_message_size = 104857600
log_failures     = true

[logs]
log_error = /var/log/tsfile/error.log
log_infos = /var/log/tsfile/tsfile.log
log_level = info
*/
type Cfg struct {
	Raw *ini.File

	// codec
	Protocol       string `default:"compact" yaml:"protocol" json:"protocol,omitempty"`
	MaxMessageSize int    `default:"104857600" yaml:"max_message_size" json:"max_message_size,omitempty"`
	LogFailures    bool   `default:"true" yaml:"log_failures" json:"log_failures,omitempty"`

	// logs
	LogError string `default:"" yaml:"log_error" json:"log_error,omitempty"`
	LogInfos string `default:"" yaml:"log_infos" json:"log_infos,omitempty"`
	LogLevel string `default:"info" yaml:"log_level" json:"log_level,omitempty"`
}

func NewCfg() *Cfg {
	return &Cfg{
		Raw:            ini.Empty(),
		Protocol:       ProtocolCompact,
		MaxMessageSize: DefaultMaxMessageSize,
		LogFailures:    true,
		LogLevel:       "info",
	}
}

// Load reads the ini file named by args (conf/tsfile.ini when empty). A
// missing file keeps the defaults; a file that exists but does not parse, or
// carries an invalid value, is an error.
func (cfg *Cfg) Load(args *CommandLineArgs) (*Cfg, error) {
	configFile := defaultConfigFile
	if args != nil && args.ConfigPath != "" {
		configFile = args.ConfigPath
	}

	exists, err := util.PathExists(configFile)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Debugf("config file %s not found, using defaults", configFile)
		return cfg, nil
	}

	raw, err := ini.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %v", configFile, err)
	}
	logger.Debugf("loaded config file %s", configFile)
	return cfg.Parse(raw)
}

// Parse applies an already loaded ini document on top of the current values.
func (cfg *Cfg) Parse(raw *ini.File) (*Cfg, error) {
	cfg.Raw = raw
	if err := cfg.parseCodecCfg(raw.Section("codec")); err != nil {
		return nil, err
	}
	cfg.parseLogsCfg(raw.Section("logs"))
	return cfg, nil
}

func (cfg *Cfg) parseCodecCfg(section *ini.Section) error {
	protocol := strings.ToLower(valueAsString(section, "protocol", cfg.Protocol))
	switch protocol {
	case ProtocolCompact, ProtocolBinary:
		cfg.Protocol = protocol
	default:
		return fmt.Errorf("codec.protocol: unsupported protocol %q", protocol)
	}

	if section.HasKey("max_message_size") {
		size, err := section.Key("max_message_size").Int()
		if err != nil {
			return fmt.Errorf("codec.max_message_size: %v", err)
		}
		if size <= 0 || size > MaxMessageSizeLimit {
			return fmt.Errorf("codec.max_message_size: must be in (0, %d], got %d", MaxMessageSizeLimit, size)
		}
		cfg.MaxMessageSize = size
	}

	if section.HasKey("log_failures") {
		logFailures, err := section.Key("log_failures").Bool()
		if err != nil {
			return fmt.Errorf("codec.log_failures: %v", err)
		}
		cfg.LogFailures = logFailures
	}
	return nil
}

func (cfg *Cfg) parseLogsCfg(section *ini.Section) {
	cfg.LogError = valueAsString(section, "log_error", cfg.LogError)
	cfg.LogInfos = valueAsString(section, "log_infos", cfg.LogInfos)
	cfg.LogLevel = valueAsString(section, "log_level", cfg.LogLevel)
}

func valueAsString(section *ini.Section, keyName string, defaultValue string) string {
	if section == nil {
		return defaultValue
	}
	value := section.Key(keyName).MustString(defaultValue)
	if value == "" {
		value = defaultValue
	}
	return value
}

// GetString looks up "section.key" in the raw document.
func (cfg *Cfg) GetString(key string) string {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) < 2 || cfg.Raw == nil {
		return ""
	}
	return valueAsString(cfg.Raw.Section(parts[0]), parts[1], "")
}

// LogConfig adapts the [logs] section for logger.InitLogger.
func (cfg *Cfg) LogConfig() logger.LogConfig {
	return logger.LogConfig{
		ErrorLogPath: cfg.LogError,
		InfoLogPath:  cfg.LogInfos,
		LogLevel:     cfg.LogLevel,
	}
}

// MustLoad is Load for command line entry points: it exits on error.
func MustLoad(args *CommandLineArgs) *Cfg {
	cfg, err := NewCfg().Load(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}
