package config

import (
	"github.com/deckmd/deckmd/internal/domain/entities"
	"github.com/deckmd/deckmd/internal/domain/ports"
)

// ConfigMerger combines configuration layers: defaults, global file,
// local file, CLI flags. Later layers win where they set a value.
type ConfigMerger struct{}

// NewConfigMerger creates a configuration merger.
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges configurations, later configs taking precedence.
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])
	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}
	return result
}

// ApplyFlags applies CLI flag overrides to a configuration.
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}
	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}
	if assetsDir, ok := flags["assets-dir"].(string); ok && assetsDir != "" {
		result.Parser.AssetsDir = assetsDir
	}
	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
		result.Logging.Level = "debug"
	}

	return result
}

// mergeInto merges source into target.
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = append([]string(nil), source.Server.CORSOrigins...)
	}

	if source.Parser.AssetsDir != "" {
		target.Parser.AssetsDir = source.Parser.AssetsDir
	}
	if source.Parser.MaxImageBytes != 0 {
		target.Parser.MaxImageBytes = source.Parser.MaxImageBytes
	}
	if len(source.Parser.FigmaHosts) > 0 {
		target.Parser.FigmaHosts = append([]string(nil), source.Parser.FigmaHosts...)
	}

	if source.Watcher.IntervalMs != 0 {
		target.Watcher.IntervalMs = source.Watcher.IntervalMs
	}
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}

	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Logging.Verbose {
		target.Logging.Verbose = true
	}
}

// deepCopy copies a configuration including its slices.
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := &entities.Config{
		Server:  src.Server,
		Parser:  src.Parser,
		Watcher: src.Watcher,
		Logging: src.Logging,
	}
	if src.Server.CORSOrigins != nil {
		dst.Server.CORSOrigins = append([]string(nil), src.Server.CORSOrigins...)
	}
	if src.Parser.FigmaHosts != nil {
		dst.Parser.FigmaHosts = append([]string(nil), src.Parser.FigmaHosts...)
	}
	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger.
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
