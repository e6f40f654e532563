package config

import (
	"fmt"
	"strings"
	"time"
)

// Model formats understood by the artifact factory
const (
	ModelFormatNative = "native"
	ModelFormatONNX   = "onnx"
)

// ArtifactsConfig locates the scaler and classifier artifacts
type ArtifactsConfig struct {
	ModelPath   string
	ScalerPath  string
	ModelFormat string
	ONNX        ONNXConfig
}

// ONNXConfig holds settings for ONNX classifier artifacts
type ONNXConfig struct {
	LibraryPath string
	InputName   string
	OutputName  string
}

// ServerConfig represents the web form server settings
type ServerConfig struct {
	ListenAddress   string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// InputConfig controls form input validation
type InputConfig struct {
	AllowNegative bool
}

// LoggingConfig represents logger settings
type LoggingConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// GetArtifacts returns the artifact configuration
func (c *Config) GetArtifacts() ArtifactsConfig {
	return ArtifactsConfig{
		ModelPath:   strings.TrimSpace(c.GetString("artifacts.model_path")),
		ScalerPath:  strings.TrimSpace(c.GetString("artifacts.scaler_path")),
		ModelFormat: strings.ToLower(strings.TrimSpace(c.GetString("artifacts.model_format"))),
		ONNX: ONNXConfig{
			LibraryPath: strings.TrimSpace(c.GetString("artifacts.onnx.library_path")),
			InputName:   c.GetString("artifacts.onnx.input_name"),
			OutputName:  c.GetString("artifacts.onnx.output_name"),
		},
	}
}

// GetServer returns the server configuration
func (c *Config) GetServer() (ServerConfig, error) {
	read, err := c.GetDuration("server.read_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	write, err := c.GetDuration("server.write_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	shutdown, err := c.GetDuration("server.shutdown_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	addr := strings.TrimSpace(c.GetString("server.listen_address"))
	if addr == "" {
		return ServerConfig{}, fmt.Errorf("server.listen_address is empty")
	}
	return ServerConfig{
		ListenAddress:   addr,
		ReadTimeout:     read,
		WriteTimeout:    write,
		ShutdownTimeout: shutdown,
	}, nil
}

// GetInput returns the input validation configuration
func (c *Config) GetInput() InputConfig {
	return InputConfig{
		AllowNegative: c.GetBool("input.allow_negative"),
	}
}

// GetLogging returns the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:      strings.ToLower(c.GetString("logging.level")),
		Format:     strings.ToLower(c.GetString("logging.format")),
		File:       strings.TrimSpace(c.GetString("logging.file")),
		MaxSizeMB:  c.GetInt("logging.max_size_mb"),
		MaxBackups: c.GetInt("logging.max_backups"),
		MaxAgeDays: c.GetInt("logging.max_age_days"),
	}
}
