package config

import "github.com/muurk/edtable/internal/render"

const (
	// DefaultPort is the port the browser binding listens on.
	DefaultPort = 8501
	// DefaultInstanceName is the mDNS instance name when none is configured.
	DefaultInstanceName = "edtable"
)

// Config represents the user preferences file.
type Config struct {
	Version int          `yaml:"version"`
	Server  *ServerPrefs `yaml:"server,omitempty"`
	Theme   render.Theme `yaml:"theme,omitempty"`
}

// ServerPrefs holds defaults for the serve command.
type ServerPrefs struct {
	Host         string `yaml:"host"`                    // Listen host (empty = all interfaces)
	Port         int    `yaml:"port"`                    // Listen port
	Advertise    bool   `yaml:"advertise"`               // Register the widget via mDNS
	InstanceName string `yaml:"instance_name,omitempty"` // mDNS instance name
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Server: &ServerPrefs{
			Port:         DefaultPort,
			InstanceName: DefaultInstanceName,
		},
	}
}

// ensureDefaults fills sections missing from a loaded file.
func (c *Config) ensureDefaults() {
	if c.Server == nil {
		c.Server = NewConfig().Server
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.InstanceName == "" {
		c.Server.InstanceName = DefaultInstanceName
	}
}
