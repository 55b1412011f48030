package license

import (
	"os"

	"github.com/google/uuid"

	"github.com/readium/kotlin-toolkit-sub011/pkg/config"
)

// DeviceConfig identifies the reading device against the license status
// server. A missing ID is replaced by a fresh UUID; persisting it across
// runs is the embedding application's concern.
type DeviceConfig struct {
	ID   string `env:"LCP_DEVICE_ID"`
	Name string `env:"LCP_DEVICE_NAME"`
}

// Device is the stable identity annotating renew and return requests.
type Device struct {
	id   string
	name string
}

// NewDevice creates a device identity, generating a UUID when the config
// carries no ID and falling back to the hostname for the name.
func NewDevice(cfg DeviceConfig) *Device {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	name := cfg.Name
	if name == "" {
		if hostname, err := os.Hostname(); err == nil {
			name = hostname
		} else {
			name = "unknown device"
		}
	}
	return &Device{id: id, name: name}
}

// NewDeviceFromEnv builds the device identity from LCP_DEVICE_* environment
// variables.
func NewDeviceFromEnv() (*Device, error) {
	var cfg DeviceConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewDevice(cfg), nil
}

func (d *Device) ID() string   { return d.id }
func (d *Device) Name() string { return d.name }

// AsQueryParameters returns the device identity in the query-parameter form
// expected by license status servers.
func (d *Device) AsQueryParameters() map[string]string {
	return map[string]string{
		"id":   d.id,
		"name": d.name,
	}
}
