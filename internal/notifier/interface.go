// Package notifier delivers fired alerts to outside channels. The
// alert loop fans each alert out through a Registry, so one losing
// streak can hit a webhook and anything else that is wired up.
package notifier

import (
	"github.com/flipdeck/flipdeck/internal/alert"
)

// Config carries one notifier's settings from the config file. Params
// are backend-specific and decoded by the notifier itself.
type Config struct {
	Type   string         `mapstructure:"type"`
	Params map[string]any `mapstructure:"params"`
}

// Notifier is a delivery channel for fired alerts.
type Notifier interface {
	// Name identifies the notifier within a registry.
	Name() string

	// Init applies configuration before first use.
	Init(cfg Config) error

	// Send delivers a single alert.
	Send(a alert.Alert) error

	// SendBatch delivers several alerts in one call, for channels
	// where one message per alert would be noise.
	SendBatch(alerts []alert.Alert) error
}
