package hud

import "github.com/rs/zerolog"

// HUDOption is a functional option for configuring a HUD.
type HUDOption func(*HUD)

// WithLogger sets the logger shared by the HUD and its banner.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - HUDOption: functional option to set the logger
func WithLogger(l zerolog.Logger) HUDOption {
	return func(h *HUD) {
		h.logger = l
	}
}
