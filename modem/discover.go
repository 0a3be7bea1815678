package modem

import (
	"log/slog"
	"strings"

	"go.bug.st/serial/enumerator"
)

// SamsungVID is Samsung's USB vendor id as reported by the enumerator.
const SamsungVID = "04E8"

// DefaultPortHints are matched against the port description.
var DefaultPortHints = []string{"SAMSUNG", "MODEM"}

// PortLister enumerates the serial ports of the host.
type PortLister func() ([]*enumerator.PortDetails, error)

// Discoverer looks for the device's modem port among the host serial ports.
type Discoverer struct {
	List   PortLister
	Hints  []string
	Logger *slog.Logger
}

// NewDiscoverer returns a Discoverer backed by the system enumerator. Empty
// hints select DefaultPortHints.
func NewDiscoverer(logger *slog.Logger, hints ...string) *Discoverer {
	if len(hints) == 0 {
		hints = DefaultPortHints
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Discoverer{
		List:   enumerator.GetDetailedPortsList,
		Hints:  hints,
		Logger: logger,
	}
}

// Discover returns the first port whose description mentions one of the
// hints or whose USB vendor id is Samsung's. Enumeration errors are logged
// and reported as no candidate.
func (d *Discoverer) Discover() (string, bool) {
	ports, err := d.List()
	if err != nil {
		d.Logger.Warn("Failed to list serial ports", "error", err)
		return "", false
	}

	for _, port := range ports {
		if port == nil || port.Name == "" {
			continue
		}
		if d.matches(port) {
			d.Logger.Info("Device port found", "port", port.Name, "description", port.Product)
			return port.Name, true
		}
	}

	d.Logger.Info("No device port found", "candidates", len(ports))
	return "", false
}

func (d *Discoverer) matches(port *enumerator.PortDetails) bool {
	if port.IsUSB && strings.EqualFold(port.VID, SamsungVID) {
		return true
	}
	description := strings.ToUpper(port.Product)
	for _, hint := range d.Hints {
		hint = strings.ToUpper(strings.TrimSpace(hint))
		if hint != "" && strings.Contains(description, hint) {
			return true
		}
	}
	return false
}
