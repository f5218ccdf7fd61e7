package detectors

// Detector is the interface shared by the three analyses
type Detector interface {
	// Name returns the detector name
	Name() string

	// Description returns a one-line summary for listings
	Description() string

	// IsEnabled returns whether this detector is enabled
	IsEnabled() bool

	// SetEnabled enables or disables this detector
	SetEnabled(enabled bool)
}

// BaseDetector provides common functionality for detectors
type BaseDetector struct {
	name        string
	description string
	enabled     bool
}

// NewBaseDetector creates a new base detector
func NewBaseDetector(name, description string) *BaseDetector {
	return &BaseDetector{
		name:        name,
		description: description,
		enabled:     true,
	}
}

// Name returns the detector name
func (d *BaseDetector) Name() string {
	return d.name
}

// Description returns the detector description
func (d *BaseDetector) Description() string {
	return d.description
}

// IsEnabled returns whether this detector is enabled
func (d *BaseDetector) IsEnabled() bool {
	return d.enabled
}

// SetEnabled enables or disables this detector
func (d *BaseDetector) SetEnabled(enabled bool) {
	d.enabled = enabled
}

// Enabled returns the names of the enabled detectors, in the given order
func Enabled(list ...Detector) []string {
	var names []string
	for _, d := range list {
		if d.IsEnabled() {
			names = append(names, d.Name())
		}
	}
	return names
}
