package module

import jdom "biasdb/internal/services/journal/domain"

// Ports declares what the entry modules accept from other modules
type Ports struct {
	// Recorder receives mutation events, nil drops them
	Recorder jdom.RecorderPort
}

// Ports returns the module ports, the kind's domain.ServicePort
func (m *Module) Ports() any { return m.ports }
