package module

import dom "biasdb/internal/services/journal/domain"

// Ports holds the ports exposed by the journal module
type Ports struct {
	Recorder dom.RecorderPort
	Reader   dom.ReaderPort
	Worker   dom.WorkerPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
