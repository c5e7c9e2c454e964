package shared

// TraceSink receives diagnostic events from the simulation core.
//
// The core itself never logs or performs I/O; rejected operations and
// recovered failures are handed to the sink so a host process can surface
// them in diagnostic mode. The zero-value simulation uses a no-op sink.
type TraceSink interface {
	Trace(event string, metadata map[string]interface{})
}

// NopTraceSink returns a sink that discards all events.
func NopTraceSink() TraceSink {
	return &nopTraceSink{}
}

type nopTraceSink struct{}

func (s *nopTraceSink) Trace(event string, metadata map[string]interface{}) {
	// Do nothing
}
