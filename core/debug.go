package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// EventRecord captures one controller event for post-mortem analysis
type EventRecord struct {
	Kind  uint8     // Event type code
	Ticks TickCount // Measured or generated tick count
	Value uint32    // Context-dependent value
}

// Event type codes
const (
	EvtCapture  = 1 // input pulse measured
	EvtReject   = 2 // measurement outside [InMin, InMax], Value = rejects so far
	EvtGenerate = 3 // output pulse emitted, Value = expected overflows
	EvtSpurious = 4 // compare matches before the target overflow, Value = count
)

const (
	EventRingSize = 16 // Keep the last 16 events
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether per-cycle debug output is active.
	// Printing inside a cycle delays the next capture, so it is off by default.
	debugEnabled bool = false

	eventRing     [EventRingSize]EventRecord
	eventRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}

// RecordEvent appends an event to the ring buffer. It never blocks and
// never allocates, so it is safe in the foreground loop between phases.
func RecordEvent(kind uint8, ticks TickCount, value uint32) {
	idx := eventRingHead
	eventRing[idx] = EventRecord{Kind: kind, Ticks: ticks, Value: value}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events, oldest first
func Events() []EventRecord {
	out := make([]EventRecord, 0, EventRingSize)
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(eventRingHead+i)%EventRingSize]
		if evt.Kind == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// DumpEventRing writes the ring buffer through the debug writer,
// regardless of whether per-cycle debug output is enabled
func DumpEventRing() {
	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		var name string
		switch evt.Kind {
		case EvtCapture:
			name = "CAPTURE"
		case EvtReject:
			name = "REJECT"
		case EvtGenerate:
			name = "GENERATE"
		case EvtSpurious:
			name = "SPURIOUS"
		default:
			name = "UNKNOWN"
		}
		debugPrintln("[EVENTS] " + name +
			" ticks=" + utoa(uint32(evt.Ticks)) +
			" v=" + utoa(evt.Value))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = EventRecord{}
	}
	eventRingHead = 0
}
