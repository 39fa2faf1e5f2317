package ir

// Version constants for the value model and engine.
const (
	// IRVersion is the value model schema version.
	IRVersion = "1"

	// EngineVersion is the sigil engine version.
	EngineVersion = "0.1.0"
)
