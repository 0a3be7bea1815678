package csc

// State is a position in the CSC change procedure. The procedure only moves
// forward. Failed is entered from CscConfigured when the CSC write is not
// acknowledged, or from the current state when the run is interrupted;
// Report.FailedAt records which.
type State int

const (
	Start State = iota
	ModeDDEXE
	Activated
	ModeATD
	CscConfigured
	Verified
	Rebooting
	Done
	Failed
)

var stateNames = [...]string{
	Start:         "start",
	ModeDDEXE:     "mode-ddexe",
	Activated:     "activated",
	ModeATD:       "mode-atd",
	CscConfigured: "csc-configured",
	Verified:      "verified",
	Rebooting:     "rebooting",
	Done:          "done",
	Failed:        "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Gate describes how a step's response is judged.
type Gate int

const (
	// GateNone means the response is only logged.
	GateNone Gate = iota
	// GateAdvisory means a mismatch is reported and the sequence goes on.
	GateAdvisory
	// GateRequired means a mismatch aborts the sequence.
	GateRequired
)
