// SPDX-License-Identifier: EPL-2.0

package audtempo

// State is a step of a tempo run. A successful run passes through every
// state from Uninitialized to TornDown in order.
type State int

const (
	Uninitialized State = iota
	RuntimeReady
	SourceOpen
	SinkOpen
	ChainBuilt
	InputAppended
	TempoAppended
	OutputAppended
	Flowed
	TornDown
	// Failing is entered on the first fatal error; the run then only
	// releases what it acquired.
	Failing
)

var stateNames = [...]string{
	Uninitialized:  "uninitialized",
	RuntimeReady:   "runtime_ready",
	SourceOpen:     "source_open",
	SinkOpen:       "sink_open",
	ChainBuilt:     "chain_built",
	InputAppended:  "input_appended",
	TempoAppended:  "tempo_appended",
	OutputAppended: "output_appended",
	Flowed:         "flowed",
	TornDown:       "torn_down",
	Failing:        "failing",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
