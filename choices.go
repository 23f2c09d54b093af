// SPDX-License-Identifier: EPL-2.0

package audtempo

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultTempo is the preselected menu value, found at DefaultTempoIndex
// of TempoChoices.
const (
	DefaultTempo      = "1.0"
	DefaultTempoIndex = 10
)

// TempoChoices returns the tempo menu: 0.5 to 2.0 in steps of 0.05.
func TempoChoices() []string {
	out := make([]string, 31)
	for i := range out {
		v := float64(i-DefaultTempoIndex)*0.05 + 1.0
		out[i] = FormatTempo(math.Round(v*100) / 100)
	}
	return out
}

// FormatTempo renders v the way tempo values are named in output files:
// the shortest exact decimal, always with a fractional part ("1.0", "1.05").
func FormatTempo(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// OutputPath names the converted copy of in inside dir: the base name of
// in without its extension, an underscore, the tempo and ".wav". An empty
// dir keeps the directory of in.
func OutputPath(dir, in, tempo string) string {
	if dir == "" {
		dir = filepath.Dir(in)
	}
	base := filepath.Base(in)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+"_"+tempo+".wav")
}
