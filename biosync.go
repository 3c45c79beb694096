/*
Package biosync holds application level constants and shared
configuration for the biosync waveform analysis tools.
*/
package biosync

// BuildRevision stores the commit in the git repository at build time and is
// specified with -ldflags at build time.
var BuildRevision = ""

const (
	// DefaultSamplingRate is assumed for recordings that carry no
	// explicit sampling rate.
	DefaultSamplingRate = 128.0

	DefaultServicePort = 3000
)
