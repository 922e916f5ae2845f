// Package metric implements the Metric Storage and MeterProvider/
// MetricReader subsystems (§4.5, §4.6).
package metric

// InstrumentKind enumerates the instrument kinds spec.md §4.5 describes.
type InstrumentKind int

const (
	KindCounter InstrumentKind = iota
	KindUpDownCounter
	KindHistogram
	KindGauge
	KindObservableCounter
	KindObservableUpDownCounter
	KindObservableGauge
)

// ValidInstrumentName reports whether name satisfies the OTel instrument
// naming constraints (§4.5's implicit instrument identity contract): starts
// with a letter, then letters/digits/underscore/dot/slash/hyphen, up to 255
// characters. go-playground/validator (used for OTLP exporter client config
// validation in otlpcommon) isn't a fit here: its struct-tag validators
// can't express "first character is a letter, remaining characters are one
// of this custom set" as a single declarative rule, so this grammar is a
// plain character-class scan.
func ValidInstrumentName(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	if !isASCIILetter(rune(name[0])) {
		return false
	}
	for _, r := range name {
		if !isASCIILetter(r) && !isASCIIDigit(r) && r != '_' && r != '.' && r != '/' && r != '-' {
			return false
		}
	}
	return true
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// Descriptor is an instrument's identity: name, kind, description, unit.
type Descriptor struct {
	Name        string
	Kind        InstrumentKind
	Description string
	Unit        string
}
