package sdkmodel

// UnknownPolicy controls how wire keys that no Field declares are handled.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys (servers add fields over time).
	UnknownStrict                           // Reject unknown keys with an error.
	UnknownPassthrough                      // Keep unknown keys; Encode re-emits them after declared keys.
)

// Severity expresses the severity level for wire-level findings.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement applied to raw wire bytes.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// DecodeOpt bundles hydration options. Options travel with a hydrated Model
// so nested models hydrated on first read honor the same policy.
type DecodeOpt struct {
	Unknown    UnknownPolicy
	Strictness Strictness
	MaxBytes   int64
	FailFast   bool
}

func pickOpt(opts []DecodeOpt) *DecodeOpt {
	var opt DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return &opt
}
