// Package deploy drives terraform provisioning with failure-aware retries.
//
// Free-tier capacity in OCI comes and goes; an apply that fails with a
// capacity error is worth retrying indefinitely, while a service-limit error
// means the tenancy itself is full and no amount of retrying will help. The
// Deployer classifies each failed attempt and either loops or aborts.
package deploy

import "strings"

// Category is the disposition of a failed apply.
type Category int

const (
	// CategoryUnknown means the attempt has not been classified yet.
	CategoryUnknown Category = iota
	// CategoryCapacity is a transient out-of-capacity failure; retry.
	CategoryCapacity
	// CategoryServiceLimit is a tenancy limit or quota failure; abort,
	// the operator has to free resources or request a limit increase.
	CategoryServiceLimit
	// CategoryFatal is any other failure; abort with full diagnostics.
	CategoryFatal
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryCapacity:
		return "capacity"
	case CategoryServiceLimit:
		return "service-limit"
	case CategoryFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Classification records the category and, when matched, the indicator
// substring that decided it.
type Classification struct {
	Category  Category
	Indicator string
}

// Indicator substrings, matched case-insensitively against the combined
// diagnostic text of a failed apply. These track the error strings OCI and
// its terraform provider actually emit and are expected to need occasional
// additions as the provider evolves.
var (
	serviceLimitIndicators = []string{
		"vcn-count",
		"limit exceeded",
		"quota exceeded",
		"LimitExceeded",
	}

	capacityIndicators = []string{
		"Out of host capacity",
		"OutOfHostCapacity",
		"insufficient capacity",
		"no capacity",
		"CannotAttachVolume",
	}
)

// Classify inspects the diagnostic text of a failed apply. Service-limit
// indicators are checked first: a message can mention both a limit and
// capacity, and the limit is the one that cannot be waited out.
func Classify(diagnostics string) Classification {
	lowered := strings.ToLower(diagnostics)
	for _, ind := range serviceLimitIndicators {
		if strings.Contains(lowered, strings.ToLower(ind)) {
			return Classification{Category: CategoryServiceLimit, Indicator: ind}
		}
	}
	for _, ind := range capacityIndicators {
		if strings.Contains(lowered, strings.ToLower(ind)) {
			return Classification{Category: CategoryCapacity, Indicator: ind}
		}
	}
	return Classification{Category: CategoryFatal}
}
