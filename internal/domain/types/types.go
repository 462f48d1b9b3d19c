// Package types contains common clinical types used across the application.
package types

// InjuryType identifies the injury a patient is rehabilitating.
type InjuryType string

// Supported injury types. The set mirrors the clinic's intake form.
const (
	InjuryACL               InjuryType = "ACL"
	InjuryAchilles          InjuryType = "Achilles"
	InjuryHamstring         InjuryType = "Hamstring"
	InjuryPatellarTendon    InjuryType = "Patellar Tendon"
	InjuryRotatorCuff       InjuryType = "Rotator Cuff"
	InjuryGroin             InjuryType = "Groin"
	InjuryProximalHamstring InjuryType = "Proximal Hamstring Tendinopathy"
	InjuryATFL              InjuryType = "ATFL Ligament Injury"
)

// InjuryTypes lists the supported injury types in intake-form order.
func InjuryTypes() []InjuryType {
	return []InjuryType{
		InjuryACL,
		InjuryAchilles,
		InjuryHamstring,
		InjuryPatellarTendon,
		InjuryRotatorCuff,
		InjuryGroin,
		InjuryProximalHamstring,
		InjuryATFL,
	}
}

// ParseInjuryType maps a raw string to a supported injury type.
// Returns false for anything outside the supported set.
func ParseInjuryType(s string) (InjuryType, bool) {
	for _, it := range InjuryTypes() {
		if string(it) == s {
			return it, true
		}
	}
	return "", false
}

// Phase is a clinician-facing rehabilitation stage label.
type Phase string

// Rehabilitation phases, least to most advanced. PhaseUnclassified is the
// defined fallback when no phase predicate matches.
const (
	PhaseUnclassified  Phase = "Unclassified"
	PhaseEarly         Phase = "Early"
	PhaseMid           Phase = "Mid"
	PhaseLate          Phase = "Late"
	PhaseReturnToSport Phase = "Return to Sport"
)

// ParsePhase maps a raw string to a known phase label.
func ParsePhase(s string) (Phase, bool) {
	switch Phase(s) {
	case PhaseUnclassified, PhaseEarly, PhaseMid, PhaseLate, PhaseReturnToSport:
		return Phase(s), true
	}
	return "", false
}

// Severity grades a clinical alert.
type Severity string

// Alert severities.
const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is a flagged safety or progress concern derived from metrics.
// Alerts are independent of the phase determination.
type Alert struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}
