package signature

// Level names one rung of a format's baseline-profile ladder (spec §4.4
// "Level inference"). Values are format-qualified (e.g. "CADES_BASELINE_T")
// since B/T/LT/LTA requirements differ per container even though the
// bucket names line up.
type Level string

var ladder = map[Format][4]Level{
	XAdES: {"XADES_BASELINE_B", "XADES_BASELINE_T", "XADES_BASELINE_LT", "XADES_BASELINE_LTA"},
	CAdES: {"CADES_BASELINE_B", "CADES_BASELINE_T", "CADES_BASELINE_LT", "CADES_BASELINE_LTA"},
	PAdES: {"PADES_BASELINE_B", "PADES_BASELINE_T", "PADES_BASELINE_LT", "PADES_BASELINE_LTA"},
}

// SignatureLevels returns the format's baseline ladder in strictly
// ascending order (spec §3 AdvancedSignature invariant).
func (b *baseSignature) SignatureLevels() []Level {
	rungs := ladder[b.format]
	return []Level{rungs[0], rungs[1], rungs[2], rungs[3]}
}

// IsDataForSignatureLevelPresent reports whether every structural element
// the profile requires for level is present, and is monotone by
// construction (P5): LTA requires LT's conditions plus an archive
// timestamp, LT requires T's conditions plus complete certificate and
// revocation material, T requires B plus a signature-timestamp, and B
// requires a resolvable signing certificate.
func (b *baseSignature) IsDataForSignatureLevelPresent(level Level) bool {
	rungs := ladder[b.format]
	switch level {
	case rungs[0]:
		return b.levelB()
	case rungs[1]:
		return b.levelT()
	case rungs[2]:
		return b.levelLT()
	case rungs[3]:
		return b.levelLTA()
	default:
		return false
	}
}

func (b *baseSignature) levelB() bool {
	return len(b.certificateSource.Certificates()) > 0 || b.providedSigningCert != nil
}

func (b *baseSignature) levelT() bool {
	return b.levelB() && len(b.SignatureTimestamps()) > 0
}

func (b *baseSignature) levelLT() bool {
	if !b.levelT() {
		return false
	}
	hasCerts := len(b.CompleteCertificateSource()) > 0
	hasRevocation := len(b.CompleteCRLSource()) > 0 || len(b.CompleteOCSPSource()) > 0
	return hasCerts && hasRevocation
}

func (b *baseSignature) levelLTA() bool {
	return b.levelLT() && len(b.ArchiveTimestamps()) > 0
}

// DataFoundUpToLevel returns the highest level whose requirements are met,
// walking the ladder from LTA down per spec §4.4.
func (b *baseSignature) DataFoundUpToLevel() Level {
	rungs := ladder[b.format]
	for i := len(rungs) - 1; i >= 0; i-- {
		if b.IsDataForSignatureLevelPresent(rungs[i]) {
			return rungs[i]
		}
	}
	return ""
}
