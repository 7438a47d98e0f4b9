package signature

import (
	"github.com/pkg/errors"

	"github.com/mranest/godss/pkg/token"
	"github.com/mranest/godss/pkg/validation"
)

// CompleteCertificateSource merges the signature's own certificate source
// with every nested timestamp's, deduplicated by DSSID (spec §4.4
// "complete_* variants", P6).
func (b *baseSignature) CompleteCertificateSource() []token.CertificateToken {
	sources := []*token.CertificateSource{b.certificateSource}
	for _, t := range b.timestampSource.All() {
		sources = append(sources, t.CertificateSource())
	}
	return token.MergeCertificateSources(sources...)
}

// CompleteCRLSource merges the signature's own CRL source with every
// nested timestamp's, deduplicated by artifact identity (P6).
func (b *baseSignature) CompleteCRLSource() []token.RevocationArtifact {
	sources := []*token.RevocationSource{b.crlSource}
	for _, t := range b.timestampSource.All() {
		sources = append(sources, t.CRLSource())
	}
	return token.MergeRevocationSources(sources...)
}

// CompleteOCSPSource merges the signature's own OCSP source with every
// nested timestamp's, deduplicated by artifact identity (P6).
func (b *baseSignature) CompleteOCSPSource() []token.RevocationArtifact {
	sources := []*token.RevocationSource{b.ocspSource}
	for _, t := range b.timestampSource.All() {
		sources = append(sources, t.OCSPSource())
	}
	return token.MergeRevocationSources(sources...)
}

// AddCertificate records cert as extracted from this signature's container,
// routing it through the shared CertificatePool (if one was supplied at
// construction) so that byte-identical certificates collapse to one
// canonical instance across every signature sharing the pool (spec §3
// CertificatePool invariant), before adding it to the signature's own
// CertificateSource.
func (b *baseSignature) AddCertificate(cert token.CertificateToken, source token.SourceType) {
	if b.pool != nil {
		cert = b.pool.Put(cert, source)
	}
	b.certificateSource.Add(cert)
}

// FindSignatureScope delegates to the injected strategy to produce
// "what-was-signed" descriptors (spec §4.4), caching the result for
// SignatureScopes.
func (b *baseSignature) FindSignatureScope(finder validation.SignatureScopeFinder) ([]validation.SignatureScope, error) {
	scopes, err := finder.Find(b)
	if err != nil {
		return nil, errors.Wrap(err, "signature: finding signature scope")
	}
	b.signatureScopes = scopes
	return scopes, nil
}

// SignatureScopes returns the scopes found by the most recent
// FindSignatureScope call, or nil if it was never called.
func (b *baseSignature) SignatureScopes() []validation.SignatureScope {
	return b.signatureScopes
}

// CheckSignaturePolicy resolves the signature's PolicyID against provider
// (spec §4.4). A blank PolicyID (implicit policy) resolves to nothing
// without contacting the provider.
func (b *baseSignature) CheckSignaturePolicy(provider validation.SignaturePolicyProvider) (*validation.SignaturePolicy, error) {
	if b.policyID == "" {
		return nil, nil
	}
	policy, err := provider.Resolve(b.policyID)
	if err != nil {
		return nil, errors.Wrapf(err, "signature: resolving policy %q", b.policyID)
	}
	return policy, nil
}

// CounterSignatures returns every child signature whose MasterSignature
// points back to self (spec §4.4, P7).
func (b *baseSignature) CounterSignatures() []AdvancedSignature {
	return b.counterSignatures
}

func (b *baseSignature) MasterSignature() AdvancedSignature {
	return b.masterSignature
}

// SetMasterSignature marks self as a counter-signature of master,
// registering self on master's CounterSignatures list and rejecting any
// attempt that would introduce a cycle (spec §9: "walk the parent chain;
// reject on revisit").
func (b *baseSignature) SetMasterSignature(master AdvancedSignature) error {
	if master == nil {
		return errors.New("signature: master signature must not be nil")
	}
	for cur := master; cur != nil; cur = cur.MasterSignature() {
		if cur.DSSID() == b.dssID {
			return errors.Errorf("signature: setting %q as master of %q would create a counter-signature cycle", master.ID(), b.id)
		}
	}
	b.masterSignature = master
	if setter, ok := master.(interface{ addCounterSignature(AdvancedSignature) }); ok {
		setter.addCounterSignature(b.self)
	}
	return nil
}

// addCounterSignature appends cs to the list CounterSignatures() returns;
// called by SetMasterSignature on the master side of the back-link.
func (b *baseSignature) addCounterSignature(cs AdvancedSignature) {
	b.counterSignatures = append(b.counterSignatures, cs)
}
