package token

import "sync"

// SourceType tags where a certificate / revocation artifact was extracted
// from (spec §3 CertificateSource/CRLSource/OCSPSource).
type SourceType int

const (
	SourceTypeSignature SourceType = iota
	SourceTypeTimestamp
	SourceTypeOCSPResponse
	SourceTypeAIA
	SourceTypeTrustedStore
)

func (t SourceType) String() string {
	switch t {
	case SourceTypeSignature:
		return "SIGNATURE"
	case SourceTypeTimestamp:
		return "TIMESTAMP"
	case SourceTypeOCSPResponse:
		return "OCSP_RESPONSE"
	case SourceTypeAIA:
		return "AIA"
	case SourceTypeTrustedStore:
		return "TRUSTED_STORE"
	default:
		return "UNKNOWN"
	}
}

// CertificatePool is a deduplicating registry mapping a certificate's DSSID
// to its canonical CertificateToken instance plus the set of sources that
// contributed it (spec §3). The same physical certificate bytes never
// produce two distinct entries. Per spec §5, the pool is the one structure
// shared across independently-owned signatures; a single RWMutex is
// sufficient since it is not on a hot path.
type CertificatePool struct {
	mu      sync.RWMutex
	entries map[string]*poolEntry
}

type poolEntry struct {
	cert    CertificateToken
	sources map[SourceType]struct{}
}

// NewCertificatePool returns an empty pool.
func NewCertificatePool() *CertificatePool {
	return &CertificatePool{entries: make(map[string]*poolEntry)}
}

// Put registers cert as having been found in source, returning the
// canonical instance for cert's DSSID (which may be a previously-registered
// certificate with byte-identical DER, not necessarily cert itself).
func (p *CertificatePool) Put(cert CertificateToken, source SourceType) CertificateToken {
	id := cert.DSSID()

	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[id]
	if !ok {
		e = &poolEntry{cert: cert, sources: map[SourceType]struct{}{}}
		p.entries[id] = e
	}
	e.sources[source] = struct{}{}
	return e.cert
}

// Get returns the canonical certificate for id, if any.
func (p *CertificatePool) Get(id string) (CertificateToken, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[id]
	if !ok {
		return nil, false
	}
	return e.cert, true
}

// SourcesFor returns every source type that contributed the certificate
// identified by id.
func (p *CertificatePool) SourcesFor(id string) []SourceType {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[id]
	if !ok {
		return nil
	}
	out := make([]SourceType, 0, len(e.sources))
	for s := range e.sources {
		out = append(out, s)
	}
	return out
}

// Len returns the number of distinct certificates registered.
func (p *CertificatePool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}
