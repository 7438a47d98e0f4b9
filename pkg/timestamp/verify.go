package timestamp

import (
	"crypto/x509/pkix"
	"encoding/asn1"

	"github.com/hhrutter/pkcs7"
	"github.com/pkg/errors"

	"github.com/mranest/godss/pkg/log"
	"github.com/mranest/godss/pkg/token"
)

// verifyTSA implements the two-stage TSA signature check the teacher runs
// in checkTimestampToken/verifyP7Signature (pkg/pdfcpu/sign/pkcs7.go): a
// strict RFC 3161 profile check (exactly one SignerInfo, whose SID resolves
// to candidate) first, falling back to a bare CMS SignerInfo signature
// check against candidate if the strict shape doesn't hold (spec §4.2 P8 —
// some real-world TSAs emit SignerInfos whose SID does not cleanly resolve
// against the certificate the caller expects, and DSS still reports a
// cryptographic verdict rather than refusing to check at all).
func verifyTSA(p7 *pkcs7.PKCS7, candidate token.CertificateToken, verifier CryptoVerifier) (bool, pkix.Name, token.SignatureAlgorithm, string, error) {
	if len(p7.Signers) == 0 {
		return false, pkix.Name{}, token.SignatureAlgorithm{}, "no SignerInfo present in timestamp token", nil
	}

	if len(p7.Signers) == 1 {
		ok, alg, reason, err := verifySignerAgainst(p7, p7.Signers[0], candidate, verifier, true)
		if err != nil {
			return false, pkix.Name{}, token.SignatureAlgorithm{}, "", err
		}
		if ok {
			return true, candidate.SubjectDN(), alg, "", nil
		}
		if reason != "" {
			return false, pkix.Name{}, token.SignatureAlgorithm{}, reason, nil
		}
	}

	log.Debug.Printf("timestamp: strict RFC 3161 SID match failed, falling back to plain CMS signature check\n")
	for _, signer := range p7.Signers {
		ok, alg, reason, err := verifySignerAgainst(p7, signer, candidate, verifier, false)
		if err != nil {
			return false, pkix.Name{}, token.SignatureAlgorithm{}, "", err
		}
		if ok {
			return true, candidate.SubjectDN(), alg, "", nil
		}
		if reason != "" {
			return false, pkix.Name{}, token.SignatureAlgorithm{}, reason, nil
		}
	}
	return false, pkix.Name{}, token.SignatureAlgorithm{}, "no SignerInfo matched the candidate certificate", nil
}

// verifySignerAgainst checks one SignerInfo's signature against candidate.
// strict requires the SignerInfo's SID to identify candidate, via either
// issuer+serial or subject-key-identifier (spec §4.2 step 1), before
// attempting the cryptographic check; non-strict skips SID resolution and
// verifies candidate's key against the signature unconditionally, the
// CMS-fallback half of P8.
func verifySignerAgainst(p7 *pkcs7.PKCS7, signer pkcs7.SignerInfo, candidate token.CertificateToken, verifier CryptoVerifier, strict bool) (bool, token.SignatureAlgorithm, string, error) {
	if strict {
		sid := token.IssuerSerial{
			IssuerRawDN:  signer.IssuerAndSerialNumber.IssuerName.FullBytes,
			SerialNumber: signer.IssuerAndSerialNumber.SerialNumber,
		}
		// hhrutter/pkcs7 only decodes the issuerAndSerialNumber arm of the
		// SignerIdentifier CHOICE; it never yields a bare subjectKeyIdentifier
		// for a SignerInfo, so the ski argument here is nil until a parser
		// that decodes the other arm is wired in. MatchesSID still checks it,
		// so a caller-supplied candidate with a matching SKI is honored the
		// moment one is.
		if !token.MatchesSID(candidate, sid, nil) {
			return false, token.SignatureAlgorithm{}, "", nil
		}
	}

	signed, err := signedAttributesOrContent(p7, signer)
	if err != nil {
		return false, token.SignatureAlgorithm{}, "", err
	}

	alg, pss, err := resolveSignatureAlgorithm(signer, candidate.PublicKeyAlgorithm())
	if err != nil {
		return false, token.SignatureAlgorithm{}, "", err
	}

	ok, err := verifier.Verify(candidate.PublicKey(), signer.DigestEncryptionAlgorithm.Algorithm, pss, signed, signer.EncryptedDigest)
	if err != nil {
		return false, token.SignatureAlgorithm{}, "", err
	}
	if !ok {
		return false, token.SignatureAlgorithm{}, "signature does not verify against candidate certificate's public key", nil
	}
	return true, alg, "", nil
}

// signedAttributesOrContent returns the bytes the SignerInfo's signature
// actually covers: the DER re-encoding of the signed attribute set when
// present (the common case for a timestamp token), or the raw TSTInfo
// content otherwise.
func signedAttributesOrContent(p7 *pkcs7.PKCS7, signer pkcs7.SignerInfo) ([]byte, error) {
	if len(signer.AuthenticatedAttributes) == 0 {
		return p7.Content, nil
	}
	type signedAttrSet struct {
		Raw   asn1.RawContent
		Attrs []pkcs7.Attribute `asn1:"set"`
	}
	set := signedAttrSet{Attrs: signer.AuthenticatedAttributes}
	der, err := asn1.Marshal(set.Attrs)
	if err != nil {
		return nil, errors.Wrap(err, "timestamp: re-encode signed attributes for verification")
	}
	// Re-tag the encoded SEQUENCE OF Attribute as an implicit SET (0x31),
	// per RFC 5652 §5.4: the signature covers a DER SET OF, not the SEQUENCE
	// asn1.Marshal produces for a Go slice.
	if len(der) > 0 {
		der[0] = 0x31
	}
	return der, nil
}

// resolveSignatureAlgorithm names the encryption/digest pair (the signing
// key's algorithm keyAlgorithm plus the SignerInfo's digest algorithm) and,
// for RSASSA-PSS, decodes the AlgorithmIdentifier parameters (spec §6).
func resolveSignatureAlgorithm(signer pkcs7.SignerInfo, keyAlgorithm string) (token.SignatureAlgorithm, *token.PSSParameters, error) {
	digestName := hashOIDName(signer.DigestAlgorithm.Algorithm)

	if !signer.DigestEncryptionAlgorithm.Algorithm.Equal(oidRSASSAPSS) {
		return token.SignatureAlgorithm{
			EncryptionAlgorithm: keyAlgorithm,
			DigestAlgorithm:     digestName,
		}, nil, nil
	}

	var params pssParameters
	if len(signer.DigestEncryptionAlgorithm.Parameters.FullBytes) > 0 {
		if _, err := asn1.Unmarshal(signer.DigestEncryptionAlgorithm.Parameters.FullBytes, &params); err != nil {
			return token.SignatureAlgorithm{}, nil, token.NewCryptoBackendError(errors.Wrap(err, "timestamp: decode RSASSA-PSS parameters"))
		}
	}
	pss := &token.PSSParameters{
		HashAlgorithm:    hashOIDName(params.Hash.Algorithm),
		MaskGenAlgorithm: "MGF1",
		MaskGenHash:      hashOIDName(params.MGF.Parameters.Algorithm),
		SaltLength:       params.SaltLength,
		TrailerField:     params.TrailerField,
	}
	if pss.SaltLength == 0 {
		pss.SaltLength = 20
	}
	if pss.TrailerField == 0 {
		pss.TrailerField = 1
	}
	alg := token.SignatureAlgorithm{
		EncryptionAlgorithm: "RSASSA-PSS",
		DigestAlgorithm:     pss.HashAlgorithm,
		PSS:                 pss,
	}
	return alg, pss, nil
}
