// Package digestalg maps the digest-algorithm OIDs the core must recognize
// (RFC 3161 message imprints, CMS SignerInfo digest algorithms, RSASSA-PSS
// parameter blocks) to crypto.Hash values and back.
package digestalg

import (
	"crypto"
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/asn1"

	_ "golang.org/x/crypto/ripemd160"
	_ "golang.org/x/crypto/sha3"

	"github.com/pkg/errors"
)

// OIDs as registered in the PKCS#1 / NIST / Teletrust arcs. Digest OIDs at
// least SHA-1, SHA-224, SHA-256, SHA-384, SHA-512, SHA3-*, RIPEMD-160, MD5
// per spec §6.
var (
	OIDMD5       = asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 5}
	OIDSHA1      = asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}
	OIDSHA224    = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 4}
	OIDSHA256    = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}
	OIDSHA384    = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}
	OIDSHA512    = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}
	OIDSHA3_224  = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 7}
	OIDSHA3_256  = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 8}
	OIDSHA3_384  = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 9}
	OIDSHA3_512  = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 10}
	OIDRIPEMD160 = asn1.ObjectIdentifier{1, 3, 36, 3, 2, 1}
)

var oidToHash = map[string]crypto.Hash{
	OIDMD5.String():      crypto.MD5,
	OIDSHA1.String():     crypto.SHA1,
	OIDSHA224.String():   crypto.SHA224,
	OIDSHA256.String():   crypto.SHA256,
	OIDSHA384.String():   crypto.SHA384,
	OIDSHA512.String():   crypto.SHA512,
	OIDSHA3_224.String(): crypto.SHA3_224,
	OIDSHA3_256.String(): crypto.SHA3_256,
	OIDSHA3_384.String(): crypto.SHA3_384,
	OIDSHA3_512.String(): crypto.SHA3_512,
	OIDRIPEMD160.String(): crypto.RIPEMD160,
}

var hashToOID = map[crypto.Hash]asn1.ObjectIdentifier{
	crypto.MD5:       OIDMD5,
	crypto.SHA1:      OIDSHA1,
	crypto.SHA224:    OIDSHA224,
	crypto.SHA256:    OIDSHA256,
	crypto.SHA384:    OIDSHA384,
	crypto.SHA512:    OIDSHA512,
	crypto.SHA3_224:  OIDSHA3_224,
	crypto.SHA3_256:  OIDSHA3_256,
	crypto.SHA3_384:  OIDSHA3_384,
	crypto.SHA3_512:  OIDSHA3_512,
	crypto.RIPEMD160: OIDRIPEMD160,
}

// FromOID resolves a digest-algorithm OID to a crypto.Hash.
func FromOID(oid asn1.ObjectIdentifier) (crypto.Hash, error) {
	h, ok := oidToHash[oid.String()]
	if !ok {
		return 0, errors.Errorf("digestalg: unsupported digest algorithm OID %s", oid.String())
	}
	if !h.Available() {
		return 0, errors.Errorf("digestalg: digest algorithm %s not linked into binary", h)
	}
	return h, nil
}

// ToOID resolves a crypto.Hash to its digest-algorithm OID.
func ToOID(h crypto.Hash) (asn1.ObjectIdentifier, error) {
	oid, ok := hashToOID[h]
	if !ok {
		return nil, errors.Errorf("digestalg: no OID registered for hash %s", h)
	}
	return oid, nil
}

// Sum computes the digest of data under algorithm oid.
func Sum(oid asn1.ObjectIdentifier, data []byte) ([]byte, error) {
	h, err := FromOID(oid)
	if err != nil {
		return nil, err
	}
	hasher := h.New()
	hasher.Write(data)
	return hasher.Sum(nil), nil
}
