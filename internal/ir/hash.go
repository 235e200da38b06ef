package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainCatalog separates catalog fingerprints from any other hash.
// The version suffix allows a future algorithm migration.
const DomainCatalog = "glyphforge/catalog/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes a content-addressed identity for a catalog.
// Two builds over identical inputs yield the same fingerprint; any change to
// entries or their order changes it.
func Fingerprint(c *Catalog) (string, error) {
	canonical, err := MarshalCanonical(c.Canonical())
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainCatalog, canonical), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when the catalog is known to be valid.
func MustFingerprint(c *Catalog) string {
	fp, err := Fingerprint(c)
	if err != nil {
		panic(err)
	}
	return fp
}
