package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainEntity     = "sigil/entity/v1"
	DomainReflection = "sigil/reflection/v1"
	DomainChain      = "sigil/chain/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DefineHash computes the origin hash for a DEFINED entity.
// The hash is order-sensitive over (name, components, linked_to, counter)
// and stable across restarts - identical inputs always produce the same
// hash. A missing link target hashes as the empty string.
func DefineHash(name string, components []string, linkedTo string, counter int64) (string, error) {
	obj := Object{
		"name":       String(name),
		"components": StringsToArray(components),
		"linked_to":  String(linkedTo),
		"counter":    Int(counter),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("DefineHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainEntity, canonical), nil
}

// SynthesisHash computes the origin hash for a SYNTHESIZED entity.
// Unlike DefineHash, the component labels are concatenated before hashing;
// this mirrors the derivation the entity's verifiers cite.
func SynthesisHash(name, joinedComponents string, counter int64) (string, error) {
	obj := Object{
		"name":       String(name),
		"components": String(joinedComponents),
		"counter":    Int(counter),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("SynthesisHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainEntity, canonical), nil
}

// ReflectionHash computes the identity hash of a reflection result over
// (question, depth, level count).
func ReflectionHash(question string, depth, levels int) (string, error) {
	obj := Object{
		"question": String(question),
		"depth":    Int(int64(depth)),
		"levels":   Int(int64(levels)),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ReflectionHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainReflection, canonical), nil
}

// ChainHash computes the content fingerprint of the entire entity graph.
// The input must already be canonically serialized registry contents; two
// exports produce the same chain hash if and only if the registry did not
// change between them.
func ChainHash(canonicalRegistry []byte) string {
	return hashWithDomain(DomainChain, canonicalRegistry)
}

// MustDefineHash is like DefineHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDefineHash(name string, components []string, linkedTo string, counter int64) string {
	h, err := DefineHash(name, components, linkedTo, counter)
	if err != nil {
		panic(err)
	}
	return h
}

// MustSynthesisHash is like SynthesisHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustSynthesisHash(name, joinedComponents string, counter int64) string {
	h, err := SynthesisHash(name, joinedComponents, counter)
	if err != nil {
		panic(err)
	}
	return h
}
