// Package ir provides the canonical value model for sigil.
//
// This package contains type definitions, canonical JSON serialization,
// and content-addressed hash derivation. All other internal packages
// import ir; ir imports nothing internal. This keeps ir the foundational
// layer with no circular dependencies.
//
// Key design constraints:
//   - Hash inputs never contain floats - fractional values are rendered
//     as fixed-point strings before canonical serialization
//   - All JSON tags use snake_case
//   - Entity identity is content-addressed SHA-256 with domain separation
package ir
