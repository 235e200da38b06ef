// Package ir provides the canonical icon catalog model for glyphforge.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the catalog model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - A Catalog is built once by the compiler and is read-only afterwards
//   - Iteration order is part of the contract: icons follow glyph order,
//     categories follow manifest order
//   - All JSON tags use snake_case
//   - No floats anywhere; canonical JSON is used only for fingerprints
package ir
