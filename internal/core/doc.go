// Package core recovers a candidate record from an uploaded sheet whose
// columns carry no fixed order, and stores it.
//
// The package has no transport dependencies. Web handlers and the CLI both
// drive it through [Service].
//
// # Pipeline
//
//  1. [sheet.ResolveFormat] checks the declared media type and sniffs content
//  2. [sheet.Decode] turns bytes into a [sheet.Grid]
//  3. [SelectRowIndex] picks the row that looks like data
//  4. [Locate] binds seniority, years of experience and availability to
//     distinct columns by content shape
//  5. [Validate] enforces the domain rules on the coerced values
//  6. [Repository.Create] stores the record with the uploader's names
//
// Steps 3 to 5 are pure functions and safe for concurrent use.
//
// # Row Selection
//
// A single-row grid is headerless data. Otherwise the first row with at least
// three cells containing a seniority-like, a number-like and a boolean-like
// cell wins. When no row qualifies the last row is used ([FallbackLastRow]),
// or [ErrNoPlausibleRow] is returned under [StrictSelection].
//
// # Field Binding
//
// Columns are scanned left to right three times: seniority first, then years
// skipping the seniority column, then availability skipping both. A textual
// "true" is never number-like and "1" is never boolean-like, so the order only
// matters for rows with repeated candidates.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error kind has a code for support reference:
//
//   - REQ001: missing name or surname
//   - FILE001-FILE007: file size, type and readability
//   - SEL001-SEL002: row selection
//   - EXT001-EXT003: a field could not be located
//   - VAL001-VAL003: a located field failed validation
//   - UPL002, DB004-DB006, RATE001: capacity and infrastructure
package core
