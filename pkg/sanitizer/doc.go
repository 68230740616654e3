// Package sanitizer provides input normalization for ride requests.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings rather than errors.
//
// Normalization runs before validation, so field constraints apply to the
// cleaned values:
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Addresses: Whitespace normalization only, casing is preserved
//
// Ride preferences are deliberately not touched here: they are an opaque
// bag forwarded to the booking backend exactly as the caller supplied it.
package sanitizer
