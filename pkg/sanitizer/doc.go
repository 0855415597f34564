// Package sanitizer provides input normalization for data arriving from the
// scheduling provider and from search requests.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// returning empty strings rather than errors.
package sanitizer
