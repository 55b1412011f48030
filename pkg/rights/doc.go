// Package rights persists the copy and print quotas attached to an LCP
// license, keyed by license identifier.
//
// A missing counter means the license never restricted that right; callers
// treat it as unlimited. Counters are read lazily on each rights check and
// written immediately after each successful consumption. The in-memory
// store serves single-process setups and tests; the Redis store shares
// counters across processes under lcp:rights:<license-id>:<counter> keys.
package rights
