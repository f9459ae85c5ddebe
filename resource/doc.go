// Package resource provides typed clients for the shelf catalog endpoints:
// contents, external search and import, library entries, reviews, ratings,
// activities, and profiles. Every client goes through the transport gateway,
// so credential attachment and session invalidation apply uniformly; none of
// them read or write stored tokens on their own.
package resource
