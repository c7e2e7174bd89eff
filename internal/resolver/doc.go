// Package resolver turns loaded test descriptors into per-assistive-technology
// records.
//
// For each test it expands the declared applicability against the AT
// registry, queries the command resolver for every resulting AT, merges
// default and AT-specific assertions, and classifies the test's help links.
//
// Missing commands for one (mode, task, AT) combination are tolerated: the
// record is still emitted with no commands. Every other gap (unknown AT key,
// malformed help link, unreadable command table) is returned as an error.
package resolver
