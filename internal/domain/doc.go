// Package domain defines the core entities of a sweep: the resources being
// fetched, the frames they parse into, and the per-run report built from
// individual outcomes. It holds no I/O and no knowledge of how resources are
// retrieved or scheduled.
package domain
