// Package cache provides content-addressed storage for rendered images.
//
// Keys are derived deterministically from a template name and its request
// parameters, so identical requests map to the same stored bytes. The Store
// interface has a disk implementation that persists PNG blobs as
// "<key>.png" files under a root directory it owns, and a memory
// implementation for tests and ephemeral deployments.
//
// Cache failures are never fatal to rendering: Get reports a miss for any
// I/O problem, and callers treat Put errors as best effort.
package cache
