// Package core contains canonical shelf client domain contracts, entities,
// error taxonomy, and configuration. Adapters (credential stores, transport,
// session, auth) depend on this package; core must not depend on any of
// them.
package core
