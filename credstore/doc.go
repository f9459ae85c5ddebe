// Package credstore provides device-local persistence for the credential
// pair: an in-memory store for tests and embedding hosts, and a file-backed
// store that survives process restarts. Both write the pair atomically and
// report placeholder slot values as absent. SQL-backed persistence lives in
// credstore/sql.
package credstore
