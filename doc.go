// Package auth implements the credential lifecycle for the airline
// platform: bcrypt hashing, JWT issuance and verification, end user
// registration and login, and the all-or-nothing tenant signup that
// creates an airline, its first administrator, and its subscription in a
// single transaction.
//
// The package is transport-agnostic. An external dispatcher (see natsrpc)
// invokes the Orchestrator by operation name; persistence is behind the
// RepositoryManager interface (see repository for the bun implementation).
//
// Two deliberate behaviors worth knowing about:
//   - Login failures never distinguish "unknown email" from "wrong
//     password"; both paths return byte-identical messages.
//   - Verifying a token always re-issues a fresh one over the same payload,
//     with the transport claims (sub, iat, exp) stripped first.
package auth
