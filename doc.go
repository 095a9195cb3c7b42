// Package auth is the credential and session-token core of the Clarity
// CRM platform: it authenticates username/password pairs, issues signed
// time-bounded tokens carrying the caller's identity and role, resolves
// previously issued tokens back to current account state, and rotates
// passwords.
//
// Boundaries:
//   - The credential store is consumed through the UserStore contract;
//     NewUserStore provides a bun-backed adapter, but any implementation
//     that honors the error taxonomy (not-found vs conflict vs storage
//     failure) plugs in.
//   - Tokens are self-contained HS256 JWTs verified with nothing but the
//     signing secret. There is no server-side session state and no
//     revocation: a minted token stays valid until its expiry regardless
//     of later account changes.
//   - Audit logging stays outside this package. Wire an ActivitySink to
//     forward login, registration, and password events to whatever the
//     host application records with; sinks run best-effort and never
//     block authentication.
//
// All failures cross the package boundary as error values from a closed
// taxonomy (see errors.go); the only fatal condition is constructing an
// Auther without a signing secret.
package auth
