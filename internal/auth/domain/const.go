// Package domain defines the authentication domain: signed access-token claims,
// session inputs and outputs, and the outcomes of the request gate.
package domain

import (
	"github.com/allisson/notes/internal/errors"
)

// RevocationKeyPrefix namespaces revocation entries in the shared cache.
const RevocationKeyPrefix = "bl:"

// GateOutcome is the reason code recorded for every decision of the request gate.
// It is logged and counted, never returned to the caller.
type GateOutcome string

const (
	// GateAdmitted means the credential was valid and not revoked.
	GateAdmitted GateOutcome = "admitted"

	// GateMissingHeader means no Authorization header was sent.
	GateMissingHeader GateOutcome = "missing_header"

	// GateMalformedHeader means the header was not a non-empty bearer credential.
	GateMalformedHeader GateOutcome = "malformed_header"

	// GateMalformedCredential means the token could not be decoded.
	GateMalformedCredential GateOutcome = "malformed_credential"

	// GateBadSignature means the token signature did not verify.
	GateBadSignature GateOutcome = "bad_signature"

	// GateExpired means the token expiry has passed.
	GateExpired GateOutcome = "expired"

	// GateRevoked means the token instance was found in the revocation store.
	GateRevoked GateOutcome = "revoked"

	// GateStoreUnavailable means the revocation store could not be consulted.
	GateStoreUnavailable GateOutcome = "store_unavailable"

	// GateError covers any other failure.
	GateError GateOutcome = "error"
)

// OutcomeForError classifies an authentication error into a gate outcome.
func OutcomeForError(err error) GateOutcome {
	switch {
	case err == nil:
		return GateAdmitted
	case errors.Is(err, ErrMalformedCredential):
		return GateMalformedCredential
	case errors.Is(err, ErrBadSignature):
		return GateBadSignature
	case errors.Is(err, ErrExpired):
		return GateExpired
	case errors.Is(err, ErrRevoked):
		return GateRevoked
	case errors.Is(err, ErrRevocationStoreUnavailable):
		return GateStoreUnavailable
	default:
		return GateError
	}
}
