package types

import "github.com/m-mizutani/goerr/v2"

// Error classification tags. Upstream failures are tagged at the point the
// HTTP status is known; callers branch on tags, never on message content.
var (
	// ErrTagBadInput marks invalid configuration or input values, detected
	// before any network call
	ErrTagBadInput = goerr.NewTag("bad_input")

	// ErrTagNotFound marks a missing remote entity (repository, ref, run,
	// release)
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagForbidden marks insufficient permission for the credential
	ErrTagForbidden = goerr.NewTag("forbidden")

	// ErrTagUnauthenticated marks a rejected credential
	ErrTagUnauthenticated = goerr.NewTag("unauthenticated")

	// ErrTagConflict marks a duplicate-name or otherwise unprocessable
	// request (HTTP 422)
	ErrTagConflict = goerr.NewTag("conflict")

	// ErrTagExpired marks an artifact archive that is no longer available
	ErrTagExpired = goerr.NewTag("expired")

	// ErrTagUpstream marks any other hosting API failure
	ErrTagUpstream = goerr.NewTag("upstream")

	// ErrTagLocalIO marks a filesystem read/write/extraction failure
	ErrTagLocalIO = goerr.NewTag("local_io")
)

// ErrNoUploads is returned when a replication run found artifacts but
// produced no release assets at all
var ErrNoUploads = goerr.New("artifacts were found but no files were published", goerr.T(ErrTagUpstream))
