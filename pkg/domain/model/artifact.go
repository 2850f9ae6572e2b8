package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/porter/pkg/domain/types"
)

// Artifact is a build output attached to a workflow run, downloadable as a
// zip archive
type Artifact struct {
	ID        int64
	Name      string
	SizeBytes int64
	Expired   bool
}

// ExtractedFile is one regular file produced by extracting an artifact
// archive. It lives only until the upload attempt completes.
type ExtractedFile struct {
	EntryName string // original archive entry name
	Path      string // location under the staging directory
	SizeBytes int64
}

// ReleaseAsset is a named binary attached to a release
type ReleaseAsset struct {
	ID   int64
	Name string
}

// ReplacePolicy decides what happens when an upload name collides with an
// existing release asset
type ReplacePolicy string

const (
	// PolicyReplace deletes the existing asset, then uploads the new content
	PolicyReplace ReplacePolicy = "replace"

	// PolicySkip leaves the existing asset untouched and skips the upload
	PolicySkip ReplacePolicy = "skip"
)

// ParseReplacePolicy validates a policy name from configuration
func ParseReplacePolicy(s string) (ReplacePolicy, error) {
	switch ReplacePolicy(s) {
	case PolicyReplace:
		return PolicyReplace, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", goerr.New("replace policy must be \"replace\" or \"skip\"",
			goerr.V("policy", s), goerr.T(types.ErrTagBadInput))
	}
}

// ReplicationSummary aggregates the outcome of one replication run
type ReplicationSummary struct {
	ArtifactsTotal     int
	ArtifactsSucceeded int // artifacts with at least one uploaded file
	ArtifactsFailed    int // artifacts that failed at download or extraction
	FilesUploaded      int
	FilesSkipped       int
}
