package model

// ReplicateRequest describes one artifact replication run
type ReplicateRequest struct {
	WorkflowRepo RepositoryRef // repository owning the workflow run
	ReleaseRepo  RepositoryRef // repository owning the target release
	RunID        int64
	ReleaseID    int64
	Policy       ReplacePolicy
	StagingDir   string // parent of the per-run staging directory; empty means the OS temp dir
}
