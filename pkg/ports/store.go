package ports

// ArtifactStore persists finalized artifacts keyed by an opaque id.
// The transcoding core never touches the store; it is a collaborator
// surface for callers that want to keep results around.
type ArtifactStore interface {
	// Put stores the artifact bytes and returns a new opaque id.
	Put(data []byte) (string, error)

	// Get returns the artifact bytes for the given id.
	Get(id string) ([]byte, error)

	// Delete removes the artifact. Deleting an unknown id is an error.
	Delete(id string) error
}
