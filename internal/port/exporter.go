package port

import "context"

// Exporter copies a finished output to a remote target and returns where it
// ended up. Check rejects targets it cannot handle before any work starts.
type Exporter interface {
	Check(target string) error
	Export(ctx context.Context, localPath, target string) (string, error)
}
