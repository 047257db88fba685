package interfaces

import "context"

// CommandRunner executes author controlled shell text. Run returns whatever
// the process wrote to stdout even when it fails; callers decide whether the
// error matters. Stderr is never surfaced.
type CommandRunner interface {
	Run(ctx context.Context, command string) ([]byte, error)
}

// Filter pipes input through an external process and returns its stdout.
type Filter interface {
	Filter(ctx context.Context, command string, input []byte) ([]byte, error)
}
