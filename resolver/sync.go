package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/R167/lannet/assignment"
)

// SyncTimeout bounds the child process started by ResolveSync.
const SyncTimeout = 500 * time.Millisecond

// DefaultModeArg is the flag that makes the lannet binary run Resolve and
// print the result as JSON.
const DefaultModeArg = "--default"

// ChildEnv marks a process started by ResolveSync. Such a process resolves,
// prints the result as JSON and exits before the importing program's main
// runs.
const ChildEnv = "LANNET_RESOLVE_CHILD"

func init() {
	if os.Getenv(ChildEnv) != "1" {
		return
	}
	os.Exit(runChild(os.Stdout))
}

func runChild(w io.Writer) int {
	data, err := json.MarshalIndent(New().Resolve(context.Background()), "", "  ")
	if err != nil {
		return 1
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return 1
	}
	return 0
}

// ResolveSync runs Resolve in a fresh copy of the current executable and
// returns its result. The copy is diverted into the resolution at start-up,
// so this works from any program that imports this package. Any failure
// yields assignment.Default.
func ResolveSync(ctx context.Context) assignment.GatewayAssignment {
	return resolveSync(ctx, SyncTimeout)
}

func resolveSync(ctx context.Context, timeout time.Duration) assignment.GatewayAssignment {
	self, err := os.Executable()
	if err != nil {
		return assignment.Default()
	}
	return runSubprocess(ctx, timeout, []string{ChildEnv + "=1"}, self)
}

// RunSubprocess runs name with args and parses the JSON assignment it prints
// to stdout. A spawn error, non-zero exit, timeout, or output that is not a
// JSON object carrying an address yields assignment.Default.
func RunSubprocess(ctx context.Context, timeout time.Duration, name string, args ...string) assignment.GatewayAssignment {
	return runSubprocess(ctx, timeout, nil, name, args...)
}

func runSubprocess(ctx context.Context, timeout time.Duration, env []string, name string, args ...string) assignment.GatewayAssignment {
	if timeout <= 0 {
		timeout = SyncTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	stdout, err := cmd.Output()
	if err != nil {
		return assignment.Default()
	}
	return decodeAssignment(stdout)
}

func decodeAssignment(data []byte) assignment.GatewayAssignment {
	data = bytes.TrimSpace(data)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return assignment.Default()
	}
	if _, ok := fields["address"]; !ok {
		return assignment.Default()
	}

	var result assignment.GatewayAssignment
	if err := json.Unmarshal(data, &result); err != nil {
		return assignment.Default()
	}
	return result
}
