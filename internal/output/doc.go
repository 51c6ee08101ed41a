// Package output provides the human-facing output sinks used while resolving
// the gateway.
//
//   - StreamingOutput: writes each line to an io.Writer as it happens
//   - BufferedOutput: collects lines in memory, e.g. to attach a trace to an
//     MCP tool report
//   - NoOpOutput: discards everything; the default for library callers
//
// Usage Example:
//
//	out := output.NewStreamingOutput(os.Stderr)
//	out.Section("🔍", "Probing default route...")
//	out.Debug("Probe: kernel selected local address %s", addr)
//
// Debug lines are only recorded after SetDebug(true), or on a BufferedOutput
// created WithDebug(true). All implementations are
// safe for concurrent use; the DHCP discoverer writes to one Output from
// several goroutines.
package output
