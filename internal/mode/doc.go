// Package mode lists the resolution modes shared by the command line and the
// MCP server. Each mode wraps one resolver method and carries the message
// printed when it finds nothing.
package mode
