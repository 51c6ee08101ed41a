// Package assignment defines the IPv4 interface assignment value types and the
// rule that matches a discovered address against ranked candidates.
package assignment
