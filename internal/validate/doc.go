// Package validate checks user-supplied network parameters before they reach
// a socket.
package validate
