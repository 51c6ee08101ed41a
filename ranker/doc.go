// Package ranker enumerates the host's IPv4 interface assignments and orders
// them by how likely each is to be the LAN-facing interface.
//
// Candidates are sorted external before internal, then by subnet priority
// (192. > 172. > 10. > 100. > 127. > anything else), then by descending raw
// address value. The order is total, so identical snapshots always rank
// identically regardless of enumeration order.
//
// The operating system is reached through the Source interface; SystemSource
// is the default implementation backed by gopsutil.
package ranker
