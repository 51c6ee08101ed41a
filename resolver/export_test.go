package resolver

var ResolveSyncWithin = resolveSync
