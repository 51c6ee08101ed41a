// Package parallel runs independent tasks concurrently and collects every
// outcome by position.
//
// Selection happens after all tasks settle rather than on the first to
// finish, so the chosen result depends only on task order and outcomes.
package parallel
