// Package exitcodes defines the standard exit codes used by resultproc.
package exitcodes

// Exit code constants used by resultproc
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): Used when all tests pass or --nostatusrc is given
// * 1..MaxFailures: Number of failed tests, capped so failure counts never
//   collide with the reserved error codes
// * RuntimeErr (252): Used for configuration errors, missing artifacts and
//   other fatal processing failures
const (
	Success     = 0   // All tests pass
	MaxFailures = 250 // Cap for the failed-test exit status
	RuntimeErr  = 252 // Fatal processing errors
)
