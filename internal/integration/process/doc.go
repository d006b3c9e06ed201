// Package process runs external commands over selection contents.
//
// # Supervisor
//
// The Supervisor starts child processes with piped stdin and stdout and
// tracks them until they are reaped, so an abandoned invocation can kill
// whatever it spawned:
//
//	supervisor := process.NewSupervisor()
//	defer supervisor.Shutdown(time.Second)
//
// # Runner
//
// Runner implements the pipe contract: records are written to the child's
// stdin, each followed by a null byte, and the child's stdout is split on
// null bytes. Writing happens on a background goroutine while the caller
// drains stdout; both are joined before RunExternal returns.
//
//	runner := process.NewRunner(supervisor, process.WithTimeout(5*time.Second))
//	out, err := runner.RunExternal(ctx, "sort", []string{"-z"}, records)
//
// # Thread Safety
//
// Supervisor is safe for concurrent use. A Process is owned by the goroutine
// that started it.
package process
