// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap lifecycle logging and converts
// non-zero exit codes into CommandFailedError values. OSCommandRunner is the
// os/exec backed runner used in production, while tests substitute recording
// runners to keep git and gh invocations observable.
package execshell
