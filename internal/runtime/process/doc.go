// Package process provides a runtime implementation that launches tasks as
// local child processes.
//
// Children share the supervisor's standard streams and process group, so a
// terminal interrupt reaches them directly as well as through the supervisor.
// Termination is a polite request only: SIGTERM on Unix. Windows has no
// equivalent signal for console processes, so Terminate falls back to
// Process.Kill there. Grandchildren spawned by a task (for example the node
// process started by npm) are left to the task to clean up.
package process
