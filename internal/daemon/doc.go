// Package daemon coordinates the long-running sift process.
//
// It wires the filesystem watcher and the event dispatcher into a single
// lifecycle with flock-based locking to prevent multiple instances from
// fighting over the same inbox. Keep orchestration logic here: routing,
// probing, and moving live in their respective packages while the daemon
// focuses on startup, shutdown, and the event pump.
package daemon
