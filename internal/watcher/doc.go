// Package watcher supplies the raw filesystem event stream for the pipeline.
//
// It wraps fsnotify, registering the watch root (and its subdirectories when
// recursion is enabled) and normalizing fsnotify ops into pipeline event
// kinds. Filtering and debouncing are deliberately not done here; those are
// the dispatcher's responsibility.
package watcher
