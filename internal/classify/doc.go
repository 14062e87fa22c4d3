// Package classify provides the content classification capability behind
// dynamic routing.
//
// A Classifier maps a bounded text preview to a folder label from a fixed
// allow-list. Implementations are selected at construction time: a cheap
// keyword matcher that never leaves the process, and an LLM-backed matcher
// for everything the keywords miss. Classifier failures are recoverable by
// design; the router maps them to the fallback folder.
package classify
