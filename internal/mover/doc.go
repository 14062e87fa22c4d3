// Package mover relocates files into destination folders without ever
// overwriting an existing file.
//
// Name collisions resolve with a deterministic " (1)", " (2)", ... suffix
// probe so behavior is reproducible. Moves prefer a rename and fall back to a
// verified copy plus delete when the destination is on another volume; a
// failed copy removes the partial destination and leaves the source intact.
package mover
