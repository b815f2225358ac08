// Package file provides a directory-backed implementation of the durable
// key-value slot. Each key is one JSON document named <key>.json, replaced
// atomically by writing a temp file in the same directory and renaming it.
package file
