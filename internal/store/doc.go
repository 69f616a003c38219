// Package store holds the launch table the server is currently serving.
// Tables are immutable; a reload parses a fresh Table and swaps the pointer,
// so readers holding the previous Table are never affected.
package store
