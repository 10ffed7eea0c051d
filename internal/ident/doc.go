// Package ident provides the namespace identifiers used to partition
// metadata stores between independent projects.
//
// An identifier is an opaque 128-bit value. It is only ever compared and used
// as a map key; nothing interprets its bits. Projects generate one identifier
// once (see the new-id command) and keep it alongside their code.
//
// This package imports nothing internal. Every other package that deals with
// namespaces builds on it.
package ident
