// Package signature resolves the declared parameter names of a callable.
//
// Go's reflection exposes parameter types but not names, so names come from
// one of several providers:
//
//   - Registry: explicit registration, keyed by the function's code pointer
//     or by a declared name for targets that are not Go functions.
//   - Source: static analysis of the Go file that declares the function,
//     located through runtime.FuncForPC. Requires the source tree to be
//     present at run time (binaries built with -trimpath cannot use it).
//   - LoadCUE: declarations written in CUE, registered into a Registry.
//
// Chain combines providers, returning the first successful resolution.
// None of the providers invoke the callable.
package signature
