// Package annotate lets independent projects attach metadata to the
// parameters and return value of the same callable without colliding.
//
// Each project owns a Namespace bound to its identifier. The namespace
// manufactures decorators; a decorator applied to a Target writes into the
// target's metadata store under that identifier only:
//
//	ns := annotate.MustParseNamespace("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
//
//	render := annotate.MustWrap(renderPage, nil)
//	annotate.Decorate(render,
//		ns.Parameters(map[string]any{"path": "page to render", "w": "output"}),
//		ns.Return("bytes written"),
//	)
//
// Decoration is total. Names that are not declared parameters are ignored,
// a callable without parameters is a no-op target, and re-applying a
// decorator only rewrites the (namespace, slot, key) triples it owns.
//
// # Targets
//
// Two storage strategies are provided:
//
//   - Func wraps a function value together with its own store. The handle is
//     what gets decorated and passed around; Fn stays directly callable.
//   - Registry is a side table keyed by function identity, for code that
//     must keep plain function values. Entries are never evicted.
//
// Declared targets cover callables described only by a signature (see
// signature.LoadCUE).
//
// # Concurrency
//
// Decoration is meant to run once, during initialisation. Stores are not
// synchronised: decorate a callable from one goroutine, or hold a lock
// around every decoration of it. Registry synchronises its own index only.
package annotate
