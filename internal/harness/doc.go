// Package harness runs annotation scenarios: YAML files that declare a
// target signature, a set of namespaces, and the decorators each namespace
// applies, then assert on the resulting metadata.
//
// # Scenario Format
//
//	name: shared_render
//	description: "Two projects annotate the same callable"
//	specs:
//	  - specs/render.cue
//	target: render
//	namespaces:
//	  - alias: alpha
//	    id: "11111111-1111-4111-8111-111111111111"
//	  - alias: beta
//	    parameter_policy: append
//	steps:
//	  - namespace: alpha
//	    params: { a: "first", b: "second" }
//	  - namespace: beta
//	    return: "result docs"
//	assertions:
//	  - type: slot_equals
//	    slot: a
//	    namespace: alpha
//	    value: "first"
//	  - type: slot_count
//	    slot: a
//	    count: 1
//
// Spec paths are resolved relative to the scenario file. Namespaces without
// an id receive sequential identifiers (…0001, …0002) in declaration order.
//
// # Assertion Types
//
//   - slot_equals: the namespace's entry under slot has key (default "doc") equal to value
//   - slot_absent: the slot is missing, or the namespace has no entry under it
//   - namespace_isolated: replaying only that namespace's steps yields the same entries
//   - slot_count: exactly count namespaces have an entry under slot
//
// # Deterministic Output
//
// Step sequence numbers come from testutil.Sequence and generated
// identifiers from testutil.SequentialGenerator, so a scenario always
// produces the same snapshot for golden comparison.
package harness
