// Package hierarchy converts a raw weighted tree into the arena-backed node
// graph used by layout, scene building and interaction.
//
// # Overview
//
// Input is an arbitrary-depth tree of [RawNode] values, typically decoded
// from JSON or YAML:
//
//	{"name": "2023", "children": [
//	    {"name": "Q1", "children": [{"name": "Frontend", "value": 100}]}
//	]}
//
// A node whose children field is present (even as an empty list) is a group;
// otherwise it is a leaf carrying an optional non-negative value.
//
// [Build] computes aggregate values bottom-up, depths top-down, and sorts each
// group's children by descending aggregate value. The sort is stable, so
// equal values keep their input order.
//
// # Arena Storage
//
// Nodes live in a single slice inside [Tree] and refer to each other by
// [NodeID]. IDs are assigned in pre-order after sorting, so:
//
//   - the root is always ID 0
//   - a parent's ID is smaller than its descendants' IDs
//   - every subtree occupies a contiguous ID range ([Tree.Subtree])
//
// Walking IDs in ascending order is therefore a valid back-to-front draw
// order.
//
// # Weight Policy
//
// A group that also carries a value is ambiguous. By default the value is
// ignored and the aggregate is derived from the children
// ([ValuePolicyDerive]); [WithValuePolicy]([ValuePolicyReject]) turns the
// ambiguity into an INVALID_INPUT error instead.
//
// # Errors
//
// Build fails with INVALID_INPUT (see package errors) when a leaf weight is
// negative or not finite, when the same RawNode is reachable twice (a cycle
// or a shared subtree), or when the reject policy sees an ambiguous group.
// Nothing is returned on failure.
package hierarchy
