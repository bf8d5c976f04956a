// Package io reads and writes treemap datasets as JSON or YAML.
//
// # Format
//
// A dataset is a weighted tree of objects with a name, an optional value
// and optional children:
//
//	{
//	  "name": "2023",
//	  "children": [
//	    {"name": "Engineering", "children": [
//	      {"name": "Frontend", "value": 100},
//	      {"name": "Backend", "value": 90}
//	    ]},
//	    {"name": "Misc", "value": 10}
//	  ]
//	}
//
// A node with a children field, even an empty one, is a group. A node
// without one is a leaf and its value defaults to zero. The same shape is
// accepted as YAML.
//
// A top-level array holds several trees; [Dataset.Build] places them under
// a synthetic root that reserves no title band.
//
// # Import
//
// Use [ReadFile] to load a path by extension (.json, .yaml, .yml), or
// [ReadJSON] and [ReadYAML] to decode from any io.Reader:
//
//	ds, err := io.ReadFile("hours.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tree, err := ds.Build()
//
// Decoding failures carry the INVALID_FORMAT code; a missing file carries
// FILE_NOT_FOUND. Weight validation happens in [Dataset.Build] and carries
// INVALID_INPUT.
//
// # Export
//
// [WriteJSON], [WriteYAML] and [ExportFile] write a dataset back out, so a
// YAML file can be converted to JSON and re-read identically.
package io
