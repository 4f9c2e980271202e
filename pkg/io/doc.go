// Package io reads and writes automaton definitions.
//
// # Overview
//
// A definition describes a [fa.Machine] in JSON, YAML or TOML. All three
// encodings share one schema: the document is decoded into a generic map
// and mapped onto [Definition] with mapstructure, so a field means the same
// thing whichever encoding carries it.
//
// # Schema
//
//	{
//	  "name": "even-zeros",
//	  "states": ["even", "odd"],
//	  "alphabet": ["0", "1"],
//	  "initial": "even",
//	  "accepting": ["even"],
//	  "transitions": [
//	    {"from": "even", "to": "odd", "symbol": "0"},
//	    {"from": "even", "to": "even", "symbol": "1"},
//	    {"from": "odd", "to": "even", "symbol": "0"},
//	    {"from": "odd", "to": "odd", "symbol": "1"}
//	  ]
//	}
//
// The alphabet is optional and derived from the transitions when omitted.
// A transition without a symbol is an epsilon transition.
//
// # State Identifiers
//
// States produced by product or subset constructions are composites:
//
//	"q0"                      atom
//	3                         atom (integral numbers are int64)
//	["q0", "p1"]              tuple, drawn as (q0, p1)
//	{"list": ["q0", "q1"]}    list, drawn as [q0, q1]
//	{"set": ["q0", "q1"]}     set, drawn as {q0, q1}
//	{"set": []}               empty set, drawn as ∅
//
// Composites nest. See [ParseID] and [EncodeID].
//
// # Import and Export
//
// [Import] and [Export] pick the encoding from the file extension; [Read]
// and [Write] work on streams:
//
//	m, err := io.ImportMachine("even-zeros.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = io.Export(io.FromMachine(m, "even-zeros"), "even-zeros.json")
//
// Decoding errors carry the INVALID_DEFINITION code; a missing file is
// FILE_NOT_FOUND.
package io
