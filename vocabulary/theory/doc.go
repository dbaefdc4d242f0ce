// Package theory provides vocabulary predicates for staged theory entities.
//
// A staged theory is the upstream analysis output: the vocabulary list,
// classified terms and schema blueprint extracted from one theoretical
// text, bundled and ready for assembly.
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/schemaworks/theoria/vocabulary/theory"
package theory
