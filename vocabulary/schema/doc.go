// Package schema provides vocabulary predicates for assembled knowledge
// schemas: the schema entity itself, its term definitions, the
// classification record and the balance report.
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/schemaworks/theoria/vocabulary/schema"
package schema
