package export_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/schemaworks/theoria/assemble"
	"github.com/schemaworks/theoria/export"
	"github.com/schemaworks/theoria/staging"
)

// assembledSchema runs a small theory through assembly so export tests work
// on a real schema rather than a hand-built one.
func assembledSchema(t *testing.T) *assemble.AssembledSchema {
	t.Helper()

	bundle := staging.TheoryBundle{
		TheoryID: "social-influence",
		Purposes: map[string][]string{
			"descriptive": {"Actor"},
			"causal":      {"influences"},
		},
		Vocabulary: []staging.VocabularyEntry{
			{Term: "Actor", Definition: "A person or organization"},
			{Term: "influences", Definition: "Directed social influence"},
		},
		Classified: []staging.ClassifiedTerm{
			{Term: "Actor", Category: "entity"},
			{Term: "influences", Category: "relationship", Domain: []string{"Actor"}, Range: []string{"Actor"}},
		},
	}

	res := assemble.New(nil, assemble.DefaultOptions()).Assemble(bundle)
	if !res.Ok() {
		t.Fatalf("fixture assembly rejected: %+v", res.Diagnostics)
	}
	return res.Schema
}

func TestNewSchemaExporter(t *testing.T) {
	profiles := []export.Profile{
		export.ProfileMinimal,
		export.ProfileBFO,
		export.ProfileCCO,
	}

	for _, profile := range profiles {
		t.Run(string(profile), func(t *testing.T) {
			exporter := export.NewSchemaExporter(profile)
			if exporter == nil {
				t.Fatal("NewSchemaExporter returned nil")
			}
		})
	}
}

func TestExportTurtle(t *testing.T) {
	schema := assembledSchema(t)
	exporter := export.NewSchemaExporter(export.ProfileMinimal)

	output, err := exporter.Export(schema, export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if !strings.Contains(output, "@prefix") {
		t.Error("Turtle output should contain prefix declarations")
	}
	if !strings.Contains(output, "<https://theoria.dev/entity/schema/social-influence>") {
		t.Error("Turtle output should contain the schema entity IRI")
	}
	if !strings.Contains(output, "\"A person or organization\"") {
		t.Error("Turtle output should contain the term description")
	}
	if !strings.Contains(output, schema.InputHash) {
		t.Error("Turtle output should contain the input hash")
	}
}

func TestExportTurtleTermLinks(t *testing.T) {
	schema := assembledSchema(t)
	exporter := export.NewSchemaExporter(export.ProfileMinimal)

	output, err := exporter.Export(schema, export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// The domain of influences resolves to the Actor term entity
	if !strings.Contains(output, "<https://theoria.dev/entity/term/social-influence/actor>") {
		t.Error("Turtle output should link domains to term entity IRIs")
	}

	// Universal Object carries subTypeOf Entity, exported as a broader link
	if !strings.Contains(output, "<http://www.w3.org/2004/02/skos/core#broader> <https://theoria.dev/entity/term/social-influence/entity>") {
		t.Error("Turtle output should link subTypeOf to the parent term entity")
	}

	// The range of the universal name property is the open primitive
	// "string", which stays a literal
	if strings.Contains(output, "term/social-influence/string") {
		t.Error("open primitives must not become term entity IRIs")
	}
}

func TestExportTurtleBalance(t *testing.T) {
	schema := assembledSchema(t)
	if schema.Balance == nil {
		t.Fatal("fixture should carry a balance report")
	}

	exporter := export.NewSchemaExporter(export.ProfileMinimal)
	output, err := exporter.Export(schema, export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if !strings.Contains(output, "xsd:decimal") {
		t.Error("Turtle output should type the balance ratio as xsd:decimal")
	}
}

func TestExportNTriples(t *testing.T) {
	schema := assembledSchema(t)
	exporter := export.NewSchemaExporter(export.ProfileMinimal)

	output, err := exporter.Export(schema, export.FormatNTriples)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 {
		t.Fatal("N-Triples output should have at least one line")
	}

	// Each line should end with " ."
	for _, line := range lines {
		if !strings.HasSuffix(line, " .") {
			t.Errorf("N-Triple line should end with ' .': %s", line)
		}
	}

	if !strings.Contains(output, "<http://www.w3.org/1999/02/22-rdf-syntax-ns#type>") {
		t.Error("N-Triples output should contain type assertions")
	}
}

func TestExportJSONLD(t *testing.T) {
	schema := assembledSchema(t)
	exporter := export.NewSchemaExporter(export.ProfileMinimal)

	output, err := exporter.Export(schema, export.FormatJSONLD)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("JSON-LD output is not valid JSON: %v", err)
	}

	if _, ok := doc["@context"]; !ok {
		t.Error("JSON-LD output should contain @context")
	}

	graph, ok := doc["@graph"].([]any)
	if !ok || len(graph) == 0 {
		t.Fatal("JSON-LD output should contain a non-empty @graph")
	}

	// The schema entity comes first
	first, ok := graph[0].(map[string]any)
	if !ok {
		t.Fatal("graph nodes should be objects")
	}
	if first["@id"] != "https://theoria.dev/entity/schema/social-influence" {
		t.Errorf("unexpected first node id: %v", first["@id"])
	}
	if _, ok := first["@type"]; !ok {
		t.Error("graph nodes should carry @type")
	}
}

func TestExportProfileMinimal(t *testing.T) {
	schema := assembledSchema(t)
	exporter := export.NewSchemaExporter(export.ProfileMinimal)

	output, err := exporter.Export(schema, export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// Minimal profile should include PROV-O type
	if !strings.Contains(output, "prov#Entity") {
		t.Error("Minimal profile should include prov:Entity type")
	}

	// Minimal profile should NOT include BFO type
	if strings.Contains(output, "BFO_0000031") {
		t.Error("Minimal profile should not include BFO types")
	}
}

func TestExportProfileBFO(t *testing.T) {
	schema := assembledSchema(t)
	exporter := export.NewSchemaExporter(export.ProfileBFO)

	output, err := exporter.Export(schema, export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// BFO profile should include BFO:GenericallyDependentContinuant
	if !strings.Contains(output, "BFO_0000031") {
		t.Error("BFO profile should include BFO types")
	}
}

func TestExportProfileCCO(t *testing.T) {
	schema := assembledSchema(t)
	exporter := export.NewSchemaExporter(export.ProfileCCO)

	output, err := exporter.Export(schema, export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// CCO profile should include CCO type
	if !strings.Contains(output, "InformationContentEntity") {
		t.Error("CCO profile should include CCO types")
	}

	// CCO profile should also include BFO type
	if !strings.Contains(output, "BFO_0000031") {
		t.Error("CCO profile should also include BFO types")
	}
}

func TestExportDeterministic(t *testing.T) {
	schema := assembledSchema(t)

	formats := []export.Format{
		export.FormatTurtle,
		export.FormatNTriples,
		export.FormatJSONLD,
	}

	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			first, err := export.NewSchemaExporter(export.ProfileCCO).Export(schema, format)
			if err != nil {
				t.Fatalf("first export failed: %v", err)
			}
			second, err := export.NewSchemaExporter(export.ProfileCCO).Export(schema, format)
			if err != nil {
				t.Fatalf("second export failed: %v", err)
			}
			if first != second {
				t.Error("equal schemas should serialize identically")
			}
		})
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	schema := assembledSchema(t)
	exporter := export.NewSchemaExporter(export.ProfileMinimal)

	if _, err := exporter.Export(schema, "unknown"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestExportNilSchema(t *testing.T) {
	exporter := export.NewSchemaExporter(export.ProfileMinimal)

	if _, err := exporter.Export(nil, export.FormatTurtle); err == nil {
		t.Error("Expected error for nil schema")
	}
}

func TestGetFormatInfo(t *testing.T) {
	tests := []struct {
		format        export.Format
		wantMIME      string
		wantExtension string
	}{
		{export.FormatTurtle, "text/turtle", ".ttl"},
		{export.FormatNTriples, "application/n-triples", ".nt"},
		{export.FormatJSONLD, "application/ld+json", ".jsonld"},
	}

	for _, tc := range tests {
		t.Run(string(tc.format), func(t *testing.T) {
			info, ok := export.GetFormatInfo(tc.format)
			if !ok {
				t.Fatalf("format %s not registered", tc.format)
			}
			if info.MIMEType != tc.wantMIME {
				t.Errorf("MIMEType = %q, want %q", info.MIMEType, tc.wantMIME)
			}
			if info.Extension != tc.wantExtension {
				t.Errorf("Extension = %q, want %q", info.Extension, tc.wantExtension)
			}
		})
	}

	if _, ok := export.GetFormatInfo("rdfxml"); ok {
		t.Error("unregistered format should not resolve")
	}
}

func TestTurtleWriterObjectTypes(t *testing.T) {
	w := export.NewTurtleWriter()
	w.WritePrefixes()
	w.WriteSubject("https://theoria.dev/entity/schema/demo")
	w.WriteType("http://www.w3.org/ns/prov#Entity", false)
	w.WritePredicate("https://theoria.dev/ontology/entityCount", 8, false)
	w.WritePredicate("https://theoria.dev/ontology/balanceRatio", 0.5, false)
	w.WritePredicate("https://theoria.dev/ontology/isBalanced", true, false)
	w.WritePredicate("http://www.w3.org/2004/02/skos/core#prefLabel", "Demo", false)
	w.WritePredicate("https://theoria.dev/ontology/assembledFrom", export.Ref("https://theoria.dev/entity/theory/demo"), true)

	output := w.String()

	if !strings.Contains(output, "@prefix") {
		t.Error("output should contain prefix declarations")
	}
	if !strings.Contains(output, `"8"^^xsd:integer`) {
		t.Error("integers should be typed xsd:integer")
	}
	if !strings.Contains(output, "xsd:decimal") {
		t.Error("floats should be typed xsd:decimal")
	}
	if !strings.Contains(output, `"true"^^xsd:boolean`) {
		t.Error("booleans should be typed xsd:boolean")
	}
	if !strings.Contains(output, `"Demo"`) {
		t.Error("strings should be quoted literals")
	}
	if !strings.Contains(output, "<https://theoria.dev/entity/theory/demo> .") {
		t.Error("refs should be IRI references and close the block")
	}
}

func TestTurtleWriterEscaping(t *testing.T) {
	w := export.NewTurtleWriter()
	w.WriteSubject("https://theoria.dev/entity/term/demo/x")
	w.WritePredicate("http://purl.org/dc/terms/description", "line one\nsays \"two\"", true)

	output := w.String()

	if !strings.Contains(output, `\n`) {
		t.Error("newlines should be escaped")
	}
	if !strings.Contains(output, `\"two\"`) {
		t.Error("quotes should be escaped")
	}
}

func TestNTriplesWriter(t *testing.T) {
	w := export.NewNTriplesWriter()
	w.WriteTypeTriple("https://theoria.dev/entity/schema/demo", "http://www.w3.org/ns/prov#Entity")
	w.WriteTriple("https://theoria.dev/entity/schema/demo", "https://theoria.dev/ontology/entityCount", 8)

	output := w.String()

	if !strings.Contains(output, "<http://www.w3.org/1999/02/22-rdf-syntax-ns#type>") {
		t.Error("type triples should use the full rdf:type IRI")
	}
	if !strings.Contains(output, `"8"^^<http://www.w3.org/2001/XMLSchema#integer>`) {
		t.Error("integers should carry the full XSD datatype IRI")
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if !strings.HasSuffix(line, " .") {
			t.Errorf("line should end with ' .': %s", line)
		}
	}
}

func TestJSONLDWriter(t *testing.T) {
	w := export.NewJSONLDWriter()
	w.SetContext(map[string]string{"theoria": "https://theoria.dev/ontology/"})
	w.AddNode(
		"https://theoria.dev/entity/schema/demo",
		[]string{"http://www.w3.org/ns/prov#Entity"},
		map[string]any{
			"http://www.w3.org/2004/02/skos/core#prefLabel": "Demo",
			"https://theoria.dev/ontology/assembledFrom": map[string]any{
				"@id": "https://theoria.dev/entity/theory/demo",
			},
		},
	)

	output := w.String()

	var doc map[string]any
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := doc["@context"]; !ok {
		t.Error("output should contain @context")
	}
	if !strings.Contains(output, `"@id": "https://theoria.dev/entity/theory/demo"`) {
		t.Error("reference values should serialize as @id objects")
	}
}
