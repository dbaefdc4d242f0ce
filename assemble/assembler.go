// Package assemble orchestrates the assembly pipeline: staged artifacts
// are consolidated, validated against the structural invariants, merged
// with the universal definition set, classified, and, for multi-purpose
// theories, balance-scored. The same inputs always produce byte-identical
// output.
package assemble

import (
	"github.com/schemaworks/theoria/balance"
	"github.com/schemaworks/theoria/classify"
	"github.com/schemaworks/theoria/merge"
	"github.com/schemaworks/theoria/ontology"
	"github.com/schemaworks/theoria/staging"
	"github.com/schemaworks/theoria/universal"
	"github.com/schemaworks/theoria/validate"
)

// Status tells whether assembly produced a schema.
type Status string

const (
	// StatusOk marks a successful assembly with a complete schema.
	StatusOk Status = "ok"

	// StatusRejected marks an assembly stopped by fatal diagnostics. A
	// rejected result carries no schema, never a partial one.
	StatusRejected Status = "rejected"
)

// Result is the outcome of assembling one theory.
type Result struct {
	TheoryID    string                `json:"theory_id"`
	Status      Status                `json:"status"`
	Schema      *AssembledSchema      `json:"schema,omitempty"`
	Diagnostics []ontology.Diagnostic `json:"diagnostics,omitempty"`
}

// Ok reports whether assembly produced a schema.
func (r Result) Ok() bool {
	return r.Status == StatusOk
}

// Assembler runs the pipeline against one universal set and one
// configuration. Assembly is a pure computation over its inputs, so a
// single assembler is safe for concurrent use.
type Assembler struct {
	universal  universal.Set
	opts       Options
	dispatcher *classify.Dispatcher
}

// New creates an assembler. A nil set selects the default universal set;
// zero option fields fall back to their defaults.
func New(set *universal.Set, opts Options) *Assembler {
	if set == nil {
		set = universal.DefaultSet()
	}
	return &Assembler{
		universal:  *set,
		opts:       opts.withDefaults(),
		dispatcher: classify.NewDispatcher(nil),
	}
}

// InputHash returns the cache key an Assemble call for this bundle would
// produce. The assembler's normalized options go into the digest, so the
// key matches the InputHash on the assembled schema.
func (a *Assembler) InputHash(bundle staging.TheoryBundle) string {
	return InputHash(bundle, a.universal, a.opts)
}

// Assemble turns one staged bundle into an assembled schema or a rejection.
// Fatal diagnostics from validation or merge stop the pipeline; warnings
// ride along on a successful result.
func (a *Assembler) Assemble(bundle staging.TheoryBundle) Result {
	hash := InputHash(bundle, a.universal, a.opts)

	resolved := staging.Resolve(bundle)
	decisions := append([]ontology.Decision(nil), resolved.Decisions...)
	var diags []ontology.Diagnostic

	reg := ontology.NewRegistry(a.opts.OpenPrimitives)
	for _, t := range resolved.Terms {
		if _, err := reg.Register(t); err != nil {
			diags = append(diags, ontology.NewDiagnostic(ontology.CodeDuplicateConflict, err.Error(), t.Label()))
		}
	}
	// Universal terms join the registry for reference resolution only. A
	// key collision with a theory term is merge business, not a duplicate.
	for _, t := range a.universal.Terms {
		if reg.Has(t.Key()) {
			continue
		}
		if _, err := reg.Register(t); err != nil {
			diags = append(diags, ontology.NewDiagnostic(ontology.CodeDuplicateConflict, err.Error(), t.Label()))
		}
	}

	vres := validate.New(reg).Validate(resolved.Terms)
	diags = append(diags, vres.Diagnostics...)
	if ontology.HasFatal(diags) {
		return rejected(bundle.TheoryID, diags)
	}

	mres := merge.NewEngine(a.opts.MergePolicy).Merge(a.universal.Terms, resolved.Terms)
	decisions = append(decisions, mres.Decisions...)
	diags = append(diags, mres.Diagnostics...)
	if ontology.HasFatal(diags) {
		return rejected(bundle.TheoryID, diags)
	}

	if d := merge.CheckCompleteness(resolved.VocabularyTerms, mres.Terms, decisions); d != nil {
		diags = append(diags, *d)
	}

	record, cdiags := a.dispatcher.Dispatch(classify.ExtractSignals(mres.Terms, mres.Decisions, resolved.Stages))
	diags = append(diags, cdiags...)

	// Balance needs at least two declared purposes to say anything.
	var report *balance.Report
	if len(resolved.Purposes) > 1 {
		rep, bdiags := balance.Score(resolved.Purposes, a.opts.Balance)
		report = &rep
		diags = append(diags, bdiags...)
	}

	ontology.SortDecisions(decisions)

	schema := &AssembledSchema{
		TheoryID:         bundle.TheoryID,
		Title:            bundle.Title(),
		UniversalVersion: a.universal.Version,
		Classification:   record,
		Balance:          report,
		Provenance:       decisions,
		Diagnostics:      diags,
		InputHash:        hash,
	}
	schema.bucket(mres.Terms)

	return Result{
		TheoryID:    bundle.TheoryID,
		Status:      StatusOk,
		Schema:      schema,
		Diagnostics: diags,
	}
}

func rejected(theoryID string, diags []ontology.Diagnostic) Result {
	return Result{
		TheoryID:    theoryID,
		Status:      StatusRejected,
		Diagnostics: diags,
	}
}
