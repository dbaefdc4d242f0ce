package assemble

import (
	"github.com/schemaworks/theoria/balance"
	"github.com/schemaworks/theoria/merge"
	"github.com/schemaworks/theoria/ontology"
)

// Options configure one assembly run. Options are part of the cache key:
// equal bundles, universal sets and options produce byte-identical results.
type Options struct {
	// MergePolicy resolves incompatible universal/theory collisions.
	MergePolicy merge.Policy `json:"merge_policy" yaml:"merge_policy"`

	// OpenPrimitives is the allowlist of primitive type names a domain or
	// range entry may reference without a term definition. nil selects the
	// default list; an empty non-nil slice forbids primitives entirely.
	OpenPrimitives []string `json:"open_primitives" yaml:"open_primitives"`

	// Balance holds the balance-verdict thresholds.
	Balance balance.Thresholds `json:"balance" yaml:"balance"`
}

// DefaultOptions returns the standard assembly configuration.
func DefaultOptions() Options {
	return Options{
		MergePolicy:    merge.DefaultPolicy,
		OpenPrimitives: ontology.DefaultOpenPrimitives(),
		Balance:        balance.DefaultThresholds(),
	}
}

// withDefaults fills unset fields so a zero Options still assembles.
func (o Options) withDefaults() Options {
	if o.MergePolicy == "" {
		o.MergePolicy = merge.DefaultPolicy
	}
	if o.OpenPrimitives == nil {
		o.OpenPrimitives = ontology.DefaultOpenPrimitives()
	}
	if o.Balance == (balance.Thresholds{}) {
		o.Balance = balance.DefaultThresholds()
	}
	return o
}
