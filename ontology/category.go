package ontology

// Category is the closed set of term kinds a theory schema distinguishes.
type Category string

const (
	// CategoryEntity is a thing or concept that exists in the theory.
	CategoryEntity Category = "entity"

	// CategoryRelationship is a typed link between terms.
	CategoryRelationship Category = "relationship"

	// CategoryProperty is an attribute a term can carry.
	CategoryProperty Category = "property"

	// CategoryAction is a process or operation performed by or on terms.
	CategoryAction Category = "action"

	// CategoryMeasure is a quantified or quantifiable value.
	CategoryMeasure Category = "measure"

	// CategoryModifier qualifies another term (temporal, modal, degree).
	CategoryModifier Category = "modifier"

	// CategoryTruthValue is an explicit truth or certainty marker.
	CategoryTruthValue Category = "truth_value"

	// CategoryOperator is a logical or structural operator over terms.
	CategoryOperator Category = "operator"
)

// Categories lists all valid categories in declaration order.
var Categories = []Category{
	CategoryEntity,
	CategoryRelationship,
	CategoryProperty,
	CategoryAction,
	CategoryMeasure,
	CategoryModifier,
	CategoryTruthValue,
	CategoryOperator,
}

// IsValid checks whether the category belongs to the closed set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryEntity, CategoryRelationship, CategoryProperty, CategoryAction,
		CategoryMeasure, CategoryModifier, CategoryTruthValue, CategoryOperator:
		return true
	}
	return false
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a string to a Category, returning empty for
// values outside the closed set.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.IsValid() {
		return c
	}
	return ""
}

// RequiresDomainRange reports whether the category must declare both a
// non-empty domain and a non-empty range.
func (c Category) RequiresDomainRange() bool {
	return c == CategoryRelationship || c == CategoryAction
}

// Bucket is the structural bucket a term occupies in an assembled schema.
type Bucket string

const (
	// BucketEntities holds entity terms.
	BucketEntities Bucket = "entities"

	// BucketConnections holds relationship and action terms.
	BucketConnections Bucket = "connections"

	// BucketProperties holds property and measure terms.
	BucketProperties Bucket = "properties"

	// BucketModifiers holds modifier, truth value and operator terms.
	BucketModifiers Bucket = "modifiers"
)

// Bucket maps the category to its structural bucket.
func (c Category) Bucket() Bucket {
	switch c {
	case CategoryEntity:
		return BucketEntities
	case CategoryRelationship, CategoryAction:
		return BucketConnections
	case CategoryProperty, CategoryMeasure:
		return BucketProperties
	case CategoryModifier, CategoryTruthValue, CategoryOperator:
		return BucketModifiers
	}
	return ""
}
