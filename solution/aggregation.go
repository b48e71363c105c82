package solution

// AggFunc names a groupby aggregation function.
type AggFunc string

const (
	AggMean    AggFunc = "mean"
	AggVar     AggFunc = "var"
	AggNUnique AggFunc = "nunique"
	AggCount   AggFunc = "count"
)

// Aggregation computes Agg over Select within groups of Groupby.
type Aggregation struct {
	Groupby []string `json:"groupby"`
	Select  string   `json:"select"`
	Agg     AggFunc  `json:"agg"`
}

// Aggregations returns the groupby aggregations in generation order.
// Downstream naming depends on the order.
func Aggregations() []Aggregation {
	return []Aggregation{
		{Groupby: []string{"user_id"}, Select: "price", Agg: AggMean},
		{Groupby: []string{"user_id"}, Select: "price", Agg: AggVar},
		{Groupby: []string{"user_id"}, Select: "parent_category_name", Agg: AggNUnique},
		{Groupby: []string{"parent_category_name"}, Select: "price", Agg: AggMean},
		{Groupby: []string{"parent_category_name"}, Select: "price", Agg: AggVar},
		{Groupby: []string{"parent_category_name", "category_name"}, Select: "price", Agg: AggMean},
		{Groupby: []string{"parent_category_name", "category_name"}, Select: "price", Agg: AggVar},
		{Groupby: []string{"region"}, Select: "parent_category_name", Agg: AggCount},
		{Groupby: []string{"city"}, Select: "parent_category_name", Agg: AggCount},
	}
}
