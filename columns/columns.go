// Package columns holds the listing dataset's column taxonomy: which
// columns are features, how each feature is treated (categorical,
// numerical, text, image, timestamp), which columns are targets or keys,
// and the storage types used when reading the raw tables.
//
// Every accessor returns a fresh slice or map so callers cannot alter the
// shared taxonomy.
package columns

// DevSampleSize is the number of rows read when running on a development
// sample of the dataset.
const DevSampleSize = 1000

// Column names referenced outside plain role lists.
const (
	ItemID          = "item_id"
	UserID          = "user_id"
	Image           = "image"
	ImageTop1       = "image_top_1"
	Price           = "price"
	ActivationDate  = "activation_date"
	DealProbability = "deal_probability"
)

var (
	features = []string{
		UserID,
		"region", "city",
		"parent_category_name", "category_name",
		"param_1", "param_2", "param_3",
		"title", "description",
		Price,
		"item_seq_number",
		ActivationDate,
		"user_type",
		Image,
		ImageTop1,
	}
	// image_top_1 is listed as categorical but stored as float64; both are
	// kept as in the source data definition.
	categorical = []string{
		UserID,
		"region", "city",
		"parent_category_name", "category_name",
		"param_1", "param_2", "param_3",
		"item_seq_number", "user_type", ImageTop1,
	}
	numerical    = []string{Price}
	text         = []string{"title", "description"}
	image        = []string{Image}
	targets      = []string{DealProbability}
	imageTargets = []string{"parent_category_name", "category_name"}
	cv           = []string{UserID}
	timestamps   = []string{ActivationDate}
	itemIDs      = []string{ItemID}
	userIDs      = []string{UserID}
)

// Features returns every column fed to the feature extraction steps.
func Features() []string { return clone(features) }

// Categorical returns the columns label-encoded as categories.
func Categorical() []string { return clone(categorical) }

// Numerical returns the continuous columns.
func Numerical() []string { return clone(numerical) }

// Text returns the free-text columns.
func Text() []string { return clone(text) }

// Images returns the columns holding image identifiers.
func Images() []string { return clone(image) }

// Targets returns the regression target columns.
func Targets() []string { return clone(targets) }

// ImageTargets returns the columns the image classifier is trained to
// predict.
func ImageTargets() []string { return clone(imageTargets) }

// CV returns the grouping key for cross-validation splits.
func CV() []string { return clone(cv) }

// Timestamps returns the date columns.
func Timestamps() []string { return clone(timestamps) }

// ItemIDs returns the listing identifier column.
func ItemIDs() []string { return clone(itemIDs) }

// UserIDs returns the seller identifier column.
func UserIDs() []string { return clone(userIDs) }

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
