package solution_test

import (
	"maps"
	"testing"

	"github.com/tailored-agentic-units/dealpipe/params"
	"github.com/tailored-agentic-units/dealpipe/solution"
)

// experimentParams mirrors an experiment file: some values already typed,
// others string-encoded the way the environment delivers them.
func experimentParams() map[string]any {
	return map[string]any{
		"experiment_dir":               "/tmp/exp",
		"lgbm_random_search_runs":      "0",
		"target_size":                  "[224,224]",
		"batch_size_train":             32,
		"batch_size_inference":         64,
		"num_classes":                  "47",
		"lr":                           0.0001,
		"epochs":                       10,
		"num_workers":                  4,
		"lr_gamma":                     0.9,
		"patience":                     5,
		"target_encoder__n_splits":     "10",
		"verbose":                      "1",
		"lgbm__boosting_type":          "gbdt",
		"lgbm__objective":              "rmse",
		"lgbm__metric":                 "'rmse'",
		"lgbm__learning_rate":          "0.02",
		"lgbm__max_depth":              "-1",
		"lgbm__subsample":              "0.8",
		"lgbm__colsample_bytree":       "0.6",
		"lgbm__min_child_weight":       "1",
		"lgbm__reg_lambda":             "0.0",
		"lgbm__reg_alpha":              "0.0",
		"lgbm__subsample_freq":         "1",
		"lgbm__max_bin":                "255",
		"lgbm__min_child_samples":      "20",
		"lgbm__num_leaves":             "31",
		"lgbm__number_boosting_rounds": "10000",
		"lgbm__early_stopping_rounds":  "100",
	}
}

func buildWith(t *testing.T, overrides map[string]any) *solution.Config {
	t.Helper()

	values := experimentParams()
	maps.Copy(values, overrides)

	cfg, err := solution.New(params.FromMap(values))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return cfg
}
