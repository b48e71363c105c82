package configsvc_test

import (
	"testing"

	"github.com/tailored-agentic-units/dealpipe/params"
	"github.com/tailored-agentic-units/dealpipe/solution"
)

func testConfig(t *testing.T) *solution.Config {
	t.Helper()

	values := map[string]any{
		"experiment_dir":           "/tmp/exp",
		"lgbm_random_search_runs":  0,
		"target_size":              "[224,224]",
		"batch_size_train":         32,
		"batch_size_inference":     64,
		"num_classes":              47,
		"lr":                       0.0001,
		"epochs":                   10,
		"num_workers":              4,
		"lr_gamma":                 0.9,
		"patience":                 5,
		"target_encoder__n_splits": 10,
		"verbose":                  0,
	}
	for name, v := range map[string]any{
		"boosting_type": "gbdt", "objective": "rmse", "metric": "rmse",
		"learning_rate": 0.02, "max_depth": "[4, 8]", "subsample": 0.8,
		"colsample_bytree": 0.6, "min_child_weight": 1, "reg_lambda": 0.0,
		"reg_alpha": 0.0, "subsample_freq": 1, "max_bin": 255,
		"min_child_samples": 20, "num_leaves": 31,
		"number_boosting_rounds": 10000, "early_stopping_rounds": 100,
	} {
		values["lgbm__"+name] = v
	}

	cfg, err := solution.New(params.FromMap(values))
	if err != nil {
		t.Fatalf("solution.New failed: %v", err)
	}
	return cfg
}

func testTree(t *testing.T) map[string]any {
	t.Helper()

	tree, err := testConfig(t).Tree()
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	return tree
}
