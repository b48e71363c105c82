// Package solution assembles the configuration every step of the
// deal-probability pipeline reads: column selections for the feature
// transformers, the image loader and classifier settings, and the
// gradient-boosting hyperparameters.
//
// A Config is built once from experiment parameters and not modified
// afterwards:
//
//	p, err := params.New(&paramsCfg)
//	cfg, err := solution.New(p)
//	cfg.Loader.LoaderParams.Training.BatchSize
//
// Tree exposes the same content as a nested map keyed by step name for
// consumers that look options up by key.
package solution

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tailored-agentic-units/dealpipe/columns"
	"github.com/tailored-agentic-units/dealpipe/literal"
	"github.com/tailored-agentic-units/dealpipe/observability"
	"github.com/tailored-agentic-units/dealpipe/params"
)

// Step names, in the order the configuration lists them.
const (
	StepEnv                     = "env"
	StepRandomSearch            = "random_search"
	StepDataframeByTypeSplitter = "dataframe_by_type_splitter"
	StepFetchImageColumns       = "fetch_image_columns"
	StepSubsetNotNanImage       = "subset_not_nan_image"
	StepJoinWithNan             = "join_with_nan"
	StepLabelEncoder            = "label_encoder"
	StepLabelEncoderImage       = "label_encoder_image"
	StepGroupbyAggregation      = "groupby_aggregation"
	StepTargetEncoder           = "target_encoder"
	StepLoader                  = "loader"
	StepInceptionResNet         = "inception_resnet"
	StepLightGBM                = "light_gbm"
	StepClipper                 = "clipper"
)

// StepNames returns every step name in configuration order.
func StepNames() []string {
	return []string{
		StepEnv,
		StepRandomSearch,
		StepDataframeByTypeSplitter,
		StepFetchImageColumns,
		StepSubsetNotNanImage,
		StepJoinWithNan,
		StepLabelEncoder,
		StepLabelEncoderImage,
		StepGroupbyAggregation,
		StepTargetEncoder,
		StepLoader,
		StepInceptionResNet,
		StepLightGBM,
		StepClipper,
	}
}

// Fixed file locations below the experiment directory.
const (
	randomSearchResultsFile = "random_search_light_gbm.pkl"
	checkpointFile          = "best_model.h5"
	checkpointsDir          = "checkpoints"
)

// RequiredParams lists every parameter New reads.
func RequiredParams() []string {
	return []string{
		"experiment_dir",
		"lgbm_random_search_runs",
		"target_size",
		"batch_size_train",
		"batch_size_inference",
		"num_classes",
		"lr",
		"epochs",
		"num_workers",
		"lr_gamma",
		"patience",
		"target_encoder__n_splits",
		"verbose",
		"lgbm__boosting_type",
		"lgbm__objective",
		"lgbm__metric",
		"lgbm__learning_rate",
		"lgbm__max_depth",
		"lgbm__subsample",
		"lgbm__colsample_bytree",
		"lgbm__min_child_weight",
		"lgbm__reg_lambda",
		"lgbm__reg_alpha",
		"lgbm__subsample_freq",
		"lgbm__max_bin",
		"lgbm__min_child_samples",
		"lgbm__num_leaves",
		"lgbm__number_boosting_rounds",
		"lgbm__early_stopping_rounds",
	}
}

// Config is the assembled solution configuration, one field per step.
type Config struct {
	Env                     Env                     `json:"env"`
	RandomSearch            RandomSearch            `json:"random_search"`
	DataframeByTypeSplitter DataframeByTypeSplitter `json:"dataframe_by_type_splitter"`
	FetchImageColumns       FetchImageColumns       `json:"fetch_image_columns"`
	SubsetNotNanImage       SubsetNotNanImage       `json:"subset_not_nan_image"`
	JoinWithNan             JoinWithNan             `json:"join_with_nan"`
	LabelEncoder            LabelEncoder            `json:"label_encoder"`
	LabelEncoderImage       LabelEncoder            `json:"label_encoder_image"`
	GroupbyAggregation      GroupbyAggregation      `json:"groupby_aggregation"`
	TargetEncoder           TargetEncoder           `json:"target_encoder"`
	Loader                  Loader                  `json:"loader"`
	InceptionResNet         InceptionResNet         `json:"inception_resnet"`
	LightGBM                LightGBM                `json:"light_gbm"`
	Clipper                 Clipper                 `json:"clipper"`

	// Image is shared by the loader and the classifier and is not a step.
	Image ImageParams `json:"-"`
}

// Option configures assembly.
type Option func(*assembly)

type assembly struct {
	observer observability.Observer
}

// WithObserver sets the observer receiving assembly events.
func WithObserver(o observability.Observer) Option {
	return func(a *assembly) { a.observer = o }
}

// New assembles the solution configuration from p. Every missing or
// malformed parameter is reported in the returned error, which wraps
// ErrInvalidParams. Hyperparameter ranges are not checked.
func New(p *params.Params, opts ...Option) (*Config, error) {
	a := &assembly{observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(a)
	}

	ctx := context.Background()
	observability.Emit(ctx, a.observer, observability.Event{
		Type:   EventBuildStart,
		Level:  observability.LevelVerbose,
		Source: "solution.New",
		Data:   map[string]any{"params": p.Len()},
	})

	cfg, err := build(p)
	if err != nil {
		observability.Emit(ctx, a.observer, observability.Event{
			Type:   EventError,
			Level:  observability.LevelError,
			Source: "solution.New",
			Data:   map[string]any{"error": err.Error()},
		})
		return nil, err
	}

	observability.Emit(ctx, a.observer, observability.Event{
		Type:   EventBuildComplete,
		Level:  observability.LevelInfo,
		Source: "solution.New",
		Data: map[string]any{
			"steps":          len(StepNames()),
			"experiment_dir": cfg.Env.CacheDirpath,
			"search_params":  len(cfg.LightGBM.SearchParams()),
		},
	})
	return cfg, nil
}

func build(p *params.Params) (*Config, error) {
	if err := p.Require(RequiredParams()...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	r := &reader{p: p}

	expDir := r.stringParam("experiment_dir")
	targetSize := r.pairParam("target_size")
	numClasses := r.intParam("num_classes")
	numWorkers := r.intParam("num_workers")

	cfg := &Config{
		Env: Env{CacheDirpath: expDir},
		RandomSearch: RandomSearch{
			LightGBM: SearchRun{
				NRuns: r.intParam("lgbm_random_search_runs"),
				Callbacks: SearchCallbacks{
					NeptuneMonitor: MonitorCallback{Name: StepLightGBM},
					SaveResults: SaveResults{
						Filepath: filepath.Join(expDir, randomSearchResultsFile),
					},
				},
			},
		},
		DataframeByTypeSplitter: DataframeByTypeSplitter{
			NumericalColumns:   columns.Numerical(),
			CategoricalColumns: columns.Categorical(),
			TimestampColumns:   columns.Timestamps(),
		},
		FetchImageColumns:  FetchImageColumns{Columns: columns.Images()},
		SubsetNotNanImage:  SubsetNotNanImage{NanColumn: columns.Images()},
		JoinWithNan:        JoinWithNan{IndexColumn: columns.ItemIDs()},
		LabelEncoder:       LabelEncoder{ColumnsToEncode: columns.Categorical()},
		LabelEncoderImage:  LabelEncoder{ColumnsToEncode: columns.ImageTargets()},
		GroupbyAggregation: GroupbyAggregation{GroupbyAggregations: Aggregations()},
		TargetEncoder:      TargetEncoder{NSplits: r.intParam("target_encoder__n_splits")},
		Loader: Loader{
			LoaderParams: LoaderParams{
				Training: LoaderPhase{
					BatchSize:  r.intParam("batch_size_train"),
					Shuffle:    true,
					NumClasses: numClasses,
					TargetSize: targetSize,
				},
				Inference: LoaderPhase{
					BatchSize:  r.intParam("batch_size_inference"),
					Shuffle:    false,
					NumClasses: numClasses,
					TargetSize: targetSize,
				},
			},
		},
		InceptionResNet: InceptionResNet{
			ArchitectureConfig: Architecture{
				NumClasses:         numClasses,
				TargetSize:         targetSize,
				LossWeights:        []float64{0.5, 0.5},
				TrainableThreshold: -1,
				LR:                 r.floatParam("lr"),
			},
			TrainingConfig: TrainingConfig{
				Epochs:  r.intParam("epochs"),
				Workers: numWorkers,
			},
			CallbacksConfig: CallbacksConfig{
				LRScheduler: LRScheduler{Gamma: r.floatParam("lr_gamma")},
				ModelCheckpoint: ModelCheckpoint{
					Filepath:        filepath.Join(expDir, checkpointsDir, StepInceptionResNet, checkpointFile),
					SaveBestOnly:    true,
					SaveWeightsOnly: false,
				},
				EarlyStopping:  EarlyStopping{Patience: r.intParam("patience")},
				NeptuneMonitor: ModelMonitor{ModelName: StepInceptionResNet},
			},
		},
		LightGBM: LightGBM{
			BoostingType:         tunable(r, "lgbm__boosting_type", literal.AsString),
			Objective:            tunable(r, "lgbm__objective", literal.AsString),
			Metric:               tunable(r, "lgbm__metric", literal.AsString),
			LearningRate:         tunable(r, "lgbm__learning_rate", literal.AsFloat),
			MaxDepth:             tunable(r, "lgbm__max_depth", literal.AsInt),
			Subsample:            tunable(r, "lgbm__subsample", literal.AsFloat),
			ColsampleBytree:      tunable(r, "lgbm__colsample_bytree", literal.AsFloat),
			MinChildWeight:       tunable(r, "lgbm__min_child_weight", literal.AsFloat),
			RegLambda:            tunable(r, "lgbm__reg_lambda", literal.AsFloat),
			RegAlpha:             tunable(r, "lgbm__reg_alpha", literal.AsFloat),
			SubsampleFreq:        tunable(r, "lgbm__subsample_freq", literal.AsInt),
			MaxBin:               tunable(r, "lgbm__max_bin", literal.AsInt),
			MinChildSamples:      tunable(r, "lgbm__min_child_samples", literal.AsInt),
			NumLeaves:            tunable(r, "lgbm__num_leaves", literal.AsInt),
			NThread:              numWorkers,
			NumberBoostingRounds: tunable(r, "lgbm__number_boosting_rounds", literal.AsInt),
			EarlyStoppingRounds:  tunable(r, "lgbm__early_stopping_rounds", literal.AsInt),
			Verbose:              r.intParam("verbose"),
		},
		Clipper: Clipper{MinVal: 0, MaxVal: 1},
		Image:   ImageParams{H: targetSize[0], W: targetSize[1]},
	}

	if err := errors.Join(r.errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return cfg, nil
}

// Tree returns the configuration as a nested map keyed by step name.
// Values are bool, int64, float64, string, []any or map[string]any.
func (c *Config) Tree() (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode solution config: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to decode solution config: %w", err)
	}
	return literal.Normalize(tree).(map[string]any), nil
}

// Step returns the options of a single step.
func (c *Config) Step(name string) (map[string]any, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	step, ok := tree[name].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, name)
	}
	return step, nil
}
