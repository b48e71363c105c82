package solution

// Env holds shared environment settings.
type Env struct {
	CacheDirpath string `json:"cache_dirpath"`
}

// RandomSearch configures hyperparameter search per model.
type RandomSearch struct {
	LightGBM SearchRun `json:"light_gbm"`
}

type SearchRun struct {
	NRuns     int             `json:"n_runs"`
	Callbacks SearchCallbacks `json:"callbacks"`
}

type SearchCallbacks struct {
	NeptuneMonitor MonitorCallback `json:"neptune_monitor"`
	SaveResults    SaveResults     `json:"save_results"`
}

type MonitorCallback struct {
	Name string `json:"name"`
}

// SaveResults stores the search results at Filepath.
type SaveResults struct {
	Filepath string `json:"filepath"`
}

// DataframeByTypeSplitter splits the raw table by column role.
type DataframeByTypeSplitter struct {
	NumericalColumns   []string `json:"numerical_columns"`
	CategoricalColumns []string `json:"categorical_columns"`
	TimestampColumns   []string `json:"timestamp_columns"`
}

type FetchImageColumns struct {
	Columns []string `json:"columns"`
}

// SubsetNotNanImage keeps rows whose NanColumn is set.
type SubsetNotNanImage struct {
	NanColumn []string `json:"nan_column"`
}

// JoinWithNan joins image predictions back onto all rows by IndexColumn.
type JoinWithNan struct {
	IndexColumn []string `json:"index_column"`
}

type LabelEncoder struct {
	ColumnsToEncode []string `json:"columns_to_encode"`
}

type GroupbyAggregation struct {
	GroupbyAggregations []Aggregation `json:"groupby_aggregations"`
}

type TargetEncoder struct {
	NSplits int `json:"n_splits"`
}

// Loader configures image batch loading for training and inference.
type Loader struct {
	LoaderParams LoaderParams `json:"loader_params"`
}

type LoaderParams struct {
	Training  LoaderPhase `json:"training"`
	Inference LoaderPhase `json:"inference"`
}

type LoaderPhase struct {
	BatchSize  int    `json:"batch_size"`
	Shuffle    bool   `json:"shuffle"`
	NumClasses int    `json:"num_classes"`
	TargetSize [2]int `json:"target_size"`
}

// InceptionResNet configures the image classifier.
type InceptionResNet struct {
	ArchitectureConfig Architecture    `json:"architecture_config"`
	TrainingConfig     TrainingConfig  `json:"training_config"`
	CallbacksConfig    CallbacksConfig `json:"callbacks_config"`
}

type Architecture struct {
	NumClasses  int       `json:"num_classes"`
	TargetSize  [2]int    `json:"target_size"`
	LossWeights []float64 `json:"loss_weights"`
	// TrainableThreshold is the index of the first trainable layer; -1
	// keeps every layer trainable.
	TrainableThreshold int     `json:"trainable_threshold"`
	LR                 float64 `json:"lr"`
}

type TrainingConfig struct {
	Epochs  int `json:"epochs"`
	Workers int `json:"workers"`
}

type CallbacksConfig struct {
	LRScheduler     LRScheduler     `json:"lr_scheduler"`
	ModelCheckpoint ModelCheckpoint `json:"model_checkpoint"`
	EarlyStopping   EarlyStopping   `json:"early_stopping"`
	NeptuneMonitor  ModelMonitor    `json:"neptune_monitor"`
}

// LRScheduler decays the learning rate by Gamma each epoch.
type LRScheduler struct {
	Gamma float64 `json:"gamma"`
}

type ModelCheckpoint struct {
	Filepath        string `json:"filepath"`
	SaveBestOnly    bool   `json:"save_best_only"`
	SaveWeightsOnly bool   `json:"save_weights_only"`
}

type EarlyStopping struct {
	Patience int `json:"patience"`
}

type ModelMonitor struct {
	ModelName string `json:"model_name"`
}

// LightGBM holds the gradient-boosting hyperparameters. List-valued
// parameters become random-search spaces.
type LightGBM struct {
	BoostingType         Tunable[string]  `json:"boosting_type"`
	Objective            Tunable[string]  `json:"objective"`
	Metric               Tunable[string]  `json:"metric"`
	LearningRate         Tunable[float64] `json:"learning_rate"`
	MaxDepth             Tunable[int]     `json:"max_depth"`
	Subsample            Tunable[float64] `json:"subsample"`
	ColsampleBytree      Tunable[float64] `json:"colsample_bytree"`
	MinChildWeight       Tunable[float64] `json:"min_child_weight"`
	RegLambda            Tunable[float64] `json:"reg_lambda"`
	RegAlpha             Tunable[float64] `json:"reg_alpha"`
	SubsampleFreq        Tunable[int]     `json:"subsample_freq"`
	MaxBin               Tunable[int]     `json:"max_bin"`
	MinChildSamples      Tunable[int]     `json:"min_child_samples"`
	NumLeaves            Tunable[int]     `json:"num_leaves"`
	NThread              int              `json:"nthread"`
	NumberBoostingRounds Tunable[int]     `json:"number_boosting_rounds"`
	EarlyStoppingRounds  Tunable[int]     `json:"early_stopping_rounds"`
	Verbose              int              `json:"verbose"`
}

// SearchParams lists the LightGBM hyperparameters given as candidate
// spaces, by key.
func (l LightGBM) SearchParams() []string {
	var names []string
	add := func(name string, search bool) {
		if search {
			names = append(names, name)
		}
	}
	add("boosting_type", l.BoostingType.IsSearch())
	add("objective", l.Objective.IsSearch())
	add("metric", l.Metric.IsSearch())
	add("learning_rate", l.LearningRate.IsSearch())
	add("max_depth", l.MaxDepth.IsSearch())
	add("subsample", l.Subsample.IsSearch())
	add("colsample_bytree", l.ColsampleBytree.IsSearch())
	add("min_child_weight", l.MinChildWeight.IsSearch())
	add("reg_lambda", l.RegLambda.IsSearch())
	add("reg_alpha", l.RegAlpha.IsSearch())
	add("subsample_freq", l.SubsampleFreq.IsSearch())
	add("max_bin", l.MaxBin.IsSearch())
	add("min_child_samples", l.MinChildSamples.IsSearch())
	add("num_leaves", l.NumLeaves.IsSearch())
	add("number_boosting_rounds", l.NumberBoostingRounds.IsSearch())
	add("early_stopping_rounds", l.EarlyStoppingRounds.IsSearch())
	return names
}

// Clipper bounds predictions to [MinVal, MaxVal].
type Clipper struct {
	MinVal float64 `json:"min_val"`
	MaxVal float64 `json:"max_val"`
}

// ImageParams is the input image size.
type ImageParams struct {
	H int `json:"h"`
	W int `json:"w"`
}
