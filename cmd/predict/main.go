// Command predict builds the training set from the soccer database, fits the
// outcome classifier and writes per-match probabilities for the dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/utakatalp/match-predictor/internal/classify"
	"github.com/utakatalp/match-predictor/internal/config"
	"github.com/utakatalp/match-predictor/internal/league"
	"github.com/utakatalp/match-predictor/internal/logging"
	"github.com/utakatalp/match-predictor/internal/pipeline"
	"github.com/utakatalp/match-predictor/internal/predictions"
	"github.com/utakatalp/match-predictor/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("prediction run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	driver, dsn := cfg.DataSource()
	logger.Info("opening database",
		zap.String("driver", driver),
		zap.String("dsn", logging.SanitizeDSN(dsn)))

	st, err := store.Open(driver, dsn, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	rel, err := st.LoadRelations(ctx)
	if err != nil {
		return err
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithWindows(league.Windows{
			Form:       cfg.Pipeline.FormWindow,
			HeadToHead: cfg.Pipeline.HeadToHeadWindow,
		}),
		pipeline.WithWorkers(cfg.Pipeline.Workers),
	}
	if cfg.Pipeline.StrictKeys {
		opts = append(opts, pipeline.WithStrictKeys())
	}
	if cfg.Pipeline.PlayerNames {
		opts = append(opts, pipeline.WithPlayerNames())
	}
	agg := pipeline.New(rel, opts...)

	ts, err := agg.TrainingSet(ctx, cfg.Pipeline.SampleLimit)
	if err != nil {
		return err
	}
	logger.Info("training set ready",
		zap.Int("rows", ts.Len()),
		zap.Int("columns", len(ts.Columns)))

	trainIdx, testIdx := classify.Split(ts.Len(), cfg.Model.TestFraction, cfg.Model.Seed)
	train, test := ts.Subset(trainIdx), ts.Subset(testIdx)
	if train.Len() == 0 || test.Len() == 0 {
		return fmt.Errorf("cannot split %d rows into train and test sets", ts.Len())
	}

	model := classify.NewLogistic(cfg.Model.Iterations, cfg.Model.LearningRate)
	model.L2 = cfg.Model.L2
	model.Balanced = cfg.Model.Balanced
	if err := model.Fit(train.X, train.Y); err != nil {
		return fmt.Errorf("fitting model: %w", err)
	}

	trainAcc, err := score(model, train)
	if err != nil {
		return err
	}
	testAcc, err := score(model, test)
	if err != nil {
		return err
	}
	logger.Info("model evaluated",
		zap.Int("train_rows", train.Len()),
		zap.Int("test_rows", test.Len()),
		zap.Float64("train_accuracy", trainAcc),
		zap.Float64("test_accuracy", testAcc))

	probs, err := model.PredictProba(test.X)
	if err != nil {
		return fmt.Errorf("predicting test set: %w", err)
	}
	records, err := predictions.Records(test, probs)
	if err != nil {
		return err
	}

	path := cfg.Output.PredictionsPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := predictions.WriteFile(path, records); err != nil {
		return err
	}
	logger.Info("predictions written", zap.String("path", path), zap.Int("records", len(records)))
	return nil
}

func score(model classify.Classifier, ts *pipeline.TrainingSet) (float64, error) {
	predicted, err := model.Predict(ts.X)
	if err != nil {
		return 0, fmt.Errorf("predicting: %w", err)
	}
	return classify.Accuracy(ts.Y, predicted)
}
