package api

import (
	"github.com/jtrogers/goose-gdrive-classifier/internal/classifier"
	"github.com/jtrogers/goose-gdrive-classifier/internal/discovery"
	"github.com/jtrogers/goose-gdrive-classifier/internal/processor"
	"github.com/jtrogers/goose-gdrive-classifier/internal/reports"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Discovery *discovery.Discovery
	Engine    *classifier.Engine
	Processor *processor.Processor
	Reports   *reports.Aggregator
	Validator *reports.Validator
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	cfg := runtime.Config
	thresholds := cfg.Thresholds.Thresholds()

	builder := classifier.NewRequestBuilder(
		runtime.Rubric.Document(),
		cfg.Processing.MaxContentLength,
	)

	engine := classifier.NewEngine(
		runtime.LLM,
		builder,
		thresholds,
		runtime.Logger,
	)

	discoverySystem := discovery.New(
		runtime.Drive,
		cfg.Drive.PageSize,
		runtime.Logger,
	)

	processorSystem := processor.New(
		runtime.Drive,
		engine,
		cfg.Processing.BatchSize,
		runtime.Logger,
	)

	reportsSystem := reports.NewAggregator(
		runtime.Drive,
		thresholds,
		cfg.Drive.PageSize,
		runtime.Logger,
	)

	validatorSystem := reports.NewValidator(
		runtime.Drive,
		thresholds,
		cfg.Drive.PageSize,
		cfg.Reporting.SampleSizePercent,
		runtime.Logger,
	)

	return &Domain{
		Discovery: discoverySystem,
		Engine:    engine,
		Processor: processorSystem,
		Reports:   reportsSystem,
		Validator: validatorSystem,
	}
}
