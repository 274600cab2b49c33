package api

import (
	"net/http"

	"github.com/jtrogers/goose-gdrive-classifier/internal/config"
	"github.com/jtrogers/goose-gdrive-classifier/internal/discovery"
	"github.com/jtrogers/goose-gdrive-classifier/internal/processor"
	"github.com/jtrogers/goose-gdrive-classifier/internal/reports"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	discoveryHandler := discovery.NewHandler(domain.Discovery, runtime.Logger)
	classifyHandler := processor.NewHandler(domain.Processor, runtime.Logger)
	reportsHandler := reports.NewHandler(
		domain.Reports,
		domain.Validator,
		reports.ParseFormat(cfg.Reporting.ReportFormat),
		runtime.Logger,
	)

	groups := []routes.Group{
		discoveryHandler.Routes(),
		classifyHandler.Routes(),
	}
	groups = append(groups, reportsHandler.Routes()...)

	routes.Register(mux, groups...)
}
