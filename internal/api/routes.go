package api

import (
	"net/http"

	"github.com/cdillerud/docsync/internal/config"
	"github.com/cdillerud/docsync/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	documentsHandler := domain.Documents.Handler(cfg.API.MaxUploadSizeBytes())

	routes.Register(mux, documentsHandler.Routes())
	routes.Register(mux, documentsHandler.QueueRoutes())
	routes.Register(mux, domain.Classifications.Handler().Routes())
	routes.Register(mux, domain.Backfill.Handler().Routes())

	storageHandler := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)
	routes.Register(mux, storageHandler.routes())
}
