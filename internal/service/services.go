package service

import (
	"github.com/dom/poe-uniques-server/internal/config"
	"github.com/dom/poe-uniques-server/internal/repository"
)

type Services struct {
	Catalog *CatalogService
	Ingest  *IngestService
	Ninja   *NinjaService
}

func NewServices(repos *repository.Repositories, tx repository.Transactor, cfg *config.Config) *Services {
	ingest := NewIngestService(tx)
	return &Services{
		Catalog: NewCatalogService(repos, cfg),
		Ingest:  ingest,
		Ninja:   NewNinjaService(ingest, cfg),
	}
}
