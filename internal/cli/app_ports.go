package cli

import (
	"fmt"

	"github.com/alexanderramin/rfpwatch/internal/app"
	"github.com/alexanderramin/rfpwatch/internal/config"
	"github.com/alexanderramin/rfpwatch/internal/db"
	"github.com/alexanderramin/rfpwatch/internal/repository"
	"github.com/alexanderramin/rfpwatch/internal/service"
)

// Store is an opened catalog database with the repositories and services
// built on it.
type Store struct {
	Records repository.RecordRepo
	Catalog service.CatalogService
	Close   func() error
}

// OpenSQLiteStore opens (and migrates) the catalog database at cfg.DBPath.
func OpenSQLiteStore(cfg config.Config, observer service.UseCaseObserver) (*Store, error) {
	ac, err := cfg.AggregatorConfig()
	if err != nil {
		return nil, err
	}
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	return &Store{
		Records: repository.NewSQLiteRecordRepo(database),
		Catalog: service.NewCatalogService(db.NewSQLiteUnitOfWork(database), ac.Stages, observer),
		Close:   database.Close,
	}, nil
}

func (a *App) openStore() (*Store, error) {
	a.storeMu.Lock()
	defer a.storeMu.Unlock()
	if a.store != nil {
		return a.store, nil
	}
	open := a.OpenStore
	if open == nil {
		open = OpenSQLiteStore
	}
	store, err := open(a.Config, a.observer)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func (a *App) loadCatalogUseCase() (app.LoadCatalogUseCase, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	return store.Catalog, nil
}

func (a *App) catalogInfoUseCase() (app.CatalogInfoUseCase, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	return store.Catalog, nil
}

// recordSource returns the source selected by the configuration.
func (a *App) recordSource() (app.RecordSource, error) {
	switch a.Config.Source {
	case config.SourceSample, "":
		return service.SampleSource{}, nil
	case config.SourceFile:
		ac, err := a.Config.AggregatorConfig()
		if err != nil {
			return nil, err
		}
		return service.NewFileSource(a.Config.RecordsFile, ac.Stages), nil
	case config.SourceCatalog:
		store, err := a.openStore()
		if err != nil {
			return nil, &app.DashboardError{Code: app.DashboardErrSourceUnavailable, Message: "opening catalog", Err: err}
		}
		return service.NewCatalogSource(store.Records), nil
	default:
		return nil, invalidSourceError(a.Config.Source)
	}
}

func (a *App) dashboardUseCase() (app.DashboardUseCase, error) {
	if a.Dashboard != nil {
		return a.Dashboard, nil
	}
	src, err := a.recordSource()
	if err != nil {
		return nil, err
	}
	ac, err := a.Config.AggregatorConfig()
	if err != nil {
		return nil, err
	}
	return service.NewDashboardService(src, ac, a.observer), nil
}
