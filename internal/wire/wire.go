// Package wire provides dependency injection for the easel application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/easel/internal/adapters/cli"
	"github.com/example/easel/internal/adapters/filesystem"
	"github.com/example/easel/internal/adapters/sqlite"
	"github.com/example/easel/internal/app"
	"github.com/example/easel/internal/config"
	"github.com/example/easel/internal/db"
	"github.com/example/easel/internal/logger"
	"github.com/example/easel/internal/ports/primary"
)

var (
	cfg               *config.Config
	logr              *zap.Logger
	clientService     primary.ClientService
	commissionService primary.CommissionService
	settingsService   primary.SettingsService
	backupService     primary.BackupService
	syncService       primary.SyncService
	analyticsService  primary.AnalyticsService
	dataService       primary.DataService
	once              sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the shared logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logr
}

// ClientService returns the singleton ClientService instance.
func ClientService() primary.ClientService {
	once.Do(initServices)
	return clientService
}

// CommissionService returns the singleton CommissionService instance.
func CommissionService() primary.CommissionService {
	once.Do(initServices)
	return commissionService
}

// SettingsService returns the singleton SettingsService instance.
func SettingsService() primary.SettingsService {
	once.Do(initServices)
	return settingsService
}

// BackupService returns the singleton BackupService instance.
func BackupService() primary.BackupService {
	once.Do(initServices)
	return backupService
}

// SyncService returns the singleton SyncService instance.
func SyncService() primary.SyncService {
	once.Do(initServices)
	return syncService
}

// AnalyticsService returns the singleton AnalyticsService instance.
func AnalyticsService() primary.AnalyticsService {
	once.Do(initServices)
	return analyticsService
}

// DataService returns the singleton DataService instance.
func DataService() primary.DataService {
	once.Do(initServices)
	return dataService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	configDir, err := config.Dir()
	if err != nil {
		log.Fatalf("failed to locate config: %v", err)
	}
	cfg, err = config.LoadConfig(configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err = logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		if dataDir, err = filesystem.DefaultDataDir(); err != nil {
			log.Fatalf("failed to resolve data directory: %v", err)
		}
	}

	database, err := db.Open(db.Path(dataDir), logr)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary adapters
	kv := sqlite.NewKVStore(database)
	records, err := filesystem.NewRecordStore(dataDir)
	if err != nil {
		log.Fatalf("failed to initialize record store: %v", err)
	}
	fs, err := filesystem.NewDataDirAdapter(dataDir)
	if err != nil {
		log.Fatalf("failed to initialize data directory: %v", err)
	}
	executor := app.NewEffectExecutor(kv, fs, logr)

	store := app.NewPersistenceService(records, records, dataDir, logr)
	backups := app.NewBackupManager(kv, executor, logr)

	trigger := app.NewSyncTrigger(logr)
	coordinator := app.NewSyncCoordinator(store, logr)
	trigger.Register(coordinator.SyncNow)

	settings := app.NewSettingsService(backups, logr)
	snapshots := app.NewBackupService(store, backups, settings, trigger, logr)

	clientService = app.NewClientService(store, snapshots, trigger, logr)
	commissionService = app.NewCommissionService(store, records, trigger, logr)
	settingsService = settings
	backupService = snapshots
	syncService = coordinator
	analyticsService = app.NewAnalyticsService(store)
	dataService = app.NewDataService(fs, executor, snapshots, trigger, logr)
}

// ClientAdapter returns a new ClientAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ClientAdapter() *cliadapter.ClientAdapter {
	return ClientAdapterWithOutput(os.Stdout)
}

// ClientAdapterWithOutput returns a new ClientAdapter writing to the given output.
func ClientAdapterWithOutput(out io.Writer) *cliadapter.ClientAdapter {
	once.Do(initServices)
	return cliadapter.NewClientAdapter(clientService, out)
}

// CommissionAdapter returns a new CommissionAdapter writing to stdout.
func CommissionAdapter() *cliadapter.CommissionAdapter {
	return CommissionAdapterWithOutput(os.Stdout)
}

// CommissionAdapterWithOutput returns a new CommissionAdapter writing to the given output.
func CommissionAdapterWithOutput(out io.Writer) *cliadapter.CommissionAdapter {
	once.Do(initServices)
	return cliadapter.NewCommissionAdapter(commissionService, out)
}

// SettingsAdapter returns a new SettingsAdapter writing to stdout.
func SettingsAdapter() *cliadapter.SettingsAdapter {
	once.Do(initServices)
	return cliadapter.NewSettingsAdapter(settingsService, os.Stdout)
}

// BackupAdapter returns a new BackupAdapter writing to stdout.
func BackupAdapter() *cliadapter.BackupAdapter {
	once.Do(initServices)
	return cliadapter.NewBackupAdapter(backupService, os.Stdout)
}

// ReportAdapter returns a new ReportAdapter writing to stdout.
func ReportAdapter() *cliadapter.ReportAdapter {
	once.Do(initServices)
	return cliadapter.NewReportAdapter(analyticsService, syncService, os.Stdout)
}

// DataAdapter returns a new DataAdapter writing to stdout.
func DataAdapter() *cliadapter.DataAdapter {
	once.Do(initServices)
	return cliadapter.NewDataAdapter(dataService, os.Stdout)
}
