// Package app wires configuration, storage, clients, and services into a
// running application. It is the shared core used by cmd/centsible-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible/centsible/internal/clients/frankfurter"
	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/services/bills"
	"github.com/centsible/centsible/internal/services/currency"
	"github.com/centsible/centsible/internal/services/dashboard"
	"github.com/centsible/centsible/internal/services/notify"
	"github.com/centsible/centsible/internal/services/wallet"
	"github.com/centsible/centsible/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	RatesClient      interfaces.RatesClient
	CurrencyService  interfaces.CurrencyService
	WalletService    interfaces.WalletService
	BillService      interfaces.BillService
	DashboardService interfaces.DashboardService
	Notifier         interfaces.Notifier
	StartupTime      time.Time

	schedulerCancel context.CancelFunc
	watchCancel     func()
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, and services. configPath may be
// empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("CENTSIBLE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "centsible.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/centsible.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ratesClient := frankfurter.NewClient(
		frankfurter.WithBaseURL(config.Rates.BaseURL),
		frankfurter.WithLogger(logger),
		frankfurter.WithRateLimit(config.Rates.RateLimit),
		frankfurter.WithTimeout(config.Rates.GetTimeout()),
	)

	maxAmount := decimal.NewFromFloat(config.Ledger.MaxAmount)
	notifier := notify.NewLogNotifier(logger)
	currencyService := currency.NewService(ratesClient, config.Rates.GetCacheTTL(), logger)
	walletService := wallet.NewService(storageManager, currencyService, maxAmount, logger)
	billService := bills.NewService(storageManager, walletService, notifier, maxAmount, config.AutoPay.GetCooldown(), logger)
	dashboardService := dashboard.NewService(storageManager, currencyService, config.BaseCurrency, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		RatesClient:      ratesClient,
		CurrencyService:  currencyService,
		WalletService:    walletService,
		BillService:      billService,
		DashboardService: dashboardService,
		Notifier:         notifier,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")
	return a, nil
}

// Close releases all resources held by the App. Shutdown order: cancel
// scheduler, cancel watch, close storage.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
		a.schedulerCancel = nil
	}
	if a.watchCancel != nil {
		a.watchCancel()
		a.watchCancel = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}

// ReloadSubscriptions re-registers the store watcher and clears the currency
// cache in place. It replaces the reload-the-whole-process pattern: callers
// get fresh subscriptions and rates without a restart.
func (a *App) ReloadSubscriptions() {
	if a.watchCancel != nil {
		a.watchCancel()
		a.watchCancel = nil
	}
	a.CurrencyService.ClearCache()
	a.startWatch()
	a.Logger.Info().Msg("Subscriptions reloaded")
}
