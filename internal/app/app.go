package app

import (
	"log/slog"

	"github.com/trebuchet-org/l2deploy/internal/adapters/registry"
	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// App is the main application container. It holds everything read-only
// commands need; commands that sign build a Deployer from it.
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Log       *slog.Logger
	Registry  *registry.FileRegistry
	Plan      usecase.PlanSource
	Progress  usecase.ProgressSink
	Confirmer usecase.Confirmer

	// Use cases
	ListAddresses *usecase.ListAddresses
	CheckStatus   *usecase.CheckStatus
	ShowPlan      *usecase.ShowPlan
}

// NewApp creates a new application instance with all read-only use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	registry *registry.FileRegistry,
	plan usecase.PlanSource,
	progress usecase.ProgressSink,
	confirmer usecase.Confirmer,
	listAddresses *usecase.ListAddresses,
	checkStatus *usecase.CheckStatus,
	showPlan *usecase.ShowPlan,
) *App {
	return &App{
		Config:        cfg,
		Log:           log,
		Registry:      registry,
		Plan:          plan,
		Progress:      progress,
		Confirmer:     confirmer,
		ListAddresses: listAddresses,
		CheckStatus:   checkStatus,
		ShowPlan:      showPlan,
	}
}

// Deployer holds the signing use cases. Building it needs a network and at
// least one private key.
type Deployer struct {
	RunDeployment *usecase.RunDeployment
}

// NewDeployer creates a new Deployer
func NewDeployer(runDeployment *usecase.RunDeployment) *Deployer {
	return &Deployer{RunDeployment: runDeployment}
}
