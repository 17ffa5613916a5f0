package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/trebuchet-org/l2deploy/internal/domain/config"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
)

// ErrDeclined is returned when the operator does not confirm a production run
var ErrDeclined = errors.New("deployment declined")

// RunDeploymentParams contains parameters for a deploy run
type RunDeploymentParams struct {
	// Yes skips the production confirmation
	Yes bool
}

// RunDeployment loads the plan and the deploy config, asks before touching a
// production context and runs every reconciliation phase
type RunDeployment struct {
	config    *config.RuntimeConfig
	plan      PlanSource
	reconcile *ReconcileDeployment
	confirm   Confirmer
}

// NewRunDeployment creates a new RunDeployment use case
func NewRunDeployment(cfg *config.RuntimeConfig, plan PlanSource, reconcile *ReconcileDeployment, confirm Confirmer) *RunDeployment {
	return &RunDeployment{
		config:    cfg,
		plan:      plan,
		reconcile: reconcile,
		confirm:   confirm,
	}
}

// Run executes the deployment. The report is returned even when a phase
// fails, so completed steps can be shown.
func (uc *RunDeployment) Run(ctx context.Context, params RunDeploymentParams) (*models.Report, error) {
	deployConfig := uc.config.DeployConfig
	if deployConfig == nil {
		if uc.config.DeployConfigPath == "" {
			return nil, fmt.Errorf("no deploy config (use --deploy-config or --network)")
		}
		return nil, fmt.Errorf("deploy config %s not found", uc.config.DeployConfigPath)
	}

	plan, err := uc.plan.Load(ctx)
	if err != nil {
		return nil, err
	}

	session, err := uc.reconcile.NewSession(ctx, plan, deployConfig)
	if err != nil {
		return nil, err
	}

	if deployConfig.Environment.IsProduction() && !params.Yes {
		prompt := fmt.Sprintf("Deploy to production on chain %d as %s", session.Report.ChainID, session.Env.Signer.Hex())
		ok, err := uc.confirm.Confirm(prompt)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDeclined
		}
	}

	return uc.reconcile.Run(ctx, session)
}
