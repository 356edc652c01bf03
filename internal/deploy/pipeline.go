package deploy

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"auxtables/internal/armtemplate"
	"auxtables/internal/catalog"
	"auxtables/internal/config"
)

// tableState is a state of the per-table provisioning machine.
type tableState int

const (
	stateBuilding tableState = iota
	stateSubmitting
	stateFallingBack
	stateSucceeded
	stateFailed
)

func (s tableState) String() string {
	switch s {
	case stateBuilding:
		return "building"
	case stateSubmitting:
		return "submitting"
	case stateFallingBack:
		return "falling-back"
	case stateSucceeded:
		return "succeeded"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TableSubmitter submits a built deployment document for one table.
type TableSubmitter interface {
	Submit(ctx context.Context, doc *armtemplate.Document, table catalog.TableSpec) SubmitResult
}

// TableCreator is the narrower direct-write path attempted after a failed
// submission.
type TableCreator interface {
	CreateTableDirect(ctx context.Context, table catalog.TableSpec) bool
}

// Pipeline drives one table through the provisioning state machine:
//
//	building -> submitting -> succeeded
//	                       -> falling-back -> succeeded
//	                                       -> failed
//
// Every path terminates in exactly one of succeeded or failed, and no error
// escapes Run; failures are isolated to the table's outcome.
type Pipeline struct {
	submitter TableSubmitter
	fallback  TableCreator
	dctx      config.DeploymentContext
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline. limiter may be nil to disable pacing.
func NewPipeline(submitter TableSubmitter, fallback TableCreator, dctx config.DeploymentContext, limiter *rate.Limiter, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		submitter: submitter,
		fallback:  fallback,
		dctx:      dctx,
		limiter:   limiter,
		logger:    logger,
	}
}

// Run takes one catalog table to a terminal state and returns its outcome.
func (p *Pipeline) Run(ctx context.Context, table catalog.TableSpec) Outcome {
	names := armtemplate.Names(table.Name)

	var doc *armtemplate.Document
	st := stateBuilding
	for {
		switch st {
		case stateBuilding:
			doc = armtemplate.Build(table, p.dctx)
			st = stateSubmitting

		case stateSubmitting:
			if p.limiter != nil {
				if err := p.limiter.Wait(ctx); err != nil {
					p.logger.Warn("submission pacing interrupted", "table", names.Table, "error", err)
				}
			}
			result := p.submitter.Submit(ctx, doc, table)
			if result.Succeeded {
				st = stateSucceeded
				break
			}
			p.logger.Warn("template deployment failed, trying direct create",
				"table", names.Table,
				"detail", result.ProviderMessage)
			st = stateFallingBack

		case stateFallingBack:
			if p.fallback.CreateTableDirect(ctx, table) {
				st = stateSucceeded
			} else {
				st = stateFailed
			}

		case stateSucceeded:
			p.logger.Info("table provisioned", "table", names.Table)
			return Outcome{Table: names.Table, Succeeded: true}

		case stateFailed:
			p.logger.Error("table provisioning failed", "table", names.Table)
			return Outcome{Table: names.Table, Succeeded: false}
		}
	}
}

// RunAll processes tables strictly sequentially: table N+1 does not start
// until table N reaches a terminal state. One outcome is recorded per
// table, in input order.
func (p *Pipeline) RunAll(ctx context.Context, tables []catalog.TableSpec, recorder *Recorder) {
	for _, table := range tables {
		outcome := p.Run(ctx, table)
		recorder.Record(outcome.Table, outcome.Succeeded)
	}
}
