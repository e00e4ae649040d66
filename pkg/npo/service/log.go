package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/impactchain/npo-governance/pkg/app/errors"
	"github.com/impactchain/npo-governance/pkg/npo"
)

const serviceName = "NPOService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the NPO Service.
// It logs method entry/exit, duration and errors.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// RegisterNPO wraps the service method with logging
func (ls *logService) RegisterNPO(ctx context.Context, req *npo.RegisterRequest) (resp *npo.RegisterResponse, err error) {
	start := time.Now()

	ls.logger.Info("RegisterNPO started",
		zap.String("service", serviceName),
		zap.String("method", "RegisterNPO"),
		zap.String("name", req.Name),
		zap.String("token_symbol", req.TokenSymbol),
		zap.Strings("categories", req.Categories),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			log := ls.logger.Warn
			if apperrors.IsInternalError(err) {
				log = ls.logger.Error
			}
			log("RegisterNPO failed",
				zap.String("service", serviceName),
				zap.String("method", "RegisterNPO"),
				zap.String("name", req.Name),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("RegisterNPO completed",
				zap.String("service", serviceName),
				zap.String("method", "RegisterNPO"),
				zap.String("workflow_id", resp.WorkflowID),
				zap.Uint32("token_id", resp.TokenID),
				zap.Int("mints", len(resp.Mints)),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.RegisterNPO(ctx, req)
}

// GetNPO wraps the service method with logging
func (ls *logService) GetNPO(ctx context.Context, owner string) (resp *npo.Organization, err error) {
	defer ls.logRead("GetNPO", time.Now(), &err, zap.String("owner", owner))
	return ls.svc.GetNPO(ctx, owner)
}

// GetNPOCount wraps the service method with logging
func (ls *logService) GetNPOCount(ctx context.Context) (resp *npo.CountResponse, err error) {
	defer ls.logRead("GetNPOCount", time.Now(), &err)
	return ls.svc.GetNPOCount(ctx)
}

// GetToken wraps the service method with logging
func (ls *logService) GetToken(ctx context.Context, tokenID uint32) (resp *npo.Token, err error) {
	defer ls.logRead("GetToken", time.Now(), &err, zap.Uint32("token_id", tokenID))
	return ls.svc.GetToken(ctx, tokenID)
}

// GetBalance wraps the service method with logging
func (ls *logService) GetBalance(ctx context.Context, tokenID uint32, address string) (resp *npo.Balance, err error) {
	defer ls.logRead("GetBalance", time.Now(), &err, zap.Uint32("token_id", tokenID), zap.String("address", address))
	return ls.svc.GetBalance(ctx, tokenID, address)
}

// GetWorkflow wraps the service method with logging
func (ls *logService) GetWorkflow(ctx context.Context, id string) (resp *npo.Workflow, err error) {
	defer ls.logRead("GetWorkflow", time.Now(), &err, zap.String("workflow_id", id))
	return ls.svc.GetWorkflow(ctx, id)
}

// logRead logs read-path calls at debug level and their failures at warn.
func (ls *logService) logRead(method string, start time.Time, err *error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("service", serviceName),
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
	)
	if *err != nil {
		ls.logger.Warn(method+" failed", append(fields, zap.Error(*err))...)
		return
	}
	ls.logger.Debug(method+" completed", fields...)
}
