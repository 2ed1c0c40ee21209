package container

import (
	"database/sql"

	"go.uber.org/zap"

	auditLogRepo "relief/internal/auditlog"
	"relief/internal/config"
	"relief/internal/middleware"
	"relief/internal/rate_limiter"
	"relief/internal/relief/camps"
	"relief/internal/relief/distributions"
	"relief/internal/relief/managers"
	"relief/internal/relief/requests"
	"relief/internal/relief/supplies"
	"relief/internal/repository"
	"relief/pkg/auditlog"
	"relief/pkg/security"
)

type Container struct {
	Config              *config.Config
	Logger              *zap.Logger
	Repository          *repository.Repository
	AuditLog            *auditlog.Auditlog
	RequestLimiter      *rate_limiter.RateLimiter
	HealthChecker       *middleware.HealthChecker
	AuditLogHandler     *auditLogRepo.AuditLogHandler
	RequestHandler      *requests.RequestHandler
	SupplyHandler       *supplies.SupplyHandler
	DistributionHandler *distributions.DistributionHandler
	CampHandler         *camps.CampHandler
}

func NewAppContainer(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Container {
	repo := repository.NewRepository(db)
	auditLogRepository := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditLogRepository, logger.Named("audit"))

	requestLimiter := rate_limiter.NewRateLimiter(cfg.Relief.RequestRateLimit, cfg.Relief.RequestRateWindow)
	createLimit := requestLimiter.Middleware(security.RateLimitKey)

	requestRepo := requests.NewRequestRepository(repo)
	supplyRepo := supplies.NewSupplyRepository(repo)
	distributionRepo := distributions.NewDistributionRepository(repo)
	campRepo := camps.NewCampRepository(repo)
	managerRepo := managers.NewManagerRepository(repo)

	requestService := requests.NewRequestService(requestRepo, logger.Named("requests"))
	supplyService := supplies.NewSupplyService(supplyRepo, cfg.Relief.ExpiringSoonDays, logger.Named("supplies"))
	distributionService := distributions.NewDistributionService(
		repo,
		requestRepo,
		supplyRepo,
		distributionRepo,
		logger.Named("distributions"),
	)
	policy := managers.NewPolicy(managerRepo, auditLog, logger.Named("managers"))
	campService := camps.NewCampService(campRepo, policy, logger.Named("camps"))

	return &Container{
		Config:              cfg,
		Logger:              logger,
		Repository:          repo,
		AuditLog:            auditLog,
		RequestLimiter:      requestLimiter,
		HealthChecker:       middleware.NewHealthChecker(db, cfg.Server.Version),
		AuditLogHandler:     auditLogRepo.NewAuditLogHandler(auditLogRepository, logger),
		RequestHandler:      requests.NewRequestHandler(requestService, auditLog, createLimit, logger),
		SupplyHandler:       supplies.NewSupplyHandler(supplyService, auditLog, logger),
		DistributionHandler: distributions.NewDistributionHandler(distributionService, auditLog, logger),
		CampHandler:         camps.NewCampHandler(campService, auditLog, logger),
	}
}
