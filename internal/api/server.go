package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/internal/billing"
	"mailroom.app/billing/models"
)

const SecretHeader = "X-Billing-Secret"

type InvoiceRunner interface {
	Run(ctx context.Context) (*models.RunReport, error)
}

// Server exposes the operator trigger endpoints for the billing jobs.
type Server struct {
	runner   InvoiceRunner
	repairer billing.OrphanRepairer
	secret   string
	logger   *logrus.Entry
}

func NewServer(runner InvoiceRunner, repairer billing.OrphanRepairer, secret string) *Server {
	return &Server{
		runner:   runner,
		repairer: repairer,
		secret:   secret,
		logger:   logrus.WithField("component", "billing_api"),
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	internal := router.Group("/internal/billing", s.requireSecret)
	internal.POST("/invoices/run", s.handleRunInvoices)
	internal.POST("/charges/repair", s.handleRepairCharges)
	return router
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("billing api listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.WithError(shutdownErr).Warn("server shutdown error")
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) requireSecret(ctx *gin.Context) {
	if s.secret == "" {
		s.logger.Error("BILLING_TRIGGER_SECRET is not configured")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse("trigger_secret_not_configured", "trigger secret is not configured"))
		return
	}
	provided := ctx.GetHeader(SecretHeader)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(s.secret)) != 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("unauthorized", "invalid trigger secret"))
		return
	}
	ctx.Next()
}

func (s *Server) handleRunInvoices(ctx *gin.Context) {
	report, err := s.runner.Run(ctx.Request.Context())
	if err != nil {
		s.logger.WithError(err).Error("invoice run failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse("run_failed", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, report)
}

func (s *Server) handleRepairCharges(ctx *gin.Context) {
	report, err := s.repairer.RepairOrphans(ctx.Request.Context())
	if err != nil {
		s.logger.WithError(err).Error("orphan repair failed")
		ctx.JSON(http.StatusInternalServerError, errorResponse("run_failed", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, report)
}

func errorResponse(code string, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}
