package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	paymentApp "github.com/cassiomorais/payflow/internal/application/payment"
	"github.com/cassiomorais/payflow/internal/bootstrap"
	"github.com/cassiomorais/payflow/internal/controller"
	"github.com/cassiomorais/payflow/internal/infrastructure/observability"
	"github.com/cassiomorais/payflow/internal/payflow"
	"github.com/cassiomorais/payflow/internal/repository/memory"
	pkgretry "github.com/cassiomorais/payflow/pkg/retry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, "payflow-api", "payflow")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}

	// --- Repositories ---
	paymentRepo := memory.NewPaymentRepository()
	methodRepo := memory.NewMethodRepository()

	// --- Gateway client ---
	client := payflow.NewClient(payflow.Config{
		Credentials: payflow.Credentials{
			Partner:  app.Config.Gateway.Partner,
			Vendor:   app.Config.Gateway.Vendor,
			User:     app.Config.Gateway.User,
			Password: app.Config.Gateway.Password,
		},
		Mode:    payflow.Mode(app.Config.Gateway.Mode),
		Timeout: app.Config.Gateway.Timeout,
		BaseURL: app.Config.Gateway.BaseURL,
	}, app.Logger)
	gateway := observability.NewInstrumentedGateway(client, app.Metrics)
	breaker := payflow.NewBreaker("payflow")
	clock := paymentApp.SystemClock()
	testMode := app.Config.Gateway.Mode != "production"

	retryCfg := pkgretry.Config{
		MaxAttempts:  uint(app.Config.Inquiry.MaxAttempts),
		InitialDelay: app.Config.Inquiry.InitialDelay,
		MaxDelay:     app.Config.Inquiry.MaxDelay,
	}

	// --- Application services ---
	createPaymentUC := paymentApp.NewCreatePaymentUseCase(paymentRepo, methodRepo, gateway, breaker, clock, testMode)
	capturePaymentUC := paymentApp.NewCapturePaymentUseCase(paymentRepo, gateway, breaker, clock)
	voidPaymentUC := paymentApp.NewVoidPaymentUseCase(paymentRepo, gateway, breaker)
	refundPaymentUC := paymentApp.NewRefundPaymentUseCase(paymentRepo, gateway, breaker, clock)
	inquiryUC := paymentApp.NewInquiryUseCase(paymentRepo, gateway, breaker, retryCfg)
	createMethodUC := paymentApp.NewCreateMethodUseCase(methodRepo, gateway, breaker, clock, testMode)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		CreatePayment:  createPaymentUC,
		CapturePayment: capturePaymentUC,
		VoidPayment:    voidPaymentUC,
		RefundPayment:  refundPaymentUC,
		Inquiry:        inquiryUC,
		CreateMethod:   createMethodUC,
		PaymentRepo:    paymentRepo,
		MethodRepo:     methodRepo,
		Metrics:        app.Metrics,
		CORSConfig:     app.Config.Server.CORS,
		RateLimit:      app.Config.Server.RateLimit,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Str("gateway", client.APIURL()).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
