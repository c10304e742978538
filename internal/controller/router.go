package controller

import (
	"time"

	paymentApp "github.com/cassiomorais/payflow/internal/application/payment"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/cassiomorais/payflow/internal/infrastructure/config"
	"github.com/cassiomorais/payflow/internal/infrastructure/observability"
	customMW "github.com/cassiomorais/payflow/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	CreatePayment  *paymentApp.CreatePaymentUseCase
	CapturePayment *paymentApp.CapturePaymentUseCase
	VoidPayment    *paymentApp.VoidPaymentUseCase
	RefundPayment  *paymentApp.RefundPaymentUseCase
	Inquiry        *paymentApp.InquiryUseCase
	CreateMethod   *paymentApp.CreateMethodUseCase
	PaymentRepo    payment.Repository
	MethodRepo     payment.MethodRepository
	Metrics        *observability.Metrics
	CORSConfig     config.CORSConfig
	RateLimit      config.RateLimitConfig
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(customMW.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController()
	methodH := NewPaymentMethodController(deps.CreateMethod, deps.MethodRepo)
	paymentH := NewPaymentController(
		deps.CreatePayment, deps.CapturePayment, deps.VoidPayment,
		deps.RefundPayment, deps.Inquiry, deps.PaymentRepo,
	)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if deps.RateLimit.Enabled {
			r.Use(customMW.RateLimit(deps.RateLimit.RequestsPerMinute))
		}

		// Payment methods
		r.Post("/payment-methods", methodH.CreateMethod)
		r.Get("/payment-methods/{id}", methodH.GetMethod)
		r.Delete("/payment-methods/{id}", methodH.DeleteMethod)

		// Payments
		r.Post("/payments", paymentH.CreatePayment)
		r.Get("/payments", paymentH.ListPayments)
		r.Get("/payments/{id}", paymentH.GetPayment)
		r.Get("/payments/{id}/inquiry", paymentH.InquiryPayment)
		r.Post("/payments/{id}/capture", paymentH.CapturePayment)
		r.Post("/payments/{id}/void", paymentH.VoidPayment)
		r.Post("/payments/{id}/refund", paymentH.RefundPayment)
	})

	return r
}
