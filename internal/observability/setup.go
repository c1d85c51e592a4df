package observability

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/iamwavecut/guessbot"

var (
	// Logger is used by the metrics server only; the bot itself logs through logrus.
	Logger = zap.NewNop()

	registerOnce sync.Once

	queueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "guessbot_queue_depth",
		Help: "Pick requests waiting for the generation worker",
	})

	queueProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guessbot_queue_processed_total",
			Help: "Pick requests handled by the generation worker",
		},
		[]string{"status"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "guessbot_generation_duration_seconds",
			Help:    "Time spent generating illustrations",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"status"},
	)

	guessesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guessbot_guesses_total",
			Help: "Guesses adjudicated, by outcome",
		},
		[]string{"outcome"},
	)

	sessionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guessbot_session_transitions_total",
			Help: "Game session state transitions",
		},
		[]string{"transition"},
	)
)

// Server exposes /metrics and owns the tracer provider.
type Server struct {
	addr     string
	otel     bool
	srv      *http.Server
	provider *sdktrace.TracerProvider
	done     chan struct{}
}

func NewServer(addr string, enableTracing bool) *Server {
	return &Server{addr: addr, otel: enableTracing}
}

func (s *Server) Start(ctx context.Context) error {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	register()

	if s.otel {
		s.provider = sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
		otel.SetTracerProvider(s.provider)
	}

	if s.addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s.srv = &http.Server{Addr: s.addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		Logger.Info("metrics server listening", zap.String("addr", s.addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	var errs error
	if s.srv != nil {
		errs = errors.Join(errs, s.srv.Shutdown(ctx))
		<-s.done
	}
	if s.provider != nil {
		errs = errors.Join(errs, s.provider.Shutdown(ctx))
	}
	_ = Logger.Sync()
	return errs
}

func register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(queueDepth, queueProcessed, generationDuration, guessesTotal, sessionsTotal)
	})
}

// Tracer returns the process tracer; a no-op one unless tracing is enabled.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func SetQueueDepth(n int) {
	queueDepth.Set(float64(n))
}

func RecordQueueItem(status string) {
	queueProcessed.WithLabelValues(status).Inc()
}

// StartGeneration returns a function that records the generation duration
// under the status it is called with.
func StartGeneration() func(status string) {
	start := time.Now()
	return func(status string) {
		generationDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}
}

func RecordGuess(outcome string) {
	guessesTotal.WithLabelValues(outcome).Inc()
}

func RecordTransition(transition string) {
	sessionsTotal.WithLabelValues(transition).Inc()
}
