// Package server runs the architect agent as a long-lived NATS service.
// Requests arrive as JSON messages on a request subject and are answered
// with the generation result; every generation is recorded in JetStream KV.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/chatmode/agent"
	"github.com/c360studio/chatmode/config"
	"github.com/c360studio/chatmode/storage"
)

// GenerationRequest is the wire format for requests on the architect subject.
// Input follows the same rules as the CLI: key=value lines override Params,
// and a bare string becomes the prompt.
type GenerationRequest struct {
	Input  string            `json:"input"`
	Params map[string]string `json:"params,omitempty"`
}

// GenerationResponse is the reply published for each request.
type GenerationResponse struct {
	OK       bool          `json:"ok"`
	Error    string        `json:"error,omitempty"`
	RecordID string        `json:"record_id,omitempty"`
	Result   *agent.Result `json:"result,omitempty"`
}

// Server wires together NATS transport, the architect agent, generation
// history storage, metrics, and config hot reload.
type Server struct {
	logger *slog.Logger

	// NATS
	embeddedServer *server.Server
	natsConn       *nats.Conn
	js             jetstream.JetStream
	sub            *nats.Subscription

	// Storage
	store *storage.Store

	// Agent; swapped on config reload.
	mu        sync.RWMutex
	cfg       *config.Config
	architect *agent.Architect

	metricsSrv *http.Server
	watcher    *ConfigWatcher
}

// New creates a server around the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, logger: logger}
}

// Start initializes and starts all components.
func (s *Server) Start(ctx context.Context) error {
	if err := s.startNATS(); err != nil {
		return fmt.Errorf("start NATS: %w", err)
	}

	store, err := storage.NewStore(ctx, s.js)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	s.store = store

	s.architect = agent.New("", s.cfg, s.logger)

	sub, err := s.natsConn.Subscribe(s.cfg.Server.Subject, s.handleRequest)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.cfg.Server.Subject, err)
	}
	s.sub = sub

	s.startMetrics()
	s.startConfigWatch()

	s.logger.Info("Server started",
		slog.String("subject", s.cfg.Server.Subject),
		slog.String("metrics_addr", s.cfg.Server.MetricsAddr),
		slog.String("agent_id", s.architect.ID()))
	return nil
}

func (s *Server) startNATS() error {
	if s.cfg.NATS.URL != "" && !s.cfg.NATS.Embedded {
		conn, err := nats.Connect(s.cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		s.natsConn = conn
	} else {
		opts := &server.Options{
			Port:      -1, // Random available port
			JetStream: true,
			NoLog:     true,
			NoSigs:    true,
		}

		ns, err := server.NewServer(opts)
		if err != nil {
			return fmt.Errorf("create embedded NATS server: %w", err)
		}

		go ns.Start()

		if !ns.ReadyForConnections(5 * time.Second) {
			ns.Shutdown()
			return fmt.Errorf("embedded NATS server failed to start")
		}

		s.embeddedServer = ns

		conn, err := nats.Connect(ns.ClientURL())
		if err != nil {
			ns.Shutdown()
			return fmt.Errorf("connect to embedded NATS: %w", err)
		}
		s.natsConn = conn
	}

	js, err := jetstream.New(s.natsConn)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}
	s.js = js

	return nil
}

func (s *Server) startMetrics() {
	if s.cfg.Server.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s.metricsSrv = &http.Server{Addr: s.cfg.Server.MetricsAddr, Handler: mux}
	go func() {
		if err := s.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Warn("Metrics server stopped", slog.String("error", err.Error()))
		}
	}()
}

func (s *Server) startConfigWatch() {
	path := config.NewLoader(s.logger).FindProjectConfig()
	if path == "" {
		return
	}

	watcher, err := NewConfigWatcher(path, s.logger, s.applyConfig)
	if err != nil {
		s.logger.Warn("Config watch unavailable",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return
	}
	s.watcher = watcher
	watcher.Start()
}

// applyConfig swaps in a reloaded configuration. Transport settings are
// fixed at startup; only generation defaults take effect.
func (s *Server) applyConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := config.DefaultConfig()
	merged.Merge(s.cfg)
	merged.Merge(cfg)

	s.cfg = merged
	s.architect = agent.New(s.architect.ID(), merged, s.logger)
	configReloads.Inc()

	s.logger.Info("Configuration reloaded",
		slog.String("output_dir", merged.Generate.OutputDir),
		slog.String("user_name", merged.Generate.UserName))
}

func (s *Server) handleRequest(msg *nats.Msg) {
	start := time.Now()

	var req GenerationRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		requestsTotal.WithLabelValues(outcomeBadRequest).Inc()
		s.reply(msg, &GenerationResponse{OK: false, Error: "invalid request payload: " + err.Error()})
		return
	}

	s.mu.RLock()
	architect := s.architect
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := architect.Process(ctx, req.Input, req.Params)
	if err != nil {
		requestsTotal.WithLabelValues(outcomeError).Inc()
		s.reply(msg, &GenerationResponse{OK: false, Error: err.Error()})
		return
	}

	resp := &GenerationResponse{OK: true, Result: result}
	if id, err := s.record(ctx, result); err != nil {
		s.logger.Warn("Failed to record generation",
			slog.String("request_id", result.RequestID),
			slog.String("error", err.Error()))
	} else {
		resp.RecordID = id
	}

	requestsTotal.WithLabelValues(outcomeOK).Inc()
	generationDuration.Observe(time.Since(start).Seconds())
	s.reply(msg, resp)
}

// record persists the generation in the history bucket.
func (s *Server) record(ctx context.Context, result *agent.Result) (string, error) {
	return s.store.CreateRecord(ctx, &storage.GenerationRecord{
		AgentID:      result.AgentID,
		Prompt:       result.Request.Prompt,
		Targets:      result.Request.Targets,
		ArtifactType: result.Request.ArtifactType,
		DiagramType:  result.Request.DiagramType,
		RelativePath: result.Descriptor.RelativePath,
		MimeKind:     result.Descriptor.MimeKind,
		UserName:     result.Request.UserName,
	})
}

func (s *Server) reply(msg *nats.Msg, resp *GenerationResponse) {
	if msg.Reply == "" {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("Failed to marshal response", slog.String("error", err.Error()))
		return
	}
	if err := msg.Respond(data); err != nil {
		s.logger.Warn("Failed to publish response", slog.String("error", err.Error()))
	}
}

// Store exposes the generation history store.
func (s *Server) Store() *storage.Store {
	return s.store
}

// ClientURL returns the URL clients should connect to.
func (s *Server) ClientURL() string {
	if s.embeddedServer != nil {
		return s.embeddedServer.ClientURL()
	}
	return s.cfg.NATS.URL
}

// Shutdown gracefully stops all components.
func (s *Server) Shutdown(timeout time.Duration) {
	if s.watcher != nil {
		s.watcher.Stop()
	}

	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			s.logger.Warn("Unsubscribe failed", slog.String("error", err.Error()))
		}
	}

	if s.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.metricsSrv.Shutdown(ctx); err != nil {
			s.logger.Warn("Metrics shutdown failed", slog.String("error", err.Error()))
		}
	}

	if s.natsConn != nil {
		s.natsConn.Drain()
		s.natsConn.Close()
	}

	if s.embeddedServer != nil {
		s.embeddedServer.Shutdown()
		s.embeddedServer.WaitForShutdown()
	}

	s.logger.Info("Server stopped")
}
