package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/asset"
	"github.com/matzehuels/dungeonforge/pkg/buildinfo"
	"github.com/matzehuels/dungeonforge/pkg/core/level"
	"github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/observability"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

const (
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 5 * time.Second
	versionHeader   = "X-Dungeonforge-Version"
)

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var gf genFlags
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [level...]",
		Short: "Serve layouts over HTTP",
		Long: `Serve exposes the configured levels (plus any given as arguments):

  GET  /healthz
  GET  /v1/levels
  POST /v1/levels/{name}/generate?seed=7&format=svg

The format defaults to json. Responses carry the seed, graph and attempt
count in X-Dungeonforge-* headers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(gf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			paths := append(append([]string(nil), cfg.Levels...), args...)
			srv, err := newServer(runner, paths, gf.options(cfg), c.Logger)
			if err != nil {
				return err
			}
			return srv.listenAndServe(cmd.Context(), addr)
		},
	}

	gf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

// server answers generation requests for a fixed set of levels.
type server struct {
	runner *pipeline.Runner
	levels map[string]*asset.Level
	base   pipeline.Options
	logger *log.Logger
	hooks  observability.ServerHooks
}

// levelInfo is one entry of GET /v1/levels.
type levelInfo struct {
	Name      string   `json:"name"`
	Templates int      `json:"templates"`
	Graphs    []string `json:"graphs"`
}

// apiError is the body of every non-2xx response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newServer loads every level up front so that bad files fail at startup.
func newServer(runner *pipeline.Runner, paths []string, base pipeline.Options, logger *log.Logger) (*server, error) {
	s := &server{
		runner: runner,
		levels: make(map[string]*asset.Level, len(paths)),
		base:   base,
		logger: logger,
		hooks:  observability.Server(),
	}
	for _, p := range paths {
		lvl, err := asset.ReadFile(p)
		if err != nil {
			return nil, err
		}
		if lvl.Name == "" {
			lvl.Name = (&pipeline.Options{LevelPath: p}).LevelName()
		}
		if err := errors.ValidateLevelName(lvl.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLevel, err, "%s", p)
		}
		if _, dup := s.levels[lvl.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "two levels are named %q", lvl.Name)
		}
		s.levels[lvl.Name] = lvl
	}
	if len(s.levels) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no levels to serve")
	}
	return s, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.SetHeader(versionHeader, buildinfo.UserAgent()))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/levels", s.handleLevels)
		r.Post("/levels/{name}/generate", s.handleGenerate)
	})
	return r
}

// instrument logs each request and reports it to the server hooks.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		took := time.Since(start)
		s.hooks.OnRequest(r.Context(), r.Method, route)
		s.hooks.OnResponse(r.Context(), r.Method, route, status, took)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"route", route,
			"status", status,
			"took", took.Round(time.Millisecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *server) handleLevels(w http.ResponseWriter, _ *http.Request) {
	out := make([]levelInfo, 0, len(s.levels))
	for name, lvl := range s.levels {
		info := levelInfo{Name: name, Templates: len(lvl.Templates)}
		for _, g := range lvl.Graphs {
			info.Graphs = append(info.Graphs, g.ID)
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateLevelName(name); err != nil {
		writeError(w, err)
		return
	}
	lvl, ok := s.levels[name]
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no level %q", name))
		return
	}

	opts := s.base
	opts.Level = lvl
	opts.Logger = s.logger
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil || seed == 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "seed must be a positive integer, got %q", v))
			return
		}
		opts.Seed = seed
	}
	format := pipeline.FormatJSON
	if v := r.URL.Query().Get("format"); v != "" {
		format = v
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "%v", err))
		return
	}
	opts.Formats = []string{format}
	opts.Labels = r.URL.Query().Has("labels")
	opts.Spawns = r.URL.Query().Has("spawns")

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Dungeonforge-Seed", strconv.FormatUint(opts.Seed, 10))
	h.Set("X-Dungeonforge-Graph", result.Stats.GraphID)
	h.Set("X-Dungeonforge-Attempts", strconv.Itoa(result.Stats.Attempts))
	h.Set("X-Dungeonforge-Cache", strconv.FormatBool(result.CacheInfo.LayoutHit))
	h.Set("ETag", `"`+result.Stats.Fingerprint+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.IsInputError(err), stderrors.Is(err, level.ErrInvalidDefinition):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeBudgetExhausted), errors.Is(err, errors.ErrCodeNoGraphsAvailable),
		errors.Is(err, errors.ErrCodeNoEntranceNode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, statusFor(err), apiError{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listenAndServe runs until ctx is cancelled, then drains open requests.
func (s *server) listenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr, "levels", len(s.levels))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
