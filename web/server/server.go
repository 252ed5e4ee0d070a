package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-recursive-raytracer/internal/config"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// maxSceneBytes bounds the size of scene sources posted to /api/render
const maxSceneBytes = 1 << 20

// Server handles web requests for the recursive raytracer
type Server struct {
	cfg       config.ServerConfig
	scenesDir string
	opts      renderer.RenderOptions
	log       *zap.Logger
}

// NewServer creates a web server from the loaded configuration
func NewServer(cfg *config.Config, log *zap.Logger) (*Server, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:       cfg.Server,
		scenesDir: cfg.Render.ScenesDir,
		opts:      opts,
		log:       log,
	}, nil
}

// Handler returns the HTTP handler serving the API and static files
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting web server", zap.String("addr", "http://localhost"+srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("Shutting down web server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes followed by the scene files in the scenes directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		s.log.Error("Failed to list scenes", zap.String("dir", s.scenesDir), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list scenes")
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the camera and depth a scene renders with by default
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	sceneObj, err := s.loadScene(sceneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cam := sceneObj.CameraConfig
	writeJSON(w, http.StatusOK, map[string]any{
		"scene": sceneID,
		"defaults": map[string]any{
			"width":        cam.Width,
			"height":       cam.Height,
			"fov":          cam.FOV,
			"recurseDepth": sceneObj.RecurseDepth,
			"primitives":   sceneObj.GetPrimitiveCount(),
			"lights":       len(sceneObj.Lights),
		},
		"limits": map[string]any{
			"width":  map[string]int{"min": 1, "max": s.cfg.MaxWidth},
			"height": map[string]int{"min": 1, "max": s.cfg.MaxHeight},
			"depth":  map[string]int{"min": 0, "max": maxDepth},
		},
	})
}

// loadScene resolves a built-in ID or a "file:" ID from the scenes directory.
// Arbitrary paths are rejected so clients cannot read files outside it.
func (s *Server) loadScene(id string) (*scene.Scene, error) {
	if strings.HasPrefix(id, scene.TypeFile+":") {
		return scene.Load(id, s.scenesDir)
	}
	return scene.NewScene(id)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
