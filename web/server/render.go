package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// maxDepth bounds the recursion depth a client may request
const maxDepth = 32

// consoleBuffer is how many log messages a single render keeps for the client
const consoleBuffer = 64

var renderCounter atomic.Uint64

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string              // Scene ID, or "posted" for a scene sent in the body
	Width  int                 // 0 keeps the scene's width
	Height int                 // 0 keeps the scene's height
	Depth  int                 // Negative keeps the scene's recursion depth
	Format loaders.ImageFormat // Image encoding
	JSON   bool                // Wrap the image in a RenderResponse
}

// RenderResponse is returned when the client asks for encoding=json
type RenderResponse struct {
	Scene       string           `json:"scene"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	ContentType string           `json:"contentType"`
	ImageData   string           `json:"imageData"` // Base64 encoded image
	Stats       Stats            `json:"stats"`
	ElapsedMs   int64            `json:"elapsedMs"`
	Console     []ConsoleMessage `json:"console"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int     `json:"totalPixels"`
	HitPixels   int     `json:"hitPixels"`
	Coverage    float64 `json:"coverage"`
	Workers     int     `json:"workers"`
	Strategy    string  `json:"strategy"`
}

// handleRender renders a built-in or file scene (GET) or a scene posted in the body (POST)
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	var sceneObj *scene.Scene
	switch r.Method {
	case http.MethodGet:
		sceneObj, err = s.loadScene(req.Scene)
	case http.MethodPost:
		sceneObj, err = s.parsePostedScene(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, loaders.FormatError(err))
		return
	}

	rt, err := s.buildRaytracer(sceneObj, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	requestLog := s.log.With(zap.String("renderID", renderID), zap.String("scene", sceneObj.Name))

	var consoleChan chan ConsoleMessage
	if req.JSON {
		consoleChan = make(chan ConsoleMessage, consoleBuffer)
		rt.SetLogger(NewConsoleLogger(requestLog, consoleChan).Named("renderer"))
	} else {
		rt.SetLogger(requestLog.Named("renderer"))
	}

	// The request context stops the render when the client disconnects
	img, stats, err := rt.RenderWithStats(r.Context(), s.opts)
	if err != nil {
		requestLog.Warn("Render aborted", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := loaders.EncodeImage(&buf, img, req.Format); err != nil {
		requestLog.Error("Failed to encode image", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	if !req.JSON {
		w.Header().Set("Content-Type", req.Format.ContentType())
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
		w.Header().Set("X-Render-Hit-Pixels", strconv.Itoa(stats.HitPixels))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		Scene:       sceneObj.Name,
		Width:       img.Width(),
		Height:      img.Height(),
		ContentType: req.Format.ContentType(),
		ImageData:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats: Stats{
			TotalPixels: stats.TotalPixels,
			HitPixels:   stats.HitPixels,
			Coverage:    stats.Coverage(),
			Workers:     stats.Workers,
			Strategy:    string(stats.Strategy),
		},
		ElapsedMs: stats.Elapsed.Milliseconds(),
		Console:   drainConsole(consoleChan),
	})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}

	if r.Method == http.MethodPost {
		req.Scene = "posted"
	} else if sceneID := query.Get("scene"); sceneID != "" {
		req.Scene = sceneID
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, s.cfg.MaxWidth); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, s.cfg.MaxHeight); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", -1, 0, maxDepth); err != nil {
		return nil, err
	}
	if req.Format, err = loaders.ParseImageFormat(query.Get("format")); err != nil {
		return nil, err
	}

	switch encoding := query.Get("encoding"); encoding {
	case "", "binary":
	case "json":
		req.JSON = true
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}

	return req, nil
}

// parsePostedScene reads a scene from the request body. YAML is selected with
// ?syntax=yaml or a YAML content type, otherwise the scene language is assumed.
func (s *Server) parsePostedScene(w http.ResponseWriter, r *http.Request) (*scene.Scene, error) {
	source, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSceneBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	var desc *loaders.SceneDescription
	if isYAML(r) {
		desc, err = loaders.ParseSceneYAML(source)
	} else {
		desc, err = loaders.ParseScene(string(source))
	}
	if err != nil {
		return nil, err
	}

	for _, obj := range desc.Objects {
		if obj.Mesh != nil && !filepath.IsLocal(obj.Mesh.File) {
			return nil, fmt.Errorf("mesh file %q must be a relative path inside the scenes directory", obj.Mesh.File)
		}
	}
	return scene.NewSceneFromDescription("posted", desc, s.scenesDir)
}

func isYAML(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("syntax")) {
	case "yaml", "yml":
		return true
	case "":
		return strings.Contains(r.Header.Get("Content-Type"), "yaml")
	default:
		return false
	}
}

// buildRaytracer applies the request overrides and enforces the server's size and depth limits
func (s *Server) buildRaytracer(sceneObj *scene.Scene, req *RenderRequest) (*renderer.Raytracer, error) {
	rt, err := sceneObj.Build()
	if err != nil {
		return nil, err
	}

	if req.Width > 0 {
		rt.SetWidth(req.Width)
	}
	if req.Height > 0 {
		rt.SetHeight(req.Height)
	}
	if req.Depth >= 0 {
		rt.SetRecurseDepth(req.Depth)
	}

	width, height := rt.Camera().Pixels()
	if width > s.cfg.MaxWidth || height > s.cfg.MaxHeight {
		return nil, fmt.Errorf("image size %dx%d exceeds the server limit of %dx%d",
			width, height, s.cfg.MaxWidth, s.cfg.MaxHeight)
	}
	if depth := rt.RecurseDepth(); depth > maxDepth {
		return nil, fmt.Errorf("recursion depth %d exceeds the server limit of %d", depth, maxDepth)
	}
	if width*height > 800*600 && rt.RecurseDepth() > 10 {
		s.log.Warn("Large image with deep recursion may render slowly",
			zap.Int("width", width), zap.Int("height", height), zap.Int("depth", rt.RecurseDepth()))
	}
	return rt, nil
}

func drainConsole(ch chan ConsoleMessage) []ConsoleMessage {
	messages := []ConsoleMessage{}
	for {
		select {
		case msg := <-ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
