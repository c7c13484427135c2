// ABOUTME: Web API for narration jobs
// ABOUTME: Accepts video uploads and serves status, audio, and live events

package httpserver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CineVoice/cinevoice-go/pkg/audio/output"
	"github.com/CineVoice/cinevoice-go/pkg/cinevoice"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DefaultMaxUpload caps the upload request body at 2 GiB
const DefaultMaxUpload = int64(2 << 30)

// DefaultJobTimeout bounds a single production run
const DefaultJobTimeout = 10 * time.Minute

// Config holds web API configuration
type Config struct {
	// Sampler extracts frames from uploaded videos
	Sampler cinevoice.Sampler

	// Analyzer writes the narration report
	Analyzer cinevoice.Analyzer

	// Speech voices the narration script
	Speech cinevoice.Speech

	// Prompt overrides the default analysis prompt
	Prompt string

	// Voice names the synthesis voice
	Voice string

	// StyleHint forces a delivery style instead of the genre preset
	StyleHint string

	// FrameRate is the sampling rate in frames per second
	FrameRate float64

	// MaxFrames caps the frames sent to the analyzer
	MaxFrames int

	// UploadDir stores uploaded videos (default: system temp dir)
	UploadDir string

	// MaxUpload caps the upload body in bytes (default DefaultMaxUpload)
	MaxUpload int64

	// JobTimeout bounds one production run (default DefaultJobTimeout)
	JobTimeout time.Duration
}

// Server is the narration web API
type Server struct {
	config   Config
	store    *JobStore
	hub      *Hub
	engine   *gin.Engine
	upgrader websocket.Upgrader
}

// New creates a web API server
func New(config Config) (*Server, error) {
	if config.Sampler == nil {
		return nil, fmt.Errorf("httpserver: sampler is required")
	}
	if config.Analyzer == nil {
		return nil, fmt.Errorf("httpserver: analyzer is required")
	}
	if config.Speech == nil {
		return nil, fmt.Errorf("httpserver: speech is required")
	}
	if config.UploadDir == "" {
		config.UploadDir = filepath.Join(os.TempDir(), "cinevoice-uploads")
	}
	if config.MaxUpload <= 0 {
		config.MaxUpload = DefaultMaxUpload
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultJobTimeout
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		config: config,
		store:  NewJobStore(),
		hub:    NewHub(),
		engine: engine,
		upgrader: websocket.Upgrader{
			// Jobs are keyed by unguessable ids and the API serves
			// trusted local use, so any origin may subscribe.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	api := engine.Group("/api")
	api.POST("/narrations", s.handleCreate)
	api.GET("/narrations/:id", s.handleStatus)
	api.GET("/narrations/:id/audio.wav", s.handleAudio)
	api.GET("/narrations/:id/events", s.handleEvents)

	return s, nil
}

// Handler returns the server's HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API on addr until the listener fails
func (s *Server) Run(addr string) error {
	log.Printf("CineVoice web API listening on %s", addr)
	return s.engine.Run(addr)
}

// jobView is the JSON shape of a job in API responses
type jobView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Stage     string `json:"stage,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Narration string `json:"narration,omitempty"`
	Analysis  string `json:"analysis,omitempty"`
	Error     string `json:"error,omitempty"`
	HasAudio  bool   `json:"has_audio"`
	AudioURL  string `json:"audio_url,omitempty"`
	Created   string `json:"created"`
}

func viewOf(job Job) jobView {
	v := jobView{
		ID:        job.ID,
		Name:      job.Name,
		Status:    string(job.Status),
		Stage:     job.Stage,
		Genre:     job.Genre,
		Narration: job.Narration,
		Analysis:  job.Analysis,
		Error:     job.Error,
		HasAudio:  len(job.WAV) > 0,
		Created:   job.Created.Format(time.RFC3339),
	}
	if v.HasAudio {
		v.AudioURL = "/api/narrations/" + job.ID + "/audio.wav"
	}
	return v
}

func (s *Server) handleCreate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxUpload)

	fh, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no video uploaded (field must be 'video')"})
		return
	}

	safe := sanitizeName(fh.Filename)
	dir := filepath.Join(s.config.UploadDir, uuid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("mkdir: %v", err)})
		return
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("open: %v", err)})
		return
	}
	defer src.Close()

	abs := filepath.Join(dir, safe)
	dst, err := os.Create(abs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("create: %v", err)})
		return
	}

	wrote, err := copyClose(dst, src)
	if err != nil {
		os.RemoveAll(dir)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("write: %v", err)})
		return
	}

	job := s.store.Create(safe, abs)
	go s.runJob(job.ID)

	log.Printf("Narration %s queued: %s (%d bytes)", job.ID, safe, wrote)
	c.JSON(http.StatusAccepted, viewOf(job))
}

func (s *Server) handleStatus(c *gin.Context) {
	job, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "narration not found"})
		return
	}
	c.JSON(http.StatusOK, viewOf(job))
}

func (s *Server) handleAudio(c *gin.Context) {
	job, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "narration not found"})
		return
	}
	if job.Status != JobReady {
		c.JSON(http.StatusNotFound, gin.H{"error": "narration not ready"})
		return
	}
	if len(job.WAV) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "narration has no audio"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "narration-"+job.ID+".wav"))
	c.Data(http.StatusOK, "audio/wav", job.WAV)
}

func (s *Server) handleEvents(c *gin.Context) {
	id := c.Param("id")
	job, ok := s.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "narration not found"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	s.hub.Subscribe(id, conn)
	defer func() {
		s.hub.Unsubscribe(id, conn)
		conn.Close()
	}()

	// Catch the subscriber up before live events start arriving.
	if err := conn.WriteJSON(Message{Type: "status", Payload: viewOf(job)}); err != nil {
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// runJob drives one upload through the production pipeline
func (s *Server) runJob(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.JobTimeout)
	defer cancel()

	s.store.Update(id, func(j *Job) { j.Status = JobRunning })

	studio, err := cinevoice.New(cinevoice.Config{
		Sampler:   s.config.Sampler,
		Analyzer:  s.config.Analyzer,
		Speech:    s.config.Speech,
		Device:    output.NewNull(),
		Prompt:    s.config.Prompt,
		Voice:     s.config.Voice,
		StyleHint: s.config.StyleHint,
		FrameRate: s.config.FrameRate,
		MaxFrames: s.config.MaxFrames,
		OnStage: func(st cinevoice.Stage) {
			stage := st.String()
			s.store.Update(id, func(j *Job) { j.Stage = stage })
			s.hub.Publish(id, Message{Type: "stage", Payload: stageEvent{Stage: stage}})
		},
		OnError: func(err error) {
			s.hub.Publish(id, Message{Type: "error", Payload: errorEvent{Error: err.Error()}})
		},
	})
	if err != nil {
		s.failJob(id, err)
		return
	}
	defer studio.Close()

	job, ok := s.store.Get(id)
	if !ok {
		return
	}
	defer os.RemoveAll(filepath.Dir(job.Video))

	production, err := studio.Produce(ctx, job.Video)
	if err != nil {
		s.failJob(id, err)
		return
	}

	var wav []byte
	if production.HasAudio() {
		var buf bytes.Buffer
		if err := production.WriteWAV(&buf); err != nil {
			s.failJob(id, err)
			return
		}
		wav = buf.Bytes()
	}

	s.store.Update(id, func(j *Job) {
		j.Status = JobReady
		j.Genre = production.Report.Genre
		j.Narration = production.Report.Narration
		j.Analysis = production.Report.Analysis
		j.WAV = wav
	})

	s.hub.Publish(id, Message{Type: "report", Payload: reportEvent{
		Genre:     production.Report.Genre,
		Narration: production.Report.Narration,
	}})

	ready := readyEvent{HasAudio: len(wav) > 0}
	if ready.HasAudio {
		ready.AudioURL = "/api/narrations/" + id + "/audio.wav"
	}
	s.hub.Publish(id, Message{Type: "ready", Payload: ready})

	log.Printf("Narration %s ready (audio: %v)", id, ready.HasAudio)
}

func (s *Server) failJob(id string, err error) {
	log.Printf("Narration %s failed: %v", id, err)
	s.store.Update(id, func(j *Job) {
		j.Status = JobFailed
		j.Error = err.Error()
	})
	s.hub.Publish(id, Message{Type: "error", Payload: errorEvent{Error: err.Error()}})
}

func copyClose(dst *os.File, src io.Reader) (int64, error) {
	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func sanitizeName(s string) string {
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.TrimSpace(s)
	if s == "" {
		s = "video"
	}
	return s
}
