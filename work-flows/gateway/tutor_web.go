package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"video-tutor/utils"
	"video-tutor/work-flows/catalog"
	"video-tutor/work-flows/managers"
	"video-tutor/work-flows/services"

	"golang.org/x/sync/errgroup"
)

const (
	sessionCookieName = "tutor_session"
	evictionInterval  = time.Minute
)

type textTranslator interface {
	Translate(text string) (string, error)
}

type TutorWeb struct {
	store       *managers.SessionStore
	manager     *managers.TutorManager
	resolver    *services.VideoResolver
	translator  textTranslator
	exportDir   string
	idleTimeout time.Duration
	page        *template.Template
}

type ChatRequest struct {
	Message string `json:"message,omitzero"`
	Subject string `json:"subject,omitzero"`
	Lesson  string `json:"lesson,omitzero"`
	Text    string `json:"text,omitzero"`
}

type ChatResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitzero"`
	View     *View             `json:"view,omitzero"`
	Subjects []catalog.Subject `json:"subjects,omitzero"`
	Content  string            `json:"content,omitzero"`
	Path     string            `json:"path,omitzero"`
}

type WebOptions struct {
	Translator  textTranslator
	ExportDir   string
	IdleTimeout time.Duration
}

func NewTutorWeb(store *managers.SessionStore, manager *managers.TutorManager, resolver *services.VideoResolver, opts WebOptions) *TutorWeb {
	return &TutorWeb{
		store:       store,
		manager:     manager,
		resolver:    resolver,
		translator:  opts.Translator,
		exportDir:   opts.ExportDir,
		idleTimeout: opts.IdleTimeout,
		page:        template.Must(template.New("page").Parse(pageTemplate)),
	}
}

func (tw *TutorWeb) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", tw.servePage)
	mux.HandleFunc("/video", tw.handleVideo)
	// Session
	mux.HandleFunc("/api/state", tw.handleState)
	mux.HandleFunc("/api/select", tw.handleSelect)
	mux.HandleFunc("/api/chat", tw.handleChat)
	mux.HandleFunc("/api/reset", tw.handleReset)
	mux.HandleFunc("/api/export", tw.handleExport)
	// Catalog + tools
	mux.HandleFunc("/api/catalog", tw.handleCatalog)
	mux.HandleFunc("/api/translate", tw.handleTranslate)

	return withLogging(mux)
}

// StartWebServer serves until ctx is cancelled, then shuts down gracefully.
func (tw *TutorWeb) StartWebServer(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           tw.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tw.evictIdleSessions(gctx)
		return nil
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.PrintInfo("Shutting down web server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	fmt.Printf("🌐 Web server starting at http://localhost:%s\n", port)
	fmt.Printf("📱 Open your browser and navigate to the URL above\n\n")

	return g.Wait()
}

func (tw *TutorWeb) evictIdleSessions(ctx context.Context) {
	if tw.idleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(evictionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := tw.store.EvictIdle(tw.idleTimeout, now); n > 0 {
				utils.PrintInfo(fmt.Sprintf("Evicted %d idle session(s)", n))
			}
		}
	}
}

// sessionFor returns the caller's session, creating one on first visit. A new
// session starts on the catalog's default lesson, like a fresh page load.
func (tw *TutorWeb) sessionFor(w http.ResponseWriter, r *http.Request) *managers.SessionState {
	var id string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		id = cookie.Value
	}

	state, created := tw.store.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    state.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		subject, lesson := tw.manager.Catalog().Default()
		if _, err := tw.manager.OnSelectionChanged(state, subject, lesson); err != nil {
			utils.PrintError(fmt.Sprintf("Failed to apply default selection: %v", err))
		}
	}

	state.Touch(time.Now())
	return state
}

func (tw *TutorWeb) render(state *managers.SessionState) *View {
	view := Render(state.Snapshot(), tw.manager.Catalog())
	return &view
}

type pageData struct {
	View *View
}

func (tw *TutorWeb) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := tw.sessionFor(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tw.page.Execute(w, pageData{View: tw.render(state)}); err != nil {
		utils.PrintError(fmt.Sprintf("Failed to render page: %v", err))
	}
}

func (tw *TutorWeb) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := tw.sessionFor(w, r)
	writeJSON(w, http.StatusOK, ChatResponse{
		Success: true,
		View:    tw.render(state),
	})
}

func (tw *TutorWeb) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Success:  true,
		Subjects: tw.manager.Catalog().Subjects,
	})
}

func (tw *TutorWeb) handleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ChatResponse{
			Success: false,
			Message: "Invalid request",
		})
		return
	}

	state := tw.sessionFor(w, r)

	if req.Lesson == "" {
		if lessons := tw.manager.Catalog().Lessons(req.Subject); len(lessons) > 0 {
			req.Lesson = lessons[0]
		}
	}

	_, err := tw.manager.OnSelectionChanged(state, req.Subject, req.Lesson)
	if errors.Is(err, managers.ErrInvalidSelection) {
		writeJSON(w, http.StatusBadRequest, ChatResponse{
			Success: false,
			Message: "Invalid subject or lesson",
			View:    tw.render(state),
		})
		return
	}

	resp := ChatResponse{
		Success: err == nil,
		View:    tw.render(state),
	}
	if err != nil {
		resp.Message = resp.View.Error
	}
	writeJSON(w, http.StatusOK, resp)
}

func (tw *TutorWeb) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ChatResponse{
			Success: false,
			Message: "Invalid request",
		})
		return
	}

	state := tw.sessionFor(w, r)

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, ChatResponse{
			Success: false,
			Message: "No message provided",
			View:    tw.render(state),
		})
		return
	}

	reply, err := tw.manager.SendMessage(r.Context(), state, req.Message)

	view := tw.render(state)
	if err != nil {
		message := view.Error
		if message == "" {
			message = err.Error()
		}
		writeJSON(w, http.StatusOK, ChatResponse{
			Success: false,
			Message: message,
			View:    view,
		})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Success: true,
		Content: reply,
		View:    view,
	})
}

func (tw *TutorWeb) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := tw.sessionFor(w, r)
	tw.manager.ResetChat(state)

	writeJSON(w, http.StatusOK, ChatResponse{
		Success: true,
		Message: "Conversation reset",
		View:    tw.render(state),
	})
}

func (tw *TutorWeb) handleVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := tw.sessionFor(w, r).Snapshot()
	if !snap.VideoReady {
		writeJSON(w, http.StatusNotFound, ChatResponse{
			Success: false,
			Message: selectPrompt,
		})
		return
	}

	f, info, err := tw.resolver.Open(snap.VideoPath)
	if err != nil {
		utils.PrintWarn(fmt.Sprintf("Streaming error for %s: %v", snap.VideoPath, err))
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrVideoNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, ChatResponse{
			Success: false,
			Message: "Streaming error: " + err.Error(),
		})
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (tw *TutorWeb) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ChatResponse{
			Success: false,
			Message: "Invalid request",
		})
		return
	}

	if req.Text == "" {
		writeJSON(w, http.StatusOK, ChatResponse{
			Success: true,
			Content: "",
		})
		return
	}

	if tw.translator == nil {
		writeJSON(w, http.StatusOK, ChatResponse{
			Success: false,
			Message: "Translation is not configured",
		})
		return
	}

	translated, err := tw.translator.Translate(req.Text)
	if err != nil {
		utils.PrintError(err.Error())
		writeJSON(w, http.StatusOK, ChatResponse{
			Success: false,
			Message: "Translation failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Success: true,
		Content: translated,
	})
}

func (tw *TutorWeb) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := tw.sessionFor(w, r).Snapshot()
	if len(snap.History) == 0 {
		writeJSON(w, http.StatusOK, ChatResponse{
			Success: false,
			Message: "No conversation history to export",
		})
		return
	}

	filename := fmt.Sprintf("transcript_%s_%d.json", shortID(snap.ID), utils.GetCurrentTimestamp())
	path, err := utils.ExportToJSON(tw.exportDir, filename, map[string]any{
		"selection": snap.Selection,
		"history":   snap.History,
	}, "transcript", "/api/export", http.StatusOK)
	if err != nil {
		utils.PrintError(err.Error())
		writeJSON(w, http.StatusInternalServerError, ChatResponse{
			Success: false,
			Message: "Failed to export transcript",
		})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Success: true,
		Message: "Transcript exported",
		Path:    path,
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// withLogging logs every request with its duration.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		utils.PrintInfo(fmt.Sprintf("%s %s %s", r.Method, r.URL.Path, time.Since(start)))
	})
}
