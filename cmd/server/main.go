package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/inkbrush/inkbrush/backend-go/internal/asset"
	"github.com/inkbrush/inkbrush/backend-go/internal/auth"
	"github.com/inkbrush/inkbrush/backend-go/internal/board"
	"github.com/inkbrush/inkbrush/backend-go/internal/collab"
	"github.com/inkbrush/inkbrush/backend-go/internal/config"
	"github.com/inkbrush/inkbrush/backend-go/internal/db"
	"github.com/inkbrush/inkbrush/backend-go/internal/document"
	"github.com/inkbrush/inkbrush/backend-go/internal/export"
	mw "github.com/inkbrush/inkbrush/backend-go/internal/middleware"
	"github.com/inkbrush/inkbrush/backend-go/internal/typeid"
)

// playgroundBoardID is the shared anonymous board: no auth, no persistence.
const playgroundBoardID = "board_playground"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := db.NewStore(pool)

	authService := auth.NewService(store, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	boardService := board.NewService(store)
	boardHandler := board.NewHandler(boardService)

	// Document loader for the collaboration hub
	docLoader := func(boardID string) (*document.BoardDocument, error) {
		// Use a background context since this runs in the hub goroutine
		snap, err := store.GetLatestSnapshot(context.Background(), boardID)
		if errors.Is(err, pgx.ErrNoRows) {
			// Boards with no snapshot yet (e.g. the playground) start empty
			return document.NewEmptyDocument(boardID, "Untitled"), nil
		}
		if err != nil {
			return nil, err
		}
		var doc document.BoardDocument
		if err := json.Unmarshal(snap.Document, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}

	// Document saver for the collaboration hub
	docSaver := func(boardID string, doc *document.BoardDocument) error {
		// The playground board has no boards row to hang snapshots off
		if boardID == playgroundBoardID {
			return nil
		}

		docJSON, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}

		// Get current version to increment
		currentSnap, err := store.GetLatestSnapshot(context.Background(), boardID)
		nextVersion := int32(1)
		if err == nil {
			nextVersion = currentSnap.Version + 1
		}

		_, err = store.CreateSnapshot(context.Background(), db.CreateSnapshotParams{
			ID:       typeid.NewSnapshotID(),
			BoardID:  boardID,
			Version:  nextVersion,
			Document: docJSON,
		})
		if err != nil {
			return fmt.Errorf("create snapshot: %w", err)
		}

		return store.TouchBoard(context.Background(), boardID)
	}

	hub := collab.NewHub(docLoader, docSaver)
	go hub.Run()

	assetHandler := asset.NewHandler(cfg.AssetDir)
	exportHandler := export.NewHandler()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Asset endpoints, public so the playground can use them too
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	// Export endpoint, also public
	r.HandleFunc("/export/svg", exportHandler.ExportSVG).Methods("POST", "OPTIONS")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/boards", boardHandler.List).Methods("GET")
	api.HandleFunc("/boards", boardHandler.Create).Methods("POST")
	api.HandleFunc("/boards/{boardId}", boardHandler.Get).Methods("GET")
	api.HandleFunc("/boards/{boardId}", boardHandler.Delete).Methods("DELETE")
	api.HandleFunc("/boards/{boardId}/invite", boardHandler.Invite).Methods("POST")
	api.HandleFunc("/boards/{boardId}/members", boardHandler.ListMembers).Methods("GET")
	api.HandleFunc("/boards/{boardId}/members/{userId}", boardHandler.RemoveMember).Methods("DELETE")
	api.HandleFunc("/boards/{boardId}/snapshots/latest", boardHandler.GetLatestSnapshot).Methods("GET")

	// WebSocket endpoint
	wsOrigins := strings.Split(cfg.AllowedOrigins, ",")
	r.HandleFunc("/ws/board/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, store, wsOrigins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save all dirty boards
		slog.Info("saving all boards...")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, authSvc *auth.Service, store *db.Store, origins []string) {
	vars := mux.Vars(r)
	boardID := vars["boardId"]

	var userID string
	var displayName string

	// Playground board allows anonymous access
	if boardID == playgroundBoardID {
		// Anonymous user for playground
		userID = "anon-" + uuid.New().String()[:8]
		displayName = "Anonymous"
	} else {
		// Auth via query param for real boards
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		var err error
		userID, err = authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		// Check membership
		_, err = store.GetBoardMember(r.Context(), db.GetBoardMemberParams{
			BoardID: boardID,
			UserID:  userID,
		})
		if err != nil {
			http.Error(w, "not a board member", http.StatusForbidden)
			return
		}

		// Get user display name
		user, err := authSvc.GetUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "user not found", http.StatusInternalServerError)
			return
		}
		displayName = user.DisplayName
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := collab.NewClient(hub, conn, userID, displayName, boardID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
