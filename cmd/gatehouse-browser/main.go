package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gatehouse/internal/auth"
	"gatehouse/internal/gate"
	"gatehouse/internal/ui"
)

// Server renders a read-only view of an S3-compatible store. It always runs
// behind the gate, so handlers can rely on an identity being present.
type Server struct {
	client *minio.Client
}

func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := gate.Identity(ctx)

	buckets, err := s.client.ListBuckets(ctx)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list buckets: %v", err), http.StatusInternalServerError)
		return
	}

	uiBuckets := make([]ui.Bucket, 0, len(buckets))
	for _, b := range buckets {
		uiBuckets = append(uiBuckets, ui.Bucket{
			Name:         b.Name,
			CreationDate: b.CreationDate.UTC().Format(time.RFC3339),
		})
	}

	if err := ui.BucketsPage(user, uiBuckets).Render(ctx, w); err != nil {
		http.Error(w, fmt.Sprintf("failed to render buckets page: %v", err), http.StatusInternalServerError)
		return
	}
}

func (s *Server) BucketContents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := gate.Identity(ctx)

	bucket := r.PathValue("bucket")
	if bucket == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	opts := minio.ListObjectsOptions{
		Recursive: true,
	}

	objects := make([]ui.Object, 0, 64)
	for obj := range s.client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			// Log and skip errors for individual objects.
			slog.Error("ListObjects error", "bucket", bucket, "err", obj.Err)
			continue
		}
		objects = append(objects, ui.Object{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified.UTC().Format(time.RFC3339),
		})
	}

	if err := ui.ObjectsPage(user, bucket, objects).Render(ctx, w); err != nil {
		http.Error(w, fmt.Sprintf("failed to render objects page: %v", err), http.StatusInternalServerError)
		return
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func Run(ctx context.Context) error {

	var (
		HttpPort    = getEnv("GATEHOUSE_BROWSER_PORT", "9100")
		S3Endpoint  = getEnv("GATEHOUSE_BROWSER_S3_ENDPOINT", "localhost:9000")
		S3AccessKey = getEnv("GATEHOUSE_BROWSER_S3_ACCESS_KEY", "minioadmin")
		S3SecretKey = getEnv("GATEHOUSE_BROWSER_S3_SECRET_KEY", "minioadmin")
		S3UseSSL    = getEnv("GATEHOUSE_BROWSER_S3_SSL", "false") == "true"
		GateUser    = getEnv("GATEHOUSE_BROWSER_USER", "admin")
		GateSecret  = getEnv("GATEHOUSE_BROWSER_SECRET", "admin")
	)

	// Logging setup consistent with the main gatehouse daemon.
	handler := log.NewWithOptions(os.Stdout, log.Options{
		Level:           log.DebugLevel,
		TimeFormat:      time.RFC3339,
		ReportTimestamp: true,
		TimeFunction:    log.NowUTC,
		ReportCaller:    true,
	})
	slog.SetDefault(slog.New(handler))

	client, err := minio.New(S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(S3AccessKey, S3SecretKey, ""),
		Secure: S3UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	store := auth.NewMemoryStore()
	if err := store.Put(ctx, GateUser, GateSecret); err != nil {
		return fmt.Errorf("failed to seed user store: %w", err)
	}

	server := &Server{
		client: client,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.Home)
	mux.HandleFunc("GET /bucket/{bucket}", server.BucketContents)

	srv := &http.Server{
		Addr:              ":" + HttpPort,
		Handler:           gate.LogRequest(gate.New(store, mux)),
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	slog.Info("Starting Gatehouse browser", "port", HttpPort, "s3_endpoint", S3Endpoint)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("gatehouse browser failed: %w", err)
	}

	return nil
}

func main() {
	if err := Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
