// Package upload implements the chunked multipart upload protocol: split
// a source file into fixed-size parts, upload them through pre-authorized
// part URLs with bounded concurrency, then finalize with the part/ETag
// manifest sorted by part number.
package upload

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/clipworks/reelcut/internal/api"
)

// Concurrency is the number of part uploads in flight per batch.
const Concurrency = 3

// ProgressFunc receives cumulative upload progress as a percentage in
// [Options.ProgressFloor, Options.ProgressCeil]. Observed values are
// monotonically non-decreasing.
type ProgressFunc func(percent float64)

// Options configures an upload. The progress sub-range reserves leading
// and trailing percent for surrounding steps (initiate, project creation).
type Options struct {
	ProgressFloor float64
	ProgressCeil  float64
	OnProgress    ProgressFunc
}

// DefaultOptions mirrors the dashboard's upload bar: 5% reserved for
// initiate, the upload itself spans 5..90.
func DefaultOptions() Options {
	return Options{ProgressFloor: 5, ProgressCeil: 90}
}

// PartError is a part upload that returned a non-success transport status.
// Any single part failing aborts the whole file's upload.
type PartError struct {
	PartNumber int
	StatusCode int
}

func (e *PartError) Error() string {
	return fmt.Sprintf("part %d upload failed: status %d", e.PartNumber, e.StatusCode)
}

// Orchestrator drives multipart uploads through the API client.
type Orchestrator struct {
	client *api.Client
}

// NewOrchestrator creates an upload orchestrator.
func NewOrchestrator(client *api.Client) *Orchestrator {
	return &Orchestrator{client: client}
}

// Upload transfers size bytes read from src and returns the remote
// content key once every part is uploaded and the completion call
// succeeds. On any part failure the whole upload is abandoned and a
// best-effort abort is issued so the backend can discard orphaned parts.
func (o *Orchestrator) Upload(ctx context.Context, src io.ReaderAt, size int64, filename, contentType string, opts Options) (string, error) {
	initResp, err := o.client.InitiateMultipart(ctx, filename, contentType, size)
	if err != nil {
		return "", err
	}

	log.Info().
		Str("filename", filename).
		Str("uploadId", initResp.UploadID).
		Int64("partSize", initResp.PartSize).
		Int("parts", len(initResp.PartURLs)).
		Msg("Multipart upload initiated")

	parts, err := o.uploadParts(ctx, src, size, initResp, opts)
	if err != nil {
		// Abort so the server can reclaim already-uploaded parts. The
		// upload error is what the caller needs to see either way.
		if abortErr := o.client.AbortMultipart(ctx, initResp.Key, initResp.UploadID); abortErr != nil {
			log.Warn().Err(abortErr).Str("uploadId", initResp.UploadID).Msg("Failed to abort multipart upload")
		}
		return "", err
	}

	// The backend may reject out-of-order manifests.
	sort.Slice(parts, func(i, j int) bool { return parts[i].PartNumber < parts[j].PartNumber })

	if _, err := o.client.CompleteMultipart(ctx, initResp.Key, initResp.UploadID, parts); err != nil {
		return "", err
	}

	log.Info().Str("key", initResp.Key).Int("parts", len(parts)).Msg("Multipart upload completed")
	return initResp.Key, nil
}

// uploadParts processes parts in windows of Concurrency: all uploads in a
// window run concurrently and the window joins before the next begins.
// Part k therefore starts only after every lower window finished, though
// completions within a window arrive in arbitrary order.
func (o *Orchestrator) uploadParts(ctx context.Context, src io.ReaderAt, size int64, init *api.MultipartInitiateResponse, opts Options) ([]api.CompletedPart, error) {
	var (
		mu            sync.Mutex
		completed     []api.CompletedPart
		bytesUploaded int64
	)

	for i := 0; i < len(init.PartURLs); i += Concurrency {
		batch := init.PartURLs[i:min(i+Concurrency, len(init.PartURLs))]

		g, gctx := errgroup.WithContext(ctx)
		for _, part := range batch {
			g.Go(func() error {
				start := int64(part.PartNumber-1) * init.PartSize
				end := min(start+init.PartSize, size)

				chunk := make([]byte, end-start)
				if _, err := src.ReadAt(chunk, start); err != nil && err != io.EOF {
					return fmt.Errorf("read part %d: %w", part.PartNumber, err)
				}

				etag, err := o.client.UploadPart(gctx, part.UploadURL, chunk)
				if err != nil {
					if se, ok := err.(*api.StatusError); ok {
						return &PartError{PartNumber: part.PartNumber, StatusCode: se.StatusCode}
					}
					return fmt.Errorf("part %d upload failed: %w", part.PartNumber, err)
				}

				mu.Lock()
				completed = append(completed, api.CompletedPart{PartNumber: part.PartNumber, ETag: etag})
				bytesUploaded += end - start
				if opts.OnProgress != nil {
					span := opts.ProgressCeil - opts.ProgressFloor
					opts.OnProgress(opts.ProgressFloor + span*float64(bytesUploaded)/float64(size))
				}
				mu.Unlock()

				log.Debug().Int("partNumber", part.PartNumber).Int64("bytes", end-start).Msg("Part uploaded")
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return completed, nil
}
