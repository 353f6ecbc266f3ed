// Package media uploads, transcodes and deletes the assets referenced by
// videos and user profiles. The client is constructed explicitly and passed
// to the services that need it; there is no process-wide instance.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind selects the handling profile for an asset.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// Asset describes an uploaded media file.
type Asset struct {
	URL      string
	Duration float64
	Size     int64
}

// ObjectStorage persists asset bytes under a key and returns a public location.
type ObjectStorage interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// CommandRunner executes external commands and returns stdout bytes.
type CommandRunner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// ErrStorageUnavailable indicates the client was built without a storage backend.
var ErrStorageUnavailable = errors.New("media: object storage unavailable")

const bytesPerMB = 1024 * 1024

// ClientConfig controls transcoding behavior.
type ClientConfig struct {
	FFmpegPath  string
	FFprobePath string
	Timeout     time.Duration
	// VideoCompressMB and ImageCompressMB are the sizes above which an
	// upload is compressed before handoff to the object store.
	VideoCompressMB int64
	ImageCompressMB int64
}

// Client uploads local files to the object store, compressing oversized
// inputs with ffmpeg first, and deletes stored assets by their public URL.
type Client struct {
	storage ObjectStorage
	cfg     ClientConfig
	logger  *slog.Logger

	// Run is injectable for tests.
	Run CommandRunner
}

// NewClient constructs a media client around the provided object storage.
func NewClient(storage ObjectStorage, cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = "ffprobe"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	if cfg.VideoCompressMB <= 0 {
		cfg.VideoCompressMB = 100
	}
	if cfg.ImageCompressMB <= 0 {
		cfg.ImageCompressMB = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		storage: storage,
		cfg:     cfg,
		logger:  logger,
		Run:     defaultCommandRunner,
	}
}

// Upload stores the file at localPath and returns the asset's public
// location. Videos larger than the video threshold and images larger than
// the image threshold are compressed first. The local file (and any
// intermediate compressed copy) is removed before returning.
func (c *Client) Upload(ctx context.Context, localPath string, kind Kind) (Asset, error) {
	if c == nil || c.storage == nil {
		return Asset{}, ErrStorageUnavailable
	}
	defer func() {
		_ = os.Remove(localPath)
	}()

	info, err := os.Stat(localPath)
	if err != nil {
		return Asset{}, fmt.Errorf("stat upload: %w", err)
	}

	uploadPath := localPath
	if c.shouldCompress(kind, info.Size()) {
		compressed, err := c.compress(ctx, localPath, kind)
		if err != nil {
			return Asset{}, err
		}
		defer func() {
			_ = os.Remove(compressed)
		}()
		uploadPath = compressed
	}

	asset := Asset{}
	if kind == KindVideo {
		duration, err := c.probeDuration(ctx, uploadPath)
		if err != nil {
			return Asset{}, err
		}
		asset.Duration = duration
	}

	file, err := os.Open(uploadPath)
	if err != nil {
		return Asset{}, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	uploadInfo, err := file.Stat()
	if err != nil {
		return Asset{}, fmt.Errorf("stat upload: %w", err)
	}
	asset.Size = uploadInfo.Size()

	key := path.Join(string(kind)+"s", uuid.NewString()+strings.ToLower(filepath.Ext(localPath)))
	location, err := c.storage.Save(ctx, key, file)
	if err != nil {
		return Asset{}, fmt.Errorf("store asset: %w", err)
	}
	asset.URL = location

	return asset, nil
}

// Delete removes the asset addressed by the provided public URL. The storage
// key is recovered from the URL via the host's public-identifier convention.
func (c *Client) Delete(ctx context.Context, url string) error {
	if c == nil || c.storage == nil {
		return ErrStorageUnavailable
	}

	key := KeyFromURL(url)
	if key == "" {
		return fmt.Errorf("media: cannot derive storage key from %q", url)
	}

	if err := c.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete asset %s: %w", PublicIDFromURL(url), err)
	}

	return nil
}

func (c *Client) shouldCompress(kind Kind, size int64) bool {
	switch kind {
	case KindVideo:
		return size > c.cfg.VideoCompressMB*bytesPerMB
	case KindImage:
		return size > c.cfg.ImageCompressMB*bytesPerMB
	default:
		return false
	}
}

func (c *Client) compress(ctx context.Context, inputPath string, kind Kind) (string, error) {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)
	outputPath := filepath.Join(filepath.Dir(inputPath), base+"_compressed"+ext)

	var args []string
	if kind == KindVideo {
		args = []string{"-i", inputPath, "-vcodec", "libx264", "-crf", "28", outputPath, "-y"}
	} else {
		args = []string{"-i", inputPath, "-vf", "scale=iw/2:-1", "-q:v", "5", outputPath, "-y"}
	}

	execCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	run := c.Run
	if run == nil {
		run = defaultCommandRunner
	}

	if _, err := run(execCtx, c.cfg.FFmpegPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg compress: %w", err)
	}

	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("ffmpeg compress: output file not found: %w", err)
	}

	return outputPath, nil
}

func (c *Client) probeDuration(ctx context.Context, inputPath string) (float64, error) {
	execCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	run := c.Run
	if run == nil {
		run = defaultCommandRunner
	}

	out, err := run(execCtx, c.cfg.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration: %w", err)
	}

	return duration, nil
}

func defaultCommandRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	return cmd.Output()
}
