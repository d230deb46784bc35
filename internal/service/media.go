package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/rahulm682/VideoAppBackend/internal/config"
	"github.com/rahulm682/VideoAppBackend/internal/model"
)

// AssetStore is the binary asset collaborator: it accepts uploads, hands
// back public URLs, and deletes by URL. The rest of the system only ever
// stores the URL strings it returns.
type AssetStore interface {
	// StoreVideoFile uploads a video and reports its probed duration in seconds.
	StoreVideoFile(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url string, duration float64, err error)
	// StoreImage validates, normalizes to JPEG, and uploads a thumbnail image.
	StoreImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url string, err error)
	// Remove deletes the object behind a previously returned URL.
	Remove(ctx context.Context, url string) error
}

const (
	thumbnailMaxWidth = 1280
	thumbnailQuality  = 85
	contentTypeJPEG   = "image/jpeg"
	assetCacheControl = "public, max-age=31536000, immutable"
)

// MediaService implements AssetStore on Cloudflare R2 via the S3 API.
type MediaService struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
}

// NewMediaService constructs an S3-compatible client for Cloudflare R2.
func NewMediaService(ctx context.Context, cfg *config.Config) (*MediaService, error) {
	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" || cfg.R2PublicURL == "" {
		return nil, fmt.Errorf("missing Cloudflare R2 configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for R2: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &MediaService{
		s3Client:  s3Client,
		bucket:    cfg.R2BucketName,
		publicURL: strings.TrimSuffix(cfg.R2PublicURL, "/"),
	}, nil
}

// StoreVideoFile spools the upload to a temp file so ffprobe can read it,
// probes the duration, then uploads the original bytes.
func (s *MediaService) StoreVideoFile(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, float64, error) {
	if header.Size > model.MaxVideoFileSize {
		return "", 0, model.ErrFileTooLarge
	}

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, io.LimitReader(file, model.MaxVideoFileSize+1)); err != nil {
		return "", 0, fmt.Errorf("spool upload: %w", err)
	}

	duration, err := probeDuration(tmp.Name())
	if err != nil {
		return "", 0, fmt.Errorf("probe video duration: %w", err)
	}

	data, err := os.ReadFile(tmp.Name())
	if err != nil {
		return "", 0, fmt.Errorf("read spooled upload: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}

	key := fmt.Sprintf("%s/%s%s", model.VideoFolder, uuid.NewString(), filepath.Ext(header.Filename))
	if err := s.putObject(ctx, key, data, contentType); err != nil {
		return "", 0, err
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), duration, nil
}

// StoreImage enforces size/type, downscales wide images, re-encodes as JPEG,
// and uploads.
func (s *MediaService) StoreImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	data, err := readAndValidateImage(file, header, model.MaxThumbnailSize)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Dx() > thumbnailMaxWidth {
		img = imaging.Resize(img, thumbnailMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(thumbnailQuality)); err != nil {
		return "", fmt.Errorf("failed to encode jpeg: %w", err)
	}

	key := fmt.Sprintf("%s/%s.jpg", model.ThumbnailFolder, uuid.NewString())
	if err := s.putObject(ctx, key, buf.Bytes(), contentTypeJPEG); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

// Remove deletes the object a public URL points at. URLs outside our public
// prefix are rejected.
func (s *MediaService) Remove(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.publicURL+"/")
	if key == url || key == "" {
		return fmt.Errorf("url %q is not served from this asset store", url)
	}

	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}

func (s *MediaService) putObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(assetCacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %q: %w", key, err)
	}
	return nil
}

// probeDuration runs ffprobe against the spooled file and parses the
// container duration.
func probeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, err
	}

	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}
	return duration, nil
}

// readAndValidateImage loads the upload into memory with size and type checks.
func readAndValidateImage(file multipart.File, header *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if header.Size > maxSize {
		return nil, model.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, model.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data[:min(len(data), 512)])
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !model.IsAllowedImageType(contentType) {
		return nil, model.ErrInvalidImageType
	}

	return data, nil
}
