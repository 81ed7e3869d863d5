package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/todolist/internal/netx"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	sc "github.com/dmitrijs2005/todolist/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	upload = netx.UploadToPresignedURL

	now = time.Now
)

const presignExpiry = 15 * time.Minute

// Snapshot is the backup document.
type Snapshot struct {
	CreatedAt time.Time     `json:"created_at"`
	Today     []models.Item `json:"today"`
	Lists     []models.List `json:"lists"`
}

// BackupService dumps every list into a JSON document in object storage.
type BackupService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewBackupService(m repomanager.RepositoryManager, cfg *sc.Config) *BackupService {
	return &BackupService{repomanager: m, config: cfg}
}

// BackupKey returns a fresh object key of the form backups/YYYY/M/D/<uuid>.json.
func BackupKey(t time.Time) string {
	return fmt.Sprintf("backups/%d/%d/%d/%v.json", t.Year(), t.Month(), t.Day(), uuid.New())
}

// Snapshot reads the Today items and all custom lists as they are. It does
// not seed an empty Today list.
func (s *BackupService) Snapshot(ctx context.Context) (*Snapshot, error) {
	today, err := s.repomanager.Items().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read today: %w", err)
	}

	all, err := s.repomanager.Lists().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read lists: %w", err)
	}

	return &Snapshot{CreatedAt: now().UTC(), Today: today, Lists: all}, nil
}

func (s *BackupService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// GetPresignedPutURL returns a new backup key and a URL that accepts a PUT
// of that object for presignExpiry.
func (s *BackupService) GetPresignedPutURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(netx.ContentTypeJSON),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Upload takes a snapshot and stores it, returning the object key.
func (s *BackupService) Upload(ctx context.Context) (string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := BackupKey(snap.CreatedAt)
	url, err := s.GetPresignedPutURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	if err := upload(ctx, url, netx.ContentTypeJSON, body); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}
