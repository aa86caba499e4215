package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3EvidenceStore guarda en S3 las capturas de pantalla que el portal
// devuelve como evidencia de cada envío confirmado.
type S3EvidenceStore struct {
	BucketName string
	Client     *s3.Client
}

// NewS3EvidenceStore initializes the S3 evidence store
func NewS3EvidenceStore() (*S3EvidenceStore, error) {
	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(regionOrDefault()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %v", err)
	}

	bucketName := os.Getenv("S3_BUCKET_NAME")
	if bucketName == "" {
		return nil, fmt.Errorf("bucket name is not set in environment variables")
	}

	client := s3.NewFromConfig(cfg)

	return &S3EvidenceStore{
		BucketName: bucketName,
		Client:     client,
	}, nil
}

func regionOrDefault() string {
	if region := os.Getenv("AWS_REGION"); region != "" {
		return region
	}
	return "us-east-1"
}

// UploadScreenshot sube la evidencia PNG de un envío y devuelve la URL pública
func (s *S3EvidenceStore) UploadScreenshot(ctx context.Context, submissionID string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("evidencia vacía para el envío %s", submissionID)
	}

	key := fmt.Sprintf("compliance/%s_%d.png", submissionID, time.Now().Unix())

	putObjectInput := &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
	}

	if _, err := s.Client.PutObject(ctx, putObjectInput); err != nil {
		return "", fmt.Errorf("failed to upload screenshot to S3: %v", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.BucketName, key)
	return url, nil
}
