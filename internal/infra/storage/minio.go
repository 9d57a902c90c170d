package storage

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore uploads to an S3-compatible endpoint. The container is the bucket.
type MinioStore struct {
	client *minio.Client
	region string
	scheme string

	mu      sync.Mutex
	buckets map[string]bool
}

// NewMinio buat koneksi MinIO (tanpa network call)
func NewMinio(endpoint, region, accessKey, secretKey string, useSSL bool) (*MinioStore, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &MinioStore{client: cli, region: region, scheme: scheme, buckets: map[string]bool{}}, nil
}

// pastikan bucket ada, sekali per bucket
func (s *MinioStore) ensureBucket(ctx context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buckets[bucket] {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return err
		}
	}
	s.buckets[bucket] = true
	return nil
}

func (s *MinioStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if err := s.ensureBucket(ctx, bucket); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// URL publik (jika bucket public), kalau private harus generate presigned URL
func (s *MinioStore) URL(bucket, key string) string {
	return fmt.Sprintf("%s://%s/%s/%s", s.scheme, s.client.EndpointURL().Host, bucket, key)
}
