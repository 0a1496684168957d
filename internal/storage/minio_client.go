package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"blogCPT/internal/config"
)

type ImageInfo struct {
	Name      string
	Size      int64
	CreatedAt time.Time
}

type Storage interface {
	UploadImage(ctx context.Context, objectName, contentType string, file io.Reader, size int64) error
	DeleteImage(ctx context.Context, objectName string) error
	ImageExists(ctx context.Context, objectName string) (bool, error)
	ListImages(ctx context.Context) ([]ImageInfo, error)
}

type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания bucket %s: %w", cfg.MinIO.BucketName, err)
		}
		log.Printf("Создан bucket: %s", cfg.MinIO.BucketName)
	}

	return &MinIOClient{client: client, bucket: cfg.MinIO.BucketName}, nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, objectName, contentType string, file io.Reader, size int64) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

func (m *MinIOClient) ImageExists(ctx context.Context, objectName string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("ошибка проверки объекта в MinIO: %w", err)
	}
	return true, nil
}

func (m *MinIOClient) ListImages(ctx context.Context) ([]ImageInfo, error) {
	images := []ImageInfo{}

	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("ошибка получения списка объектов из MinIO: %w", object.Err)
		}

		images = append(images, ImageInfo{
			Name:      object.Key,
			Size:      object.Size,
			CreatedAt: object.LastModified,
		})
	}

	return images, nil
}
