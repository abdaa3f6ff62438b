// Package media реализует загрузку медиафайлов (аватары, обложки)
// в S3-совместимое объектное хранилище и формирование публичных ссылок.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/media-backend/internal/config"
)

// s3API покрывает используемую часть клиента S3; нужен для подмены в тестах.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage загружает объекты в заданный bucket и строит публичные URL.
type S3Storage struct {
	client        s3API
	bucket        string
	publicBaseURL string
}

// New создает клиент S3 по настройкам подключения. Для MinIO и прочих
// совместимых хранилищ используется кастомный endpoint и path-style адресация.
func New(ctx context.Context, cfg config.S3Connection) (*S3Storage, error) {
	const op = "media.New"
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload кладет объект в bucket и возвращает публичную ссылку на него.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	const op = "media.Upload"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key), nil
}

// RandomKey возвращает уникальный ключ объекта вида
// <prefix>/<год>/<месяц>/<день>/<uuid><расширение исходного файла>.
func RandomKey(prefix, filename string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%d/%d/%v%s", prefix, d.Year(), int(d.Month()), d.Day(), uuid.New(), path.Ext(filename))
}
