package filestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/modelvault/modelvault/pkg/configs"
	nlog "github.com/modelvault/modelvault/pkg/log"
)

const s3OpTimeout = 10 * time.Second

// s3Store 对象存储后端：活动区与备份区映射为同一 bucket 下的两个前缀，
// 搬迁通过 CopyObject + RemoveObject 实现.
type s3Store struct {
	cli          *minio.Client
	bucket       string
	activePrefix string
	backupPrefix string
}

func newS3Store(ctx context.Context, cfg *configs.StorageConfig) (Store, error) {
	s3cfg := cfg.S3

	endpoint := s3cfg.Endpoint
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			s3cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s3cfg.AccessKeyID, s3cfg.SecretAccessKey, ""),
		Secure: s3cfg.UseSSL,
		Region: s3cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("modelvault", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, s3cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", s3cfg.Bucket, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, s3cfg.Bucket, minio.MakeBucketOptions{Region: s3cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", s3cfg.Bucket, err)
		}

		nlog.Logger().Info().Str("bucket", s3cfg.Bucket).Msg("bucket created")
	}

	nlog.Logger().Info().Str("endpoint", s3cfg.Endpoint).Str("bucket", s3cfg.Bucket).Msg("s3 file store ready")

	return &s3Store{
		cli:          cli,
		bucket:       s3cfg.Bucket,
		activePrefix: s3cfg.ActivePrefix,
		backupPrefix: s3cfg.BackupPrefix,
	}, nil
}

func (s *s3Store) Place(ctx context.Context, name string, r io.Reader, size int64) error {
	key := s.activePrefix + path.Base(name)

	if _, err := s.cli.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: "model/gltf-binary",
	}); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	return nil
}

func (s *s3Store) RelocateToBackup(name string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s3OpTimeout)
	defer cancel()

	name = path.Base(name)
	src := s.activePrefix + name

	if !s.statActive(ctx, name) {
		return false, nil
	}

	if _, err := s.cli.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: s.backupPrefix + name},
		minio.CopySrcOptions{Bucket: s.bucket, Object: src},
	); err != nil {
		return false, fmt.Errorf("copy %s to backup: %w", name, err)
	}

	if err := s.cli.RemoveObject(ctx, s.bucket, src, minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("remove %s from active: %w", name, err)
	}

	return true, nil
}

func (s *s3Store) ExistsActive(name string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), s3OpTimeout)
	defer cancel()

	return s.statActive(ctx, path.Base(name))
}

func (s *s3Store) statActive(ctx context.Context, name string) bool {
	_, err := s.cli.StatObject(ctx, s.bucket, s.activePrefix+name, minio.StatObjectOptions{})
	return err == nil
}

func (s *s3Store) ActivePath(name string) string {
	return s.activePrefix + path.Base(name)
}

func (s *s3Store) BackupPath(name string) string {
	return s.backupPrefix + path.Base(name)
}

func (s *s3Store) ListActive(ctx context.Context) ([]string, error) {
	var names []string

	for obj := range s.cli.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.activePrefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list active area: %w", obj.Err)
		}

		names = append(names, path.Base(obj.Key))
	}

	return names, nil
}

func (s *s3Store) HealthCheck(ctx context.Context) error {
	if _, err := s.cli.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("s3 unavailable: %w", err)
	}

	return nil
}

func (s *s3Store) Close() error { return nil }
