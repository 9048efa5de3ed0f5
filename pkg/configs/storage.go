package configs

import (
	"github.com/spf13/viper"
)

// StorageBackend 文件仓库后端类型.
type StorageBackend string

const (
	StorageBackendLocal StorageBackend = "local" // 本地双目录（活动区/备份区）
	StorageBackendS3    StorageBackend = "s3"    // 对象存储，前缀模拟双区

	DefaultStorageBackend   = string(StorageBackendLocal)
	DefaultActiveDir        = "data/models"        // 活动区目录
	DefaultBackupDir        = "data/models_backup" // 备份区目录
	DefaultMaxUploadSizeMB  = 100                  // 单文件上传上限（MB）
	DefaultServePathPrefix  = "/models"            // 活动区文件的对外访问前缀
	DefaultS3Endpoint       = "localhost:9000"
	DefaultS3AccessKey      = "minioadmin"
	DefaultS3SecretKey      = "minioadmin"
	DefaultS3UseSSL         = false
	DefaultS3Bucket         = "modelvault"
	DefaultS3Region         = "us-east-1"
	DefaultS3ActivePrefix   = "active/"
	DefaultS3BackupPrefix   = "backup/"
)

type (
	// StorageConfig 文件仓库配置：本地双目录或 S3 双前缀.
	StorageConfig struct {
		Backend         string   `mapstructure:"backend"            rule:"oneof=local s3"`
		ActiveDir       string   `mapstructure:"active_dir"`
		BackupDir       string   `mapstructure:"backup_dir"`
		MaxUploadSizeMB int64    `mapstructure:"max_upload_size_mb" rule:"min=1"`
		ServePathPrefix string   `mapstructure:"serve_path_prefix"`
		S3              S3Config `mapstructure:"s3"`
	}

	// S3Config MinIO/S3 后端配置.
	S3Config struct {
		Endpoint        string `mapstructure:"endpoint"`
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
		UseSSL          bool   `mapstructure:"use_ssl"`
		Bucket          string `mapstructure:"bucket"`
		Region          string `mapstructure:"region"`
		ActivePrefix    string `mapstructure:"active_prefix"`
		BackupPrefix    string `mapstructure:"backup_prefix"`
	}
)

// MaxUploadBytes 上传上限换算为字节.
func (c *StorageConfig) MaxUploadBytes() int64 {
	return c.MaxUploadSizeMB * 1024 * 1024
}

// setDefaults 设置文件仓库配置的默认值.
func (c *StorageConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", DefaultStorageBackend)
	v.SetDefault("storage.active_dir", DefaultActiveDir)
	v.SetDefault("storage.backup_dir", DefaultBackupDir)
	v.SetDefault("storage.max_upload_size_mb", DefaultMaxUploadSizeMB)
	v.SetDefault("storage.serve_path_prefix", DefaultServePathPrefix)
	v.SetDefault("storage.s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("storage.s3.access_key_id", DefaultS3AccessKey)
	v.SetDefault("storage.s3.secret_access_key", DefaultS3SecretKey)
	v.SetDefault("storage.s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("storage.s3.bucket", DefaultS3Bucket)
	v.SetDefault("storage.s3.region", DefaultS3Region)
	v.SetDefault("storage.s3.active_prefix", DefaultS3ActivePrefix)
	v.SetDefault("storage.s3.backup_prefix", DefaultS3BackupPrefix)
}
