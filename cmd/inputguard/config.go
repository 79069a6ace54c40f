package main

import (
	"fmt"
	"time"
)

type appConfig struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	Service         string        `env:"APP_NAME" envDefault:"inputguard"`
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ProxyHeaders    []string      `env:"TRUSTED_PROXY_HEADERS" envDefault:"CF-Connecting-IP,X-Forwarded-For,X-Real-IP"`

	AuditStorage string `env:"AUDIT_STORAGE" envDefault:"slog"` // slog | mongo
	AuditHashKey string `env:"AUDIT_HASH_KEY"`

	UploadStorage string `env:"UPLOAD_STORAGE" envDefault:"local"` // local | s3
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	UploadBaseURL string `env:"UPLOAD_BASE_URL" envDefault:"/uploads"`
	MIMETableFile string `env:"UPLOAD_MIME_TABLE"`
}

func (c *appConfig) Validate() error {
	switch c.AuditStorage {
	case "slog", "mongo":
	default:
		return fmt.Errorf("AUDIT_STORAGE must be slog or mongo, got %q", c.AuditStorage)
	}
	switch c.UploadStorage {
	case "local", "s3":
	default:
		return fmt.Errorf("UPLOAD_STORAGE must be local or s3, got %q", c.UploadStorage)
	}
	if c.AuditHashKey != "" && (len(c.AuditHashKey) < 16 || len(c.AuditHashKey) > 64) {
		return fmt.Errorf("AUDIT_HASH_KEY must be 16 to 64 bytes")
	}
	return nil
}
