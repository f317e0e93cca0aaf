// internal/services/storage/uploads/config.go
package uploads

import (
	"fmt"
	"time"
)

type Config struct {
	// MaxFileBytes limits the decoded file size.
	MaxFileBytes  int64         `mapstructure:"max_file_bytes"`
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		MaxFileBytes:  25 << 20,
		UploadTimeout: 30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.MaxFileBytes <= 0 {
		return fmt.Errorf("max_file_bytes must be positive")
	}
	if c.UploadTimeout <= 0 {
		return fmt.Errorf("upload_timeout must be positive")
	}
	return nil
}
