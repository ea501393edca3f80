package storage

import "errors"

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Validate reports missing settings.
func (c *MinIOConfig) Validate() error {
	if c == nil || c.Endpoint == "" {
		return errors.New("minio endpoint not configured")
	}
	if c.Bucket == "" {
		return errors.New("minio bucket not configured")
	}
	return nil
}
