package config

import (
	"os"
	"strconv"
)

// StorageConfig holds the S3-compatible bucket the evidence images land in.
type StorageConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetStorageConfig() *StorageConfig {
	region := os.Getenv("STORAGE_REGION")
	if region == "" {
		region = "auto"
	}
	return &StorageConfig{
		AccountID:       os.Getenv("STORAGE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("STORAGE_BUCKET_NAME"),
		PublicURL:       os.Getenv("STORAGE_PUBLIC_URL"),
		Region:          region,
	}
}

// SearchConfig points at the Elasticsearch cluster backing ranked search.
type SearchConfig struct {
	URL             string
	PropagateBuffer int
}

func GetSearchConfig() *SearchConfig {
	url := os.Getenv("ELASTICSEARCH_URL")
	if url == "" {
		url = "http://localhost:9200"
	}
	buffer := 256
	if v := os.Getenv("SEARCH_PROPAGATE_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			buffer = n
		}
	}
	return &SearchConfig{URL: url, PropagateBuffer: buffer}
}
