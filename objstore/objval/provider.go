package objval

import (
	"fmt"
	"strings"
)

// Provider represents a storage backend family.
type Provider int

const (
	// ProviderNone means not using a provider.
	ProviderNone Provider = iota

	// ProviderAWS is AWS S3.
	ProviderAWS

	// ProviderGCP is Google Cloud Storage.
	ProviderGCP

	// ProviderAzure is Azure blob storage.
	ProviderAzure

	// ProviderScality is a Scality S3 compatible endpoint, usually the replication source.
	ProviderScality
)

// String returns a human readable representation of the provider.
func (p Provider) String() string {
	switch p {
	case ProviderNone:
		return ""
	case ProviderAWS:
		return "AWS"
	case ProviderAzure:
		return "Azure"
	case ProviderGCP:
		return "GCP"
	case ProviderScality:
		return "Scality"
	}

	return fmt.Sprintf("unknown(%d)", int(p))
}

// ParseProvider parses a provider from its configuration name, case insensitive.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(s) {
	case "aws", "s3":
		return ProviderAWS, nil
	case "scality":
		return ProviderScality, nil
	case "azure", "az":
		return ProviderAzure, nil
	case "gcp", "gcs", "gs":
		return ProviderGCP, nil
	}

	return ProviderNone, fmt.Errorf("unknown provider %q", s)
}
