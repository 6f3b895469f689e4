// Package upload stores multipart uploads on disk and produces the
// stored-file descriptors consumed by the tree service.
package upload

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/policy.yaml
var policyFile embed.FS

// Policy is the upload acceptance policy loaded from the embedded YAML file.
type Policy struct {
	MaxSizeBytes     int64    `yaml:"max_size_bytes"`
	AllowedMimeTypes []string `yaml:"allowed_mime_types"`
}

// LoadPolicy reads the embedded policy file.
func LoadPolicy() (*Policy, error) {
	data, err := policyFile.ReadFile("config/policy.yaml")
	if err != nil {
		return nil, fmt.Errorf("read upload policy: %w", err)
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("unmarshal upload policy: %w", err)
	}

	if policy.MaxSizeBytes <= 0 || len(policy.AllowedMimeTypes) == 0 {
		return nil, fmt.Errorf("upload policy is incomplete")
	}

	return &policy, nil
}

// Allows reports whether the given MIME type is accepted.
func (p *Policy) Allows(mimeType string) bool {
	for _, allowed := range p.AllowedMimeTypes {
		if allowed == mimeType {
			return true
		}
	}
	return false
}
