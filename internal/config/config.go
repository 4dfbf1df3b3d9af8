// Package config defines deployment parameters and their loading rules.
//
// Parameters come from three sources, in priority order: process environment
// (the TF_VAR_* contract shared with terraform), an optional YAML parameter
// file, and a terraform.tfvars file. The resulting Config is threaded
// explicitly through constructors; nothing reads the environment after
// loading.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config holds all deployment parameters.
type Config struct {
	// OCI credentials and placement.
	TenancyOCID        string `mapstructure:"tenancy_ocid"`
	UserOCID           string `mapstructure:"user_ocid"`
	Fingerprint        string `mapstructure:"fingerprint"`
	Region             string `mapstructure:"region"`
	CompartmentID      string `mapstructure:"compartment_id"`
	AvailabilityDomain string `mapstructure:"availability_domain"`
	PrivateKeyPath     string `mapstructure:"private_key_path"`
	SSHPublicKey       string `mapstructure:"ssh_public_key"`

	// Resource Manager stack driven by the job flow.
	StackID string `mapstructure:"stack_id"`

	// Terraform execution workspace.
	TerraformDir string `mapstructure:"terraform_dir"`

	// Display name of the managed VCN targeted by cleanup.
	NetworkName string `mapstructure:"network_name"`

	// Backend state location: <StateRoot>/<Namespace>/<Service>/terraform.
	StateRoot string `mapstructure:"state_root"`
	Namespace string `mapstructure:"namespace"`
	Service   string `mapstructure:"service"`

	// Waiting behavior. Zero MaxAttempts means retry indefinitely.
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	SettleDelay   time.Duration `mapstructure:"settle_delay"`
	MaxAttempts   int           `mapstructure:"max_attempts"`

	// Terraform address of the resource most likely to be left behind by a
	// failed apply; destroyed between capacity retries.
	CleanupTarget string `mapstructure:"cleanup_target"`
}

// StateDir returns the directory holding persisted execution state.
func (c *Config) StateDir() string {
	return filepath.Join(c.StateRoot, c.Namespace, c.Service, "terraform")
}

// StatePath returns the terraform backend state file path.
func (c *Config) StatePath() string {
	return filepath.Join(c.StateDir(), "terraform.tfstate")
}

// TFVarEnv returns the TF_VAR_* environment passed to the terraform executor.
func (c *Config) TFVarEnv() map[string]string {
	env := map[string]string{
		"TF_VAR_tenancy_ocid":        c.TenancyOCID,
		"TF_VAR_user_ocid":           c.UserOCID,
		"TF_VAR_fingerprint":         c.Fingerprint,
		"TF_VAR_region":              c.Region,
		"TF_VAR_compartment_id":      c.CompartmentID,
		"TF_VAR_availability_domain": c.AvailabilityDomain,
	}
	if c.PrivateKeyPath != "" {
		env["TF_VAR_private_key_path"] = c.PrivateKeyPath
	}
	if c.SSHPublicKey != "" {
		env["TF_VAR_ssh_public_key"] = c.SSHPublicKey
	}
	return env
}

// Validate checks that all parameters required for API access are present.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"tenancy_ocid", c.TenancyOCID},
		{"user_ocid", c.UserOCID},
		{"fingerprint", c.Fingerprint},
		{"region", c.Region},
		{"compartment_id", c.CompartmentID},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("configuration is missing %s: set TF_VAR_%s, a parameter file entry, or terraform.tfvars", r.name, r.name)
		}
	}
	if c.RetryInterval <= 0 {
		return fmt.Errorf("retry_interval must be positive, got %v", c.RetryInterval)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", c.PollInterval)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must be zero (unlimited) or positive, got %d", c.MaxAttempts)
	}
	return nil
}
