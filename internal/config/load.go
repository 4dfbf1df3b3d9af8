package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load assembles the configuration from all sources. Precedence, lowest to
// highest: built-in defaults, terraform.tfvars (inside the terraform
// directory), the optional YAML parameter file, process environment.
// Secret files are resolved after merging, then the result is validated.
func Load(paramFile string) (*Config, error) {
	cfg := defaults()

	if err := cfg.applyTFVars(); err != nil {
		return nil, err
	}
	if paramFile != "" {
		if err := cfg.applyFile(paramFile); err != nil {
			return nil, err
		}
	}
	cfg.applyEnvironment()

	if err := cfg.resolveSecrets(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		TerraformDir:  DefaultTerraformDir,
		NetworkName:   DefaultNetworkName,
		StateRoot:     DefaultStateRoot,
		Namespace:     DefaultNamespace,
		Service:       DefaultService,
		PollInterval:  DefaultPollInterval,
		RetryInterval: DefaultRetryInterval,
		SettleDelay:   DefaultSettleDelay,
		CleanupTarget: DefaultCleanupTarget,
	}
}

// tfvarsFile is the subset of terraform.tfvars this tool understands.
// Unknown attributes are terraform's business, not ours.
type tfvarsFile struct {
	TenancyOCID        *string  `hcl:"tenancy_ocid,optional"`
	UserOCID           *string  `hcl:"user_ocid,optional"`
	Fingerprint        *string  `hcl:"fingerprint,optional"`
	Region             *string  `hcl:"region,optional"`
	CompartmentID      *string  `hcl:"compartment_id,optional"`
	AvailabilityDomain *string  `hcl:"availability_domain,optional"`
	PrivateKeyPath     *string  `hcl:"private_key_path,optional"`
	SSHPublicKey       *string  `hcl:"ssh_public_key,optional"`
	Remain             hcl.Body `hcl:",remain"`
}

// applyTFVars merges terraform.tfvars if it exists; a missing file is not an
// error.
func (c *Config) applyTFVars() error {
	path := filepath.Join(c.TerraformDir, "terraform.tfvars")
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	var vars tfvarsFile
	if err := hclsimple.DecodeFile(path, nil, &vars); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	setIfPresent(&c.TenancyOCID, vars.TenancyOCID)
	setIfPresent(&c.UserOCID, vars.UserOCID)
	setIfPresent(&c.Fingerprint, vars.Fingerprint)
	setIfPresent(&c.Region, vars.Region)
	setIfPresent(&c.CompartmentID, vars.CompartmentID)
	setIfPresent(&c.AvailabilityDomain, vars.AvailabilityDomain)
	setIfPresent(&c.PrivateKeyPath, vars.PrivateKeyPath)
	setIfPresent(&c.SSHPublicKey, vars.SSHPublicKey)
	return nil
}

// applyFile merges a YAML parameter file over the current values.
func (c *Config) applyFile(path string) error {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read parameter file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     c,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode parameter file: %w", err)
	}
	return nil
}

// applyEnvironment merges process environment variables. The TF_VAR_* names
// match what terraform itself consumes so one environment drives both.
func (c *Config) applyEnvironment() {
	setIfEnv(&c.TenancyOCID, "TF_VAR_tenancy_ocid")
	setIfEnv(&c.UserOCID, "TF_VAR_user_ocid")
	setIfEnv(&c.Fingerprint, "TF_VAR_fingerprint")
	setIfEnv(&c.Region, "TF_VAR_region")
	setIfEnv(&c.CompartmentID, "TF_VAR_compartment_id")
	setIfEnv(&c.AvailabilityDomain, "TF_VAR_availability_domain")
	setIfEnv(&c.PrivateKeyPath, "TF_VAR_private_key_path")
	setIfEnv(&c.SSHPublicKey, "TF_VAR_ssh_public_key")
	setIfEnv(&c.StackID, "TIN_STACK_ID")
	setIfEnv(&c.StateRoot, "XDG_STATE_HOME")
	setIfEnv(&c.Namespace, "TIN_NAMESPACE")
	setIfEnv(&c.Service, "TIN_SERVICE_NAME")
}

// resolveSecrets locates the private API key and SSH public key on disk.
func (c *Config) resolveSecrets() error {
	if err := c.resolvePrivateKey(); err != nil {
		return err
	}
	return c.resolveSSHPublicKey()
}

// resolvePrivateKey fills PrivateKeyPath from the first usable source:
// an already-set path, a Docker secret (copied to a private temp file, since
// /run/secrets is not readable by the terraform provider's user), or the
// conventional secret mount.
func (c *Config) resolvePrivateKey() error {
	if c.PrivateKeyPath != "" {
		return nil
	}

	if _, err := os.Stat(DockerSecretPrivateKeyPath); err == nil {
		staged, err := stageDockerSecret(DockerSecretPrivateKeyPath)
		if err != nil {
			return err
		}
		c.PrivateKeyPath = staged
		return nil
	}

	path := os.Getenv("OCI_PRIVATE_API_KEY")
	if path == "" {
		path = DefaultPrivateKeyPath
	}
	if _, err := os.Stat(path); err == nil {
		c.PrivateKeyPath = path
	}
	return nil
}

// stageDockerSecret copies a secret to a temp file terraform can read.
func stageDockerSecret(src string) (string, error) {
	// #nosec G304
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("failed to read docker secret: %w", err)
	}
	dst := filepath.Join(os.TempDir(), "oci_api_key.pem")
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to stage private key: %w", err)
	}
	return dst, nil
}

// resolveSSHPublicKey reads the SSH public key content from disk unless the
// environment already supplied it inline.
func (c *Config) resolveSSHPublicKey() error {
	if c.SSHPublicKey != "" {
		return nil
	}

	path := os.Getenv("OCI_PUBLIC_SSH_KEY")
	if path == "" {
		path = DefaultSSHPublicKeyPath
	}
	if _, err := os.Stat(path); err != nil {
		// Fall back to the standard SSH location.
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil
		}
		path = filepath.Join(home, ".ssh", "id_oci.pub")
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read SSH public key %s: %w", path, err)
	}
	c.SSHPublicKey = strings.TrimSpace(string(data))
	return nil
}

func setIfPresent(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
