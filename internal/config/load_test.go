package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load consults so tests control the inputs.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TF_VAR_tenancy_ocid", "TF_VAR_user_ocid", "TF_VAR_fingerprint",
		"TF_VAR_region", "TF_VAR_compartment_id", "TF_VAR_availability_domain",
		"TF_VAR_private_key_path", "TF_VAR_ssh_public_key",
		"TIN_STACK_ID", "XDG_STATE_HOME", "TIN_NAMESPACE", "TIN_SERVICE_NAME",
		"OCI_PRIVATE_API_KEY", "OCI_PUBLIC_SSH_KEY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TF_VAR_tenancy_ocid", "ocid1.tenancy.oc1..env")
	t.Setenv("TF_VAR_user_ocid", "ocid1.user.oc1..env")
	t.Setenv("TF_VAR_fingerprint", "11:22:33")
	t.Setenv("TF_VAR_region", "uk-london-1")
	t.Setenv("TF_VAR_compartment_id", "ocid1.compartment.oc1..env")
	t.Setenv("TF_VAR_ssh_public_key", "ssh-ed25519 AAAA test")
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("TIN_NAMESPACE", "testing")
	t.Setenv("TIN_SERVICE_NAME", "gw")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ocid1.tenancy.oc1..env", cfg.TenancyOCID)
	assert.Equal(t, "testing", cfg.Namespace)
	assert.Equal(t, "gw", cfg.Service)
	assert.Contains(t, cfg.StatePath(), filepath.Join("testing", "gw", "terraform", "terraform.tfstate"))
}

func TestLoadMissingCredentials(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenancy_ocid")
}

func TestLoadTFVarsFallback(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	tfvars := `
tenancy_ocid   = "ocid1.tenancy.oc1..tfvars"
user_ocid      = "ocid1.user.oc1..tfvars"
fingerprint    = "44:55:66"
region         = "eu-frankfurt-1"
compartment_id = "ocid1.compartment.oc1..tfvars"
ssh_public_key = "ssh-ed25519 BBBB tfvars"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "terraform.tfvars"), []byte(tfvars), 0o600))

	cfg := defaults()
	cfg.TerraformDir = dir
	require.NoError(t, cfg.applyTFVars())

	assert.Equal(t, "ocid1.tenancy.oc1..tfvars", cfg.TenancyOCID)
	assert.Equal(t, "eu-frankfurt-1", cfg.Region)
	assert.Equal(t, "ssh-ed25519 BBBB tfvars", cfg.SSHPublicKey)
}

func TestEnvironmentOverridesTFVars(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	tfvars := `
tenancy_ocid   = "ocid1.tenancy.oc1..tfvars"
user_ocid      = "ocid1.user.oc1..tfvars"
fingerprint    = "44:55:66"
region         = "eu-frankfurt-1"
compartment_id = "ocid1.compartment.oc1..tfvars"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "terraform.tfvars"), []byte(tfvars), 0o600))
	t.Setenv("TF_VAR_region", "uk-london-1")

	cfg := defaults()
	cfg.TerraformDir = dir
	require.NoError(t, cfg.applyTFVars())
	cfg.applyEnvironment()

	assert.Equal(t, "uk-london-1", cfg.Region)
	assert.Equal(t, "ocid1.tenancy.oc1..tfvars", cfg.TenancyOCID)
}

func TestLoadYAMLParameterFile(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)

	params := filepath.Join(t.TempDir(), "tin.yaml")
	body := `
network_name: edge-vcn
retry_interval: 30s
max_attempts: 5
stack_id: ocid1.ormstack.oc1..yaml
`
	require.NoError(t, os.WriteFile(params, []byte(body), 0o600))

	cfg, err := Load(params)
	require.NoError(t, err)

	assert.Equal(t, "edge-vcn", cfg.NetworkName)
	assert.Equal(t, 30*time.Second, cfg.RetryInterval)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, "ocid1.ormstack.oc1..yaml", cfg.StackID)
}

func TestResolveSSHPublicKeyFromFile(t *testing.T) {
	clearEnv(t)

	keyPath := filepath.Join(t.TempDir(), "id_oci.pub")
	require.NoError(t, os.WriteFile(keyPath, []byte("ssh-ed25519 CCCC file\n"), 0o600))
	t.Setenv("OCI_PUBLIC_SSH_KEY", keyPath)

	cfg := defaults()
	require.NoError(t, cfg.resolveSSHPublicKey())
	assert.Equal(t, "ssh-ed25519 CCCC file", cfg.SSHPublicKey)
}
