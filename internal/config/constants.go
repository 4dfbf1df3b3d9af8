package config

import "time"

// Defaults mirror the service's container deployment conventions.
const (
	// DefaultNetworkName is the display name of the VCN managed by this tool.
	DefaultNetworkName = "gateway-vcn"

	// DefaultStateRoot is used when XDG_STATE_HOME is unset.
	DefaultStateRoot = "/state"

	// DefaultNamespace is used when TIN_NAMESPACE is unset.
	DefaultNamespace = "dynamicalsystem"

	// DefaultService is used when TIN_SERVICE_NAME is unset.
	DefaultService = "gateway"

	// DefaultTerraformDir is the terraform configuration directory relative
	// to the working directory.
	DefaultTerraformDir = "terraform"

	// DefaultPrivateKeyPath is where the mounted OCI API key is expected.
	DefaultPrivateKeyPath = "/secrets/oci_api_key.pem"

	// DefaultSSHPublicKeyPath is where the mounted SSH public key is expected.
	DefaultSSHPublicKeyPath = "/secrets/id_oci.pub"

	// DockerSecretPrivateKeyPath is checked first; Docker mounts secrets
	// read-only under /run/secrets.
	DockerSecretPrivateKeyPath = "/run/secrets/oci_private_key"

	// DefaultCleanupTarget is the terraform address destroyed between
	// capacity retries.
	DefaultCleanupTarget = "oci_core_instance.free_instance"
)

// Fixed waiting intervals. Deliberately non-adaptive; capacity recovery on
// the provider side is slow enough that exponential backoff buys nothing.
const (
	// DefaultPollInterval is the delay between job status queries.
	DefaultPollInterval = 60 * time.Second

	// DefaultRetryInterval is the backoff between capacity-failed applies.
	DefaultRetryInterval = 60 * time.Second

	// DefaultSettleDelay lets child-resource deletions propagate before the
	// parent network is deleted.
	DefaultSettleDelay = 5 * time.Second
)
