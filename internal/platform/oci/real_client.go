package oci

import (
	"context"
	"fmt"
	"os"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/resourcemanager"

	"github.com/dynamicalsystem/tin/internal/config"
	"github.com/dynamicalsystem/tin/internal/util/retry"
)

// RealClient implements API against the live OCI endpoints.
type RealClient struct {
	compute       core.ComputeClient
	network       core.VirtualNetworkClient
	jobs          resourcemanager.ResourceManagerClient
	compartmentID string
}

var _ API = (*RealClient)(nil)

// NewRealClient builds an authenticated client from the deployment
// configuration. When the config carries the full credential set, a raw
// configuration provider is built from it; otherwise the SDK's default
// provider chain (~/.oci/config, instance principals) is used.
func NewRealClient(cfg *config.Config) (*RealClient, error) {
	provider, err := configurationProvider(cfg)
	if err != nil {
		return nil, err
	}

	compute, err := core.NewComputeClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}
	network, err := core.NewVirtualNetworkClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual network client: %w", err)
	}
	jobs, err := resourcemanager.NewResourceManagerClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource manager client: %w", err)
	}

	return &RealClient{
		compute:       compute,
		network:       network,
		jobs:          jobs,
		compartmentID: cfg.CompartmentID,
	}, nil
}

func configurationProvider(cfg *config.Config) (common.ConfigurationProvider, error) {
	if cfg.TenancyOCID == "" || cfg.UserOCID == "" || cfg.Fingerprint == "" || cfg.Region == "" || cfg.PrivateKeyPath == "" {
		return common.DefaultConfigProvider(), nil
	}

	// #nosec G304
	key, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key %s: %w", cfg.PrivateKeyPath, err)
	}
	return common.NewRawConfigurationProvider(
		cfg.TenancyOCID, cfg.UserOCID, cfg.Region, cfg.Fingerprint, string(key), nil,
	), nil
}

// withTransientRetry retries the operation with backoff while the API keeps
// answering 429 or 409.
func withTransientRetry(ctx context.Context, op func() error) error {
	return retry.WithExponentialBackoff(ctx, op,
		retry.WithMaxRetries(3),
		retry.WithRetryIf(IsRetryable))
}

// ListInstances implements ComputeLister.
func (c *RealClient) ListInstances(ctx context.Context) ([]core.Instance, error) {
	var items []core.Instance
	err := withTransientRetry(ctx, func() error {
		items = items[:0]
		var page *string
		for {
			resp, err := c.compute.ListInstances(ctx, core.ListInstancesRequest{
				CompartmentId: common.String(c.compartmentID),
				Page:          page,
			})
			if err != nil {
				return err
			}
			items = append(items, resp.Items...)
			if resp.OpcNextPage == nil {
				return nil
			}
			page = resp.OpcNextPage
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return items, nil
}

// ListVnicAttachments implements ComputeLister.
func (c *RealClient) ListVnicAttachments(ctx context.Context, instanceID string) ([]core.VnicAttachment, error) {
	var items []core.VnicAttachment
	err := withTransientRetry(ctx, func() error {
		items = items[:0]
		var page *string
		for {
			resp, err := c.compute.ListVnicAttachments(ctx, core.ListVnicAttachmentsRequest{
				CompartmentId: common.String(c.compartmentID),
				InstanceId:    common.String(instanceID),
				Page:          page,
			})
			if err != nil {
				return err
			}
			items = append(items, resp.Items...)
			if resp.OpcNextPage == nil {
				return nil
			}
			page = resp.OpcNextPage
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list VNIC attachments for %s: %w", instanceID, err)
	}
	return items, nil
}
