// Package oci provides a narrow wrapper around the OCI API surface this tool
// needs: compute/VNIC listing for the teardown liveness check, virtual
// network resource management, and Resource Manager jobs.
package oci

import (
	"context"

	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/resourcemanager"
)

// ComputeLister enumerates compute instances and their network attachments.
type ComputeLister interface {
	// ListInstances returns every instance in the compartment, including
	// terminated ones; callers filter by lifecycle state.
	ListInstances(ctx context.Context) ([]core.Instance, error)

	// ListVnicAttachments returns the VNIC attachments of one instance.
	ListVnicAttachments(ctx context.Context, instanceID string) ([]core.VnicAttachment, error)
}

// VirtualNetworkManager manages a VCN and its dependent resources.
type VirtualNetworkManager interface {
	ListVcns(ctx context.Context) ([]core.Vcn, error)
	DeleteVcn(ctx context.Context, vcnID string) error

	GetSubnet(ctx context.Context, subnetID string) (core.Subnet, error)
	ListSubnets(ctx context.Context, vcnID string) ([]core.Subnet, error)
	DeleteSubnet(ctx context.Context, subnetID string) error

	ListRouteTables(ctx context.Context, vcnID string) ([]core.RouteTable, error)
	DeleteRouteTable(ctx context.Context, routeTableID string) error

	ListSecurityLists(ctx context.Context, vcnID string) ([]core.SecurityList, error)
	DeleteSecurityList(ctx context.Context, securityListID string) error

	ListInternetGateways(ctx context.Context, vcnID string) ([]core.InternetGateway, error)
	DeleteInternetGateway(ctx context.Context, gatewayID string) error

	ListNatGateways(ctx context.Context, vcnID string) ([]core.NatGateway, error)
	DeleteNatGateway(ctx context.Context, gatewayID string) error

	ListServiceGateways(ctx context.Context, vcnID string) ([]core.ServiceGateway, error)
	DeleteServiceGateway(ctx context.Context, gatewayID string) error
}

// JobManager drives asynchronous Resource Manager jobs.
type JobManager interface {
	// CreateApplyJob submits an auto-approved APPLY job for the stack.
	CreateApplyJob(ctx context.Context, stackID, displayName string) (resourcemanager.Job, error)

	// GetJob fetches the current job record.
	GetJob(ctx context.Context, jobID string) (resourcemanager.Job, error)

	// GetJobLogs returns the job's raw log content.
	GetJobLogs(ctx context.Context, jobID string) (string, error)
}

// API combines all OCI capabilities consumed by this tool.
type API interface {
	ComputeLister
	VirtualNetworkManager
	JobManager
}
