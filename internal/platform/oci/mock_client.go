package oci

import (
	"context"

	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/resourcemanager"
)

// MockClient is a mock implementation of API. Each method delegates to the
// corresponding Func field when set and otherwise returns an empty success.
type MockClient struct {
	ListInstancesFunc       func(ctx context.Context) ([]core.Instance, error)
	ListVnicAttachmentsFunc func(ctx context.Context, instanceID string) ([]core.VnicAttachment, error)

	ListVcnsFunc  func(ctx context.Context) ([]core.Vcn, error)
	DeleteVcnFunc func(ctx context.Context, vcnID string) error

	GetSubnetFunc    func(ctx context.Context, subnetID string) (core.Subnet, error)
	ListSubnetsFunc  func(ctx context.Context, vcnID string) ([]core.Subnet, error)
	DeleteSubnetFunc func(ctx context.Context, subnetID string) error

	ListRouteTablesFunc  func(ctx context.Context, vcnID string) ([]core.RouteTable, error)
	DeleteRouteTableFunc func(ctx context.Context, routeTableID string) error

	ListSecurityListsFunc  func(ctx context.Context, vcnID string) ([]core.SecurityList, error)
	DeleteSecurityListFunc func(ctx context.Context, securityListID string) error

	ListInternetGatewaysFunc  func(ctx context.Context, vcnID string) ([]core.InternetGateway, error)
	DeleteInternetGatewayFunc func(ctx context.Context, gatewayID string) error

	ListNatGatewaysFunc  func(ctx context.Context, vcnID string) ([]core.NatGateway, error)
	DeleteNatGatewayFunc func(ctx context.Context, gatewayID string) error

	ListServiceGatewaysFunc  func(ctx context.Context, vcnID string) ([]core.ServiceGateway, error)
	DeleteServiceGatewayFunc func(ctx context.Context, gatewayID string) error

	CreateApplyJobFunc func(ctx context.Context, stackID, displayName string) (resourcemanager.Job, error)
	GetJobFunc         func(ctx context.Context, jobID string) (resourcemanager.Job, error)
	GetJobLogsFunc     func(ctx context.Context, jobID string) (string, error)
}

// Ensure interface compliance.
var _ API = (*MockClient)(nil)

// ListInstances mocks instance listing.
func (m *MockClient) ListInstances(ctx context.Context) ([]core.Instance, error) {
	if m.ListInstancesFunc != nil {
		return m.ListInstancesFunc(ctx)
	}
	return nil, nil
}

// ListVnicAttachments mocks VNIC attachment listing.
func (m *MockClient) ListVnicAttachments(ctx context.Context, instanceID string) ([]core.VnicAttachment, error) {
	if m.ListVnicAttachmentsFunc != nil {
		return m.ListVnicAttachmentsFunc(ctx, instanceID)
	}
	return nil, nil
}

// ListVcns mocks VCN listing.
func (m *MockClient) ListVcns(ctx context.Context) ([]core.Vcn, error) {
	if m.ListVcnsFunc != nil {
		return m.ListVcnsFunc(ctx)
	}
	return nil, nil
}

// DeleteVcn mocks VCN deletion.
func (m *MockClient) DeleteVcn(ctx context.Context, vcnID string) error {
	if m.DeleteVcnFunc != nil {
		return m.DeleteVcnFunc(ctx, vcnID)
	}
	return nil
}

// GetSubnet mocks subnet retrieval.
func (m *MockClient) GetSubnet(ctx context.Context, subnetID string) (core.Subnet, error) {
	if m.GetSubnetFunc != nil {
		return m.GetSubnetFunc(ctx, subnetID)
	}
	return core.Subnet{}, nil
}

// ListSubnets mocks subnet listing.
func (m *MockClient) ListSubnets(ctx context.Context, vcnID string) ([]core.Subnet, error) {
	if m.ListSubnetsFunc != nil {
		return m.ListSubnetsFunc(ctx, vcnID)
	}
	return nil, nil
}

// DeleteSubnet mocks subnet deletion.
func (m *MockClient) DeleteSubnet(ctx context.Context, subnetID string) error {
	if m.DeleteSubnetFunc != nil {
		return m.DeleteSubnetFunc(ctx, subnetID)
	}
	return nil
}

// ListRouteTables mocks route table listing.
func (m *MockClient) ListRouteTables(ctx context.Context, vcnID string) ([]core.RouteTable, error) {
	if m.ListRouteTablesFunc != nil {
		return m.ListRouteTablesFunc(ctx, vcnID)
	}
	return nil, nil
}

// DeleteRouteTable mocks route table deletion.
func (m *MockClient) DeleteRouteTable(ctx context.Context, routeTableID string) error {
	if m.DeleteRouteTableFunc != nil {
		return m.DeleteRouteTableFunc(ctx, routeTableID)
	}
	return nil
}

// ListSecurityLists mocks security list listing.
func (m *MockClient) ListSecurityLists(ctx context.Context, vcnID string) ([]core.SecurityList, error) {
	if m.ListSecurityListsFunc != nil {
		return m.ListSecurityListsFunc(ctx, vcnID)
	}
	return nil, nil
}

// DeleteSecurityList mocks security list deletion.
func (m *MockClient) DeleteSecurityList(ctx context.Context, securityListID string) error {
	if m.DeleteSecurityListFunc != nil {
		return m.DeleteSecurityListFunc(ctx, securityListID)
	}
	return nil
}

// ListInternetGateways mocks internet gateway listing.
func (m *MockClient) ListInternetGateways(ctx context.Context, vcnID string) ([]core.InternetGateway, error) {
	if m.ListInternetGatewaysFunc != nil {
		return m.ListInternetGatewaysFunc(ctx, vcnID)
	}
	return nil, nil
}

// DeleteInternetGateway mocks internet gateway deletion.
func (m *MockClient) DeleteInternetGateway(ctx context.Context, gatewayID string) error {
	if m.DeleteInternetGatewayFunc != nil {
		return m.DeleteInternetGatewayFunc(ctx, gatewayID)
	}
	return nil
}

// ListNatGateways mocks NAT gateway listing.
func (m *MockClient) ListNatGateways(ctx context.Context, vcnID string) ([]core.NatGateway, error) {
	if m.ListNatGatewaysFunc != nil {
		return m.ListNatGatewaysFunc(ctx, vcnID)
	}
	return nil, nil
}

// DeleteNatGateway mocks NAT gateway deletion.
func (m *MockClient) DeleteNatGateway(ctx context.Context, gatewayID string) error {
	if m.DeleteNatGatewayFunc != nil {
		return m.DeleteNatGatewayFunc(ctx, gatewayID)
	}
	return nil
}

// ListServiceGateways mocks service gateway listing.
func (m *MockClient) ListServiceGateways(ctx context.Context, vcnID string) ([]core.ServiceGateway, error) {
	if m.ListServiceGatewaysFunc != nil {
		return m.ListServiceGatewaysFunc(ctx, vcnID)
	}
	return nil, nil
}

// DeleteServiceGateway mocks service gateway deletion.
func (m *MockClient) DeleteServiceGateway(ctx context.Context, gatewayID string) error {
	if m.DeleteServiceGatewayFunc != nil {
		return m.DeleteServiceGatewayFunc(ctx, gatewayID)
	}
	return nil
}

// CreateApplyJob mocks job creation.
func (m *MockClient) CreateApplyJob(ctx context.Context, stackID, displayName string) (resourcemanager.Job, error) {
	if m.CreateApplyJobFunc != nil {
		return m.CreateApplyJobFunc(ctx, stackID, displayName)
	}
	return resourcemanager.Job{}, nil
}

// GetJob mocks job retrieval.
func (m *MockClient) GetJob(ctx context.Context, jobID string) (resourcemanager.Job, error) {
	if m.GetJobFunc != nil {
		return m.GetJobFunc(ctx, jobID)
	}
	return resourcemanager.Job{}, nil
}

// GetJobLogs mocks job log retrieval.
func (m *MockClient) GetJobLogs(ctx context.Context, jobID string) (string, error) {
	if m.GetJobLogsFunc != nil {
		return m.GetJobLogsFunc(ctx, jobID)
	}
	return "", nil
}
