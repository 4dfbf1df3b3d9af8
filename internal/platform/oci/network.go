package oci

import (
	"context"
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
)

// ListVcns implements VirtualNetworkManager.
func (c *RealClient) ListVcns(ctx context.Context) ([]core.Vcn, error) {
	var items []core.Vcn
	err := withTransientRetry(ctx, func() error {
		items = items[:0]
		var page *string
		for {
			resp, err := c.network.ListVcns(ctx, core.ListVcnsRequest{
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
		return nil, fmt.Errorf("failed to list VCNs: %w", err)
	}
	return items, nil
}

// DeleteVcn implements VirtualNetworkManager.
func (c *RealClient) DeleteVcn(ctx context.Context, vcnID string) error {
	return withTransientRetry(ctx, func() error {
		_, err := c.network.DeleteVcn(ctx, core.DeleteVcnRequest{VcnId: common.String(vcnID)})
		return err
	})
}

// GetSubnet implements VirtualNetworkManager.
func (c *RealClient) GetSubnet(ctx context.Context, subnetID string) (core.Subnet, error) {
	var subnet core.Subnet
	err := withTransientRetry(ctx, func() error {
		resp, err := c.network.GetSubnet(ctx, core.GetSubnetRequest{SubnetId: common.String(subnetID)})
		if err != nil {
			return err
		}
		subnet = resp.Subnet
		return nil
	})
	if err != nil {
		return core.Subnet{}, fmt.Errorf("failed to get subnet %s: %w", subnetID, err)
	}
	return subnet, nil
}

// ListSubnets implements VirtualNetworkManager.
func (c *RealClient) ListSubnets(ctx context.Context, vcnID string) ([]core.Subnet, error) {
	var items []core.Subnet
	err := withTransientRetry(ctx, func() error {
		items = items[:0]
		var page *string
		for {
			resp, err := c.network.ListSubnets(ctx, core.ListSubnetsRequest{
				CompartmentId: common.String(c.compartmentID),
				VcnId:         common.String(vcnID),
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
		return nil, fmt.Errorf("failed to list subnets: %w", err)
	}
	return items, nil
}

// DeleteSubnet implements VirtualNetworkManager.
func (c *RealClient) DeleteSubnet(ctx context.Context, subnetID string) error {
	return withTransientRetry(ctx, func() error {
		_, err := c.network.DeleteSubnet(ctx, core.DeleteSubnetRequest{SubnetId: common.String(subnetID)})
		return err
	})
}

// ListRouteTables implements VirtualNetworkManager.
func (c *RealClient) ListRouteTables(ctx context.Context, vcnID string) ([]core.RouteTable, error) {
	var items []core.RouteTable
	err := withTransientRetry(ctx, func() error {
		items = items[:0]
		var page *string
		for {
			resp, err := c.network.ListRouteTables(ctx, core.ListRouteTablesRequest{
				CompartmentId: common.String(c.compartmentID),
				VcnId:         common.String(vcnID),
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
		return nil, fmt.Errorf("failed to list route tables: %w", err)
	}
	return items, nil
}

// DeleteRouteTable implements VirtualNetworkManager.
func (c *RealClient) DeleteRouteTable(ctx context.Context, routeTableID string) error {
	return withTransientRetry(ctx, func() error {
		_, err := c.network.DeleteRouteTable(ctx, core.DeleteRouteTableRequest{RtId: common.String(routeTableID)})
		return err
	})
}

// ListSecurityLists implements VirtualNetworkManager.
func (c *RealClient) ListSecurityLists(ctx context.Context, vcnID string) ([]core.SecurityList, error) {
	var items []core.SecurityList
	err := withTransientRetry(ctx, func() error {
		items = items[:0]
		var page *string
		for {
			resp, err := c.network.ListSecurityLists(ctx, core.ListSecurityListsRequest{
				CompartmentId: common.String(c.compartmentID),
				VcnId:         common.String(vcnID),
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
		return nil, fmt.Errorf("failed to list security lists: %w", err)
	}
	return items, nil
}

// DeleteSecurityList implements VirtualNetworkManager.
func (c *RealClient) DeleteSecurityList(ctx context.Context, securityListID string) error {
	return withTransientRetry(ctx, func() error {
		_, err := c.network.DeleteSecurityList(ctx, core.DeleteSecurityListRequest{SecurityListId: common.String(securityListID)})
		return err
	})
}

// ListInternetGateways implements VirtualNetworkManager.
func (c *RealClient) ListInternetGateways(ctx context.Context, vcnID string) ([]core.InternetGateway, error) {
	var items []core.InternetGateway
	err := withTransientRetry(ctx, func() error {
		items = items[:0]
		var page *string
		for {
			resp, err := c.network.ListInternetGateways(ctx, core.ListInternetGatewaysRequest{
				CompartmentId: common.String(c.compartmentID),
				VcnId:         common.String(vcnID),
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
		return nil, fmt.Errorf("failed to list internet gateways: %w", err)
	}
	return items, nil
}

// DeleteInternetGateway implements VirtualNetworkManager.
func (c *RealClient) DeleteInternetGateway(ctx context.Context, gatewayID string) error {
	return withTransientRetry(ctx, func() error {
		_, err := c.network.DeleteInternetGateway(ctx, core.DeleteInternetGatewayRequest{IgId: common.String(gatewayID)})
		return err
	})
}

// ListNatGateways implements VirtualNetworkManager.
func (c *RealClient) ListNatGateways(ctx context.Context, vcnID string) ([]core.NatGateway, error) {
	var items []core.NatGateway
	err := withTransientRetry(ctx, func() error {
		items = items[:0]
		var page *string
		for {
			resp, err := c.network.ListNatGateways(ctx, core.ListNatGatewaysRequest{
				CompartmentId: common.String(c.compartmentID),
				VcnId:         common.String(vcnID),
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
		return nil, fmt.Errorf("failed to list NAT gateways: %w", err)
	}
	return items, nil
}

// DeleteNatGateway implements VirtualNetworkManager.
func (c *RealClient) DeleteNatGateway(ctx context.Context, gatewayID string) error {
	return withTransientRetry(ctx, func() error {
		_, err := c.network.DeleteNatGateway(ctx, core.DeleteNatGatewayRequest{NatGatewayId: common.String(gatewayID)})
		return err
	})
}

// ListServiceGateways implements VirtualNetworkManager.
func (c *RealClient) ListServiceGateways(ctx context.Context, vcnID string) ([]core.ServiceGateway, error) {
	var items []core.ServiceGateway
	err := withTransientRetry(ctx, func() error {
		items = items[:0]
		var page *string
		for {
			resp, err := c.network.ListServiceGateways(ctx, core.ListServiceGatewaysRequest{
				CompartmentId: common.String(c.compartmentID),
				VcnId:         common.String(vcnID),
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
		return nil, fmt.Errorf("failed to list service gateways: %w", err)
	}
	return items, nil
}

// DeleteServiceGateway implements VirtualNetworkManager.
func (c *RealClient) DeleteServiceGateway(ctx context.Context, gatewayID string) error {
	return withTransientRetry(ctx, func() error {
		_, err := c.network.DeleteServiceGateway(ctx, core.DeleteServiceGatewayRequest{ServiceGatewayId: common.String(gatewayID)})
		return err
	})
}
