package teardown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynamicalsystem/tin/internal/observe"
	"github.com/dynamicalsystem/tin/internal/platform/oci"
	"github.com/dynamicalsystem/tin/internal/util/clock"
)

func gatewayVcn() core.Vcn {
	return core.Vcn{
		Id:                    common.String("ocid1.vcn.oc1..gateway"),
		DisplayName:           common.String("gateway-vcn"),
		DefaultRouteTableId:   common.String("ocid1.routetable.oc1..default"),
		DefaultSecurityListId: common.String("ocid1.securitylist.oc1..default"),
		LifecycleState:        core.VcnLifecycleStateAvailable,
	}
}

// populatedNetwork wires a MockClient whose VCN has one of every child type
// plus the defaults, recording every delete call into deleted.
func populatedNetwork(deleted *[]string) *oci.MockClient {
	record := func(kind string) func(context.Context, string) error {
		return func(ctx context.Context, id string) error {
			*deleted = append(*deleted, kind+":"+id)
			return nil
		}
	}
	return &oci.MockClient{
		ListSubnetsFunc: func(ctx context.Context, vcnID string) ([]core.Subnet, error) {
			return []core.Subnet{{
				Id:             common.String("ocid1.subnet.oc1..a"),
				DisplayName:    common.String("gateway-subnet"),
				LifecycleState: core.SubnetLifecycleStateAvailable,
			}}, nil
		},
		ListRouteTablesFunc: func(ctx context.Context, vcnID string) ([]core.RouteTable, error) {
			return []core.RouteTable{
				{
					Id:             common.String("ocid1.routetable.oc1..default"),
					DisplayName:    common.String("Default Route Table for gateway-vcn"),
					LifecycleState: core.RouteTableLifecycleStateAvailable,
				},
				{
					Id:             common.String("ocid1.routetable.oc1..custom"),
					DisplayName:    common.String("gateway-routes"),
					LifecycleState: core.RouteTableLifecycleStateAvailable,
				},
			}, nil
		},
		ListSecurityListsFunc: func(ctx context.Context, vcnID string) ([]core.SecurityList, error) {
			return []core.SecurityList{
				{
					Id:             common.String("ocid1.securitylist.oc1..default"),
					DisplayName:    common.String("Default Security List for gateway-vcn"),
					LifecycleState: core.SecurityListLifecycleStateAvailable,
				},
				{
					Id:             common.String("ocid1.securitylist.oc1..custom"),
					DisplayName:    common.String("gateway-acl"),
					LifecycleState: core.SecurityListLifecycleStateAvailable,
				},
			}, nil
		},
		ListInternetGatewaysFunc: func(ctx context.Context, vcnID string) ([]core.InternetGateway, error) {
			return []core.InternetGateway{{
				Id:             common.String("ocid1.internetgateway.oc1..a"),
				DisplayName:    common.String("gateway-igw"),
				LifecycleState: core.InternetGatewayLifecycleStateAvailable,
			}}, nil
		},
		ListNatGatewaysFunc: func(ctx context.Context, vcnID string) ([]core.NatGateway, error) {
			return []core.NatGateway{{
				Id:             common.String("ocid1.natgateway.oc1..a"),
				DisplayName:    common.String("gateway-nat"),
				LifecycleState: core.NatGatewayLifecycleStateAvailable,
			}}, nil
		},
		ListServiceGatewaysFunc: func(ctx context.Context, vcnID string) ([]core.ServiceGateway, error) {
			return []core.ServiceGateway{{
				Id:             common.String("ocid1.servicegateway.oc1..a"),
				DisplayName:    common.String("gateway-sgw"),
				LifecycleState: core.ServiceGatewayLifecycleStateAvailable,
			}}, nil
		},
		DeleteSubnetFunc:          record("subnet"),
		DeleteRouteTableFunc:      record("routetable"),
		DeleteSecurityListFunc:    record("securitylist"),
		DeleteInternetGatewayFunc: record("igw"),
		DeleteNatGatewayFunc:      record("nat"),
		DeleteServiceGatewayFunc:  record("sgw"),
		DeleteVcnFunc:             record("vcn"),
	}
}

func TestRunDeletesChildrenInOrder(t *testing.T) {
	t.Parallel()

	var deleted []string
	api := populatedNetwork(&deleted)
	clk := &clock.Fake{}

	td := New(api, api, clk, &observe.Recorder{}, 5*time.Second)
	report, err := td.Run(context.Background(), gatewayVcn())
	require.NoError(t, err)

	assert.Equal(t, OutcomeDeleted, report.Outcome)
	assert.Equal(t, []string{
		"subnet:ocid1.subnet.oc1..a",
		"routetable:ocid1.routetable.oc1..custom",
		"securitylist:ocid1.securitylist.oc1..custom",
		"igw:ocid1.internetgateway.oc1..a",
		"nat:ocid1.natgateway.oc1..a",
		"sgw:ocid1.servicegateway.oc1..a",
		"vcn:ocid1.vcn.oc1..gateway",
	}, deleted)

	// The defaults are never deleted individually.
	for _, d := range deleted {
		assert.NotContains(t, d, "default")
	}
	assert.Equal(t, 6, report.Deleted)

	// Settle pause between the last child and the VCN.
	assert.Equal(t, []time.Duration{5 * time.Second}, clk.Slept)
}

func TestRunBlockedByLiveInstance(t *testing.T) {
	t.Parallel()

	var deleted []string
	api := populatedNetwork(&deleted)
	api.ListInstancesFunc = func(ctx context.Context) ([]core.Instance, error) {
		return []core.Instance{
			{
				Id:             common.String("ocid1.instance.oc1..dead"),
				DisplayName:    common.String("old-instance"),
				LifecycleState: core.InstanceLifecycleStateTerminated,
			},
			{
				Id:             common.String("ocid1.instance.oc1..live"),
				DisplayName:    common.String("free-instance"),
				LifecycleState: core.InstanceLifecycleStateRunning,
			},
		}, nil
	}
	api.ListVnicAttachmentsFunc = func(ctx context.Context, instanceID string) ([]core.VnicAttachment, error) {
		require.Equal(t, "ocid1.instance.oc1..live", instanceID, "terminated instances are not inspected")
		return []core.VnicAttachment{{SubnetId: common.String("ocid1.subnet.oc1..a")}}, nil
	}
	api.GetSubnetFunc = func(ctx context.Context, subnetID string) (core.Subnet, error) {
		return core.Subnet{
			Id:    common.String(subnetID),
			VcnId: common.String("ocid1.vcn.oc1..gateway"),
		}, nil
	}

	td := New(api, api, &clock.Fake{}, &observe.Recorder{}, 5*time.Second)
	report, err := td.Run(context.Background(), gatewayVcn())
	require.NoError(t, err)

	// A blocked VCN is left fully intact.
	assert.Equal(t, OutcomeBlocked, report.Outcome)
	assert.Equal(t, []string{"free-instance"}, report.BlockedBy)
	assert.Empty(t, deleted)
	assert.Zero(t, report.Deleted)
}

func TestRunInstanceInOtherVcnDoesNotBlock(t *testing.T) {
	t.Parallel()

	var deleted []string
	api := populatedNetwork(&deleted)
	api.ListInstancesFunc = func(ctx context.Context) ([]core.Instance, error) {
		return []core.Instance{{
			Id:             common.String("ocid1.instance.oc1..other"),
			DisplayName:    common.String("other-instance"),
			LifecycleState: core.InstanceLifecycleStateRunning,
		}}, nil
	}
	api.ListVnicAttachmentsFunc = func(ctx context.Context, instanceID string) ([]core.VnicAttachment, error) {
		return []core.VnicAttachment{{SubnetId: common.String("ocid1.subnet.oc1..elsewhere")}}, nil
	}
	api.GetSubnetFunc = func(ctx context.Context, subnetID string) (core.Subnet, error) {
		return core.Subnet{
			Id:    common.String(subnetID),
			VcnId: common.String("ocid1.vcn.oc1..unrelated"),
		}, nil
	}

	td := New(api, api, &clock.Fake{}, &observe.Recorder{}, 0)
	report, err := td.Run(context.Background(), gatewayVcn())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, report.Outcome)
}

func TestRunContinuesPastChildFailure(t *testing.T) {
	t.Parallel()

	var deleted []string
	api := populatedNetwork(&deleted)
	api.DeleteSubnetFunc = func(ctx context.Context, subnetID string) error {
		return errors.New("409-Conflict, subnet in transition")
	}

	td := New(api, api, &clock.Fake{}, &observe.Recorder{}, 0)
	report, err := td.Run(context.Background(), gatewayVcn())
	require.NoError(t, err)

	// Only the VCN delete gates the outcome; the stuck subnet is recorded
	// but does not fail the teardown.
	assert.Equal(t, OutcomeDeleted, report.Outcome)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0], "gateway-subnet")
	// The rest of the walk still ran, including the VCN delete.
	assert.Contains(t, deleted, "igw:ocid1.internetgateway.oc1..a")
	assert.Contains(t, deleted, "vcn:ocid1.vcn.oc1..gateway")
}

func TestRunFailsOnlyWhenVcnDeleteFails(t *testing.T) {
	t.Parallel()

	var deleted []string
	api := populatedNetwork(&deleted)
	api.DeleteVcnFunc = func(ctx context.Context, vcnID string) error {
		return errors.New("409-Conflict, VCN has dependent resources")
	}

	td := New(api, api, &clock.Fake{}, &observe.Recorder{}, 0)
	report, err := td.Run(context.Background(), gatewayVcn())
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, report.Outcome)
}

func TestRunTreatsNotFoundAsDeleted(t *testing.T) {
	t.Parallel()

	var deleted []string
	api := populatedNetwork(&deleted)
	api.DeleteInternetGatewayFunc = func(ctx context.Context, id string) error {
		return notFoundError{}
	}

	td := New(api, api, &clock.Fake{}, &observe.Recorder{}, 0)
	report, err := td.Run(context.Background(), gatewayVcn())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, report.Outcome)
	assert.Empty(t, report.Failures)
}

func TestRunNoSettleWhenNothingDeleted(t *testing.T) {
	t.Parallel()

	api := &oci.MockClient{}
	clk := &clock.Fake{}

	td := New(api, api, clk, &observe.Recorder{}, 5*time.Second)
	report, err := td.Run(context.Background(), gatewayVcn())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, report.Outcome)
	assert.Empty(t, clk.Slept)
}

func TestIsDefaultResource(t *testing.T) {
	t.Parallel()

	assert.True(t, isDefaultResource("ocid1.rt..a", "gateway-routes", "ocid1.rt..a"))
	assert.True(t, isDefaultResource("ocid1.rt..b", "Default Route Table for gateway-vcn", ""))
	assert.False(t, isDefaultResource("ocid1.rt..c", "gateway-routes", "ocid1.rt..a"))
}

// notFoundError mimics the service's 404 response.
type notFoundError struct{}

func (notFoundError) Error() string           { return "404 NotAuthorizedOrNotFound" }
func (notFoundError) GetHTTPStatusCode() int  { return 404 }
func (notFoundError) GetMessage() string      { return "NotAuthorizedOrNotFound" }
func (notFoundError) GetCode() string         { return "NotAuthorizedOrNotFound" }
func (notFoundError) GetOpcRequestID() string { return "req-test" }
