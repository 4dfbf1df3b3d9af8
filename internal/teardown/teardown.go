// Package teardown deletes a VCN and its child resources in dependency order.
//
// OCI refuses to delete a VCN that still has children, and refuses to delete
// children that are still in use. The teardown first proves the VCN has no
// live instance attached, then walks children in an order that respects the
// service's dependency rules before removing the VCN itself.
package teardown

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oracle/oci-go-sdk/v65/core"

	"github.com/dynamicalsystem/tin/internal/observe"
	"github.com/dynamicalsystem/tin/internal/platform/oci"
	"github.com/dynamicalsystem/tin/internal/util/clock"
)

// Outcome is the terminal disposition of one VCN teardown.
type Outcome string

const (
	// OutcomeDeleted means the VCN and its children are gone.
	OutcomeDeleted Outcome = "deleted"
	// OutcomeBlocked means a live instance still uses the VCN; nothing
	// was deleted.
	OutcomeBlocked Outcome = "blocked"
	// OutcomeFailed means the VCN itself could not be deleted.
	OutcomeFailed Outcome = "failed"
)

// defaultNamePrefix marks the default route table and security list OCI
// creates with every VCN; they are deleted together with the VCN and cannot
// be deleted individually.
const defaultNamePrefix = "Default"

// Report summarizes one VCN teardown.
type Report struct {
	VcnName string
	VcnID   string
	Outcome Outcome

	// BlockedBy names the live instances found attached to the VCN.
	BlockedBy []string

	// Deleted counts the child resources removed.
	Deleted int

	// Failures collects per-resource deletion errors.
	Failures []string
}

// Teardown deletes VCNs.
type Teardown struct {
	compute  oci.ComputeLister
	network  oci.VirtualNetworkManager
	clock    clock.Clock
	observer observe.Observer
	settle   time.Duration
}

// New builds a Teardown. settle is the pause between deleting the last child
// and deleting the VCN, giving the service time to observe the deletions.
func New(compute oci.ComputeLister, network oci.VirtualNetworkManager, clk clock.Clock, observer observe.Observer, settle time.Duration) *Teardown {
	return &Teardown{
		compute:  compute,
		network:  network,
		clock:    clk,
		observer: observer.WithFields(map[string]string{"component": "teardown"}),
		settle:   settle,
	}
}

// Run tears down one VCN. The liveness check runs to completion before any
// deletion: a VCN with a live instance attached is reported Blocked and left
// fully intact. Individual child failures are recorded and the walk
// continues, so one stuck resource does not strand the rest; only the VCN
// delete itself decides the overall outcome.
func (t *Teardown) Run(ctx context.Context, vcn core.Vcn) (*Report, error) {
	report := &Report{
		VcnName: deref(vcn.DisplayName),
		VcnID:   deref(vcn.Id),
	}

	blockers, err := t.liveInstances(ctx, vcn)
	if err != nil {
		return report, fmt.Errorf("liveness check for VCN %s failed: %w", report.VcnName, err)
	}
	if len(blockers) > 0 {
		report.Outcome = OutcomeBlocked
		report.BlockedBy = blockers
		t.observer.Printf("VCN %s is in use by %s, leaving intact", report.VcnName, strings.Join(blockers, ", "))
		return report, nil
	}

	t.deleteChildren(ctx, vcn, report)

	if report.Deleted > 0 && t.settle > 0 {
		if err := t.clock.Sleep(ctx, t.settle); err != nil {
			report.Outcome = OutcomeFailed
			return report, err
		}
	}

	observe.LogResourceDeleting(t.observer, "teardown", "vcn", report.VcnName)
	if err := t.network.DeleteVcn(ctx, report.VcnID); err != nil && !oci.IsNotFound(err) {
		observe.LogResourceFailed(t.observer, "teardown", "vcn", report.VcnName, err)
		report.Outcome = OutcomeFailed
		report.Failures = append(report.Failures, fmt.Sprintf("vcn %s: %v", report.VcnName, err))
		return report, fmt.Errorf("failed to delete VCN %s: %w", report.VcnName, err)
	}
	observe.LogResourceDeleted(t.observer, "teardown", "vcn", report.VcnName)

	report.Outcome = OutcomeDeleted
	return report, nil
}

// liveInstances returns the display names of non-terminated instances with a
// VNIC in any subnet of the VCN.
func (t *Teardown) liveInstances(ctx context.Context, vcn core.Vcn) ([]string, error) {
	instances, err := t.compute.ListInstances(ctx)
	if err != nil {
		return nil, err
	}

	var blockers []string
	for _, inst := range instances {
		if inst.LifecycleState == core.InstanceLifecycleStateTerminated {
			continue
		}
		attachments, err := t.compute.ListVnicAttachments(ctx, deref(inst.Id))
		if err != nil {
			return nil, err
		}
		for _, att := range attachments {
			if att.SubnetId == nil {
				continue
			}
			subnet, err := t.network.GetSubnet(ctx, *att.SubnetId)
			if err != nil {
				if oci.IsNotFound(err) {
					continue
				}
				return nil, err
			}
			if deref(subnet.VcnId) == deref(vcn.Id) {
				blockers = append(blockers, deref(inst.DisplayName))
				break
			}
		}
	}
	return blockers, nil
}

// deleteChildren walks the VCN's child resources in dependency order.
func (t *Teardown) deleteChildren(ctx context.Context, vcn core.Vcn, report *Report) {
	vcnID := deref(vcn.Id)

	if subnets, err := t.network.ListSubnets(ctx, vcnID); err != nil {
		report.Failures = append(report.Failures, fmt.Sprintf("list subnets: %v", err))
	} else {
		for _, s := range subnets {
			if s.LifecycleState == core.SubnetLifecycleStateTerminated {
				continue
			}
			t.deleteResource(ctx, report, "subnet", deref(s.DisplayName), deref(s.Id), t.network.DeleteSubnet)
		}
	}

	if tables, err := t.network.ListRouteTables(ctx, vcnID); err != nil {
		report.Failures = append(report.Failures, fmt.Sprintf("list route tables: %v", err))
	} else {
		for _, rt := range tables {
			if rt.LifecycleState == core.RouteTableLifecycleStateTerminated {
				continue
			}
			if isDefaultResource(deref(rt.Id), deref(rt.DisplayName), deref(vcn.DefaultRouteTableId)) {
				observe.LogResourceSkipped(t.observer, "teardown", "route table", deref(rt.DisplayName), "deleted with the VCN")
				continue
			}
			t.deleteResource(ctx, report, "route table", deref(rt.DisplayName), deref(rt.Id), t.network.DeleteRouteTable)
		}
	}

	if lists, err := t.network.ListSecurityLists(ctx, vcnID); err != nil {
		report.Failures = append(report.Failures, fmt.Sprintf("list security lists: %v", err))
	} else {
		for _, sl := range lists {
			if sl.LifecycleState == core.SecurityListLifecycleStateTerminated {
				continue
			}
			if isDefaultResource(deref(sl.Id), deref(sl.DisplayName), deref(vcn.DefaultSecurityListId)) {
				observe.LogResourceSkipped(t.observer, "teardown", "security list", deref(sl.DisplayName), "deleted with the VCN")
				continue
			}
			t.deleteResource(ctx, report, "security list", deref(sl.DisplayName), deref(sl.Id), t.network.DeleteSecurityList)
		}
	}

	if gateways, err := t.network.ListInternetGateways(ctx, vcnID); err != nil {
		report.Failures = append(report.Failures, fmt.Sprintf("list internet gateways: %v", err))
	} else {
		for _, gw := range gateways {
			if gw.LifecycleState == core.InternetGatewayLifecycleStateTerminated {
				continue
			}
			t.deleteResource(ctx, report, "internet gateway", deref(gw.DisplayName), deref(gw.Id), t.network.DeleteInternetGateway)
		}
	}

	if gateways, err := t.network.ListNatGateways(ctx, vcnID); err != nil {
		report.Failures = append(report.Failures, fmt.Sprintf("list NAT gateways: %v", err))
	} else {
		for _, gw := range gateways {
			if gw.LifecycleState == core.NatGatewayLifecycleStateTerminated {
				continue
			}
			t.deleteResource(ctx, report, "NAT gateway", deref(gw.DisplayName), deref(gw.Id), t.network.DeleteNatGateway)
		}
	}

	if gateways, err := t.network.ListServiceGateways(ctx, vcnID); err != nil {
		report.Failures = append(report.Failures, fmt.Sprintf("list service gateways: %v", err))
	} else {
		for _, gw := range gateways {
			if gw.LifecycleState == core.ServiceGatewayLifecycleStateTerminated {
				continue
			}
			t.deleteResource(ctx, report, "service gateway", deref(gw.DisplayName), deref(gw.Id), t.network.DeleteServiceGateway)
		}
	}
}

// deleteResource deletes one child, treating not-found as already deleted.
func (t *Teardown) deleteResource(ctx context.Context, report *Report, kind, name, id string, del func(context.Context, string) error) {
	observe.LogResourceDeleting(t.observer, "teardown", kind, name)
	if err := del(ctx, id); err != nil && !oci.IsNotFound(err) {
		observe.LogResourceFailed(t.observer, "teardown", kind, name, err)
		report.Failures = append(report.Failures, fmt.Sprintf("%s %s: %v", kind, name, err))
		return
	}
	observe.LogResourceDeleted(t.observer, "teardown", kind, name)
	report.Deleted++
}

// isDefaultResource reports whether a route table or security list is the
// VCN's built-in default, matching by the VCN's recorded default id with the
// display-name prefix as a fallback for stale metadata.
func isDefaultResource(id, name, defaultID string) bool {
	if defaultID != "" && id == defaultID {
		return true
	}
	return strings.HasPrefix(name, defaultNamePrefix)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
