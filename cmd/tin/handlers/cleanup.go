package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/oracle/oci-go-sdk/v65/core"

	"github.com/dynamicalsystem/tin/internal/teardown"
)

// interVcnPause spaces out consecutive teardowns so the service sees the
// previous VCN's deletions before the next walk starts.
const interVcnPause = 2 * time.Second

// Cleanup handles the cleanup command.
//
// It finds available VCNs carrying the managed network name, asks for
// confirmation and tears each one down. VCNs still in use are reported and
// skipped; a VCN that cannot be fully deleted counts as a failure.
func Cleanup(ctx context.Context, paramsFile, networkName string, assumeYes bool) error {
	cfg, err := loadConfig(paramsFile)
	if err != nil {
		return err
	}
	if networkName != "" {
		cfg.NetworkName = networkName
	}

	api, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	vcns, err := api.ListVcns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list VCNs: %w", err)
	}

	var targets []core.Vcn
	for _, vcn := range vcns {
		if vcn.DisplayName == nil || *vcn.DisplayName != cfg.NetworkName {
			continue
		}
		if vcn.LifecycleState != core.VcnLifecycleStateAvailable {
			continue
		}
		targets = append(targets, vcn)
	}
	if len(targets) == 0 {
		log.Printf("No VCNs named %s found, nothing to clean up", cfg.NetworkName)
		return nil
	}

	var ids []string
	for _, vcn := range targets {
		ids = append(ids, *vcn.Id)
	}
	log.Printf("Found %d VCN(s) named %s:", len(targets), cfg.NetworkName)
	for _, id := range ids {
		log.Printf("  %s", id)
	}

	if !assumeYes {
		approved, err := confirm(ctx,
			fmt.Sprintf("Delete %d VCN(s) named %s?", len(targets), cfg.NetworkName),
			strings.Join(ids, "\n"))
		if err != nil {
			return err
		}
		if !approved {
			log.Print("Cleanup aborted")
			return nil
		}
	}

	clk := newClock()
	td := teardown.New(api, api, clk, newObserver(), cfg.SettleDelay)

	var deleted, blocked, failed int
	for i, vcn := range targets {
		if i > 0 {
			if err := clk.Sleep(ctx, interVcnPause); err != nil {
				return err
			}
		}
		report, err := td.Run(ctx, vcn)
		switch report.Outcome {
		case teardown.OutcomeDeleted:
			deleted++
		case teardown.OutcomeBlocked:
			blocked++
		default:
			failed++
			log.Printf("Teardown of %s failed: %v", report.VcnID, err)
		}
	}

	log.Printf("Cleanup finished: %d deleted, %d in use, %d failed", deleted, blocked, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d VCN(s) could not be deleted", failed, len(targets))
	}
	return nil
}
