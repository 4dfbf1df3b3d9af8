package oci

import (
	"context"
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/resourcemanager"
)

// CreateApplyJob implements JobManager.
func (c *RealClient) CreateApplyJob(ctx context.Context, stackID, displayName string) (resourcemanager.Job, error) {
	var job resourcemanager.Job
	err := withTransientRetry(ctx, func() error {
		resp, err := c.jobs.CreateJob(ctx, resourcemanager.CreateJobRequest{
			CreateJobDetails: resourcemanager.CreateJobDetails{
				StackId:     common.String(stackID),
				DisplayName: common.String(displayName),
				Operation:   resourcemanager.JobOperationApply,
				ApplyJobPlanResolution: &resourcemanager.ApplyJobPlanResolution{
					IsAutoApproved: common.Bool(true),
				},
			},
		})
		if err != nil {
			return err
		}
		job = resp.Job
		return nil
	})
	if err != nil {
		return resourcemanager.Job{}, fmt.Errorf("failed to create apply job for stack %s: %w", stackID, err)
	}
	return job, nil
}

// GetJob implements JobManager.
func (c *RealClient) GetJob(ctx context.Context, jobID string) (resourcemanager.Job, error) {
	var job resourcemanager.Job
	err := withTransientRetry(ctx, func() error {
		resp, err := c.jobs.GetJob(ctx, resourcemanager.GetJobRequest{JobId: common.String(jobID)})
		if err != nil {
			return err
		}
		job = resp.Job
		return nil
	})
	if err != nil {
		return resourcemanager.Job{}, fmt.Errorf("failed to get job %s: %w", jobID, err)
	}
	return job, nil
}

// GetJobLogs implements JobManager.
func (c *RealClient) GetJobLogs(ctx context.Context, jobID string) (string, error) {
	var content string
	err := withTransientRetry(ctx, func() error {
		resp, err := c.jobs.GetJobLogsContent(ctx, resourcemanager.GetJobLogsContentRequest{JobId: common.String(jobID)})
		if err != nil {
			return err
		}
		if resp.Value != nil {
			content = *resp.Value
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch logs for job %s: %w", jobID, err)
	}
	return content, nil
}
