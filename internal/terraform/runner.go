package terraform

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/terraform-exec/tfexec"
	tfjson "github.com/hashicorp/terraform-json"
)

// Vars the tfexec library manages itself; passing them through SetEnv is an
// error.
var tfexecManagedVars = map[string]struct{}{
	"TF_APPEND_USER_AGENT":    {},
	"TF_CLI_ARGS":             {},
	"TF_IN_AUTOMATION":        {},
	"TF_INPUT":                {},
	"TF_LOG":                  {},
	"TF_LOG_CORE":             {},
	"TF_LOG_PATH":             {},
	"TF_LOG_PROVIDER":         {},
	"TF_REATTACH_PROVIDERS":   {},
	"TF_DISABLE_PLUGIN_TLS":   {},
	"TF_SKIP_PROVIDER_VERIFY": {},
	"TF_WORKSPACE":            {},
}

// Runner executes terraform through the local binary.
type Runner struct {
	tf      *tfexec.Terraform
	workDir string
}

// NewRunner locates the terraform binary and prepares a Runner for the given
// working directory. extraEnv entries (typically TF_VAR_* bindings) are
// overlaid on the inherited process environment.
func NewRunner(workDir string, extraEnv map[string]string) (*Runner, error) {
	execPath, err := exec.LookPath("terraform")
	if err != nil {
		return nil, fmt.Errorf("terraform binary not found in PATH: %w", err)
	}

	tf, err := tfexec.NewTerraform(workDir, execPath)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare terraform in %s: %w", workDir, err)
	}

	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if _, managed := tfexecManagedVars[k]; managed || strings.HasPrefix(k, "TF_CLI_ARGS_") {
			continue
		}
		env[k] = v
	}
	for k, v := range extraEnv {
		env[k] = v
	}
	if err := tf.SetEnv(env); err != nil {
		return nil, fmt.Errorf("failed to set terraform environment: %w", err)
	}

	return &Runner{tf: tf, workDir: workDir}, nil
}

// Init implements Executor. A workspace that already carries a .terraform
// directory is assumed initialized and left untouched.
func (r *Runner) Init(ctx context.Context, opts InitOptions) error {
	if _, err := os.Stat(filepath.Join(r.workDir, ".terraform")); err == nil {
		return nil
	}

	initOpts := []tfexec.InitOption{tfexec.Upgrade(false)}
	if opts.StatePath != "" {
		initOpts = append(initOpts, tfexec.BackendConfig("path="+opts.StatePath))
	}
	if err := r.tf.Init(ctx, initOpts...); err != nil {
		return fmt.Errorf("terraform init failed: %w", err)
	}
	return nil
}

// Validate implements Executor.
func (r *Runner) Validate(ctx context.Context) error {
	out, err := r.tf.Validate(ctx)
	if err != nil {
		return fmt.Errorf("terraform validate failed: %w", err)
	}
	if !out.Valid {
		var summaries []string
		for _, d := range out.Diagnostics {
			if d.Severity != tfjson.DiagnosticSeverityError {
				continue
			}
			summaries = append(summaries, d.Summary)
		}
		return fmt.Errorf("configuration invalid: %s", strings.Join(summaries, "; "))
	}
	return nil
}

// Apply implements Executor. The structured event stream and stderr are
// returned even when apply fails so callers can classify the failure.
func (r *Runner) Apply(ctx context.Context) (*ApplyOutput, error) {
	var stdout, stderr bytes.Buffer
	r.tf.SetStderr(&stderr)
	defer r.tf.SetStderr(nil)

	applyErr := r.tf.ApplyJSON(ctx, &stdout)

	out := &ApplyOutput{
		Events: ParseEvents(&stdout),
		Stderr: stderr.String(),
	}
	if applyErr != nil {
		return out, fmt.Errorf("terraform apply failed: %w", applyErr)
	}
	return out, nil
}

// Destroy implements Executor.
func (r *Runner) Destroy(ctx context.Context, target string) error {
	var opts []tfexec.DestroyOption
	if target != "" {
		opts = append(opts, tfexec.Target(target))
	}
	if err := r.tf.Destroy(ctx, opts...); err != nil {
		if target != "" {
			return fmt.Errorf("terraform destroy of %s failed: %w", target, err)
		}
		return fmt.Errorf("terraform destroy failed: %w", err)
	}
	return nil
}

// Output implements Executor.
func (r *Runner) Output(ctx context.Context) (map[string]OutputValue, error) {
	metas, err := r.tf.Output(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read terraform outputs: %w", err)
	}
	values := make(map[string]OutputValue, len(metas))
	for name, meta := range metas {
		values[name] = OutputValue{Sensitive: meta.Sensitive, Value: meta.Value}
	}
	return values, nil
}

// Ensure interface compliance.
var _ Executor = (*Runner)(nil)
