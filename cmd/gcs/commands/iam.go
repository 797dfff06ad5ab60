package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// policyVersion supports conditional bindings.
const policyVersion = 3

// ErrBindingNotFound is returned when unbind finds nothing to remove.
var ErrBindingNotFound = errors.New("binding not found")

// NewIAMCommand creates the iam command group.
func NewIAMCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iam",
		Short: "Manage bucket IAM policies",
		Long:  "Show, test and change the IAM policy of a bucket",
	}

	cmd.AddCommand(newIAMGetCommand())
	cmd.AddCommand(newIAMTestCommand())
	cmd.AddCommand(newIAMBindCommand())
	cmd.AddCommand(newIAMUnbindCommand())

	return cmd
}

func policyTable(policy *gcs.Policy) func(table *tablewriter.Table) error {
	return func(table *tablewriter.Table) error {
		table.Header("Role", "Members", "Condition")

		for _, b := range policy.Bindings {
			condition := ""
			if b.Condition != nil {
				condition = b.Condition.Title
			}

			err := table.Append([]string{b.Role, strings.Join(b.Members, "\n"), condition})
			if err != nil {
				return fmt.Errorf("failed to append binding to table: %w", err)
			}
		}

		return nil
	}
}

func newIAMGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BUCKET",
		Short: "Show the IAM policy of a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			bucket, err := parseBucketArg(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			policy, err := client.IAM().GetPolicy(ctx, &gcs.GetIAMPolicyRequest{
				Bucket:                        bucket,
				OptionsRequestedPolicyVersion: policyVersion,
			})
			if err != nil {
				return fmt.Errorf("failed to get IAM policy: %w", err)
			}

			return render(cmd.OutOrStdout(), policy, policyTable(policy))
		},
	}
}

func newIAMTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test BUCKET PERMISSION...",
		Short: "Test which permissions the caller holds",
		Long:  "Report which of the given permissions, such as storage.objects.get, the caller holds on a bucket",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			bucket, err := parseBucketArg(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			wanted := args[1:]

			held, err := client.IAM().TestPermissions(ctx, &gcs.TestIAMPermissionsRequest{
				Bucket:      bucket,
				Permissions: slices.Clone(wanted),
			})
			if err != nil {
				return fmt.Errorf("failed to test IAM permissions: %w", err)
			}

			result := make(map[string]bool, len(wanted))

			rows := make([][]string, 0, len(wanted))
			for _, permission := range wanted {
				granted := slices.Contains(held, permission)
				result[permission] = granted

				answer := "no"
				if granted {
					answer = "yes"
				}

				rows = append(rows, []string{permission, answer})
			}

			return render(cmd.OutOrStdout(), result, func(table *tablewriter.Table) error {
				table.Header("Permission", "Granted")

				return appendRows(table, rows)
			})
		},
	}
}

func newIAMBindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bind BUCKET ROLE MEMBER",
		Short: "Grant a role to a member",
		Long: `Add MEMBER (for example user:ada@example.com or allUsers) to the binding of
ROLE (for example roles/storage.objectViewer). The policy is written back with
the etag that was read, so concurrent changes are not overwritten.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return modifyPolicy(cmd, args[0], func(policy *gcs.Policy) error {
				addBinding(policy, args[1], args[2])

				return nil
			})
		},
	}
}

func newIAMUnbindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unbind BUCKET ROLE MEMBER",
		Short: "Revoke a role from a member",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return modifyPolicy(cmd, args[0], func(policy *gcs.Policy) error {
				if !removeBinding(policy, args[1], args[2]) {
					return fmt.Errorf("%w: %s for %s", ErrBindingNotFound, args[1], args[2])
				}

				return nil
			})
		},
	}
}

// modifyPolicy reads the policy, applies change and writes it back. The etag
// read is sent along, so the write fails if the policy changed meanwhile.
func modifyPolicy(cmd *cobra.Command, bucketArg string, change func(policy *gcs.Policy) error) error {
	ctx := commandContext(cmd)

	bucket, err := parseBucketArg(bucketArg)
	if err != nil {
		return err
	}

	client, err := CreateClient(ctx)
	if err != nil {
		return err
	}

	policy, err := client.IAM().GetPolicy(ctx, &gcs.GetIAMPolicyRequest{
		Bucket:                        bucket,
		OptionsRequestedPolicyVersion: policyVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to get IAM policy: %w", err)
	}

	err = change(policy)
	if err != nil {
		return err
	}

	policy.Version = policyVersion

	updated, err := client.IAM().SetPolicy(ctx, &gcs.SetIAMPolicyRequest{Bucket: bucket, Policy: policy})
	if err != nil {
		return fmt.Errorf("failed to set IAM policy: %w", err)
	}

	return render(cmd.OutOrStdout(), updated, policyTable(updated))
}

func addBinding(policy *gcs.Policy, role, member string) {
	for i := range policy.Bindings {
		binding := &policy.Bindings[i]
		if binding.Role != role || binding.Condition != nil {
			continue
		}

		if !slices.Contains(binding.Members, member) {
			binding.Members = append(binding.Members, member)
		}

		return
	}

	policy.Bindings = append(policy.Bindings, gcs.PolicyBinding{Role: role, Members: []string{member}})
}

// removeBinding drops member from the unconditional binding of role, and the
// binding itself once it is empty.
func removeBinding(policy *gcs.Policy, role, member string) bool {
	for i := range policy.Bindings {
		binding := &policy.Bindings[i]
		if binding.Role != role || binding.Condition != nil {
			continue
		}

		index := slices.Index(binding.Members, member)
		if index < 0 {
			return false
		}

		binding.Members = slices.Delete(binding.Members, index, index+1)
		if len(binding.Members) == 0 {
			policy.Bindings = slices.Delete(policy.Bindings, i, i+1)
		}

		return true
	}

	return false
}
