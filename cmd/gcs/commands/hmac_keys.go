package commands

import (
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// ErrActiveKey is returned when deleting an active key without --force.
var ErrActiveKey = errors.New("HMAC key is active; deactivate it first or use --force")

// NewHMACKeysCommand creates the hmac-keys command group.
func NewHMACKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hmac-keys",
		Aliases: []string{"hmac"},
		Short:   "Manage HMAC keys",
		Long:    "Create and manage the HMAC keys that service accounts use with the XML API",
	}

	cmd.AddCommand(newHMACKeysListCommand())
	cmd.AddCommand(newHMACKeysGetCommand())
	cmd.AddCommand(newHMACKeysCreateCommand())
	cmd.AddCommand(newHMACKeysStateCommand("activate", gcs.HMACKeyStateActive))
	cmd.AddCommand(newHMACKeysStateCommand("deactivate", gcs.HMACKeyStateInactive))
	cmd.AddCommand(newHMACKeysDeleteCommand())

	return cmd
}

// HMACKeysListOptions holds the options for listing HMAC keys.
type HMACKeysListOptions struct {
	ServiceAccount string
	ShowDeleted    bool
}

func newHMACKeysListCommand() *cobra.Command {
	var opts HMACKeysListOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List HMAC keys",
		Long:    "List the HMAC keys of the configured project",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			project, err := requireProject(effectiveConfig())
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			req := gcs.NewListHMACKeysRequest(project)
			req.ServiceAccountEmail = opts.ServiceAccount
			req.ShowDeletedKeys = opts.ShowDeleted

			keys, err := client.HMACKeys().List(ctx, req).All()
			if err != nil {
				return fmt.Errorf("failed to list HMAC keys: %w", err)
			}

			return render(cmd.OutOrStdout(), keys, func(table *tablewriter.Table) error {
				table.Header("Access ID", "Service Account", "State", "Created")

				for _, k := range keys {
					err := table.Append([]string{k.AccessID, k.ServiceAccountEmail, titleCase(k.State), formatTime(k.TimeCreated)})
					if err != nil {
						return fmt.Errorf("failed to append HMAC key to table: %w", err)
					}
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.ServiceAccount, "service-account", "", "only list keys of this service account")
	cmd.Flags().BoolVar(&opts.ShowDeleted, "show-deleted", false, "include deleted keys")

	return cmd
}

func hmacKeyRows(k *gcs.HMACKeyMetadata) [][]string {
	return [][]string{
		{"Access ID", k.AccessID},
		{"Service Account", valueOrNA(k.ServiceAccountEmail)},
		{"Project", valueOrNA(k.ProjectID)},
		{"State", titleCase(k.State)},
		{"Created", formatTime(k.TimeCreated)},
		{"Updated", formatTime(k.Updated)},
	}
}

func newHMACKeysGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ACCESS_ID",
		Short: "Get HMAC key details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			project, err := requireProject(effectiveConfig())
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			key, err := client.HMACKeys().Get(ctx, &gcs.GetHMACKeyRequest{Project: project, AccessID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to get HMAC key: %w", err)
			}

			return render(cmd.OutOrStdout(), key, propertyTable(hmacKeyRows(key)))
		},
	}
}

func newHMACKeysCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create SERVICE_ACCOUNT_EMAIL",
		Short: "Create an HMAC key",
		Long:  "Create an HMAC key for a service account. The secret is shown once and cannot be retrieved later.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			project, err := requireProject(effectiveConfig())
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			key, err := client.HMACKeys().Create(ctx, gcs.NewCreateHMACKeyRequest(project, args[0]))
			if err != nil {
				return fmt.Errorf("failed to create HMAC key: %w", err)
			}

			rows := [][]string{{"Secret", key.Secret}}
			if key.Metadata != nil {
				rows = append(hmacKeyRows(key.Metadata), rows...)
			}

			return render(cmd.OutOrStdout(), key, propertyTable(rows))
		},
	}
}

func newHMACKeysStateCommand(use, state string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ACCESS_ID",
		Short: fmt.Sprintf("Set an HMAC key %s", titleCase(state)),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			project, err := requireProject(effectiveConfig())
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			key, err := client.HMACKeys().Update(ctx, gcs.NewUpdateHMACKeyStateRequest(project, args[0], state))
			if err != nil {
				return fmt.Errorf("failed to update HMAC key: %w", err)
			}

			return render(cmd.OutOrStdout(), key, propertyTable(hmacKeyRows(key)))
		},
	}
}

func newHMACKeysDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ACCESS_ID",
		Short: "Delete an HMAC key",
		Long:  "Delete an HMAC key. Only inactive keys can be deleted; use --force to deactivate it first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			project, err := requireProject(effectiveConfig())
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			accessID := args[0]

			key, err := client.HMACKeys().Get(ctx, &gcs.GetHMACKeyRequest{Project: project, AccessID: accessID})
			if err != nil {
				return fmt.Errorf("failed to get HMAC key: %w", err)
			}

			if key.State == gcs.HMACKeyStateActive {
				if !force {
					return fmt.Errorf("%w: %s", ErrActiveKey, accessID)
				}

				_, err = client.HMACKeys().Update(ctx, gcs.NewUpdateHMACKeyStateRequest(project, accessID, gcs.HMACKeyStateInactive))
				if err != nil {
					return fmt.Errorf("failed to deactivate HMAC key: %w", err)
				}
			}

			err = client.HMACKeys().Delete(ctx, &gcs.DeleteHMACKeyRequest{Project: project, AccessID: accessID})
			if err != nil {
				return fmt.Errorf("failed to delete HMAC key: %w", err)
			}

			printf(cmd.OutOrStdout(), "Deleted HMAC key %s\n", accessID)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "deactivate an active key before deleting it")

	return cmd
}
