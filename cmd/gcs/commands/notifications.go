package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// NewNotificationsCommand creates the notifications command group.
func NewNotificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notification", "notify"},
		Short:   "Manage Pub/Sub notifications",
		Long:    "List, create and delete the Pub/Sub notification configs of a bucket",
	}

	cmd.AddCommand(newNotificationsListCommand())
	cmd.AddCommand(newNotificationsGetCommand())
	cmd.AddCommand(newNotificationsCreateCommand())
	cmd.AddCommand(newNotificationsDeleteCommand())

	return cmd
}

func notificationRows(n *gcs.Notification) [][]string {
	return [][]string{
		{"ID", n.ID},
		{"Topic", n.Topic},
		{"Event Types", valueOrNA(strings.Join(n.EventTypes, ", "))},
		{"Object Name Prefix", valueOrNA(n.ObjectNamePrefix)},
		{"Payload Format", valueOrNA(n.PayloadFormat)},
	}
}

func newNotificationsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list BUCKET",
		Aliases: []string{"ls"},
		Short:   "List notification configs",
		Args:    cobra.ExactArgs(1),
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

			notifications, err := client.Notifications().List(ctx, &gcs.ListNotificationsRequest{Bucket: bucket})
			if err != nil {
				return fmt.Errorf("failed to list notifications: %w", err)
			}

			return render(cmd.OutOrStdout(), notifications, func(table *tablewriter.Table) error {
				table.Header("ID", "Topic", "Event Types", "Payload Format")

				for _, n := range notifications {
					err := table.Append([]string{n.ID, n.Topic, strings.Join(n.EventTypes, ", "), n.PayloadFormat})
					if err != nil {
						return fmt.Errorf("failed to append notification to table: %w", err)
					}
				}

				return nil
			})
		},
	}
}

func newNotificationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BUCKET ID",
		Short: "Get a notification config",
		Args:  cobra.ExactArgs(2),
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

			n, err := client.Notifications().Get(ctx, &gcs.GetNotificationRequest{Bucket: bucket, Notification: args[1]})
			if err != nil {
				return fmt.Errorf("failed to get notification: %w", err)
			}

			return render(cmd.OutOrStdout(), n, propertyTable(notificationRows(n)))
		},
	}
}

// NotificationsCreateOptions holds the options for creating a notification config.
type NotificationsCreateOptions struct {
	Topic         string
	EventTypes    []string
	Prefix        string
	PayloadFormat string
	Attributes    []string
}

func newNotificationsCreateCommand() *cobra.Command {
	var opts NotificationsCreateOptions

	cmd := &cobra.Command{
		Use:   "create BUCKET",
		Short: "Create a notification config",
		Long: `Publish object changes of a bucket to a Pub/Sub topic, given as
projects/PROJECT/topics/TOPIC or //pubsub.googleapis.com/projects/PROJECT/topics/TOPIC.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			bucket, err := parseBucketArg(args[0])
			if err != nil {
				return err
			}

			attributes, err := parseKeyValues(opts.Attributes)
			if err != nil {
				return err
			}

			topic := opts.Topic
			if !strings.HasPrefix(topic, "//") {
				topic = "//pubsub.googleapis.com/" + strings.TrimPrefix(topic, "/")
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			n, err := client.Notifications().Insert(ctx, gcs.NewInsertNotificationRequest(bucket, &gcs.Notification{
				Topic:            topic,
				EventTypes:       opts.EventTypes,
				ObjectNamePrefix: opts.Prefix,
				PayloadFormat:    opts.PayloadFormat,
				CustomAttributes: attributes,
			}))
			if err != nil {
				return fmt.Errorf("failed to create notification: %w", err)
			}

			return render(cmd.OutOrStdout(), n, propertyTable(notificationRows(n)))
		},
	}

	cmd.Flags().StringVar(&opts.Topic, "topic", "", "Pub/Sub topic")
	cmd.Flags().StringSliceVarP(&opts.EventTypes, "event-type", "e", nil, "event types, for example OBJECT_FINALIZE (default all)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "only notify for objects under this prefix")
	cmd.Flags().StringVar(&opts.PayloadFormat, "payload-format", gcs.PayloadFormatJSON, "JSON_API_V1 or NONE")
	cmd.Flags().StringArrayVarP(&opts.Attributes, "attribute", "a", nil, "custom attribute as KEY=VALUE, repeatable")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func newNotificationsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BUCKET ID",
		Short: "Delete a notification config",
		Args:  cobra.ExactArgs(2),
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

			err = client.Notifications().Delete(ctx, &gcs.DeleteNotificationRequest{Bucket: bucket, Notification: args[1]})
			if err != nil {
				return fmt.Errorf("failed to delete notification: %w", err)
			}

			printf(cmd.OutOrStdout(), "Deleted notification %s of gs://%s\n", args[1], bucket)

			return nil
		},
	}
}
