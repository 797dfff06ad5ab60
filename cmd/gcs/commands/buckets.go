package commands

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// NewBucketsCommand creates the buckets command group.
func NewBucketsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "buckets",
		Aliases: []string{"bucket", "b"},
		Short:   "Manage buckets",
		Long:    "List, inspect, create, relabel and delete Cloud Storage buckets",
	}

	cmd.AddCommand(newBucketsListCommand())
	cmd.AddCommand(newBucketsGetCommand())
	cmd.AddCommand(newBucketsCreateCommand())
	cmd.AddCommand(newBucketsLabelCommand())
	cmd.AddCommand(newBucketsDeleteCommand())

	return cmd
}

// BucketsListOptions holds the options for listing buckets.
type BucketsListOptions struct {
	Prefix     string
	MaxResults int64
}

func newBucketsListCommand() *cobra.Command {
	var opts BucketsListOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List buckets",
		Long:    "List the buckets of the configured project, following every page",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBucketsList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "only list buckets whose name starts with prefix")
	cmd.Flags().Int64Var(&opts.MaxResults, "page-size", 0, "buckets per page")

	return cmd
}

func runBucketsList(cmd *cobra.Command, opts BucketsListOptions) error {
	ctx := commandContext(cmd)

	project, err := requireProject(effectiveConfig())
	if err != nil {
		return err
	}

	client, err := CreateClient(ctx)
	if err != nil {
		return err
	}

	req := gcs.NewListBucketsRequest(project)
	req.Prefix = opts.Prefix
	req.MaxResults = opts.MaxResults

	buckets, err := client.Buckets().List(ctx, req).All()
	if err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}

	return render(cmd.OutOrStdout(), buckets, func(table *tablewriter.Table) error {
		if len(buckets) == 0 {
			_, _ = cmd.OutOrStdout().Write([]byte("No buckets found\n"))

			return nil
		}

		table.Header("Name", "Location", "Storage Class", "Created")

		for _, b := range buckets {
			err := table.Append([]string{b.Name, b.Location, titleCase(b.StorageClass), formatTime(b.TimeCreated)})
			if err != nil {
				return fmt.Errorf("failed to append bucket to table: %w", err)
			}
		}

		return nil
	})
}

func newBucketsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BUCKET",
		Short: "Get bucket details",
		Long:  "Display the metadata of a bucket, given as NAME or gs://NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			name, err := parseBucketArg(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			bucket, err := client.Buckets().Get(ctx, gcs.NewGetBucketRequest(name))
			if err != nil {
				return fmt.Errorf("failed to get bucket: %w", err)
			}

			return render(cmd.OutOrStdout(), bucket, propertyTable(bucketRows(bucket)))
		},
	}
}

func bucketRows(b *gcs.Bucket) [][]string {
	versioning := "Disabled"
	if b.Versioning != nil && b.Versioning.Enabled {
		versioning = "Enabled"
	}

	rows := [][]string{
		{"Name", b.Name},
		{"Location", valueOrNA(b.Location)},
		{"Location Type", titleCase(b.LocationType)},
		{"Storage Class", titleCase(b.StorageClass)},
		{"Versioning", versioning},
		{"Metageneration", formatInt(b.Metageneration)},
		{"Created", formatTime(b.TimeCreated)},
		{"Updated", formatTime(b.Updated)},
	}

	for _, key := range slices.Sorted(maps.Keys(b.Labels)) {
		rows = append(rows, []string{"Label " + key, b.Labels[key]})
	}

	return rows
}

// BucketsCreateOptions holds the options for creating a bucket.
type BucketsCreateOptions struct {
	Location      string
	StorageClass  string
	Versioning    bool
	Labels        []string
	PredefinedACL string
	UniformAccess bool
}

func newBucketsCreateCommand() *cobra.Command {
	var opts BucketsCreateOptions

	cmd := &cobra.Command{
		Use:   "create BUCKET",
		Short: "Create a bucket",
		Long:  "Create a bucket in the configured project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBucketsCreate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Location, "location", "", "bucket location, for example US or EUROPE-WEST1")
	cmd.Flags().StringVar(&opts.StorageClass, "storage-class", "", "default storage class, for example STANDARD or NEARLINE")
	cmd.Flags().BoolVar(&opts.Versioning, "versioning", false, "enable object versioning")
	cmd.Flags().StringArrayVarP(&opts.Labels, "label", "l", nil, "label as KEY=VALUE, repeatable")
	cmd.Flags().StringVar(&opts.PredefinedACL, "predefined-acl", "", "canned ACL, for example private or publicRead")
	cmd.Flags().BoolVar(&opts.UniformAccess, "uniform-access", false, "enable uniform bucket-level access")

	return cmd
}

func runBucketsCreate(cmd *cobra.Command, arg string, opts BucketsCreateOptions) error {
	ctx := commandContext(cmd)

	name, err := parseBucketArg(arg)
	if err != nil {
		return err
	}

	project, err := requireProject(effectiveConfig())
	if err != nil {
		return err
	}

	labels, err := parseKeyValues(opts.Labels)
	if err != nil {
		return err
	}

	acl, err := gcs.ParsePredefinedBucketACL(opts.PredefinedACL)
	if err != nil {
		return err
	}

	bucket := &gcs.Bucket{
		Name:         name,
		Location:     strings.ToUpper(opts.Location),
		StorageClass: strings.ToUpper(opts.StorageClass),
		Labels:       labels,
	}

	if opts.Versioning {
		bucket.Versioning = &gcs.BucketVersioning{Enabled: true}
	}

	if opts.UniformAccess {
		bucket.IAMConfiguration = &gcs.BucketIAMConfiguration{
			UniformBucketLevelAccess: &gcs.UniformBucketLevelAccess{Enabled: true},
		}
	}

	client, err := CreateClient(ctx)
	if err != nil {
		return err
	}

	req := gcs.NewInsertBucketRequest(project, bucket)
	req.PredefinedACL = acl

	created, err := client.Buckets().Insert(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	printf(cmd.OutOrStdout(), "Created bucket gs://%s\n", created.Name)

	return render(cmd.OutOrStdout(), created, propertyTable(bucketRows(created)))
}

// BucketsLabelOptions holds the label changes of a bucket.
type BucketsLabelOptions struct {
	Set    []string
	Remove []string
}

func newBucketsLabelCommand() *cobra.Command {
	var opts BucketsLabelOptions

	cmd := &cobra.Command{
		Use:   "label BUCKET",
		Short: "Change bucket labels",
		Long: `Add, change or remove bucket labels. The bucket is read, changed and written
back guarded by its metageneration, so a concurrent change fails with a
precondition error instead of being lost.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBucketsLabel(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "label to add or change as KEY=VALUE, repeatable")
	cmd.Flags().StringArrayVar(&opts.Remove, "remove", nil, "label key to remove, repeatable")

	return cmd
}

func runBucketsLabel(cmd *cobra.Command, arg string, opts BucketsLabelOptions) error {
	ctx := commandContext(cmd)

	name, err := parseBucketArg(arg)
	if err != nil {
		return err
	}

	set, err := parseKeyValues(opts.Set)
	if err != nil {
		return err
	}

	client, err := CreateClient(ctx)
	if err != nil {
		return err
	}

	bucket, err := client.Buckets().Get(ctx, gcs.NewGetBucketRequest(name))
	if err != nil {
		return fmt.Errorf("failed to get bucket: %w", err)
	}

	if bucket.Labels == nil {
		bucket.Labels = map[string]string{}
	}

	maps.Copy(bucket.Labels, set)

	for _, key := range opts.Remove {
		delete(bucket.Labels, key)
	}

	updated, err := client.Buckets().Update(ctx, gcs.NewUpdateBucketRequestFrom(bucket))
	if err != nil {
		if gcs.IsPreconditionFailed(err) {
			return fmt.Errorf("bucket changed while updating labels, retry: %w", err)
		}

		return fmt.Errorf("failed to update bucket: %w", err)
	}

	return render(cmd.OutOrStdout(), updated.Labels, propertyTable(labelRows(updated.Labels)))
}

func labelRows(labels map[string]string) [][]string {
	rows := make([][]string, 0, len(labels))
	for _, key := range slices.Sorted(maps.Keys(labels)) {
		rows = append(rows, []string{key, labels[key]})
	}

	return rows
}

func newBucketsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete BUCKET",
		Short: "Delete a bucket",
		Long:  "Delete an empty bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			name, err := parseBucketArg(args[0])
			if err != nil {
				return err
			}

			err = confirm(cmd, force, "Delete bucket gs://"+name+"?")
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			err = client.Buckets().Delete(ctx, gcs.NewDeleteBucketRequest(name))
			if err != nil {
				return fmt.Errorf("failed to delete bucket: %w", err)
			}

			printf(cmd.OutOrStdout(), "Deleted bucket gs://%s\n", name)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "do not ask for confirmation")

	return cmd
}
