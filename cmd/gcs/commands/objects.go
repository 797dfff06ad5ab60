package commands

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

const listDelimiter = "/"

// NewObjectsCommand creates the objects command group.
func NewObjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objects",
		Aliases: []string{"object", "o"},
		Short:   "Manage objects",
		Long:    "List, read, upload, copy, compose and delete objects addressed as gs://bucket/object",
	}

	cmd.AddCommand(newObjectsListCommand())
	cmd.AddCommand(newObjectsStatCommand())
	cmd.AddCommand(newObjectsCatCommand())
	cmd.AddCommand(newObjectsPutCommand())
	cmd.AddCommand(newObjectsRemoveCommand())
	cmd.AddCommand(newObjectsCopyCommand())
	cmd.AddCommand(newObjectsComposeCommand())
	cmd.AddCommand(newObjectsSetMetadataCommand())

	return cmd
}

// ObjectsListOptions holds the options for listing objects.
type ObjectsListOptions struct {
	Recursive bool
	Versions  bool
	PageSize  int64
}

// objectListing is the machine readable result of objects list.
type objectListing struct {
	Prefixes []string     `json:"prefixes,omitempty" yaml:"prefixes,omitempty"`
	Objects  []gcs.Object `json:"objects"            yaml:"objects"`
}

func newObjectsListCommand() *cobra.Command {
	var opts ObjectsListOptions

	cmd := &cobra.Command{
		Use:     "list gs://BUCKET[/PREFIX]",
		Aliases: []string{"ls"},
		Short:   "List objects",
		Long: `List the objects of a bucket under an optional prefix. Without --recursive
only one level is listed and deeper names are shown as prefixes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjectsList(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "list every object under the prefix")
	cmd.Flags().BoolVar(&opts.Versions, "versions", false, "include noncurrent generations")
	cmd.Flags().Int64Var(&opts.PageSize, "page-size", 0, "objects per page")

	return cmd
}

func runObjectsList(cmd *cobra.Command, arg string, opts ObjectsListOptions) error {
	ctx := commandContext(cmd)

	req, err := gcs.NewListObjectsRequestFromURI(arg)
	if err != nil {
		return err
	}

	if !opts.Recursive {
		req.Delimiter = listDelimiter
	}

	req.Versions = opts.Versions
	req.MaxResults = opts.PageSize

	client, err := CreateClient(ctx)
	if err != nil {
		return err
	}

	listing, err := listObjects(ctx, client, req)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), listing, func(table *tablewriter.Table) error {
		table.Header("Name", "Size", "Generation", "Updated")

		for _, prefix := range listing.Prefixes {
			err := table.Append([]string{prefix, "DIR", "", ""})
			if err != nil {
				return fmt.Errorf("failed to append prefix to table: %w", err)
			}
		}

		for _, o := range listing.Objects {
			err := table.Append([]string{
				o.Name,
				strconv.FormatUint(o.Size, 10),
				formatInt(o.Generation),
				formatTime(o.Updated),
			})
			if err != nil {
				return fmt.Errorf("failed to append object to table: %w", err)
			}
		}

		return nil
	})
}

// listObjects collects every page. Prefixes are gathered from the raw pages
// since the item iterator only yields objects.
func listObjects(ctx context.Context, client gcs.Client, req *gcs.ListObjectsRequest) (*objectListing, error) {
	listing := &objectListing{}

	if req.Delimiter == "" {
		objects, err := client.Objects().List(ctx, req).All()
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		listing.Objects = objects

		return listing, nil
	}

	for {
		page := *req

		resp, err := gcs.Invoke[gcs.ListObjectsResponse](ctx, client.Dispatcher(), &page)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		listing.Prefixes = append(listing.Prefixes, resp.Prefixes...)
		listing.Objects = append(listing.Objects, resp.Items...)

		if resp.NextPageToken == "" {
			return listing, nil
		}

		req.PageToken = resp.NextPageToken
	}
}

func newObjectsStatCommand() *cobra.Command {
	var generation int64

	cmd := &cobra.Command{
		Use:   "stat gs://BUCKET/OBJECT",
		Short: "Show object metadata",
		Long:  "Display the metadata of an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			req, err := gcs.NewGetObjectRequestFromURI(args[0])
			if err != nil {
				return err
			}

			req.Generation = generation

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			object, err := client.Objects().Get(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to get object: %w", err)
			}

			return render(cmd.OutOrStdout(), object, propertyTable(objectRows(object)))
		},
	}

	cmd.Flags().Int64Var(&generation, "generation", 0, "read a specific generation")

	return cmd
}

func objectRows(o *gcs.Object) [][]string {
	rows := [][]string{
		{"URI", gcs.URI{Bucket: o.Bucket, Object: o.Name}.String()},
		{"Size", strconv.FormatUint(o.Size, 10)},
		{"Content Type", valueOrNA(o.ContentType)},
		{"Storage Class", titleCase(o.StorageClass)},
		{"Generation", formatInt(o.Generation)},
		{"Metageneration", formatInt(o.Metageneration)},
		{"MD5", valueOrNA(o.MD5Hash)},
		{"CRC32C", valueOrNA(o.CRC32C)},
		{"Created", formatTime(o.TimeCreated)},
		{"Updated", formatTime(o.Updated)},
	}

	if o.CacheControl != "" {
		rows = append(rows, []string{"Cache Control", o.CacheControl})
	}

	for _, row := range labelRows(o.Metadata) {
		rows = append(rows, []string{"Metadata " + row[0], row[1]})
	}

	return rows
}

func newObjectsCatCommand() *cobra.Command {
	var generation int64

	cmd := &cobra.Command{
		Use:   "cat gs://BUCKET/OBJECT",
		Short: "Print object content",
		Long:  "Download an object and write its content to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			req, err := gcs.NewDownloadObjectRequestFromURI(args[0])
			if err != nil {
				return err
			}

			req.Generation = generation

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			data, err := client.Objects().Download(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to download object: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			if err != nil {
				return fmt.Errorf("failed to write object content: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&generation, "generation", 0, "read a specific generation")

	return cmd
}

// ObjectsPutOptions holds the options for uploading an object.
type ObjectsPutOptions struct {
	ContentType   string
	PredefinedACL string
	NoClobber     bool
	Metadata      []string
}

func newObjectsPutCommand() *cobra.Command {
	var opts ObjectsPutOptions

	cmd := &cobra.Command{
		Use:   "put FILE gs://BUCKET/OBJECT",
		Short: "Upload a file",
		Long: `Upload a local file as an object. When OBJECT ends with a slash the file
name is appended.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjectsPut(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.ContentType, "content-type", "", "content type (default guessed from the file)")
	cmd.Flags().StringVar(&opts.PredefinedACL, "predefined-acl", "", "canned ACL, for example private or publicRead")
	cmd.Flags().BoolVarP(&opts.NoClobber, "no-clobber", "n", false, "fail if the object already exists")
	cmd.Flags().StringArrayVarP(&opts.Metadata, "metadata", "m", nil, "custom metadata as KEY=VALUE, repeatable")

	return cmd
}

func runObjectsPut(cmd *cobra.Command, file, dest string, opts ObjectsPutOptions) error {
	ctx := commandContext(cmd)

	uri, err := gcs.ParseURI(dest)
	if err != nil {
		return err
	}

	if uri.Object == "" || strings.HasSuffix(uri.Object, "/") {
		uri.Object += filepath.Base(file)
	}

	data, err := readUploadFile(file)
	if err != nil {
		return err
	}

	metadata, err := parseKeyValues(opts.Metadata)
	if err != nil {
		return err
	}

	acl, err := gcs.ParsePredefinedObjectACL(opts.PredefinedACL)
	if err != nil {
		return err
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = detectContentType(file, data)
	}

	req := gcs.NewInsertObjectRequest(uri.Bucket, uri.Object, contentType, data)
	req.PredefinedACL = acl

	if opts.NoClobber {
		req.IfGenerationMatch = gcs.Int64(0)
	}

	client, err := CreateClient(ctx)
	if err != nil {
		return err
	}

	object, err := client.Objects().Insert(ctx, req)
	if err != nil {
		if opts.NoClobber && gcs.IsPreconditionFailed(err) {
			return fmt.Errorf("%s already exists: %w", uri, err)
		}

		return fmt.Errorf("failed to upload object: %w", err)
	}

	if len(metadata) > 0 {
		object, err = client.Objects().Patch(ctx, gcs.NewPatchObjectRequest(uri.Bucket, uri.Object, &gcs.Object{Metadata: metadata}))
		if err != nil {
			return fmt.Errorf("failed to set object metadata: %w", err)
		}
	}

	printf(cmd.OutOrStdout(), "Uploaded %s (%d bytes)\n", uri, len(data))

	return render(cmd.OutOrStdout(), object, propertyTable(objectRows(object)))
}

func readUploadFile(file string) ([]byte, error) {
	clean := filepath.Clean(file)
	if strings.Contains(filepath.ToSlash(clean), "../") {
		return nil, fmt.Errorf("%w: %s", constants.ErrDirectoryTraversalDetected, file)
	}

	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotRegularFile, file)
	}

	// clean was checked above
	// #nosec G304
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

func detectContentType(file string, data []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(file)); byExt != "" {
		return byExt
	}

	return http.DetectContentType(data)
}

// ObjectsRemoveOptions holds the options for deleting objects.
type ObjectsRemoveOptions struct {
	Recursive   bool
	Force       bool
	Concurrency int
}

func newObjectsRemoveCommand() *cobra.Command {
	var opts ObjectsRemoveOptions

	cmd := &cobra.Command{
		Use:     "rm gs://BUCKET/OBJECT...",
		Aliases: []string{"delete"},
		Short:   "Delete objects",
		Long: `Delete one or more objects. With --recursive each argument is a prefix and
every object under it is deleted concurrently after confirmation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjectsRemove(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "delete every object under each prefix")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "do not ask for confirmation")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", constants.DefaultConcurrencyLimit, "parallel deletes")

	return cmd
}

func runObjectsRemove(cmd *cobra.Command, args []string, opts ObjectsRemoveOptions) error {
	ctx := commandContext(cmd)

	client, err := CreateClient(ctx)
	if err != nil {
		return err
	}

	var targets []gcs.URI

	for _, arg := range args {
		if !opts.Recursive {
			uri, err := parseObjectArg(arg)
			if err != nil {
				return err
			}

			targets = append(targets, uri)

			continue
		}

		req, err := gcs.NewListObjectsRequestFromURI(arg)
		if err != nil {
			return err
		}

		objects, err := client.Objects().List(ctx, req).All()
		if err != nil {
			return fmt.Errorf("failed to list objects: %w", err)
		}

		for _, o := range objects {
			targets = append(targets, gcs.URI{Bucket: req.Bucket, Object: o.Name})
		}
	}

	if len(targets) == 0 {
		printf(cmd.OutOrStdout(), "No objects to delete\n")

		return nil
	}

	if opts.Recursive || len(targets) > 1 {
		err = confirm(cmd, opts.Force, fmt.Sprintf("Delete %d objects?", len(targets)))
		if err != nil {
			return err
		}
	}

	operations := make([]gcs.BatchOperation, 0, len(targets))
	for _, target := range targets {
		operations = append(operations, gcs.NewCallOperation[gcs.Empty](
			target.String(),
			client.Dispatcher(),
			gcs.NewDeleteObjectRequest(target.Bucket, target.Object),
		))
	}

	results, err := gcs.NewBatchExecutor(opts.Concurrency).Execute(ctx, operations)
	if err != nil {
		return fmt.Errorf("failed to delete objects: %w", err)
	}

	deleted := 0

	for _, result := range results {
		if result.Success {
			deleted++

			printf(cmd.OutOrStdout(), "Deleted %s\n", result.ID)
		}
	}

	err = gcs.BatchError(results)
	if err != nil {
		return fmt.Errorf("deleted %d of %d objects: %w", deleted, len(results), err)
	}

	return nil
}

func newObjectsCopyCommand() *cobra.Command {
	var maxBytesPerCall int64

	cmd := &cobra.Command{
		Use:   "cp gs://BUCKET/OBJECT gs://BUCKET/OBJECT",
		Short: "Copy an object",
		Long: `Copy an object within or across buckets. The copy is done by the server with
rewrite calls, so large objects and copies across locations or storage classes
work. When the destination ends with a slash the source name is appended.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			src, err := parseObjectArg(args[0])
			if err != nil {
				return err
			}

			dst, err := gcs.ParseURI(args[1])
			if err != nil {
				return err
			}

			if dst.Object == "" || strings.HasSuffix(dst.Object, "/") {
				dst.Object += path.Base(src.Object)
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			req := gcs.NewRewriteObjectRequest(src.Bucket, src.Object, dst.Bucket, dst.Object)
			req.MaxBytesRewrittenPerCall = maxBytesPerCall

			object, err := client.Objects().RewriteUntilDone(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to copy object: %w", err)
			}

			printf(cmd.OutOrStdout(), "Copied %s to %s\n", src, dst)

			return render(cmd.OutOrStdout(), object, propertyTable(objectRows(object)))
		},
	}

	cmd.Flags().Int64Var(&maxBytesPerCall, "max-bytes-per-call", 0, "limit the bytes copied by one rewrite call")

	return cmd
}

func newObjectsComposeCommand() *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "compose gs://BUCKET/DEST gs://BUCKET/SOURCE...",
		Short: "Concatenate objects",
		Long:  "Concatenate source objects of one bucket into a destination object in the same bucket",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			req, err := composeRequest(args[0], args[1:])
			if err != nil {
				return err
			}

			if contentType != "" {
				req.Destination = &gcs.Object{ContentType: contentType}
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			object, err := client.Objects().Compose(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to compose object: %w", err)
			}

			return render(cmd.OutOrStdout(), object, propertyTable(objectRows(object)))
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "content type of the destination")

	return cmd
}

func composeRequest(dest string, sources []string) (*gcs.ComposeObjectRequest, error) {
	if len(sources) == 0 {
		return nil, ErrComposeSources
	}

	dst, err := parseObjectArg(dest)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(sources))

	for _, source := range sources {
		src, err := parseObjectArg(source)
		if err != nil {
			return nil, err
		}

		if src.Bucket != dst.Bucket {
			return nil, fmt.Errorf("%w: %s", ErrComposeCrossBucket, source)
		}

		names = append(names, src.Object)
	}

	return gcs.NewComposeObjectRequest(dst.Bucket, dst.Object, names...), nil
}

// ObjectsSetMetadataOptions holds the metadata changes of an object.
type ObjectsSetMetadataOptions struct {
	ContentType  string
	CacheControl string
	Metadata     []string
}

func newObjectsSetMetadataCommand() *cobra.Command {
	var opts ObjectsSetMetadataOptions

	cmd := &cobra.Command{
		Use:   "set-metadata gs://BUCKET/OBJECT",
		Short: "Change object metadata",
		Long:  "Patch the content type, cache control or custom metadata of an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			uri, err := parseObjectArg(args[0])
			if err != nil {
				return err
			}

			metadata, err := parseKeyValues(opts.Metadata)
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			patch := &gcs.Object{
				ContentType:  opts.ContentType,
				CacheControl: opts.CacheControl,
				Metadata:     metadata,
			}

			object, err := client.Objects().Patch(ctx, gcs.NewPatchObjectRequest(uri.Bucket, uri.Object, patch))
			if err != nil {
				return fmt.Errorf("failed to patch object: %w", err)
			}

			return render(cmd.OutOrStdout(), object, propertyTable(objectRows(object)))
		},
	}

	cmd.Flags().StringVar(&opts.ContentType, "content-type", "", "new content type")
	cmd.Flags().StringVar(&opts.CacheControl, "cache-control", "", "new Cache-Control value")
	cmd.Flags().StringArrayVarP(&opts.Metadata, "metadata", "m", nil, "custom metadata as KEY=VALUE, repeatable")

	return cmd
}
