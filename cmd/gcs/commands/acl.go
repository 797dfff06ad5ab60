package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// aclEntry is the common view of bucket and object ACL entries.
type aclEntry struct {
	Entity string `json:"entity" yaml:"entity"`
	Role   string `json:"role"   yaml:"role"`
	Email  string `json:"email,omitempty"  yaml:"email,omitempty"`
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`
}

// aclTarget selects one of the three access control lists.
type aclTarget struct {
	uri           gcs.URI
	defaultObject bool
}

func (t aclTarget) describe() string {
	if t.defaultObject {
		return "default object ACL of gs://" + t.uri.Bucket
	}

	return "ACL of " + t.uri.String()
}

// NewACLCommand creates the acl command group.
func NewACLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acl",
		Short: "Manage access control lists",
		Long: `Show and change the ACL of a bucket (gs://BUCKET), of an object
(gs://BUCKET/OBJECT) or, with --default, the default object ACL of a bucket.`,
	}

	cmd.AddCommand(newACLListCommand())
	cmd.AddCommand(newACLGrantCommand())
	cmd.AddCommand(newACLRevokeCommand())

	return cmd
}

func parseACLTarget(arg string, defaultObject bool) (aclTarget, error) {
	uri, err := gcs.ParseURI(arg)
	if err != nil {
		return aclTarget{}, err
	}

	if defaultObject && uri.Object != "" {
		_, err = parseBucketArg(arg)

		return aclTarget{}, err
	}

	return aclTarget{uri: uri, defaultObject: defaultObject}, nil
}

func newACLListCommand() *cobra.Command {
	var defaultObject bool

	cmd := &cobra.Command{
		Use:     "list gs://BUCKET[/OBJECT]",
		Aliases: []string{"ls", "get"},
		Short:   "List ACL entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			target, err := parseACLTarget(args[0], defaultObject)
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			entries, err := listACL(cmd, client, target)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", target.describe(), err)
			}

			return render(cmd.OutOrStdout(), entries, func(table *tablewriter.Table) error {
				table.Header("Entity", "Role", "Email", "Domain")

				for _, e := range entries {
					err := table.Append([]string{e.Entity, e.Role, e.Email, e.Domain})
					if err != nil {
						return fmt.Errorf("failed to append ACL entry to table: %w", err)
					}
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&defaultObject, "default", "d", false, "use the default object ACL of the bucket")

	return cmd
}

func listACL(cmd *cobra.Command, client gcs.Client, target aclTarget) ([]aclEntry, error) {
	ctx := commandContext(cmd)
	bucket := target.uri.Bucket

	switch {
	case target.defaultObject:
		entries, err := client.DefaultObjectACLs().List(ctx, &gcs.ListDefaultObjectACLRequest{Bucket: bucket})

		return objectACLEntries(entries), err
	case target.uri.Object != "":
		entries, err := client.ObjectACLs().List(ctx, &gcs.ListObjectACLRequest{Bucket: bucket, Object: target.uri.Object})

		return objectACLEntries(entries), err
	default:
		entries, err := client.BucketACLs().List(ctx, &gcs.ListBucketACLRequest{Bucket: bucket})
		if err != nil {
			return nil, err
		}

		out := make([]aclEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, aclEntry{Entity: e.Entity, Role: e.Role, Email: e.Email, Domain: e.Domain})
		}

		return out, nil
	}
}

func objectACLEntries(entries []gcs.ObjectAccessControl) []aclEntry {
	out := make([]aclEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, aclEntry{Entity: e.Entity, Role: e.Role, Email: e.Email, Domain: e.Domain})
	}

	return out
}

func parseRole(role string) (string, error) {
	upper := strings.ToUpper(role)

	switch upper {
	case gcs.RoleOwner, gcs.RoleReader, gcs.RoleWriter:
		return upper, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
}

func newACLGrantCommand() *cobra.Command {
	var defaultObject bool

	cmd := &cobra.Command{
		Use:   "grant gs://BUCKET[/OBJECT] ENTITY ROLE",
		Short: "Grant a role to an entity",
		Long: `Add or change an ACL entry. ENTITY is user-EMAIL, group-EMAIL, domain-DOMAIN,
project-TEAM-PROJECTID, allUsers or allAuthenticatedUsers. ROLE is OWNER,
READER or WRITER (WRITER applies to buckets only).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			target, err := parseACLTarget(args[0], defaultObject)
			if err != nil {
				return err
			}

			entity := args[1]
			if entity == "" {
				return ErrInvalidEntity
			}

			role, err := parseRole(args[2])
			if err != nil {
				return err
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			bucket := target.uri.Bucket

			switch {
			case target.defaultObject:
				_, err = client.DefaultObjectACLs().Insert(ctx, &gcs.InsertDefaultObjectACLRequest{
					Bucket: bucket,
					ACL:    &gcs.ObjectAccessControl{Entity: entity, Role: role},
				})
			case target.uri.Object != "":
				_, err = client.ObjectACLs().Insert(ctx, &gcs.InsertObjectACLRequest{
					Bucket: bucket,
					Object: target.uri.Object,
					ACL:    &gcs.ObjectAccessControl{Entity: entity, Role: role},
				})
			default:
				_, err = client.BucketACLs().Insert(ctx, &gcs.InsertBucketACLRequest{
					Bucket: bucket,
					ACL:    &gcs.BucketAccessControl{Entity: entity, Role: role},
				})
			}

			if err != nil {
				return fmt.Errorf("failed to change %s: %w", target.describe(), err)
			}

			entry := aclEntry{Entity: entity, Role: role}
			printf(cmd.OutOrStdout(), "Granted %s to %s on the %s\n", role, entity, target.describe())

			return render(cmd.OutOrStdout(), entry, propertyTable([][]string{{"Entity", entity}, {"Role", role}}))
		},
	}

	cmd.Flags().BoolVarP(&defaultObject, "default", "d", false, "use the default object ACL of the bucket")

	return cmd
}

func newACLRevokeCommand() *cobra.Command {
	var defaultObject bool

	cmd := &cobra.Command{
		Use:   "revoke gs://BUCKET[/OBJECT] ENTITY",
		Short: "Remove an entity from an ACL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			target, err := parseACLTarget(args[0], defaultObject)
			if err != nil {
				return err
			}

			entity := args[1]
			if entity == "" {
				return ErrInvalidEntity
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			bucket := target.uri.Bucket

			switch {
			case target.defaultObject:
				err = client.DefaultObjectACLs().Delete(ctx, &gcs.DeleteDefaultObjectACLRequest{Bucket: bucket, Entity: entity})
			case target.uri.Object != "":
				err = client.ObjectACLs().Delete(ctx, &gcs.DeleteObjectACLRequest{Bucket: bucket, Object: target.uri.Object, Entity: entity})
			default:
				err = client.BucketACLs().Delete(ctx, &gcs.DeleteBucketACLRequest{Bucket: bucket, Entity: entity})
			}

			if err != nil {
				return fmt.Errorf("failed to change %s: %w", target.describe(), err)
			}

			printf(cmd.OutOrStdout(), "Revoked %s from the %s\n", entity, target.describe())

			return nil
		},
	}

	cmd.Flags().BoolVarP(&defaultObject, "default", "d", false, "use the default object ACL of the bucket")

	return cmd
}
