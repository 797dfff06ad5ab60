// Package gcsclient provides the primary entry point for constructing a
// Cloud Storage JSON API client that implements the gcs.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// request types and resource interfaces defined in the gcs package. Most
// applications should import gcsclient to build a client, then use the
// returned gcs.Client to access resource-specific clients, for example
// Buckets(), Objects(), HMACKeys(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/gcs-client/pkg/gcs"
//	  "github.com/fivetwenty-io/gcs-client/pkg/gcsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Public data only.
//	  cli, err := gcsclient.NewAnonymous(ctx)
//
//	  // Or with a token you already have:
//	  cli, err = gcsclient.NewWithToken(ctx, "ya29.a0Af...")
//
//	  // Or from a service account key. Each call is authorized with the
//	  // narrowest storage scope it needs.
//	  cli, err = gcsclient.New(ctx, &gcs.Config{
//	    CredentialsFile: "/path/to/key.json",
//	    RetryMax:        3,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  objects, err := cli.Objects().List(ctx, gcs.NewListObjectsRequest("my-bucket")).All()
//	  if err != nil { log.Fatal(err) }
//	  _ = objects
//	}
//
// # Emulators
//
// When Config.BaseURL is empty and STORAGE_EMULATOR_HOST is set, the client
// talks to http://$STORAGE_EMULATOR_HOST/storage/v1/ instead of the
// production endpoint.
//
// # Helpers
//
// The package also provides convenience constructors NewAnonymous,
// NewWithToken and NewWithCredentialsFile.
package gcsclient
