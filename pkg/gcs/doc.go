// Package gcs provides types, request descriptors, and helpers for working with
// the Cloud Storage JSON API (storage/v1).
//
// # Overview
//
// Every API method is a request type (GetBucketRequest, ListObjectsRequest,
// CopyObjectRequest, ...). A request knows its HTTP method, the authorization
// scope it needs, how to build its URL from the API base URL, and how to turn
// its optional fields into an ordered query string and a body. A Dispatcher
// sends it and classifies the response. The gcsclient package builds a
// Dispatcher and the resource clients on top of it; most consumers import
// gcsclient to construct a client and then use the interfaces defined here.
//
// Getting a client
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
//	  cli, err := gcsclient.New(ctx, &gcs.Config{CredentialsFile: "key.json"})
//	  if err != nil { log.Fatal(err) }
//
//	  b, err := cli.Buckets().Get(ctx, gcs.NewGetBucketRequest("my-bucket"))
//	  if err != nil { log.Fatal(err) }
//	  _ = b
//	}
//
// # Requests are consumed
//
// Assemble moves the optional fields out of a request: calling it a second
// time yields an empty query and a nil body. Build a new request, or Clone a
// paginated one, to send it again.
//
// # Pagination
//
// List methods return an Iterator that fetches pages lazily:
//
//	it := cli.Objects().List(ctx, gcs.NewListObjectsRequest("my-bucket"))
//	for obj, err := range it.Seq() {
//	  if err != nil { break }
//	  _ = obj
//	}
//
// Paginate and FetchAllPages work with any Pageable request, including ones
// defined outside this package.
//
// # Errors
//
// A failed call returns one of InvalidResourceURLError, AuthError,
// TransportError, HTTPStatusError, APIError or SerializationError. Each
// matches a sentinel with errors.Is. Helpers such as IsNotFound and
// IsPreconditionFailed look at the HTTP status of APIError and
// HTTPStatusError alike.
//
// # Interceptors and metrics
//
// InterceptorChain runs request and response hooks around every exchange.
// Built-ins log, add headers, tag requests with an id, and record Prometheus
// metrics.
package gcs
