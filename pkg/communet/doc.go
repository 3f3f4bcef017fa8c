// Package communet provides types, interfaces, and helpers for working with
// the Communet community platform's REST and LiQL query APIs.
//
// # Overview
//
// The communet package defines the domain types (e.g., Board, Category,
// Message, User, Tag) and the interfaces for resource-oriented clients (e.g.,
// BoardsClient, MessagesClient). A concrete implementation of these clients is
// provided by the commclient package, which wires configuration, transport,
// and authentication. Most consumers should import commclient to construct a
// client and then interact with the resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/communet-io/communet/pkg/commclient"
//	  "github.com/communet-io/communet/pkg/communet"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := commclient.New(&communet.Config{
//	    CommunityURL: "https://community.example.com",
//	    SessionKey:   "abc123",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  board, err := cli.Boards().Get(ctx, "my-first-blog")
//	  if err != nil { log.Fatal(err) }
//	  _ = board
//	}
//
// # LiQL queries
//
// Use Query to express LiQL statements against the v2 search endpoint:
//
//	q := communet.NewQuery("messages").
//	  Select("id", "subject").
//	  Where("board.id", "=", "product-blog").
//	  OrderBy("post_time", true).
//	  Limit(10)
//	result, err := cli.Search().Run(ctx, q)
//
// # Normalized results and field projection
//
// Operations that take a ReturnFields value return structured results instead
// of errors, so bulk callers can continue past individual failures. With no
// flags set the projection is a plain success boolean; with one flag set it is
// the bare value; with several it is an ordered slice following the fixed
// order id, url, api_url, http_code, status, error_message. FullResponse
// short-circuits projection and yields the raw transport response.
package communet
