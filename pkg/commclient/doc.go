// Package commclient provides the primary entry point for constructing a
// community API client that implements the communet.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the communet package. Most
// applications should import commclient to build a client, then use the
// returned communet.Client to access resource-specific clients, for example
// Boards(), Messages(), Users(), etc.
//
// Quick start
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
//
//	  // With a session key you already have:
//	  cli, err := commclient.NewWithSessionKey("https://community.example.com", "2b7a...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with username/password. The session key is obtained from the v1
//	  // login endpoint on first use and re-obtained when it is invalidated.
//	  cli, err = commclient.New(&communet.Config{
//	    CommunityURL: "https://community.example.com",
//	    Username:     "api-user",
//	    Password:     "secret",
//	    PreferJSON:   true,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the communet.Client interface
//	  board, err := cli.Boards().Get(ctx, "product-news")
//	  if err != nil { log.Fatal(err) }
//	  _ = board
//	}
//
// # Authentication modes
//
// Credentials are applied in a fixed precedence: an explicit SessionKey wins,
// then an SSOToken, then OAuth2 client credentials, then username/password
// session login. Config.AuthType can force a specific mode when more than one
// set of credentials is present.
//
// # Helpers
//
// The package also provides convenience constructors NewWithSessionKey,
// NewWithSSO, NewWithClientCredentials, and NewWithPassword that wrap New with
// the appropriate configuration. All helpers default PreferJSON to true so v1
// endpoints respond with JSON instead of XML.
package commclient
