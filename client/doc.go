// Package client provides a Go consumer for the price-tracker REST API.
//
// All operations go through a single request path that retries transient
// failures (connection errors and 5xx responses) with exponential backoff
// and surfaces terminal failures to the user exactly once through a
// Notifier. The original error is always returned to the caller; the
// notification is a side effect.
//
// Create a client with the API base URL:
//
//	c := client.New("http://localhost:8080/api",
//		client.WithTimeout(10*time.Second),
//	)
//
//	page, err := c.ListItems(ctx, client.ItemQuery{Search: "sword"})
//	if err != nil {
//		var apiErr *client.APIError
//		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//			// ...
//		}
//	}
package client
