// Package httputil holds the HTTP plumbing shared by remote collaborators:
// a retry helper with exponential backoff and an instrumented GET that
// reports to the observability hooks.
//
// Transient failures (network errors, 5xx responses) are wrapped in
// [RetryableError]; everything else fails fast.
//
//	var body []byte
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    var err error
//	    body, err = client.Get(ctx, url)
//	    return err
//	})
package httputil
