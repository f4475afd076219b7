package delivery

import (
	"context"
	"fmt"
)

// Deliverer is the common contract for the two delivery backends - the direct Drive
// strategy and the HTTP relay strategy. Implementations deliver the artifact to the
// destination folder and either return a receipt for the created file or a *Failure
// tagged with the failure kind. No implementation retries; every failed delivery is
// terminal for the run.
type Deliverer interface {
	Deliver(ctx context.Context, artifact Artifact, folder string) (Receipt, error)
}

// Receipt identifies the file created at the destination.
type Receipt struct {
	ID   string
	URL  string
	Name string
}

type Kind string

const (
	// Transport tags connection, DNS and timeout failures on the delivery call.
	Transport Kind = "transport"

	// HTTPStatus tags relay responses with an HTTP status outside the success range.
	HTTPStatus Kind = "http-status"

	// BadResponse tags relay responses that are not parseable as the expected JSON
	// reply - commonly an HTML sign-in page returned by an authentication redirect.
	BadResponse Kind = "bad-response"

	// Rejected tags well-formed relay replies whose status field is not 'success'.
	Rejected Kind = "rejected"

	// Storage tags errors reported by the storage API on the direct delivery path,
	// surfaced as-is and not interpreted further.
	Storage Kind = "storage"
)

// Failure is the tagged error returned by a delivery strategy, carrying enough context
// to diagnose the failure without re-running - the HTTP status code where there was
// one and a bounded snippet of the raw response where there was a response.
type Failure struct {
	Kind     Kind
	Message  string
	Status   int
	Response string
	Err      error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case HTTPStatus:
		return fmt.Sprintf("delivery failed (%v): %s %d", f.Kind, f.Message, f.Status)

	case BadResponse:
		return fmt.Sprintf("delivery failed (%v): %s: %q", f.Kind, f.Message, f.Response)

	default:
		return fmt.Sprintf("delivery failed (%v): %s", f.Kind, f.Message)
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// snippet truncates a raw response body for error reporting.
func snippet(body []byte) string {
	const limit = 512

	if len(body) > limit {
		return string(body[:limit]) + "..."
	}

	return string(body)
}
