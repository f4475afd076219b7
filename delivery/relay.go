package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds the relay HTTP call. The remote side decrypts nothing but does
// perform the destination write, so the bound is deliberately generous - a slow remote
// transform is not a network fault.
const DefaultTimeout = 90 * time.Second

// Relay delivers artifacts by POSTing them to an HTTP endpoint that performs the
// destination write on this system's behalf. The endpoint is a third party script
// outside this system's control - its failure modes are only observable through the
// HTTP response, so Deliver classifies the outcome in strict order: transport fault,
// HTTP status, unparseable reply, application-level rejection, success.
type Relay struct {
	url    string
	apiKey string
	client *http.Client
}

func NewRelay(url string, apiKey string, timeout time.Duration) *Relay {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Relay{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type relayRequest struct {
	FolderID string `json:"folderId"`
	Filename string `json:"filename"`
	FilePath string `json:"filePath,omitempty"`
	CSVData  string `json:"csvData"`
}

type relayReply struct {
	Status   string `json:"status"`
	FileID   string `json:"fileId"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	Message  string `json:"message"`
}

func (r *Relay) Deliver(ctx context.Context, artifact Artifact, folder string) (Receipt, error) {
	rq := relayRequest{
		FolderID: folder,
		Filename: artifact.Filename,
		CSVData:  string(artifact.Data),
	}

	if artifact.Path != "" {
		rq.FilePath = artifact.Path + "/" + artifact.Filename
	}

	body, err := json.Marshal(rq)
	if err != nil {
		return Receipt{}, fmt.Errorf("error marshalling relay request (%v)", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("invalid relay URL '%s' (%v)", r.url, err)
	}

	// NB: the shared secret travels in the header only - it must never appear in the
	//     request body, which the relay may echo back in error replies.
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Api-Key", r.apiKey)

	response, err := r.client.Do(request)
	if err != nil {
		return Receipt{}, &Failure{
			Kind:    Transport,
			Message: fmt.Sprintf("error POSTing to relay (%v)", err),
			Err:     err,
		}
	}

	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return Receipt{}, &Failure{
			Kind:    Transport,
			Message: fmt.Sprintf("error reading relay response (%v)", err),
			Err:     err,
		}
	}

	if response.StatusCode < http.StatusOK || response.StatusCode > 299 {
		return Receipt{}, &Failure{
			Kind:     HTTPStatus,
			Message:  "relay returned HTTP status",
			Status:   response.StatusCode,
			Response: snippet(raw),
		}
	}

	reply := relayReply{}
	if err := json.Unmarshal(raw, &reply); err != nil || reply.Status == "" {
		return Receipt{}, &Failure{
			Kind:     BadResponse,
			Message:  "relay response is not the expected JSON reply",
			Response: snippet(raw),
			Err:      err,
		}
	}

	if reply.Status != "success" {
		return Receipt{}, &Failure{
			Kind:     Rejected,
			Message:  reply.Message,
			Response: snippet(raw),
		}
	}

	return Receipt{
		ID:   reply.FileID,
		URL:  reply.FileURL,
		Name: reply.FileName,
	}, nil
}
