package gdrive

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/ebisu-dx/secure-export/pipeline"
)

// NewService authenticates to Google Drive with a service account key (the JSON key
// material, not a file path) and returns the Drive client.
func NewService(ctx context.Context, key []byte) (*drive.Service, error) {
	credentials, err := google.CredentialsFromJSON(ctx, key, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account key (%v)", err)
	}

	gdrive, err := drive.NewService(ctx, option.WithCredentials(credentials))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%v)", err)
	}

	return gdrive, nil
}

// Store adapts a Drive client to the pipeline's locate/fetch boundary.
type Store struct {
	gdrive *drive.Service
}

func NewStore(gdrive *drive.Service) *Store {
	return &Store{
		gdrive: gdrive,
	}
}

// Newest returns the most recently named file in the folder whose name starts with
// prefix, or a zero Source when nothing matches. Drive's query language has no prefix
// operator so the query uses 'name contains' with a client-side prefix guard on the
// first match.
func (s *Store) Newest(ctx context.Context, folder string, prefix string) (pipeline.Source, error) {
	q := fmt.Sprintf("'%s' in parents and trashed = false and name contains '%s'", folder, escape(prefix))

	list, err := s.gdrive.Files.List().
		Q(q).
		OrderBy("name desc").
		PageSize(1).
		Fields("files(id, name, modifiedTime)").
		Context(ctx).
		Do()

	if err != nil {
		return pipeline.Source{}, fmt.Errorf("error listing folder '%s' (%v)", folder, err)
	}

	if len(list.Files) == 0 {
		return pipeline.Source{}, nil
	}

	f := list.Files[0]

	if !strings.HasPrefix(f.Name, prefix) {
		return pipeline.Source{}, nil
	}

	src := pipeline.Source{
		ID:   f.Id,
		Name: f.Name,
	}

	if f.ModifiedTime != "" {
		if modified, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			src.Modified = modified
		}
	}

	return src, nil
}

// Fetch downloads the complete file into memory, reporting progress as a percentage
// of the content length (where the server supplies one).
func (s *Store) Fetch(ctx context.Context, id string) ([]byte, error) {
	response, err := s.gdrive.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("error downloading file %s (%v)", id, err)
	}

	defer response.Body.Close()

	var b bytes.Buffer

	chunk := make([]byte, 262144)
	for {
		n, err := response.Body.Read(chunk)
		if n > 0 {
			b.Write(chunk[:n])

			if response.ContentLength > 0 {
				infof("downloading %d%%", 100*int64(b.Len())/response.ContentLength)
			} else {
				infof("downloading %d bytes", b.Len())
			}
		}

		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("error downloading file %s (%v)", id, err)
		}
	}

	return b.Bytes(), nil
}

func escape(v string) string {
	return strings.ReplaceAll(v, `'`, `\'`)
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}
