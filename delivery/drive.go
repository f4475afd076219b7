package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Drive delivers artifacts directly to the destination folder with a Drive
// 'files.create' call. Storage API errors (permission denied, folder not found, quota
// exceeded) are surfaced as-is in a Storage failure and not interpreted further.
type Drive struct {
	gdrive *drive.Service
}

func NewDrive(gdrive *drive.Service) *Drive {
	return &Drive{
		gdrive: gdrive,
	}
}

func (d *Drive) Deliver(ctx context.Context, artifact Artifact, folder string) (Receipt, error) {
	parent := folder

	if artifact.Path != "" {
		p, err := d.subfolder(ctx, folder, artifact.Path)
		if err != nil {
			return Receipt{}, err
		}

		parent = p
	}

	f := drive.File{
		Name:    artifact.Filename,
		Parents: []string{parent},
	}

	created, err := d.gdrive.Files.Create(&f).
		Media(bytes.NewReader(artifact.Data), googleapi.ContentType("text/csv")).
		Fields("id, name, webViewLink").
		Context(ctx).
		Do()

	if err != nil {
		return Receipt{}, failure("error creating file at destination", err)
	}

	return Receipt{
		ID:   created.Id,
		URL:  created.WebViewLink,
		Name: created.Name,
	}, nil
}

// subfolder finds or creates the named path bucket below the destination folder and
// returns its ID.
func (d *Drive) subfolder(ctx context.Context, folder string, name string) (string, error) {
	q := fmt.Sprintf("'%s' in parents and name = '%s' and mimeType = '%s' and trashed = false",
		folder,
		strings.ReplaceAll(name, `'`, `\'`),
		folderMimeType)

	list, err := d.gdrive.Files.List().
		Q(q).
		PageSize(1).
		Fields("files(id)").
		Context(ctx).
		Do()

	if err != nil {
		return "", failure(fmt.Sprintf("error looking up destination subfolder '%s'", name), err)
	}

	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	f := drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{folder},
	}

	created, err := d.gdrive.Files.Create(&f).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", failure(fmt.Sprintf("error creating destination subfolder '%s'", name), err)
	}

	return created.Id, nil
}

func failure(message string, err error) *Failure {
	var apierr *googleapi.Error

	if errors.As(err, &apierr) {
		return &Failure{
			Kind:    Storage,
			Message: fmt.Sprintf("%s (%v)", message, apierr.Message),
			Status:  apierr.Code,
			Err:     err,
		}
	}

	return &Failure{
		Kind:    Transport,
		Message: fmt.Sprintf("%s (%v)", message, err),
		Err:     err,
	}
}
