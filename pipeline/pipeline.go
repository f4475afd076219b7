package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ebisu-dx/secure-export/delivery"
	"github.com/ebisu-dx/secure-export/workbook"
)

// Stage identifies the pipeline step at which a run terminated.
type Stage string

const (
	Locate  Stage = "locate"
	Fetch   Stage = "fetch"
	Decrypt Stage = "decrypt"
	Encode  Stage = "encode"
	Deliver Stage = "deliver"
)

// Error is the single terminal failure for a pipeline run, tagged with the stage that
// failed. The wrapped error carries the failure kind (workbook sentinel errors,
// delivery failures) for errors.Is/errors.As matching.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Source identifies a located source workbook. Modified is optional - the zero value
// means the listing service did not return a modification timestamp.
type Source struct {
	ID       string
	Name     string
	Modified time.Time
}

// Store is the boundary to the external file listing/download service. Newest returns
// the most recently named file in folder whose name starts with prefix, or a zero
// Source when nothing matches. Fetch downloads the complete file into memory.
type Store interface {
	Newest(ctx context.Context, folder string, prefix string) (Source, error)
	Fetch(ctx context.Context, id string) ([]byte, error)
}

// Pipeline sequences locate → fetch → decrypt → encode → deliver for a single run -
// strictly sequential, terminal on the first failure. When more than one worksheet is
// configured the decrypt/encode/deliver steps repeat per worksheet off the single
// decrypted workbook; a failure on any worksheet halts the remaining worksheets.
type Pipeline struct {
	Store        Store
	Deliverer    delivery.Deliverer
	SourceFolder string
	Prefix       string
	DestFolder   string
	Sheets       []string
	Password     string
	DatePath     bool
	Stamp        bool

	// Now overrides the run timestamp used for artifact naming. Defaults to time.Now.
	Now func() time.Time
}

// Run executes the pipeline once and returns nil or a single stage-tagged *Error.
func (p *Pipeline) Run(ctx context.Context) error {
	if len(p.Sheets) == 0 {
		return fmt.Errorf("at least one worksheet is required")
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	// ... locate
	src, err := p.Store.Newest(ctx, p.SourceFolder, p.Prefix)
	if err != nil {
		return &Error{Locate, fmt.Errorf("error querying folder '%s' (%v)", p.SourceFolder, err)}
	}

	if src.ID == "" {
		return &Error{Locate, fmt.Errorf("no file matching prefix '%s' in folder '%s'", p.Prefix, p.SourceFolder)}
	}

	if src.Modified.IsZero() {
		infof("located '%s' (ID %s)", src.Name, src.ID)
	} else {
		infof("located '%s' (ID %s, modified %v)", src.Name, src.ID, src.Modified.Format(time.RFC3339))
	}

	// ... fetch
	payload, err := p.Store.Fetch(ctx, src.ID)
	if err != nil {
		return &Error{Fetch, fmt.Errorf("error downloading '%s' (%v)", src.Name, err)}
	}

	infof("downloaded '%s' (%v bytes)", src.Name, len(payload))

	// ... decrypt once - the decrypted workbook is read-only for the rest of the run
	w, err := workbook.Open(payload, p.Password)
	if err != nil {
		return &Error{Decrypt, err}
	}

	defer w.Close()

	run := now()

	for _, sheet := range p.Sheets {
		table, err := w.Sheet(sheet)
		if err != nil {
			return &Error{Decrypt, err}
		}

		var b bytes.Buffer
		if err := workbook.MakeCSV(&b, table); err != nil {
			return &Error{Encode, err}
		}

		suffix := sheet
		if len(p.Sheets) < 2 {
			suffix = ""
		}

		name := delivery.DeriveName(src.Name, suffix, run)
		if p.Stamp {
			name = delivery.Stamp(name, run)
		}

		artifact := delivery.Artifact{
			Filename: name,
			Data:     b.Bytes(),
		}

		if p.DatePath {
			artifact.Path = delivery.DatePath(run)
		}

		receipt, err := p.Deliverer.Deliver(ctx, artifact, p.DestFolder)
		if err != nil {
			return &Error{Deliver, err}
		}

		infof("delivered '%s' (ID %s) %s", name, receipt.ID, receipt.URL)
	}

	return nil
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}
