package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebisu-dx/secure-export/delivery"
	"github.com/ebisu-dx/secure-export/gdrive"
	"github.com/ebisu-dx/secure-export/workbook"
)

var GetCmd = Get{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
		prefix:      "",
		folder:      "",
		debug:       false,
	},

	sheet: "",
	file:  "",
}

// Get retrieves and decrypts a single worksheet of the most recent matching workbook
// and stores it to a local CSV file.
type Get struct {
	command
	sheet string
	file  string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Decrypts a worksheet of the most recent matching workbook and stores it to a local CSV file"
}

func (cmd *Get) Usage() string {
	return "--prefix <prefix> --sheet <name> [--file <file>]"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --prefix <prefix> --sheet <name>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the most recently named workbook matching the prefix, decrypts the named worksheet")
	fmt.Println("  and writes it to a local CSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    secure-export get --prefix "東大特進入学" --sheet "H3(2026)" --file "checked.csv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Worksheet name")
	flagset.StringVar(&cmd.file, "file", cmd.file, "CSV file name. Defaults to the derived 'secure-<yymmdd>_...' name")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if strings.TrimSpace(cmd.prefix) == "" {
		return fmt.Errorf("--prefix is a required option")
	}

	if strings.TrimSpace(cmd.sheet) == "" {
		return fmt.Errorf("--sheet is a required option")
	}

	cfg, err := cmd.configure()
	if err != nil {
		return err
	}

	if err := cfg.Validate("GCP_SA_KEY", "INPUT_FOLDER_ID", "EXCEL_PASSWORD_1"); err != nil {
		return err
	}

	// ... locate and fetch
	ctx := context.Background()

	client, err := gdrive.NewService(ctx, cfg.Key)
	if err != nil {
		return err
	}

	store := gdrive.NewStore(client)

	src, err := store.Newest(ctx, cfg.SourceFolder, cmd.prefix)
	if err != nil {
		return err
	}

	if src.ID == "" {
		return fmt.Errorf("no file matching prefix '%s' in folder '%s'", cmd.prefix, cfg.SourceFolder)
	}

	payload, err := store.Fetch(ctx, src.ID)
	if err != nil {
		return err
	}

	// ... decrypt and encode
	table, err := workbook.DecryptSheet(payload, cmd.sheet, cfg.Password)
	if err != nil {
		return err
	}

	file := cmd.file
	if strings.TrimSpace(file) == "" {
		file = delivery.DeriveName(src.Name, "", time.Now())
	}

	tmp, err := os.CreateTemp(os.TempDir(), "secure-export")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := workbook.MakeCSV(tmp, table); err != nil {
		return fmt.Errorf("error creating CSV file (%v)", err)
	}

	tmp.Close()

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), file); err != nil {
		return err
	}

	infof("Retrieved worksheet '%s' to file %s", cmd.sheet, file)

	return nil
}
