package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/ebisu-dx/secure-export/gdrive"
	"github.com/ebisu-dx/secure-export/workbook"
)

var SheetsCmd = Sheets{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
		prefix:      "",
		folder:      "",
		debug:       false,
	},
}

// Sheets lists the worksheet names of the most recent matching workbook - an
// operational aid for picking the --sheets values for an export.
type Sheets struct {
	command
}

func (cmd *Sheets) Name() string {
	return "sheets"
}

func (cmd *Sheets) Description() string {
	return "Lists the worksheet names of the most recent matching workbook"
}

func (cmd *Sheets) Usage() string {
	return "--prefix <prefix>"
}

func (cmd *Sheets) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] sheets [options] --prefix <prefix>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads and decrypts the most recently named workbook matching the prefix and lists the")
	fmt.Println("  worksheet names")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    secure-export sheets --prefix "東大特進入学"`)
	fmt.Println()
}

func (cmd *Sheets) FlagSet() *flag.FlagSet {
	return cmd.flagset("sheets")
}

func (cmd *Sheets) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if strings.TrimSpace(cmd.prefix) == "" {
		return fmt.Errorf("--prefix is a required option")
	}

	cfg, err := cmd.configure()
	if err != nil {
		return err
	}

	if err := cfg.Validate("GCP_SA_KEY", "INPUT_FOLDER_ID", "EXCEL_PASSWORD_1"); err != nil {
		return err
	}

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

	w, err := workbook.Open(payload, cfg.Password)
	if err != nil {
		return err
	}

	defer w.Close()

	fmt.Println()
	fmt.Printf("  %s\n", src.Name)
	fmt.Println()

	for _, sheet := range w.Sheets() {
		fmt.Printf("    %s\n", sheet)
	}

	fmt.Println()

	return nil
}
