package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/ebisu-dx/secure-export/delivery"
	"github.com/ebisu-dx/secure-export/gdrive"
	"github.com/ebisu-dx/secure-export/pipeline"
)

var ExportCmd = Export{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
		prefix:      "",
		folder:      "",
		debug:       false,
	},

	sheets:  "",
	dest:    "",
	via:     "drive",
	timeout: delivery.DefaultTimeout,
}

// Export implements the full locate/fetch/decrypt/encode/deliver pipeline as a CLI
// command.
type Export struct {
	command
	sheets   string
	dest     string
	via      string
	timeout  time.Duration
	datePath bool
	stamp    bool
}

func (cmd *Export) Name() string {
	return "export"
}

func (cmd *Export) Description() string {
	return "Decrypts the most recent matching workbook and delivers the worksheets as CSV files"
}

func (cmd *Export) Usage() string {
	return "--prefix <prefix> --sheets <names> [--via drive|relay]"
}

func (cmd *Export) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] export [options] --prefix <prefix> --sheets <names>\n", APP)
	fmt.Println()
	fmt.Println("  Locates the most recently named workbook matching the prefix in the source folder, decrypts it")
	fmt.Println("  and delivers the selected worksheets as CSV files - either directly to the destination folder")
	fmt.Println("  or via the configured HTTP relay")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    secure-export export --prefix "東大特進入学" --sheets "H3(2026)"`)
	fmt.Println(`    secure-export export --prefix "東大特進入学" --sheets "H3(2026),H2(2027)" --via relay --date-path`)
	fmt.Println()
}

func (cmd *Export) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("export")

	flagset.StringVar(&cmd.sheets, "sheets", cmd.sheets, "Comma separated list of worksheet names to export")
	flagset.StringVar(&cmd.dest, "dest", cmd.dest, "Destination folder ID or URL (overrides OUTPUT_FOLDER_ID)")
	flagset.StringVar(&cmd.via, "via", cmd.via, "Delivery path - 'drive' writes directly to the destination folder, 'relay' POSTs to the configured relay endpoint")
	flagset.DurationVar(&cmd.timeout, "timeout", cmd.timeout, "Timeout for the relay delivery call")
	flagset.BoolVar(&cmd.datePath, "date-path", cmd.datePath, "Delivers into a <yyyy-mm> subfolder of the destination")
	flagset.BoolVar(&cmd.stamp, "stamp", cmd.stamp, "Appends the run time to the CSV file name so that repeated runs never collide")

	return flagset
}

func (cmd *Export) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if strings.TrimSpace(cmd.prefix) == "" {
		return fmt.Errorf("--prefix is a required option")
	}

	if strings.TrimSpace(cmd.sheets) == "" {
		return fmt.Errorf("--sheets is a required option")
	}

	if cmd.via != "drive" && cmd.via != "relay" {
		return fmt.Errorf("invalid --via '%s' - expected 'drive' or 'relay'", cmd.via)
	}

	sheets := []string{}
	for _, sheet := range strings.Split(cmd.sheets, ",") {
		if s := strings.TrimSpace(sheet); s != "" {
			sheets = append(sheets, s)
		}
	}

	// ... configure
	cfg, err := cmd.configure()
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.dest) != "" {
		id, err := folderID(cmd.dest)
		if err != nil {
			return err
		}

		cfg.DestFolder = id
	}

	required := []string{"GCP_SA_KEY", "INPUT_FOLDER_ID", "OUTPUT_FOLDER_ID", "EXCEL_PASSWORD_1"}
	if cmd.via == "relay" {
		required = append(required, "RELAY_URL", "RELAY_API_KEY")
	}

	if err := cfg.Validate(required...); err != nil {
		return err
	}

	if cmd.debug {
		debugf("export - prefix:'%s'  sheets:%v  via:%s", cmd.prefix, sheets, cmd.via)
	}

	// ... run
	ctx := context.Background()

	client, err := gdrive.NewService(ctx, cfg.Key)
	if err != nil {
		return err
	}

	var deliverer delivery.Deliverer
	if cmd.via == "relay" {
		deliverer = delivery.NewRelay(cfg.RelayURL, cfg.RelayAPIKey, cmd.timeout)
	} else {
		deliverer = delivery.NewDrive(client)
	}

	p := pipeline.Pipeline{
		Store:        gdrive.NewStore(client),
		Deliverer:    deliverer,
		SourceFolder: cfg.SourceFolder,
		Prefix:       cmd.prefix,
		DestFolder:   cfg.DestFolder,
		Sheets:       sheets,
		Password:     cfg.Password,
		DatePath:     cmd.datePath,
		Stamp:        cmd.stamp,
	}

	return p.Run(ctx)
}
