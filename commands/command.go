package commands

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

const APP = "secure-export"

// Options are the process-level options applied to every command.
type Options struct {
	Debug bool
}

// Command is the interface implemented by the CLI commands.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *flag.FlagSet
	Execute(args ...any) error
}

type command struct {
	credentials string
	prefix      string
	folder      string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.credentials, "credentials", c.credentials, "File path for the service account key. Used only if GCP_SA_KEY is not set")
	flagset.StringVar(&c.prefix, "prefix", c.prefix, "Source workbook file name prefix")
	flagset.StringVar(&c.folder, "folder", c.folder, "Source folder ID or URL (overrides INPUT_FOLDER_ID)")

	return flagset
}

// configure assembles the runtime configuration from the environment, overlaid with
// the command line options where both are present.
func (c *command) configure() (Config, error) {
	cfg := ConfigFromEnv()

	if len(cfg.Key) == 0 && strings.TrimSpace(c.credentials) != "" {
		if b, err := os.ReadFile(c.credentials); err != nil {
			debugf("unable to read credentials file '%s' (%v)", c.credentials, err)
		} else {
			cfg.Key = b
		}
	}

	if strings.TrimSpace(c.folder) != "" {
		id, err := folderID(c.folder)
		if err != nil {
			return cfg, err
		}

		cfg.SourceFolder = id
	}

	return cfg, nil
}

// folderID extracts the folder ID from a Drive folder URL, accepting a bare folder ID
// as-is.
func folderID(v string) (string, error) {
	folder := strings.TrimSpace(v)

	if match := regexp.MustCompile(`^https://drive\.google\.com/drive/(?:u/[0-9]+/)?folders/([A-Za-z0-9_-]+)`).FindStringSubmatch(folder); len(match) > 1 {
		return match[1], nil
	}

	if regexp.MustCompile(`^[A-Za-z0-9_-]+$`).MatchString(folder) {
		return folder, nil
	}

	return "", fmt.Errorf("invalid folder '%s' - expected a folder ID or a URL like 'https://drive.google.com/drive/folders/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs'", v)
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
