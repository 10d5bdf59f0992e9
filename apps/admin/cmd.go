package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/kalendar/core"
	"github.com/trezcool/kalendar/core/i18n"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *core.Config
	tr   *i18n.Translator
	out  io.Writer
	now  func() time.Time
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  grid [-date YYYY-MM-DD] [-lang mk|en|al] - print the month grid containing date (default: today)")
	fmt.Fprintln(cli.out, "  translate [-lang mk|en|al] KEY... - print the text of each dictionary key")
	fmt.Fprintln(cli.out, "  seed [-file PATH] - check a seed file by applying it to an empty database")
}

// interactive reports whether the output is a terminal, in which case titles and headers are printed.
func (cli *commandLine) interactive() bool {
	f, ok := cli.out.(*os.File)
	return ok && isTerminalFunc(int(f.Fd()))
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	gridCmd := flag.NewFlagSet("grid", flag.ContinueOnError)
	gridCmd.SetOutput(cli.out)
	gridDate := gridCmd.String("date", "", "Any date of the month to print, as YYYY-MM-DD.")
	gridLang := gridCmd.String("lang", cli.conf.Calendar.DefaultLanguage, "The language of the month and weekday names.")

	translateCmd := flag.NewFlagSet("translate", flag.ContinueOnError)
	translateCmd.SetOutput(cli.out)
	translateLang := translateCmd.String("lang", cli.conf.Calendar.DefaultLanguage, "The target language.")

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedCmd.SetOutput(cli.out)
	seedFile := seedCmd.String("file", cli.conf.Seed.File, "The seed file. The embedded one is used when empty.")

	switch args[1] {
	case "grid":
		if err := gridCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.grid(*gridDate, *gridLang)
	case "translate":
		if err := translateCmd.Parse(args[2:]); err != nil {
			return err
		}
		if translateCmd.NArg() == 0 {
			translateCmd.Usage()
			return errHelp
		}
		return cli.translate(*translateLang, translateCmd.Args()...)
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed(*seedFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
