package main

import (
	"log"
	"os"
	"time"

	"github.com/trezcool/kalendar/core"
	"github.com/trezcool/kalendar/core/i18n"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	tr, err := i18n.New(conf.Calendar.DefaultLanguage)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		conf: conf,
		tr:   tr,
		out:  os.Stdout,
		now:  time.Now,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
