package main

import "fmt"

// translate prints "key: text" per key. Missing keys print themselves.
func (cli *commandLine) translate(lang string, keys ...string) error {
	lang = cli.tr.Resolve(lang)
	for _, key := range keys {
		fmt.Fprintf(cli.out, "%s: %s\n", key, cli.tr.T(key, lang))
	}
	return nil
}
