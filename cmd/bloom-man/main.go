// Command bloom-man renders the bloom man pages, one file per command.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/amanthanvi/bloom/internal/cli"
	"github.com/amanthanvi/bloom/internal/version"
)

func main() {
	outDir := flag.String("out", "dist/man/man1", "directory to write bloom*.1 pages into")
	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "usage: bloom-man [-out dir]")
		os.Exit(2)
	}

	build := cli.BuildInfo{
		Version:   version.Version,
		Commit:    version.Commit,
		BuildTime: version.BuildTime,
	}
	if err := cli.GenerateManPages(*outDir, build); err != nil {
		fmt.Fprintf(os.Stderr, "bloom-man: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("bloom-man: wrote pages for bloom %s to %s\n", build.Version, *outDir)
}
