package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/etnz/lpfolio"
	"github.com/etnz/lpfolio/date"
	"github.com/google/subcommands"
)

type importPricesCmd struct {
	date string
	file string
	url  string
}

func (*importPricesCmd) Name() string     { return "import-prices" }
func (*importPricesCmd) Synopsis() string { return "import USD prices from a JSON document" }
func (*importPricesCmd) Usage() string {
	return `lpf import-prices [-d <date>] [-f <file> | -url <url>] [<symbol>=<jsonpath>...]

  Extracts prices from a JSON document, for instance a price API response, and
  records them on a day. Each symbol is read at a JSONPath expression, given as
  argument or in the price_paths section of the configuration. The document is
  read from a file, from a URL, or from stdin. URL responses are cached until
  the end of the day.

  Valid prices are recorded even when some paths fail.

Usage Examples:
$ curl -s "$PRICE_API" | lpf import-prices 'HYPE=$.hyperliquid.usd' 'ETH=$.ethereum.usd'
`
}

func (c *importPricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Price date (YYYY-MM-DD)")
	f.StringVar(&c.file, "f", "", "JSON file to read, stdin by default")
	f.StringVar(&c.url, "url", "", "URL of the JSON document to get")
}

func (c *importPricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, ok := parseDay(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	paths := maps.Clone(pricePaths)
	if paths == nil {
		paths = make(map[string]string)
	}
	for _, arg := range f.Args() {
		symbol, path, found := strings.Cut(arg, "=")
		if !found || symbol == "" || path == "" {
			fmt.Fprintf(os.Stderr, "Error: invalid path %q, expecting <symbol>=<jsonpath>\n", arg)
			return subcommands.ExitUsageError
		}
		paths[symbol] = path
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no price path given, in arguments or configuration")
		return subcommands.ExitUsageError
	}

	if c.file != "" && c.url != "" {
		fmt.Fprintln(os.Stderr, "Error: -f and -url flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	var prices lpfolio.Prices
	var err error
	switch {
	case c.url != "":
		prices, err = lpfolio.FetchPrices(lpfolio.NewDailyClient(""), c.url, paths)
	case c.file != "":
		var file *os.File
		if file, err = os.Open(c.file); err == nil {
			defer file.Close()
			prices, err = lpfolio.ImportPrices(file, paths)
		}
	default:
		prices, err = lpfolio.ImportPrices(os.Stdin, paths)
	}

	status := subcommands.ExitSuccess
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		status = subcommands.ExitFailure
	}
	if len(prices) == 0 {
		return subcommands.ExitFailure
	}
	if err := updatePrices(day, prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully imported %d prices on %s\n", len(prices), day)
	return status
}
