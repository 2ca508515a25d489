package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"mana-vault/feature/search"

	"github.com/spf13/cobra"
)

var searchFlags struct {
	sortKey string
	sortDir string
	sort    string
	limit   int
	offset  int
	format  string
}

// searchCmd runs one query against the index store.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the card index",
	Long: `Runs a query against the index store. The query uses the compact syntax of the
HTTP "q" parameter, for example:

  mana-vault search 'counterspell c:u mv<=2 set:A'
  mana-vault search 't:creature id:g' --sort-key manaValue --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), bootstrapOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		req := search.FromParams(searchParams(args).get)
		page, err := a.searchSvc.Search(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return render(cmd.OutOrStdout(), searchFlags.format, page)
	},
}

type paramMap map[string]string

func (p paramMap) get(name string) string {
	return p[name]
}

// searchParams maps the query arguments and flags onto HTTP parameter names.
func searchParams(args []string) paramMap {
	params := paramMap{
		"q":       strings.Join(args, " "),
		"sortKey": searchFlags.sortKey,
		"sortDir": searchFlags.sortDir,
		"sort":    searchFlags.sort,
	}
	if searchFlags.limit > 0 {
		params["limit"] = strconv.Itoa(searchFlags.limit)
	}
	if searchFlags.offset > 0 {
		params["offset"] = strconv.Itoa(searchFlags.offset)
	}
	return params
}

func init() {
	RootCmd.AddCommand(searchCmd)
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.sortKey, "sort-key", "", "Sort key (name, releaseDate, setNumber, rarity, color, manaValue, power, toughness, artist)")
	f.StringVar(&searchFlags.sortDir, "sort-dir", "", "Sort direction (asc, desc); defaults per sort key")
	f.StringVar(&searchFlags.sort, "sort", "", "Legacy sort (newest, oldest, mana, name)")
	f.IntVar(&searchFlags.limit, "limit", 0, "Page size")
	f.IntVar(&searchFlags.offset, "offset", 0, "Results to skip")
	f.StringVar(&searchFlags.format, "format", formatYAML, "Output format (json, yaml)")
}
