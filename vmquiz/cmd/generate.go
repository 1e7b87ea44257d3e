package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sarchlab/vmquiz/datarecording"
	"github.com/sarchlab/vmquiz/problem"
	"github.com/sarchlab/vmquiz/vms"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate problems and print them.",
	Long: "`generate` prints random problems of a type. " +
		"`--seed` makes the output reproducible, `--problem-seed` generates " +
		"a problem from a given JSON seed, and `--record` also stores the " +
		"problems in a SQLite database.",
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("type", vms.Name, "Problem type to generate")
	generateCmd.Flags().Int64("seed", 0,
		"Seed of the random source; 0 uses the time (env "+envSeed+")")
	generateCmd.Flags().Int("count", 1, "Number of problems to generate")
	generateCmd.Flags().String("problem-seed", "",
		"JSON seed of the problem instead of a random one")
	generateCmd.Flags().Bool("solution", false, "Show the hidden values")
	generateCmd.Flags().Bool("json", false, "Print problems as JSON")
	generateCmd.Flags().String("record", "",
		"Record problems in the given database (env "+envDB+")")
}

type generateOptions struct {
	typeName    string
	seed        int64
	count       int
	problemSeed string
	solution    bool
	json        bool
	record      string
}

func parseGenerateOptions(cmd *cobra.Command) (generateOptions, error) {
	var (
		opts generateOptions
		err  error
	)

	flags := cmd.Flags()

	if opts.typeName, err = flags.GetString("type"); err != nil {
		return opts, err
	}
	if opts.seed, err = int64FlagOrEnv(cmd, "seed", envSeed); err != nil {
		return opts, err
	}
	if opts.count, err = flags.GetInt("count"); err != nil {
		return opts, err
	}
	if opts.problemSeed, err = flags.GetString("problem-seed"); err != nil {
		return opts, err
	}
	if opts.solution, err = flags.GetBool("solution"); err != nil {
		return opts, err
	}
	if opts.json, err = flags.GetBool("json"); err != nil {
		return opts, err
	}
	if opts.record, err = stringFlagOrEnv(cmd, "record", envDB); err != nil {
		return opts, err
	}

	if opts.count < 1 {
		return opts, fmt.Errorf("count must be positive, got %d", opts.count)
	}

	return opts, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	opts, err := parseGenerateOptions(cmd)
	if err != nil {
		return err
	}

	entry, err := newCatalog(opts.seed).Lookup(opts.typeName)
	if err != nil {
		return err
	}

	var store datarecording.Store
	if opts.record != "" {
		store = datarecording.New(opts.record)
		defer store.Close()
	}

	out := cmd.OutOrStdout()
	for i := 0; i < opts.count; i++ {
		seed, err := problemSeed(entry, opts.problemSeed)
		if err != nil {
			return err
		}

		p, err := entry.Generate(seed)
		if err != nil {
			return err
		}

		if store != nil {
			rec, err := datarecording.NewRecord(entry.Name(), seed, p)
			if err != nil {
				return err
			}

			store.Record(rec)
		}

		err = printProblem(out, entry, i, seed, p, opts)
		if err != nil {
			return err
		}
	}

	return nil
}

func problemSeed(entry problem.Entry, seedJSON string) (any, error) {
	if seedJSON == "" {
		return entry.RandomSeed(), nil
	}

	return entry.DecodeSeed([]byte(seedJSON))
}

type printedProblem struct {
	Seed    any `json:"seed"`
	Problem any `json:"problem"`
}

func printProblem(
	out io.Writer,
	entry problem.Entry,
	index int,
	seed, p any,
	opts generateOptions,
) error {
	if opts.json {
		return json.NewEncoder(out).Encode(printedProblem{
			Seed:    seed,
			Problem: p,
		})
	}

	if index > 0 {
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%s #%d\n", entry.Name(), index+1)

	return entry.Render(out, p, opts.solution)
}
