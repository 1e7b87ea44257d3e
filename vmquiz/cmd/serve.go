package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/browser"
	"github.com/sarchlab/vmquiz/datarecording"
	"github.com/sarchlab/vmquiz/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve problems over HTTP.",
	Long: "`serve` starts an HTTP server that generates, records and renders " +
		"problems. Problems are kept in memory unless `--db` is given.",
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0,
		"Port of the server; 0 picks a free port (env "+envPort+")")
	serveCmd.Flags().String("db", datarecording.InMemory,
		"Database that records the problems (env "+envDB+")")
	serveCmd.Flags().Int64("seed", 0,
		"Seed of the random source; 0 uses the time (env "+envSeed+")")
	serveCmd.Flags().Bool("open", false,
		"Open the server in a browser (env "+envOpen+")")
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := intFlagOrEnv(cmd, "port", envPort)
	if err != nil {
		return err
	}

	dbPath, err := stringFlagOrEnv(cmd, "db", envDB)
	if err != nil {
		return err
	}

	seed, err := int64FlagOrEnv(cmd, "seed", envSeed)
	if err != nil {
		return err
	}

	open, err := boolFlagOrEnv(cmd, "open", envOpen)
	if err != nil {
		return err
	}

	store := datarecording.New(dbPath)
	defer store.Close()

	s := server.NewServer(newCatalog(seed), store)
	if port != 0 {
		s.WithPortNumber(port)
	}

	url := s.StartServer()

	if open {
		err = browser.OpenURL(url + "/api/types")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open browser: %v\n", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), shutdownTimeout)
	defer cancel()

	return s.Shutdown(shutdownCtx)
}
