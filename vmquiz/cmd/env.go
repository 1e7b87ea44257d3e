package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// Environment variables that provide defaults for flags that are not set on
// the command line.
const (
	envSeed = "VMQUIZ_SEED"
	envPort = "VMQUIZ_PORT"
	envDB   = "VMQUIZ_DB"
	envOpen = "VMQUIZ_OPEN"
)

func int64FlagOrEnv(cmd *cobra.Command, flag, env string) (int64, error) {
	if v, ok := envValue(cmd, flag, env); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", env, err)
		}

		return n, nil
	}

	return cmd.Flags().GetInt64(flag)
}

func intFlagOrEnv(cmd *cobra.Command, flag, env string) (int, error) {
	if v, ok := envValue(cmd, flag, env); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", env, err)
		}

		return n, nil
	}

	return cmd.Flags().GetInt(flag)
}

func stringFlagOrEnv(cmd *cobra.Command, flag, env string) (string, error) {
	if v, ok := envValue(cmd, flag, env); ok {
		return v, nil
	}

	return cmd.Flags().GetString(flag)
}

func boolFlagOrEnv(cmd *cobra.Command, flag, env string) (bool, error) {
	if v, ok := envValue(cmd, flag, env); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %w", env, err)
		}

		return b, nil
	}

	return cmd.Flags().GetBool(flag)
}

// envValue returns the value of the environment variable if the flag is not
// set on the command line.
func envValue(cmd *cobra.Command, flag, env string) (string, bool) {
	if cmd.Flags().Changed(flag) {
		return "", false
	}

	v, exist := os.LookupEnv(env)
	if !exist || v == "" {
		return "", false
	}

	return v, true
}
