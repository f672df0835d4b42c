// Command cartctl drives a customer's cart against the detailing API.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"detailing/client"
	"detailing/client/cartstate"
	"detailing/client/servicestate"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// env is everything a subcommand needs, built from flags, env and config file.
type env struct {
	api      *client.Client
	cart     *cartstate.Manager
	services *servicestate.Store
	logger   *zap.Logger
	timeout  time.Duration
}

func defaultSnapshotPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".cartctl.json"
	}
	return filepath.Join(dir, "cartctl", "cart.json")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CARTCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("api-base-url", "http://localhost:4000")
	v.SetDefault("request-timeout", client.DefaultTimeout)
	v.SetDefault("snapshot", defaultSnapshotPath())
	v.SetDefault("verbose", false)
	return v
}

func buildEnv(v *viper.Viper) (*env, error) {
	logger := zap.NewNop()
	if v.GetBool("verbose") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
	}

	timeout := v.GetDuration("request-timeout")
	api, err := client.New(client.Options{
		APIBaseURL: v.GetString("api-base-url"),
		Timeout:    timeout,
		Logger:     logger.Named("client"),
	})
	if err != nil {
		return nil, &exitErr{code: 3, msg: err.Error()}
	}
	if token := v.GetString("session"); token != "" {
		api.SetSessionToken(token)
	}

	manager := cartstate.NewManager(api, cartstate.Config{
		Store:    cartstate.FileStore{Path: v.GetString("snapshot")},
		Notifier: printNotifier{},
		Logger:   logger.Named("cartstate"),
	})
	return &env{
		api:      api,
		cart:     manager,
		services: servicestate.NewStore(api, logger.Named("servicestate")),
		logger:   logger,
		timeout:  timeout,
	}, nil
}

// printNotifier writes notifications to the terminal.
type printNotifier struct{}

func (printNotifier) Success(message string) { fmt.Fprintln(os.Stderr, message) }

func (printNotifier) Error(message string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
}

func newRootCmd() *cobra.Command {
	v := newViper()
	var e *env

	root := &cobra.Command{
		Use:           "cartctl",
		Short:         "Manage a detailing cart from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return &exitErr{code: 3, msg: fmt.Sprintf("failed to read config %s: %v", path, err)}
				}
			}
			built, err := buildEnv(v)
			if err != nil {
				return err
			}
			*e = *built
			return nil
		},
	}
	e = &env{}

	pf := root.PersistentFlags()
	pf.String("api-base-url", "http://localhost:4000", "Base URL of the detailing API")
	pf.Duration("request-timeout", client.DefaultTimeout, "Timeout for each API request")
	pf.String("snapshot", defaultSnapshotPath(), "File the cart snapshot is kept in")
	pf.String("session", "", "Session token (as printed by login)")
	pf.String("config", "", "Optional config file")
	pf.BoolP("verbose", "v", false, "Log requests to stderr")
	for _, name := range []string{"api-base-url", "request-timeout", "snapshot", "session", "config", "verbose"} {
		_ = v.BindPFlag(name, pf.Lookup(name))
	}

	root.AddCommand(
		newLoginCmd(e),
		newCartCmd(e),
		newBusyCmd(e),
		newServicesCmd(e),
		newBookCmd(e),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
