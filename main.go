// d365fo-storage manages named Azure storage account configurations for
// D365FO environments. Registrations are local bookkeeping only, later
// operations use them to reach the storage account by logical name.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/urfave/cli/v2"

	"github.com/Zechman/d365fo.tools/config"
	"github.com/Zechman/d365fo.tools/registry"
	"github.com/Zechman/d365fo.tools/storage/azure"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "d365fo-storage",
		Usage:   "register and manage Azure storage account configurations",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				EnvVars: []string{"D365FO_DEBUG"},
			},
			&cli.StringFlag{
				Name:    "user-config",
				Usage:   "path of the per-user configuration file",
				EnvVars: []string{"D365FO_USER_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "system-config",
				Usage:   "path of the machine-wide configuration file",
				EnvVars: []string{"D365FO_SYSTEM_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			registerCommand(),
			unregisterCommand(),
			listCommand(),
			activateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if c.Bool("debug") {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

func newService(c *cli.Context, logger log.Logger) (*registry.Service, error) {
	userPath := c.String("user-config")
	if userPath == "" {
		p, err := config.DefaultUserPath()
		if err != nil {
			return nil, err
		}
		userPath = p
	}

	systemPath := c.String("system-config")
	if systemPath == "" {
		systemPath = config.DefaultSystemPath()
	}

	store := config.NewFileStore(logger, userPath, systemPath)
	resolver := config.NewResolver(logger, config.DirProbe{Dir: store.SystemDir()})

	return registry.NewService(logger, store, resolver), nil
}

func scopeFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "scope",
		Usage: "configuration scope, User or System",
		Value: "User",
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "register a storage account configuration under a logical name",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "logical name for the configuration", Required: true},
			&cli.StringFlag{Name: "account-id", Usage: "storage account id", Required: true},
			&cli.StringFlag{Name: "blob-name", Usage: "target blob container name", Required: true},
			&cli.StringFlag{Name: "access-token", Usage: "storage account access token, mutually exclusive with --sas-token"},
			&cli.StringFlag{Name: "sas-token", Usage: "shared access signature, mutually exclusive with --access-token"},
			scopeFlag(),
			&cli.BoolFlag{Name: "force", Usage: "overwrite an existing configuration with the same name"},
		},
		Action: func(c *cli.Context) error {
			cred, err := credentialFromFlags(c.String("access-token"), c.String("sas-token"))
			if err != nil {
				return err
			}

			scope, err := config.ParseScope(c.String("scope"))
			if err != nil {
				return err
			}

			logger := newLogger(c)
			svc, err := newService(c, logger)
			if err != nil {
				return err
			}

			err = svc.Register(c.String("name"), c.String("account-id"), c.String("blob-name"), cred, scope, c.Bool("force"))
			if errors.Is(err, registry.ErrAlreadyExists) {
				return cli.Exit(err.Error(), 2)
			}

			return err
		},
	}
}

func unregisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "unregister",
		Usage: "remove a registered storage account configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "logical name of the configuration", Required: true},
			scopeFlag(),
		},
		Action: func(c *cli.Context) error {
			scope, err := config.ParseScope(c.String("scope"))
			if err != nil {
				return err
			}

			logger := newLogger(c)
			svc, err := newService(c, logger)
			if err != nil {
				return err
			}

			return svc.Unregister(c.String("name"), scope)
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list registered storage account configurations",
		Action: func(c *cli.Context) error {
			logger := newLogger(c)
			svc, err := newService(c, logger)
			if err != nil {
				return err
			}

			entries, err := svc.List()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tACCOUNT\tBLOB\tAUTH\tSECRET")
			for _, e := range entries {
				secret := e.AccessToken
				if e.AuthMethod == azure.AuthMethodSAS {
					secret = e.SASToken
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.AccountID, e.BlobName, e.AuthMethod, maskSecret(secret))
			}

			return w.Flush()
		},
	}
}

func activateCommand() *cli.Command {
	return &cli.Command{
		Name:  "activate",
		Usage: "select a registered configuration as the active one",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "logical name of the configuration", Required: true},
			scopeFlag(),
		},
		Action: func(c *cli.Context) error {
			scope, err := config.ParseScope(c.String("scope"))
			if err != nil {
				return err
			}

			logger := newLogger(c)
			svc, err := newService(c, logger)
			if err != nil {
				return err
			}

			return svc.Activate(c.String("name"), scope)
		},
	}
}

// credentialFromFlags enforces the mutually exclusive credential flags at the
// CLI boundary.
func credentialFromFlags(accessToken, sasToken string) (azure.Credential, error) {
	switch {
	case accessToken != "" && sasToken != "":
		return nil, errors.New("--access-token and --sas-token are mutually exclusive")
	case accessToken != "":
		return azure.AccessToken(accessToken), nil
	case sasToken != "":
		return azure.SASToken(sasToken), nil
	}

	return nil, errors.New("one of --access-token or --sas-token is required")
}

// maskSecret keeps enough of a secret to recognize it, nothing more.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}

	return strings.Repeat("*", 8) + s[len(s)-4:]
}
