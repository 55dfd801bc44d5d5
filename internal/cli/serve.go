package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenzone-vis/greenzone/internal/server"
	"github.com/greenzone-vis/greenzone/pkg/session"
	"github.com/greenzone-vis/greenzone/pkg/snapshot"
)

type serveOpts struct {
	addr    string
	redis   string
	mongo   string
	noCache bool
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve <config> [chart]",
		Short: "Serve the interactive chart over HTTP",
		Long: `Serve loads a chart's dataset and runs the web UI: the rendered chart
with a search bar, per-session search isolation, and JSON endpoints for
completions and dataset snapshots.

Sessions live in memory unless --redis points at a Redis instance. With
--mongo, every dataset load is recorded as a snapshot and exposed at
/snapshots.json.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			fc, err := LoadConfig(args[0])
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			spec, err := fc.Chart(name)
			if err != nil {
				return err
			}

			ds, err := c.loadDataset(ctx, spec, opts.noCache)
			if err != nil {
				return err
			}
			printKeyValue("dataset", ds.Source)
			printKeyValue("regions", fmt.Sprintf("%d", ds.Table.Len()))
			if ds.LastUpdated != "" {
				printKeyValue("updated", ds.LastUpdated)
			}

			srvOpts := server.Options{
				Table:       ds.Table,
				Config:      spec.Config,
				LastUpdated: ds.LastUpdated,
				Logger:      c.Logger,
			}
			if srvOpts.Config.Title == "" {
				srvOpts.Config.Title = fc.PageTitle
			}

			if opts.redis != "" {
				store, err := session.NewRedisStore(ctx, session.RedisConfig{Addr: opts.redis})
				if err != nil {
					return err
				}
				defer store.Close()
				srvOpts.Sessions = store
				printKeyValue("sessions", "redis "+opts.redis)
			}

			if opts.mongo != "" {
				store, err := snapshot.NewMongoStore(ctx, snapshot.MongoConfig{URI: opts.mongo})
				if err != nil {
					return err
				}
				defer store.Close(ctx)
				if err := store.Record(ctx, snapshot.New(ds.Source, ds.Hash, ds.Table.Len(), ds.LastUpdated)); err != nil {
					c.Logger.Warn("recording snapshot", "err", err)
				}
				srvOpts.Snapshots = store
				printKeyValue("snapshots", "mongodb")
			}

			srv, err := server.New(srvOpts)
			if err != nil {
				return err
			}

			printInfo("listening on %s", StyleHighlight.Render("http://"+displayAddr(opts.addr)))
			return srv.ListenAndServe(ctx, opts.addr)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for session storage (host:port)")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB URI for dataset snapshots")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the dataset download cache")

	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
