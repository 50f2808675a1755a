package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer cc.Close()

			cl, ok := cc.(cache.Clearer)
			if !ok {
				printInfo("Cache is disabled")
				return nil
			}
			count, err := cl.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached results", count)
			printDetail("Backend: %s", cacheLocation(c.Config.Cache.CacheOptions()))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached results are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.Out, cacheLocation(c.Config.Cache.CacheOptions()))
			return err
		},
	}
}

// cacheLocation describes the configured backend: the directory for the
// file cache, the connection string otherwise.
func cacheLocation(opts cache.Options) string {
	switch opts.Backend {
	case cache.BackendRedis:
		return redact(opts.RedisURL)
	case cache.BackendMongo:
		db, coll := opts.MongoDatabase, opts.MongoCollection
		if db == "" {
			db = cache.DefaultMongoDatabase
		}
		if coll == "" {
			coll = cache.DefaultMongoCollection
		}
		return redact(opts.MongoURI) + " " + db + "." + coll
	case cache.BackendNone:
		return cache.BackendNone
	default:
		return opts.Dir
	}
}

// redact hides the password of a connection URL.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
