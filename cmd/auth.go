package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/larkvale/voicedesk/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Google Calendar authorization for tenants",
		Long: `Authorize tenants for Google Calendar access.

The flow has two steps: "auth url" prints the consent URL for a
tenant, and "auth exchange" trades the resulting authorization code
for a grant and writes it to the configured store.`,
	}

	cmd.AddCommand(newAuthURLCmd())
	cmd.AddCommand(newAuthExchangeCmd())
	return cmd
}

func addStoreFlags(cmd *cobra.Command, config *StoreConfig) {
	cmd.Flags().StringVar(&config.Type, "store", "file", "Grant store backend: file, memory, redis, postgres")
	cmd.Flags().StringVar(&config.Dir, "store-dir", "", "Directory for the file store (default: user cache dir)")
	cmd.Flags().StringVar(&config.RedisURL, "redis-url", "", "Redis URL for the redis store")
	cmd.Flags().StringVar(&config.PostgresURL, "postgres-url", "", "Postgres connection string for the postgres store")
}

func newAuthURLCmd() *cobra.Command {
	var tenant string

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the Google consent URL for a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := google.NewConfigFromEnv()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), conf.AuthURL(tenant))
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "customer-id", "default", "Tenant to authorize")
	return cmd
}

func newAuthExchangeCmd() *cobra.Command {
	var tenant string
	var storeConfig StoreConfig

	cmd := &cobra.Command{
		Use:   "exchange <code>",
		Short: "Exchange an authorization code and store the grant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := google.NewConfigFromEnv()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			grant, err := conf.Exchange(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to exchange authorization code: %w", err)
			}

			store, closer, err := buildStore(ctx, storeConfig)
			if err != nil {
				return fmt.Errorf("failed to initialize grant store: %w", err)
			}
			if closer != nil {
				defer closer() //nolint:errcheck
			}

			if err := store.Save(ctx, tenant, grant); err != nil {
				return fmt.Errorf("failed to store grant for tenant %s: %w", tenant, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stored calendar grant for tenant %s\n", tenant)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "customer-id", "default", "Tenant the grant belongs to")
	addStoreFlags(cmd, &storeConfig)
	return cmd
}
