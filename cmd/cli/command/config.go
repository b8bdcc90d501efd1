package command

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"moviehub/internal/config"
)

// skipCatalog marks commands that run without opening the database.
const skipCatalog = "skip-catalog"

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Validate the web server configuration and print it",
	Annotations: map[string]string{skipCatalog: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		rows := [][2]string{
			{"GO_ENV", cfg.GoEnv},
			{"HTTP address", cfg.HTTPAddr()},
			{"DATABASE_DRIVER", cfg.DatabaseDriver},
			{"SESSION_STORE", cfg.SessionStore},
			{"SESSION_TTL", cfg.SessionTTL.String()},
			{"COOKIE_SECURE", fmt.Sprint(cfg.CookieSecure)},
			{"LOGIN_RATE_LIMIT", fmt.Sprintf("%g/s, burst %d", cfg.LoginRateLimit, cfg.LoginRateBurst)},
			{"PROMETHEUS_ENABLED", fmt.Sprint(cfg.PrometheusEnabled)},
			{"LOG_LEVEL", cfg.LogLevel + " (" + cfg.LogFormat + ")"},
			{"MEDIA_ROOT", cfg.MediaRoot},
			{"MEDIA_URL", cfg.MediaURL},
		}
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			return err
		}
		success.Fprintln(out, "✓ Configuration is valid")
		return nil
	},
}
