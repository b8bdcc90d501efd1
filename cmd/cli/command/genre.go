package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"moviehub/internal/microservices/http-api/models"
)

var genreCmd = &cobra.Command{
	Use:   "genre",
	Short: "Genre commands",
	Long:  `Inspect genres. Genres are created when a movie is tagged with them.`,
}

var listGenresCmd = &cobra.Command{
	Use:   "list",
	Short: "List the genres shown on the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		var (
			genres []models.Genre
			err    error
		)
		if all {
			genres, err = services.Genres.GetAll(cmd.Context())
		} else {
			genres, err = services.Genres.ListUsed(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("failed to get genres: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(genres) == 0 {
			warning.Fprintln(out, "No genres found.")
			return nil
		}
		heading.Fprintf(out, "Available genres (%d total):\n", len(genres))
		for _, g := range genres {
			fmt.Fprintf(out, "%s | %s\n", g.Slug, g.Name)
		}
		return nil
	},
}

func init() {
	listGenresCmd.Flags().Bool("all", false, "include genres no movie uses")
	genreCmd.AddCommand(listGenresCmd)
}
