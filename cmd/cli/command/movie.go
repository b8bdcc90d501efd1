package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"
)

const dateLayout = "2006-01-02"

var movieCmd = &cobra.Command{
	Use:   "movie",
	Short: "Movie management commands",
	Long:  `Manage movies: add, update, delete and list, with cast, genres and poster`,
}

func parseCountry(code string) (models.Country, error) {
	c := models.Country(strings.ToUpper(strings.TrimSpace(code)))
	if !c.Valid() {
		codes := make([]string, 0, len(models.Countries))
		for _, known := range models.Countries {
			codes = append(codes, string(known))
		}
		return "", fmt.Errorf("%w %q, use one of %s", models.ErrInvalidCountry, code, strings.Join(codes, ", "))
	}
	return c, nil
}

func parseReleaseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("release date must look like %s: %w", dateLayout, err)
	}
	return t, nil
}

var addMovieCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie",
	Example: `  moviehub-admin movie add --title "Heat" --released 1995-12-15 --country US \
    --director "Michael Mann" --actor "Al Pacino" --actor "Robert De Niro" \
    --genre Crime --genre Thriller --synopsis "A group of professional bank robbers..."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		title, _ := f.GetString("title")
		synopsis, _ := f.GetString("synopsis")
		released, _ := f.GetString("released")
		country, _ := f.GetString("country")
		director, _ := f.GetString("director")
		actors, _ := f.GetStringArray("actor")
		genres, _ := f.GetStringArray("genre")
		posterPath, _ := f.GetString("poster")

		date, err := parseReleaseDate(released)
		if err != nil {
			return err
		}
		code, err := parseCountry(country)
		if err != nil {
			return err
		}
		poster, done, err := openUpload(posterPath)
		if err != nil {
			return fmt.Errorf("failed to open poster: %w", err)
		}
		defer done()

		m, err := services.Movies.Create(cmd.Context(), service.MovieInput{
			Title:        title,
			Synopsis:     synopsis,
			ReleaseDate:  date,
			Country:      code,
			DirectorName: director,
			ActorNames:   actors,
			Genres:       genres,
			Poster:       poster,
		})
		if err != nil {
			return fmt.Errorf("failed to add movie: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Movie added: %s (%s)\n", m.Title, m.Slug)
		return nil
	},
}

var updateMovieCmd = &cobra.Command{
	Use:   "update [slug]",
	Short: "Update the given fields of a movie",
	Long: `Update a movie. Only the flags that are passed change; --actor and --genre
replace the whole cast or genre list, pass --actor "" to clear the cast.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		var in service.MovieUpdate

		if f.Changed("title") {
			v, _ := f.GetString("title")
			in.Title = &v
		}
		if f.Changed("synopsis") {
			v, _ := f.GetString("synopsis")
			in.Synopsis = &v
		}
		if f.Changed("released") {
			v, _ := f.GetString("released")
			date, err := parseReleaseDate(v)
			if err != nil {
				return err
			}
			in.ReleaseDate = &date
		}
		if f.Changed("country") {
			v, _ := f.GetString("country")
			code, err := parseCountry(v)
			if err != nil {
				return err
			}
			in.Country = &code
		}
		if f.Changed("director") {
			v, _ := f.GetString("director")
			in.DirectorName = &v
		}
		if f.Changed("actor") {
			v, _ := f.GetStringArray("actor")
			in.ActorNames = &v
		}
		if f.Changed("genre") {
			v, _ := f.GetStringArray("genre")
			in.Genres = &v
		}
		posterPath, _ := f.GetString("poster")
		poster, done, err := openUpload(posterPath)
		if err != nil {
			return fmt.Errorf("failed to open poster: %w", err)
		}
		defer done()
		in.Poster = poster

		m, err := services.Movies.Update(cmd.Context(), args[0], in)
		if err != nil {
			return fmt.Errorf("failed to update movie: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Movie updated: %s (%s)\n", m.Title, m.Slug)
		return nil
	},
}

var deleteMovieCmd = &cobra.Command{
	Use:   "delete [slug]",
	Short: "Delete a movie with its ratings and reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := services.Movies.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete movie: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Movie %s deleted\n", args[0])
		return nil
	},
}

var listMoviesCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies, optionally of one genre",
	RunE: func(cmd *cobra.Command, args []string) error {
		genreSlug, _ := cmd.Flags().GetString("genre")

		var (
			list []models.Movie
			err  error
		)
		if genreSlug != "" {
			_, list, err = services.Movies.ListByGenre(cmd.Context(), genreSlug)
		} else {
			list, err = services.Movies.List(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("failed to list movies: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			warning.Fprintln(out, "No movies found.")
			return nil
		}
		heading.Fprintf(out, "Movies (%d total):\n", len(list))
		for _, m := range list {
			director := ""
			if m.Director != nil {
				director = m.Director.Name
			}
			genres := make([]string, 0, len(m.Genres))
			for _, g := range m.Genres {
				genres = append(genres, g.Name)
			}
			fmt.Fprintf(out, "%s | %s (%d) | %s | %s | %s\n",
				m.Slug, m.Title, m.ReleaseDate.Year(), m.Country, director, strings.Join(genres, ", "))
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{addMovieCmd, updateMovieCmd} {
		c.Flags().String("title", "", "movie title")
		c.Flags().String("synopsis", "", "short plot summary")
		c.Flags().String("released", "", "release date, YYYY-MM-DD")
		c.Flags().String("country", "", "production country code: US, UK, PL, CA, IT, JP or CN")
		c.Flags().String("director", "", "director name; the director must exist")
		c.Flags().StringArray("actor", nil, "actor name, repeatable; actors must exist")
		c.Flags().StringArray("genre", nil, "genre name, repeatable; new genres are created")
		c.Flags().String("poster", "", "path to a poster image (jpeg, png or gif, at most 500KB)")
	}
	for _, name := range []string{"title", "synopsis", "released", "country", "director"} {
		_ = addMovieCmd.MarkFlagRequired(name)
	}
	listMoviesCmd.Flags().String("genre", "", "only movies of this genre slug")

	movieCmd.AddCommand(addMovieCmd)
	movieCmd.AddCommand(updateMovieCmd)
	movieCmd.AddCommand(deleteMovieCmd)
	movieCmd.AddCommand(listMoviesCmd)
}
