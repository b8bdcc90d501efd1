package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moviehub/internal/microservices/http-api/service"
)

var directorCmd = &cobra.Command{
	Use:   "director",
	Short: "Director management commands",
	Long:  `Manage directors: add, rename, set photo, delete and list`,
}

var addDirectorCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a director",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		photoPath, _ := cmd.Flags().GetString("photo")
		photo, done, err := openUpload(photoPath)
		if err != nil {
			return fmt.Errorf("failed to open photo: %w", err)
		}
		defer done()

		d, err := services.Directors.Create(cmd.Context(), strings.Join(args, " "), photo)
		if err != nil {
			return fmt.Errorf("failed to add director: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Director added: %s (%s)\n", d.Name, d.SluggedName)
		return nil
	},
}

var renameDirectorCmd = &cobra.Command{
	Use:   "rename [slug] [new name]",
	Short: "Rename a director; the slug follows the name",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := services.Directors.Rename(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return fmt.Errorf("failed to rename director: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Director renamed: %s (%s)\n", d.Name, d.SluggedName)
		return nil
	},
}

var directorPhotoCmd = &cobra.Command{
	Use:   "photo [slug] [file]",
	Short: "Replace a director's photo",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		photo, done, err := openUpload(args[1])
		if err != nil {
			return fmt.Errorf("failed to open photo: %w", err)
		}
		defer done()

		d, err := services.Directors.SetPhoto(cmd.Context(), args[0], photo)
		if err != nil {
			return fmt.Errorf("failed to set photo: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Photo stored: %s\n", d.Photo)
		return nil
	},
}

var deleteDirectorCmd = &cobra.Command{
	Use:   "delete [slug]",
	Short: "Delete a director without movies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := services.Directors.Delete(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, service.ErrHasMovies) {
				return fmt.Errorf("director %q still has movies; delete or reassign them first: %w", args[0], err)
			}
			return fmt.Errorf("failed to delete director: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Director %s deleted\n", args[0])
		return nil
	},
}

var listDirectorsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all directors",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := services.Directors.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list directors: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			warning.Fprintln(out, "No directors found.")
			return nil
		}
		heading.Fprintf(out, "Directors (%d total):\n", len(list))
		for _, d := range list {
			fmt.Fprintf(out, "%s | %s\n", d.SluggedName, d.Name)
		}
		return nil
	},
}

func init() {
	addDirectorCmd.Flags().String("photo", "", "path to a photo (jpeg, png or gif, at most 500KB)")

	directorCmd.AddCommand(addDirectorCmd)
	directorCmd.AddCommand(renameDirectorCmd)
	directorCmd.AddCommand(directorPhotoCmd)
	directorCmd.AddCommand(deleteDirectorCmd)
	directorCmd.AddCommand(listDirectorsCmd)
}
