package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var actorCmd = &cobra.Command{
	Use:   "actor",
	Short: "Actor management commands",
	Long:  `Manage actors: add, rename, set photo, delete and list`,
}

var addActorCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add an actor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		photoPath, _ := cmd.Flags().GetString("photo")
		photo, done, err := openUpload(photoPath)
		if err != nil {
			return fmt.Errorf("failed to open photo: %w", err)
		}
		defer done()

		d, err := services.Actors.Create(cmd.Context(), strings.Join(args, " "), photo)
		if err != nil {
			return fmt.Errorf("failed to add actor: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Actor added: %s (%s)\n", d.Name, d.SluggedName)
		return nil
	},
}

var renameActorCmd = &cobra.Command{
	Use:   "rename [slug] [new name]",
	Short: "Rename an actor; the slug follows the name",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := services.Actors.Rename(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return fmt.Errorf("failed to rename actor: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Actor renamed: %s (%s)\n", d.Name, d.SluggedName)
		return nil
	},
}

var actorPhotoCmd = &cobra.Command{
	Use:   "photo [slug] [file]",
	Short: "Replace an actor's photo",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		photo, done, err := openUpload(args[1])
		if err != nil {
			return fmt.Errorf("failed to open photo: %w", err)
		}
		defer done()

		d, err := services.Actors.SetPhoto(cmd.Context(), args[0], photo)
		if err != nil {
			return fmt.Errorf("failed to set photo: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Photo stored: %s\n", d.Photo)
		return nil
	},
}

var deleteActorCmd = &cobra.Command{
	Use:   "delete [slug]",
	Short: "Delete an actor and remove them from every cast",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := services.Actors.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete actor: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Actor %s deleted\n", args[0])
		return nil
	},
}

var listActorsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all actors",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := services.Actors.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list actors: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			warning.Fprintln(out, "No actors found.")
			return nil
		}
		heading.Fprintf(out, "Actors (%d total):\n", len(list))
		for _, d := range list {
			fmt.Fprintf(out, "%s | %s\n", d.SluggedName, d.Name)
		}
		return nil
	},
}

func init() {
	addActorCmd.Flags().String("photo", "", "path to a photo (jpeg, png or gif, at most 500KB)")

	actorCmd.AddCommand(addActorCmd)
	actorCmd.AddCommand(renameActorCmd)
	actorCmd.AddCommand(actorPhotoCmd)
	actorCmd.AddCommand(deleteActorCmd)
	actorCmd.AddCommand(listActorsCmd)
}
