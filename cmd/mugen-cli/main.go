package main

import (
	"fmt"
	"log"
	"mugen/internal/auth"
	"mugen/internal/export"
	"mugen/internal/gallery"
	"mugen/internal/generate"
	"mugen/internal/intake"
	"mugen/internal/storage"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPathFlag    string
	store         *gallery.Store
	boltStore     *storage.BoltStore
	favoritesFlag bool
	queryFlag     string
	tagsFlag      string
	authorFlag    string
	ratioFlag     string
	outFlag       string
)

func cliLogger(msg string) {
	log.Printf("[mugen-cli] %s", msg)
}

// storeFactory initializes the gallery store and its persistence backend.
// Tests inject their own factory to run against a temporary database.
type storeFactory func(dbPath string, logger gallery.LoggerFunc) (*gallery.Store, *storage.BoltStore, error)

// NewRootCmd creates the root command for the CLI application. The store
// factory is injected so tests can point it at a temporary database.
func NewRootCmd(getStore storeFactory) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "mugen-cli",
		Short: "Mugen CLI - manage the wallpaper gallery",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			store, boltStore, err = getStore(dbPathFlag, cliLogger)
			if err != nil {
				return fmt.Errorf("failed to open gallery: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if boltStore != nil {
				boltStore.Close()
			}
		},
	}

	// List wallpapers, optionally filtered
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List wallpapers, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := gallery.View{Collection: gallery.CollectionAll, Query: queryFlag}
			if favoritesFlag {
				view.Collection = gallery.CollectionFavorites
			}
			if tagsFlag != "" {
				view.SelectedTags = strings.Split(tagsFlag, ",")
			}
			records := store.Visible(view)
			if len(records) == 0 {
				cmd.Println("No wallpapers matched.")
				return nil
			}
			for _, w := range records {
				fav := " "
				if w.IsFavorite {
					fav = "*"
				}
				cmd.Printf("%s %s  %s — %s  [%s]  views=%d\n",
					fav, w.ID, w.Title, w.Author, strings.Join(w.Tags, ","), w.Views)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&favoritesFlag, "favorites", false, "Only favorited wallpapers")
	listCmd.Flags().StringVar(&queryFlag, "query", "", "Substring match over title, author and tags")
	listCmd.Flags().StringVar(&tagsFlag, "tags", "", "Comma-separated tags, any match keeps the record")
	rootCmd.AddCommand(listCmd)

	// Show one wallpaper
	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a single wallpaper record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("no wallpaper with id %q", args[0])
			}
			cmd.Printf("ID:        %s\n", w.ID)
			cmd.Printf("Title:     %s\n", w.Title)
			cmd.Printf("Author:    %s\n", w.Author)
			cmd.Printf("Tags:      %s\n", strings.Join(w.Tags, ", "))
			cmd.Printf("Favorite:  %v\n", w.IsFavorite)
			cmd.Printf("Rotation:  %d\n", w.Rotation)
			cmd.Printf("Focal:     %.1f,%.1f\n", w.FocalPoint.X, w.FocalPoint.Y)
			cmd.Printf("Views:     %d\n", w.Views)
			cmd.Printf("URL:       %s\n", w.URL)
			return nil
		},
	}
	rootCmd.AddCommand(showCmd)

	// List all tags
	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "List all tags in the gallery",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags := store.AllTags()
			if len(tags) == 0 {
				cmd.Println("No tags found.")
				return nil
			}
			for _, tag := range tags {
				cmd.Println(tag)
			}
			return nil
		},
	}
	rootCmd.AddCommand(tagsCmd)

	// Upload a directory of images
	uploadCmd := &cobra.Command{
		Use:   "upload [directory]",
		Short: "Add all images in a directory to the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			var tags []string
			if tagsFlag != "" {
				tags = strings.Split(tagsFlag, ",")
			}
			items, err := intake.ScanDirectory(dir, authorFlag, tags)
			if err != nil {
				return err
			}
			created := store.UpsertBatch(items)
			cmd.Printf("Added %d wallpaper(s).\n", len(created))
			for _, w := range created {
				cmd.Printf("  %s  %s\n", w.ID, w.Title)
			}
			return nil
		},
	}
	uploadCmd.Flags().StringVar(&authorFlag, "author", intake.DefaultAuthor, "Author credited on uploaded wallpapers")
	uploadCmd.Flags().StringVar(&tagsFlag, "tags", "", "Comma-separated tags applied to every upload")
	rootCmd.AddCommand(uploadCmd)

	// Toggle favorite
	favoriteCmd := &cobra.Command{
		Use:   "favorite [id]",
		Short: "Toggle the favorite flag on a wallpaper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store.ToggleFavorite(args[0])
			if w, ok := store.Get(args[0]); ok {
				cmd.Printf("%s favorite=%v\n", w.ID, w.IsFavorite)
			}
			return nil
		},
	}
	rootCmd.AddCommand(favoriteCmd)

	// Rotate by a quarter turn
	rotateCmd := &cobra.Command{
		Use:   "rotate [id]",
		Short: "Rotate a wallpaper clockwise by 90 degrees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("no wallpaper with id %q", args[0])
			}
			store.SetRotation(w.ID, w.NextRotation())
			if w, ok = store.Get(args[0]); ok {
				cmd.Printf("%s rotation=%d\n", w.ID, w.Rotation)
			}
			return nil
		},
	}
	rootCmd.AddCommand(rotateCmd)

	// Set the focal point
	focalCmd := &cobra.Command{
		Use:   "focal [id] [x] [y]",
		Short: "Set a wallpaper's focal point (percentages 0-100)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[1], err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[2], err)
			}
			store.SetFocalPoint(args[0], gallery.FocalPoint{X: x, Y: y})
			if w, ok := store.Get(args[0]); ok {
				cmd.Printf("%s focal=%.1f,%.1f\n", w.ID, w.FocalPoint.X, w.FocalPoint.Y)
			}
			return nil
		},
	}
	rootCmd.AddCommand(focalCmd)

	// Delete
	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Remove a wallpaper from the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store.DeleteRecord(args[0])
			cmd.Printf("Deleted %s.\n", args[0])
			return nil
		},
	}
	rootCmd.AddCommand(deleteCmd)

	// Export image bytes to disk
	exportCmd := &cobra.Command{
		Use:   "export [id] [destination]",
		Short: "Save a wallpaper's image to a local file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("no wallpaper with id %q", args[0])
			}
			dest, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}
			if err := export.NewExporter().Save(cmd.Context(), w.URL, dest); err != nil {
				return err
			}
			cmd.Printf("作品已归档至本地: %s\n", dest)
			return nil
		},
	}
	rootCmd.AddCommand(exportCmd)

	// Generate a wallpaper with Gemini
	generateCmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate a wallpaper image from a text prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			key, source := auth.GetKey(true)
			if key == "" {
				return fmt.Errorf("no Gemini API key found; run 'mugen-cli key set' or set GEMINI_API_KEY")
			}
			cmd.Printf("Using API key from %s.\n", source)

			ctx := cmd.Context()
			client, err := generate.NewClient(ctx, key)
			if err != nil {
				return err
			}
			defer client.Close()

			url, err := client.Generate(ctx, generate.Request{Prompt: prompt, AspectRatio: ratioFlag})
			if err != nil {
				return err
			}
			created := store.UpsertBatch([]gallery.UploadItem{{
				Title:  prompt,
				Author: "AI 绘梦师",
				URL:    url,
				Tags:   []string{"AI生成"},
			}})
			if len(created) > 0 {
				cmd.Printf("Generated wallpaper %s.\n", created[0].ID)
			}
			if outFlag != "" {
				dest, err := filepath.Abs(outFlag)
				if err != nil {
					return err
				}
				if err := export.NewExporter().Save(ctx, url, dest); err != nil {
					return err
				}
				cmd.Printf("作品已归档至本地: %s\n", dest)
			}
			return nil
		},
	}
	generateCmd.Flags().StringVar(&ratioFlag, "ratio", "1:1", "Aspect ratio: "+strings.Join(generate.AspectRatios, ", "))
	generateCmd.Flags().StringVar(&outFlag, "out", "", "Also save the generated image to this path")
	rootCmd.AddCommand(generateCmd)

	// API key management
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the Gemini API key",
	}
	keyCmd.AddCommand(&cobra.Command{
		Use:   "set [key]",
		Short: "Store the API key in the OS keychain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.SaveKey(args[0]); err != nil {
				return err
			}
			cmd.Println("API key saved.")
			return nil
		},
	})
	keyCmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the API key from the OS keychain",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.DeleteKey(); err != nil {
				return err
			}
			cmd.Println("API key removed.")
			return nil
		},
	})
	keyCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether an API key is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			if auth.HasStoredKey() {
				cmd.Println("API key is stored in the keychain.")
			} else {
				cmd.Println("No API key stored.")
			}
			return nil
		},
	})
	rootCmd.AddCommand(keyCmd)

	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "dbpath", "", "Directory holding the gallery database")

	return rootCmd
}

func main() {
	godotenv.Load()

	getStore := func(dbPath string, logger gallery.LoggerFunc) (*gallery.Store, *storage.BoltStore, error) {
		bs, err := storage.Open(dbPath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open gallery DB: %w", err)
		}
		return gallery.NewStore(bs, logger), bs, nil
	}
	rootCmd := NewRootCmd(getStore)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
