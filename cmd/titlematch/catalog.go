package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/titlematch/pkg/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage a SQLite catalog",
	}
	cmd.PersistentFlags().String("db", "catalog.db", "path to the SQLite catalog")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Seed the catalog from a file, a URL or the built-in titles",
		Args:  cobra.NoArgs,
		RunE:  runCatalogImport,
	}
	importCmd.Flags().String("file", "", "YAML or TOML catalog file")
	importCmd.Flags().String("url", "", "URL of a YAML or TOML catalog")
	importCmd.MarkFlagsMutuallyExclusive("file", "url")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the prefixes and titles in catalog order",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, db *catalog.DB, _ []string) error {
			f, err := db.Snapshot("db")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "prefixes: %d\n", len(f.Prefixes))
			for _, p := range f.Prefixes {
				fmt.Fprintf(out, "  %s\n", p)
			}
			fmt.Fprintf(out, "titles: %d\n", len(f.Titles))
			for i, t := range f.Titles {
				fmt.Fprintf(out, "  %3d  %s\n", i+1, t)
			}
			return nil
		}),
	}

	cmd.AddCommand(importCmd, listCmd,
		editCmd("add-title <title>", "Append a canonical title", (*catalog.DB).AddTitle),
		editCmd("remove-title <title>", "Remove a canonical title", (*catalog.DB).RemoveTitle),
		editCmd("add-prefix <prefix>", "Add an ignorable prefix", (*catalog.DB).AddPrefix),
		editCmd("remove-prefix <prefix>", "Remove an ignorable prefix", (*catalog.DB).RemovePrefix),
	)
	return cmd
}

func withDB(run func(*cobra.Command, *catalog.DB, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("db")
		db, err := catalog.OpenDB(path)
		if err != nil {
			return err
		}
		defer db.Close()
		return run(cmd, db, args)
	}
}

func editCmd(use, short string, edit func(*catalog.DB, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(_ *cobra.Command, db *catalog.DB, args []string) error {
			return edit(db, args[0])
		}),
	}
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	url, _ := cmd.Flags().GetString("url")

	var (
		f   *catalog.File
		err error
	)
	switch {
	case file != "":
		f, err = catalog.LoadFile(file)
	case url != "":
		f, err = catalog.Fetch(cmd.Context(), url)
	default:
		f = catalog.Builtin()
	}
	if err != nil {
		return err
	}

	return withDB(func(cmd *cobra.Command, db *catalog.DB, _ []string) error {
		if err := db.Seed(f); err != nil {
			return err
		}
		titles, err := db.CanonicalTitles()
		if err != nil {
			return err
		}
		prefixes, err := db.IgnorablePrefixes()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] imported: catalog now has %d titles and %d prefixes\n", f.ID, len(titles), len(prefixes))
		return nil
	})(cmd, args)
}
