package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mizushima/gdforge/internal/collection"
	"github.com/mizushima/gdforge/internal/models"
)

// openCollection resolves a kind argument to its collection in the loaded
// project.
func (o *RootOptions) openCollection(kindName string) (*collection.Collection, error) {
	kind, ok := models.KindByName(kindName)
	if !ok {
		return nil, fmt.Errorf("unknown record kind %q (one of: %s)", kindName, kindNames())
	}
	p, err := o.openProject()
	if err != nil {
		return nil, err
	}
	return p.Collection(kind), nil
}

func kindNames() string {
	names := make([]string, len(models.Kinds))
	for i, k := range models.Kinds {
		names[i] = k.Name
	}
	return strings.Join(names, ", ")
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q: %w", arg, err)
	}
	return id, nil
}

func parsePartial(raw string) (models.Record, error) {
	var partial models.Record
	if err := json.Unmarshal([]byte(raw), &partial); err != nil {
		return nil, fmt.Errorf("invalid --data JSON: %w", err)
	}
	return partial, nil
}

func newListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List all records of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.openCollection(args[0])
			if err != nil {
				return err
			}
			records, err := c.List()
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), records)
			}
			for _, rec := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", rec.ID(), rec.Name())
			}
			return nil
		},
	}
}

func newGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <kind> <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.openCollection(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			rec, err := c.Get(id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
}

func newCreateCommand(opts *RootOptions) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "create <kind>",
		Short: "Create a record from default values overlaid with --data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.openCollection(args[0])
			if err != nil {
				return err
			}
			partial, err := parsePartial(data)
			if err != nil {
				return err
			}
			id, rec, err := c.Create(partial)
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "record": rec})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %d\n", args[0], id)
			return nil
		},
	}
	cmd.Flags().StringVar(&data, "data", "{}", "record fields as a JSON object")
	return cmd
}

func newUpdateCommand(opts *RootOptions) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update <kind> <id>",
		Short: "Shallow-merge --data over an existing record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.openCollection(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			partial, err := parsePartial(data)
			if err != nil {
				return err
			}
			rec, err := c.Update(id, partial)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "fields to change as a JSON object")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newDeleteCommand(opts *RootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete a record, keeping every other ID stable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.openCollection(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := c.Delete(id, !force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %d\n", args[0], id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force-first", false, "allow deleting record 1, the kind's default record")
	return cmd
}

func newSearchCommand(opts *RootOptions) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "search <kind> <query>",
		Short: "Case-insensitive substring search over string fields",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.openCollection(args[0])
			if err != nil {
				return err
			}
			matches, err := c.Search(args[1], fields)
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), matches)
			}
			for _, rec := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", rec.ID(), rec.Name())
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&fields, "fields", []string{"name"}, "fields to match (dotted paths allowed)")
	return cmd
}
