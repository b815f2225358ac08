package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Manage module fields",
	Long: `List, add, update, delete or reorder the fields of a module.

Field types: text, email, phone, currency, date, status, number, textarea, select.
Types are advisory; values are always stored as text.`,
}

var fieldListCmd = &cobra.Command{
	Use:   "list [module]",
	Short: "List fields in display order",
	Args:  cobra.ExactArgs(1),
	RunE:  runFieldList,
}

var fieldAddCmd = &cobra.Command{
	Use:   "add [module]",
	Short: "Add a field",
	Long: `Add a field to the end of a module's schema.

When --id is omitted an id is derived from the label.`,
	Args: cobra.ExactArgs(1),
	RunE: runFieldAdd,
}

var fieldUpdateCmd = &cobra.Command{
	Use:   "update [module] [field-id]",
	Short: "Update a field's label, type, options or required flag",
	Args:  cobra.ExactArgs(2),
	RunE:  runFieldUpdate,
}

var fieldDeleteCmd = &cobra.Command{
	Use:   "delete [module] [field-id]",
	Short: "Delete a field",
	Long:  `Delete a field from the schema. Record values for the field are kept but no longer exported.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runFieldDelete,
}

var fieldReorderCmd = &cobra.Command{
	Use:   "reorder [module] [from] [to]",
	Short: "Move a field to another position",
	Long:  `Move the field at position "from" to position "to". Positions start at 1, as shown by "field list".`,
	Args:  cobra.ExactArgs(3),
	RunE:  runFieldReorder,
}

var fieldValuesCmd = &cobra.Command{
	Use:   "values [module]",
	Short: "Show sample values per field",
	Args:  cobra.ExactArgs(1),
	RunE:  runFieldValues,
}

var (
	fieldID       string
	fieldLabel    string
	fieldType     string
	fieldOptions  []string
	fieldRequired bool
	fieldYes      bool
)

func init() {
	fieldAddCmd.Flags().StringVar(&fieldID, "id", "", "field id (derived from the label when empty)")
	fieldAddCmd.Flags().StringVarP(&fieldLabel, "label", "l", "", "display label")
	fieldAddCmd.Flags().StringVarP(&fieldType, "type", "t", string(domain.FieldText), "field type")
	fieldAddCmd.Flags().StringSliceVar(&fieldOptions, "options", nil, "allowed values for select fields")
	fieldAddCmd.Flags().BoolVar(&fieldRequired, "required", false, "mark the field as required")
	_ = fieldAddCmd.MarkFlagRequired("label")

	fieldUpdateCmd.Flags().StringP("label", "l", "", "display label")
	fieldUpdateCmd.Flags().StringP("type", "t", "", "field type")
	fieldUpdateCmd.Flags().StringSlice("options", nil, "allowed values for select fields (empty clears)")
	fieldUpdateCmd.Flags().Bool("required", false, "mark the field as required")

	fieldDeleteCmd.Flags().BoolVarP(&fieldYes, "yes", "y", false, "skip confirmation")

	fieldCmd.AddCommand(fieldListCmd)
	fieldCmd.AddCommand(fieldAddCmd)
	fieldCmd.AddCommand(fieldUpdateCmd)
	fieldCmd.AddCommand(fieldDeleteCmd)
	fieldCmd.AddCommand(fieldReorderCmd)
	fieldCmd.AddCommand(fieldValuesCmd)
	rootCmd.AddCommand(fieldCmd)
}

func runFieldList(cmd *cobra.Command, args []string) error {
	if schemaService == nil {
		return errors.New("schema service not configured")
	}

	moduleID := args[0]
	fields, err := schemaService.Fields(cmd.Context(), moduleID)
	if err != nil {
		return fmt.Errorf("failed to list fields: %w", err)
	}

	if len(fields) == 0 {
		cmd.Printf("No fields defined for module: %s\n", moduleID)
		return nil
	}

	cmd.Printf("Fields for %s:\n\n", moduleID)
	for i := range fields {
		f := fields[i]
		line := fmt.Sprintf("  %d. %s (%s) - %s", i+1, f.ID, f.Type, f.Label)
		if f.Required {
			line += " [required]"
		}
		cmd.Println(line)
		if len(f.Options) > 0 {
			cmd.Printf("       Options: %s\n", strings.Join(f.Options, ", "))
		}
	}
	return nil
}

func runFieldAdd(cmd *cobra.Command, args []string) error {
	if schemaService == nil {
		return errors.New("schema service not configured")
	}

	moduleID := args[0]
	id := strings.TrimSpace(fieldID)
	if id == "" {
		id = domain.NewFieldID(fieldLabel, time.Now())
	}

	field := domain.FieldDefinition{
		ID:       id,
		Label:    strings.TrimSpace(fieldLabel),
		Type:     domain.FieldType(fieldType),
		Options:  fieldOptions,
		Required: fieldRequired,
	}

	if err := schemaService.AddField(cmd.Context(), moduleID, field); err != nil {
		return fmt.Errorf("failed to add field: %w", err)
	}

	cmd.Printf("Added field %s to %s.\n", id, moduleID)
	return nil
}

func runFieldUpdate(cmd *cobra.Command, args []string) error {
	if schemaService == nil {
		return errors.New("schema service not configured")
	}

	moduleID, id := args[0], args[1]
	flags := cmd.Flags()

	var update domain.FieldUpdate
	if flags.Changed("label") {
		label, _ := flags.GetString("label")
		label = strings.TrimSpace(label)
		update.Label = &label
	}
	if flags.Changed("type") {
		t, _ := flags.GetString("type")
		ft := domain.FieldType(t)
		update.Type = &ft
	}
	if flags.Changed("options") {
		opts, _ := flags.GetStringSlice("options")
		update.Options = &opts
	}
	if flags.Changed("required") {
		req, _ := flags.GetBool("required")
		update.Required = &req
	}

	if update.IsEmpty() {
		return errors.New("nothing to update: pass --label, --type, --options or --required")
	}

	if err := schemaService.UpdateField(cmd.Context(), moduleID, id, update); err != nil {
		return fmt.Errorf("failed to update field: %w", err)
	}

	cmd.Printf("Updated field %s in %s.\n", id, moduleID)
	return nil
}

func runFieldDelete(cmd *cobra.Command, args []string) error {
	if schemaService == nil {
		return errors.New("schema service not configured")
	}

	moduleID, id := args[0], args[1]
	if !fieldYes {
		ok, err := confirm(cmd, fmt.Sprintf("Delete field %s from %s?", id, moduleID))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := schemaService.DeleteField(cmd.Context(), moduleID, id); err != nil {
		return fmt.Errorf("failed to delete field: %w", err)
	}

	cmd.Printf("Deleted field %s from %s.\n", id, moduleID)
	return nil
}

func runFieldReorder(cmd *cobra.Command, args []string) error {
	if schemaService == nil {
		return errors.New("schema service not configured")
	}

	moduleID := args[0]
	from, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	to, err := parsePosition(args[2])
	if err != nil {
		return err
	}

	fields, err := schemaService.Fields(cmd.Context(), moduleID)
	if err != nil {
		return fmt.Errorf("failed to get fields: %w", err)
	}
	if from > len(fields) || to > len(fields) {
		cmd.Printf("Nothing moved: %s has %d fields.\n", moduleID, len(fields))
		return nil
	}

	if err := schemaService.ReorderField(cmd.Context(), moduleID, from-1, to-1); err != nil {
		return fmt.Errorf("failed to reorder fields: %w", err)
	}

	cmd.Printf("Moved field %d to position %d in %s.\n", from, to, moduleID)
	return nil
}

func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: expected a number from 1", s)
	}
	return n, nil
}

func runFieldValues(cmd *cobra.Command, args []string) error {
	if searchService == nil || schemaService == nil {
		return errors.New("search service not configured")
	}

	moduleID := args[0]
	ctx := cmd.Context()

	fields, err := schemaService.Fields(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("failed to list fields: %w", err)
	}
	suggestions, err := searchService.Suggestions(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("failed to get values: %w", err)
	}

	if len(suggestions) == 0 {
		cmd.Printf("No values recorded in %s yet.\n", moduleID)
		return nil
	}

	for i := range fields {
		values, ok := suggestions[fields[i].ID]
		if !ok {
			continue
		}
		cmd.Printf("  %s: %s\n", fields[i].Label, strings.Join(values, ", "))
	}
	return nil
}
