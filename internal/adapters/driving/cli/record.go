package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage module records",
	Long: `List, view, add, update or delete records.

Values are given as field=value pairs, for example:
  recordbook record add clients name="Northwind Traders" segment=Enterprise`,
}

var recordListCmd = &cobra.Command{
	Use:   "list [module]",
	Short: "List records in stored order",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordList,
}

var recordGetCmd = &cobra.Command{
	Use:   "get [module] [record-id]",
	Short: "Show a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecordGet,
}

var recordAddCmd = &cobra.Command{
	Use:   "add [module] [field=value]...",
	Short: "Add a record",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRecordAdd,
}

var recordUpdateCmd = &cobra.Command{
	Use:   "update [module] [record-id] [field=value]...",
	Short: "Update fields of a record",
	Long:  `Overwrite the given fields of a record. Fields not named keep their values.`,
	Args:  cobra.MinimumNArgs(3),
	RunE:  runRecordUpdate,
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete [module] [record-id]",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecordDelete,
}

var recordCheckCmd = &cobra.Command{
	Use:   "check [module] [field=value]...",
	Short: "Check values against the module's fields",
	Long:  `Report values that do not look right for their field type. Nothing is stored.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRecordCheck,
}

var (
	recordJSON bool
	recordID   string
	recordYes  bool
)

func init() {
	recordListCmd.Flags().BoolVar(&recordJSON, "json", false, "output as JSON")
	recordGetCmd.Flags().BoolVar(&recordJSON, "json", false, "output as JSON")
	recordAddCmd.Flags().StringVar(&recordID, "id", "", "record id (generated when empty)")
	recordDeleteCmd.Flags().BoolVarP(&recordYes, "yes", "y", false, "skip confirmation")

	recordCmd.AddCommand(recordListCmd)
	recordCmd.AddCommand(recordGetCmd)
	recordCmd.AddCommand(recordAddCmd)
	recordCmd.AddCommand(recordUpdateCmd)
	recordCmd.AddCommand(recordDeleteCmd)
	recordCmd.AddCommand(recordCheckCmd)
	rootCmd.AddCommand(recordCmd)
}

func runRecordList(cmd *cobra.Command, args []string) error {
	if recordService == nil || schemaService == nil {
		return errors.New("record service not configured")
	}

	moduleID := args[0]
	ctx := cmd.Context()

	records, err := recordService.List(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if recordJSON {
		return printJSON(cmd, records)
	}

	if len(records) == 0 {
		cmd.Printf("No records in module: %s\n", moduleID)
		return nil
	}

	fields, err := schemaService.Fields(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("failed to list fields: %w", err)
	}

	cmd.Printf("Records in %s:\n\n", moduleID)
	for i := range records {
		cmd.Printf("  %s\n", records[i].ID)
		printValues(cmd, fields, records[i], 40)
		cmd.Println()
	}

	cmd.Printf("Total: %d records\n", len(records))
	return nil
}

func runRecordGet(cmd *cobra.Command, args []string) error {
	if recordService == nil || schemaService == nil {
		return errors.New("record service not configured")
	}

	moduleID, id := args[0], args[1]
	ctx := cmd.Context()

	rec, err := recordService.Get(ctx, moduleID, id)
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if recordJSON {
		return printJSON(cmd, rec)
	}

	fields, err := schemaService.Fields(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("failed to list fields: %w", err)
	}

	cmd.Printf("Record: %s\n\n", rec.ID)
	printValues(cmd, fields, *rec, 0)
	return nil
}

// printValues prints non-empty schema values of a record. maxLen of zero
// prints values in full.
func printValues(cmd *cobra.Command, fields []domain.FieldDefinition, rec domain.Record, maxLen int) {
	for i := range fields {
		v := rec.Get(fields[i].ID)
		if v == "" {
			continue
		}
		if maxLen > 0 {
			v = truncate(v, maxLen)
		}
		cmd.Printf("    %s: %s\n", fields[i].Label, v)
	}
}

func runRecordAdd(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	moduleID := args[0]
	values, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rec, err := recordService.Add(ctx, moduleID, domain.NewRecord(recordID, values))
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	cmd.Printf("Added record %s to %s.\n", rec.ID, moduleID)
	printIssues(ctx, cmd, moduleID, rec.Values)
	return nil
}

func runRecordUpdate(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	moduleID, id := args[0], args[1]
	values, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if _, err := recordService.Get(ctx, moduleID, id); err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	if err := recordService.Update(ctx, moduleID, id, values); err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	cmd.Printf("Updated record %s in %s.\n", id, moduleID)
	if rec, err := recordService.Get(ctx, moduleID, id); err == nil {
		printIssues(ctx, cmd, moduleID, rec.Values)
	}
	return nil
}

func runRecordDelete(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	moduleID, id := args[0], args[1]
	if !recordYes {
		ok, err := confirm(cmd, fmt.Sprintf("Delete record %s from %s?", id, moduleID))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := recordService.Delete(cmd.Context(), moduleID, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	cmd.Printf("Deleted record %s from %s.\n", id, moduleID)
	return nil
}

func runRecordCheck(cmd *cobra.Command, args []string) error {
	if schemaService == nil {
		return errors.New("schema service not configured")
	}

	moduleID := args[0]
	values, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	issues, err := schemaService.Check(cmd.Context(), moduleID, values)
	if err != nil {
		return fmt.Errorf("failed to check values: %w", err)
	}

	if len(issues) == 0 {
		cmd.Println("No issues found.")
		return nil
	}
	for _, issue := range issues {
		cmd.Printf("  %s: %s\n", issue.FieldID, issue.Message)
	}
	return nil
}

// printIssues reports advisory problems with stored values. Failures are
// ignored because the write already succeeded.
func printIssues(ctx context.Context, cmd *cobra.Command, moduleID string, values map[string]string) {
	if schemaService == nil {
		return
	}
	issues, err := schemaService.Check(ctx, moduleID, values)
	if err != nil {
		return
	}
	for _, issue := range issues {
		cmd.Printf("Warning: %s: %s\n", issue.FieldID, issue.Message)
	}
}
