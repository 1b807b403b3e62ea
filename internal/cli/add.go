package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskpanel/internal/form"
	"taskpanel/internal/task"
)

var (
	addDescription string
	addDue         string
	addStatus      string
	addPriority    string
)

var addCmd = &cobra.Command{
	Use:   "add TITLE...",
	Short: "Create a task without opening the panel",
	Long: `Creates a task from the command line. The title is the remaining
arguments joined by spaces.

Example:
taskpanel add Renew passport --due 2026-11-30 --priority high
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addStatus, "status", string(task.StatusPending), "Status (pending, completed)")
	addCmd.Flags().StringVar(&addPriority, "priority", string(task.PriorityMedium), "Priority (low, medium, high)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	in, err := form.CreateForm{
		Title:       strings.Join(args, " "),
		Description: addDescription,
		DueDate:     addDue,
		Status:      addStatus,
		Priority:    addPriority,
	}.Validate()
	if err != nil {
		return err
	}

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	svc, closeSvc, err := openService(cfg, path)
	if err != nil {
		return err
	}
	defer closeSvc()

	t, err := svc.CreateTask(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s  %s\n", t.ID, t.Title)
	return nil
}
