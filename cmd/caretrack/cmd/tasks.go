// ABOUTME: Tasks commands for the caretrack CLI
// ABOUTME: Lists care tasks and marks them complete

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/caretrack/caretrack-go/api"
	"github.com/caretrack/caretrack-go/models"
)

var (
	tasksStatus  string
	tasksCarerID string

	taskDescription string
	taskCarer       string
	taskPackage     string
	taskDueAt       string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List care tasks",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exitCode := runTasks(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a care task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exitCode := runCreateTask(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var tasksCompleteCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exitCode := runCompleteTask(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	tasksCmd.Flags().StringVar(&tasksStatus, "status", "", "Filter by status (pending, completed, overdue)")
	tasksCmd.Flags().StringVar(&tasksCarerID, "carer", "", "Filter by carer id")
	tasksCreateCmd.Flags().StringVar(&taskDescription, "description", "", "Task description")
	tasksCreateCmd.Flags().StringVar(&taskCarer, "carer", "", "Carer id to assign")
	tasksCreateCmd.Flags().StringVar(&taskPackage, "package", "", "Care package id")
	tasksCreateCmd.Flags().StringVar(&taskDueAt, "due", "", "Due time (RFC3339)")
	tasksCmd.AddCommand(tasksCreateCmd)
	tasksCmd.AddCommand(tasksCompleteCmd)
	rootCmd.AddCommand(tasksCmd)
}

// runTasks lists tasks and returns the exit code
func runTasks(ctx context.Context, w io.Writer) int {
	s, err := newSDK()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer s.close()

	tasks, err := s.api.Tasks.List(ctx, api.ListTasksOptions{
		Status:  models.TaskStatus(tasksStatus),
		CarerID: tasksCarerID,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(tasks, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tDUE")
	for _, t := range tasks {
		due := "-"
		if t.DueAt != nil {
			due = t.DueAt.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, due)
	}
	tw.Flush()
	return 0
}

// runCreateTask creates a task and returns the exit code
func runCreateTask(ctx context.Context, w io.Writer, title string) int {
	input := api.TaskInput{
		Title:         title,
		Description:   taskDescription,
		CarerID:       taskCarer,
		CarePackageID: taskPackage,
	}
	if taskDueAt != "" {
		due, err := time.Parse(time.RFC3339, taskDueAt)
		if err != nil {
			fmt.Fprintf(w, "Error: invalid --due value %q: %v\n", taskDueAt, err)
			return 2
		}
		input.DueAt = &due
	}

	s, err := newSDK()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer s.close()

	task, err := s.api.Tasks.Create(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "Task %q created (%s)\n", task.Title, task.ID)
	return 0
}

// runCompleteTask marks a task done and returns the exit code
func runCompleteTask(ctx context.Context, w io.Writer, id string) int {
	s, err := newSDK()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer s.close()

	task, err := s.api.Tasks.Complete(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "Task %q completed\n", task.Title)
	return 0
}
