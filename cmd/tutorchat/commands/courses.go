package commands

import (
	"fmt"

	"tutorai-be/pkg/tutor/course"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewCoursesCommand lists tracked courses; subcommands edit them.
func NewCoursesCommand() *cobra.Command {
	coursesCmd := &cobra.Command{
		Use:   "courses",
		Short: "Show tracked courses and topic progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			printSlots(ws.Slots())
			return nil
		},
	}

	coursesCmd.AddCommand(&cobra.Command{
		Use:   "catalog",
		Short: "List available courses and their topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range course.Catalog() {
				fmt.Printf("%s  %s\n", color.New(color.Bold).Sprint(c.Key), c.Name)
				for _, t := range c.Topics {
					fmt.Printf("    %s\n", t)
				}
			}
			return nil
		},
	})

	coursesCmd.AddCommand(&cobra.Command{
		Use:   "add <course> [topic]",
		Short: "Track a course",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			topic := ""
			if len(args) == 2 {
				topic = args[1]
			}
			slot, err := ws.AddSlot(cmd.Context(), course.NormalizeKey(args[0]), topic)
			if err != nil {
				return err
			}
			color.Green("Tracking %s as %s", slot.Course, slot.ID)
			return nil
		},
	})

	coursesCmd.AddCommand(&cobra.Command{
		Use:   "mark <slot-id> <topic>",
		Short: "Mark a topic as covered",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := ws.MarkTopic(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			printSlots(ws.Slots())
			return nil
		},
	})

	coursesCmd.AddCommand(&cobra.Command{
		Use:   "unmark <slot-id> <topic>",
		Short: "Mark a topic as not covered",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ws.UnmarkTopic(cmd.Context(), args[0], args[1])
			printSlots(ws.Slots())
			return nil
		},
	})

	coursesCmd.AddCommand(&cobra.Command{
		Use:   "remove <slot-id>",
		Short: "Stop tracking a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if !ws.DeleteSlot(cmd.Context(), args[0]) {
				return course.ErrSlotNotFound
			}
			fmt.Printf("Removed %s\n", args[0])
			return nil
		},
	})

	return coursesCmd
}
