package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewSessionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List chat sessions, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			printSessions(ws.Sessions())
			return nil
		},
	}
}

func NewNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new [title]",
		Short: "Start a new chat session and make it active",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			sess := ws.CreateSession(cmd.Context(), strings.Join(args, " "))
			color.Green("Created %s (%s)", sess.Title, sess.ID)
			return nil
		},
	}
}

func NewSwitchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <session-id>",
		Short: "Make a session active and show its transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if _, err := ws.SwitchSession(cmd.Context(), args[0]); err != nil {
				return err
			}
			sess, msgs, err := ws.Transcript(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTranscript(sess, msgs)
			return nil
		},
	}
}

func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a chat session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := ws.DeleteSession(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the uploaded PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ws.Logout(cmd.Context())
			fmt.Println("Logged out")
			return nil
		},
	}
}
