package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"tutorai-be/pkg/tutor/workspace"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewChatCommand asks one question from args, or reads questions from stdin
// until EOF or /quit.
func NewChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask the tutor in the active session",
		RunE:  runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	if len(args) > 0 {
		ask(cmd, ws, strings.Join(args, " "))
		return nil
	}

	sess, msgs, err := ws.Transcript(cmd.Context(), "")
	if err != nil {
		return err
	}
	printTranscript(sess, msgs)
	if pdf, ok := ws.PdfContext(); ok {
		color.Magenta("Using %s (%d pages) as context", pdf.Filename, pdf.Pages)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(userLabel.Sprint("> "))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "/quit" {
			return nil
		}
		ask(cmd, ws, line)
	}
}

func ask(cmd *cobra.Command, ws *workspace.Workspace, question string) {
	res := ws.Ask(cmd.Context(), question)
	switch {
	case res.Skipped:
		return
	case res.Stale || res.Reply == nil:
		dimText.Println("(reply discarded)")
	case res.Failed:
		color.Red("%s", res.Reply.Content)
	default:
		printMessage(*res.Reply)
	}
	printWarnings(ws.DrainWarnings())
}
