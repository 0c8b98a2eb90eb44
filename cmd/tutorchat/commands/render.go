package commands

import (
	"fmt"
	"strings"

	"tutorai-be/pkg/tutor/chat"
	"tutorai-be/pkg/tutor/course"

	"github.com/fatih/color"
)

var (
	userLabel = color.New(color.FgCyan, color.Bold)
	aiLabel   = color.New(color.FgGreen, color.Bold)
	dimText   = color.New(color.Faint)
)

func printMessage(m chat.Message) {
	label := aiLabel.Sprint("Tutor")
	if m.Sender == chat.SenderUser {
		label = userLabel.Sprint("You")
	}
	fmt.Printf("%s %s\n%s\n\n", label, dimText.Sprint(m.Timestamp), m.Content)
}

func printTranscript(sess *chat.Session, msgs []chat.Message) {
	color.Yellow("== %s ==", sess.Title)
	for _, m := range msgs {
		printMessage(m)
	}
}

func printSessions(sessions []*chat.Session, activeID string) {
	if len(sessions) == 0 {
		fmt.Println("No sessions")
		return
	}
	for _, s := range sessions {
		marker := "  "
		if s.ID == activeID {
			marker = color.GreenString("* ")
		}
		fmt.Printf("%s%s  %s  %s\n", marker, s.ID, s.Title,
			dimText.Sprintf("%d messages, last used %s", s.MessageCount, s.LastAccessed.Local().Format("2006-01-02 15:04")))
	}
}

func printSlots(slots []*course.Slot) {
	if len(slots) == 0 {
		fmt.Printf("No courses tracked (up to %d)\n", course.MaxSlots)
		return
	}
	for _, s := range slots {
		name := s.Course
		if c, ok := course.Lookup(s.Course); ok {
			name = c.Name
		}
		p := course.ProgressOf(s)
		fmt.Printf("%s  %s  %s\n", s.ID, color.New(color.Bold).Sprint(name),
			color.CyanString("%d/%d (%.0f%%)", p.Covered, p.Total, p.Percent))
		if len(s.Topics) > 0 {
			fmt.Printf("    covered: %s\n", strings.Join(s.Topics, ", "))
		}
	}
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		color.Red("warning: %s", w)
	}
}
