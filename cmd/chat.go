package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"video-tutor/utils"
	"video-tutor/work-flows/managers"
	"video-tutor/work-flows/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newChatCmd(envFiles *[]string) *cobra.Command {
	var subject, lesson string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the tutor about a lesson from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := wireApp(*envFiles)
			if err != nil {
				return err
			}

			if subject == "" {
				subject, lesson = a.catalog.Default()
			} else if lesson == "" {
				if lessons := a.catalog.Lessons(subject); len(lessons) > 0 {
					lesson = lessons[0]
				}
			}

			state := managers.NewSessionState(fmt.Sprintf("cli_%d", utils.GetCurrentTimestamp()))
			if _, err := a.manager.OnSelectionChanged(state, subject, lesson); err != nil {
				return err
			}

			session := &chatSession{
				app:   a,
				state: state,
				out:   cmd.OutOrStdout(),
			}
			session.printWelcome()
			return session.run(cmd, bufio.NewReader(cmd.InOrStdin()))
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "subject name (default: first subject)")
	cmd.Flags().StringVar(&lesson, "lesson", "", "lesson name (default: first lesson of the subject)")

	return cmd
}

type chatSession struct {
	app   *app
	state *managers.SessionState
	out   io.Writer
}

func (cs *chatSession) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite)

	sel := cs.state.Selection()
	cyan.Fprintf(cs.out, "\n🎬 %s / %s\n", cs.app.catalog.Label(sel.Subject), sel.Lesson)
	if snap := cs.state.Snapshot(); snap.VideoReady {
		white.Fprintf(cs.out, "Video: %s\n", snap.VideoPath)
	}
	white.Fprintln(cs.out, "Ask anything about the lesson. Type 'help' for commands or 'quit' to exit.")
}

func (cs *chatSession) run(cmd *cobra.Command, reader *bufio.Reader) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for {
		fmt.Fprint(cs.out, "\n➤ You: ")
		input, err := reader.ReadString('\n')
		userMessage := strings.TrimSpace(input)
		if userMessage == "" {
			if err != nil {
				fmt.Fprintln(cs.out)
				return nil
			}
			continue
		}

		command := strings.ToLower(userMessage)
		switch {
		case command == "quit" || command == "exit":
			green.Fprintln(cs.out, "👋 Goodbye!")
			return nil
		case command == "help":
			cs.showHelp()
		case command == "stats":
			cs.showStats()
		case command == "history":
			cs.showHistory()
		case command == "reset":
			cs.app.manager.ResetChat(cs.state)
			green.Fprintln(cs.out, "🔄 Conversation history has been reset!")
		case command == "lessons":
			cs.showLessons()
		case strings.HasPrefix(command, "lesson "):
			cs.switchLesson(strings.TrimSpace(userMessage[len("lesson "):]))
		case command == "translate":
			cs.translateLastReply()
		default:
			reply, sendErr := cs.app.manager.SendMessage(cmd.Context(), cs.state, userMessage)
			if sendErr != nil {
				msg := cs.state.LastError()
				if msg == "" {
					msg = sendErr.Error()
				}
				red.Fprintf(cs.out, "✗ %s\n", msg)
			} else {
				fmt.Fprintf(cs.out, "🤖 %s\n", reply)
			}
		}

		if err != nil {
			return nil
		}
	}
}

func (cs *chatSession) showHelp() {
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite)

	yellow.Fprintln(cs.out, "\n📖 Available Commands:")
	white.Fprintln(cs.out, "• quit/exit - End the conversation")
	white.Fprintln(cs.out, "• stats - Show conversation statistics")
	white.Fprintln(cs.out, "• history - Show the conversation so far")
	white.Fprintln(cs.out, "• reset - Reset conversation history")
	white.Fprintln(cs.out, "• lessons - List lessons of the current subject")
	white.Fprintln(cs.out, "• lesson <n> - Switch to lesson n (clears the chat)")
	white.Fprintln(cs.out, "• translate - Translate the last reply")
	white.Fprintln(cs.out, "• Any other text - Ask the tutor")
}

func (cs *chatSession) showStats() {
	snap := cs.state.Snapshot()

	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)

	cyan.Fprintln(cs.out, "\n📊 Conversation Statistics:")
	green.Fprintf(cs.out, "• Lesson: %s\n", snap.Selection.Lesson)
	green.Fprintf(cs.out, "• Total messages: %d\n", snap.Stats["total_messages"])
	green.Fprintf(cs.out, "• Your messages: %d\n", snap.Stats["user_messages"])
	green.Fprintf(cs.out, "• Tutor responses: %d\n", snap.Stats["bot_messages"])
	green.Fprintf(cs.out, "• Session ID: %s\n", snap.ID)
}

func (cs *chatSession) showHistory() {
	history := cs.state.History()
	if len(history) == 0 {
		utils.PrintInfo("No conversation history yet")
		return
	}

	for _, msg := range history {
		text, ok := msg.Text()
		if !ok {
			continue
		}
		avatar := "🤖"
		if msg.Role == models.MessageRoleUser {
			avatar = "👤"
		}
		fmt.Fprintf(cs.out, "%s %s\n", avatar, text)
	}
}

func (cs *chatSession) showLessons() {
	sel := cs.state.Selection()
	for i, lesson := range cs.app.catalog.Lessons(sel.Subject) {
		marker := " "
		if lesson == sel.Lesson {
			marker = "*"
		}
		fmt.Fprintf(cs.out, "%s %d. %s\n", marker, i+1, lesson)
	}
}

func (cs *chatSession) switchLesson(arg string) {
	sel := cs.state.Selection()
	lessons := cs.app.catalog.Lessons(sel.Subject)

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(lessons) {
		color.New(color.FgRed).Fprintf(cs.out, "Invalid lesson number. Please enter 1-%d.\n", len(lessons))
		return
	}

	changed, err := cs.app.manager.OnSelectionChanged(cs.state, sel.Subject, lessons[n-1])
	if err != nil {
		color.New(color.FgRed).Fprintf(cs.out, "✗ %s\n", cs.state.LastError())
		return
	}
	if changed {
		cs.printWelcome()
	}
}

func (cs *chatSession) translateLastReply() {
	reply := cs.state.Snapshot().LastResponse
	if reply == "" {
		utils.PrintInfo("Nothing to translate yet")
		return
	}

	translated, err := cs.app.translator.Translate(reply)
	if err != nil {
		utils.PrintError(err.Error())
		return
	}
	color.New(color.FgCyan).Fprintf(cs.out, "🌐 %s\n", translated)
}
