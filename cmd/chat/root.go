package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/kdduha/genai-relay/internal/client"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	timeout   time.Duration
)

// rootCmd runs the interactive chat
var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the relay from the terminal",
	Long: styleTitle.Render("genai-relay chat") + "\n\n" +
		"Type a message and press Enter. Commands:\n" +
		"  /attach <path>  attach a file to the next message\n" +
		"  /remove         drop the attached file\n" +
		"  /quit           exit",
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:3000", "relay base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "HTTP client timeout (0 disables)")
	rootCmd.AddCommand(benchCmd)
}

func newClient() *client.Client {
	return client.New(serverURL, &http.Client{Timeout: timeout})
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	session := client.NewSession(newClient())
	session.OnUpdate = func(t *client.Transcript) {
		if last, ok := t.Last(); ok {
			fmt.Fprintln(out, renderEntry(last))
		}
	}

	return repl(ctx, cmd.InOrStdin(), out, session)
}

func repl(ctx context.Context, in io.Reader, out io.Writer, session *client.Session) error {
	var attached *client.Attachment

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for {
		fmt.Fprint(out, prompt(attached))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()

		switch {
		case line == "/quit":
			return nil
		case line == "/remove":
			attached = nil
			continue
		case strings.HasPrefix(line, "/attach "):
			file, err := client.LoadAttachment(strings.TrimSpace(strings.TrimPrefix(line, "/attach ")))
			if err != nil {
				fmt.Fprintln(out, styleError.Render(err.Error()))
				continue
			}
			attached = file
			continue
		}

		file := attached
		if session.Send(ctx, line, file) {
			attached = nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func prompt(attached *client.Attachment) string {
	if attached == nil {
		return styleUser.Render("> ")
	}
	return styleMuted.Render(fmt.Sprintf("[File: %s] ", attached.Name)) + styleUser.Render("> ")
}
