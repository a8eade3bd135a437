package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kdduha/genai-relay/internal/client"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	styleUser  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	styleBot   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(2)
	styleMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func renderEntry(e client.Entry) string {
	if e.Loading {
		return styleMuted.Render("  ...")
	}
	text := strings.Join(e.Lines(), "\n")
	if e.Role == client.RoleUser {
		return styleUser.Render("you: ") + text
	}
	return styleBot.Render(text)
}
