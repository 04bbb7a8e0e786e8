package main

import (
	"errors"
	"testing"
)

func TestCanRunWithoutContainer(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no args", args: nil, want: false},
		{name: "help flag", args: []string{"--help"}, want: true},
		{name: "version flag", args: []string{"--version"}, want: true},
		{name: "help subcommand", args: []string{"help", "task"}, want: true},
		{name: "config template", args: []string{"config", "template"}, want: true},
		{name: "config init with config flag", args: []string{"--config", "alt.toml", "config", "init"}, want: true},
		{name: "config show", args: []string{"config", "show"}, want: false},
		{name: "task list", args: []string{"task", "list"}, want: false},
		{name: "api url value is not a command", args: []string{"--api-url", "config", "task"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canRunWithoutContainer(tt.args); got != tt.want {
				t.Fatalf("canRunWithoutContainer(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestRunWithoutContainer_ReturnsInitError(t *testing.T) {
	initErr := errors.New("parse config.toml: bad")

	err := runWithoutContainer([]string{"task", "list"}, initErr)

	if !errors.Is(err, initErr) {
		t.Fatalf("expected init error, got %v", err)
	}
}

func TestRunWithoutContainer_ConfigTemplate(t *testing.T) {
	if err := runWithoutContainer([]string{"config", "template"}, errors.New("broken")); err != nil {
		t.Fatalf("runWithoutContainer returned error: %v", err)
	}
}
