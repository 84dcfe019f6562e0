package editor

import (
	"errors"
	"reflect"
	"testing"
)

func TestOpener_Command(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		env        string
		wantArgs   []string
	}{
		{
			name:       "configured with arguments",
			configured: "code --wait",
			env:        "vim",
			wantArgs:   []string{"code", "--wait", "/tmp/catalog.csv"},
		},
		{
			name:     "environment",
			env:      "nano",
			wantArgs: []string{"nano", "/tmp/catalog.csv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.env)
			t.Setenv("VISUAL", "")

			cmd, err := NewOpener(tt.configured).Command("/tmp/catalog.csv")
			if err != nil {
				t.Fatalf("Command failed: %v", err)
			}
			if !reflect.DeepEqual(cmd.Args, tt.wantArgs) {
				t.Errorf("expected args %v, got %v", tt.wantArgs, cmd.Args)
			}
		})
	}
}

func TestOpener_NoEditor(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	o := NewOpener("")
	o.lookPath = func(string) (string, error) {
		return "", errors.New("not found")
	}

	if _, err := o.Command("/tmp/catalog.csv"); err == nil {
		t.Error("expected error when no editor is available")
	}
}
