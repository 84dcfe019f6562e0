package commands

import (
	"context"
	"errors"
	"slices"
	"testing"

	"pyxidust/internal/application"
)

func TestMintSerialCommand_Execute(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		quantity  int
		want      []string
		wantBases int
	}{
		{
			name:      "fresh base from counter",
			existing:  "",
			quantity:  1,
			want:      []string{"20250007-0001"},
			wantBases: 1,
		},
		{
			name:     "bare base gets first counter",
			existing: "20250001",
			quantity: 1,
			want:     []string{"20250001-0001"},
		},
		{
			name:     "full serial increments",
			existing: "20250001-0009",
			quantity: 1,
			want:     []string{"20250001-0010"},
		},
		{
			name:      "rollover takes a new base",
			existing:  "20250001-9999",
			quantity:  1,
			want:      []string{"20250007-0001"},
			wantBases: 1,
		},
		{
			name:     "quantity continues the sequence",
			existing: "20250001-0002",
			quantity: 3,
			want:     []string{"20250001-0003", "20250001-0004", "20250001-0005"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := newFakeCounter(7)
			rec := newSpyRecorder()
			cmd := NewMintSerialCommand(counter, tt.existing, tt.quantity)
			cmd.SetRecorder(rec)

			result, err := cmd.Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(result.Serials, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, result.Serials)
			}
			if counter.calls != tt.wantBases {
				t.Errorf("expected %d counter calls, got %d", tt.wantBases, counter.calls)
			}
			if rec.minted != len(tt.want) {
				t.Errorf("expected %d minted, got %d", len(tt.want), rec.minted)
			}
		})
	}
}

func TestMintSerialCommand_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		quantity int
		errMsg   string
	}{
		{name: "letters", existing: "2025A001", quantity: 1, errMsg: "letters"},
		{name: "wrong length", existing: "2025001", quantity: 1, errMsg: "invalid serial"},
		{name: "surrounding space", existing: " 20250001-0002 ", quantity: 1, errMsg: "invalid serial"},
		{name: "zero quantity", existing: "", quantity: 0, errMsg: "quantity must be between"},
		{name: "quantity too large", existing: "", quantity: 10000, errMsg: "quantity must be between"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := newFakeCounter(1)
			cmd := NewMintSerialCommand(counter, tt.existing, tt.quantity)

			_, err := cmd.Execute(context.Background())
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.errMsg)
			}
			if !contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
			if counter.calls != 0 {
				t.Errorf("counter must not be touched, got %d calls", counter.calls)
			}
		})
	}
}

func TestMintSerialCommand_CounterError(t *testing.T) {
	counter := newFakeCounter(1)
	counter.err = application.ErrCounterCorrupt

	_, err := NewMintSerialCommand(counter, "", 1).Execute(context.Background())
	if !errors.Is(err, application.ErrCounterCorrupt) {
		t.Errorf("expected ErrCounterCorrupt, got %v", err)
	}
}

func TestNextBaseCommand_Execute(t *testing.T) {
	counter := newFakeCounter(42)

	result, err := NewNextBaseCommand(counter).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Base != "20250042" {
		t.Errorf("expected 20250042, got %s", result.Base)
	}
}

func TestValidateSerialCommand_Execute(t *testing.T) {
	tests := []struct {
		name    string
		serial  string
		wantErr bool
		want    string
	}{
		{name: "base", serial: "20250042", want: "20250042"},
		{name: "full", serial: "20250042-0007", want: "20250042-0007"},
		{name: "empty", serial: "", wantErr: true},
		{name: "leading space", serial: " 20250042", wantErr: true},
		{name: "two dashes", serial: "2025-0042-007", wantErr: true},
		{name: "punctuation", serial: "2025004.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewValidateSerialCommand(tt.serial).Execute(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.serial)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Serial.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, result.Serial)
			}
		})
	}
}

func TestValidateSerialCommand_SerialError(t *testing.T) {
	_, err := NewValidateSerialCommand("2025A042").Execute(context.Background())

	var serialErr *application.SerialError
	if !errors.As(err, &serialErr) {
		t.Fatalf("expected *SerialError, got %T", err)
	}
	if !errors.Is(err, application.ErrInvalidSerial) {
		t.Error("expected error to match ErrInvalidSerial")
	}
}

func TestMintSerialCommand_ShortBase(t *testing.T) {
	counter := newFakeCounter(101)
	counter.format = "%d%d"
	rec := newSpyRecorder()
	cmd := NewMintSerialCommand(counter, "", 2)
	cmd.SetRecorder(rec)

	_, err := cmd.Execute(context.Background())
	if !errors.Is(err, application.ErrInvalidSerial) {
		t.Fatalf("expected ErrInvalidSerial, got %v", err)
	}
	if !contains(err.Error(), "2025101") {
		t.Errorf("expected the short base in the error, got %q", err.Error())
	}
	if counter.calls != 1 {
		t.Errorf("expected 1 counter call, got %d", counter.calls)
	}
	if rec.minted != 0 {
		t.Errorf("expected nothing recorded as minted, got %d", rec.minted)
	}
}

func TestNextBaseCommand_ShortBase(t *testing.T) {
	counter := newFakeCounter(101)
	counter.format = "%d%d"

	_, err := NewNextBaseCommand(counter).Execute(context.Background())
	if !errors.Is(err, application.ErrInvalidSerial) {
		t.Errorf("expected ErrInvalidSerial, got %v", err)
	}
}
