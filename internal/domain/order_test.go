package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		input   string
		want    Side
		wantErr bool
	}{
		{"buy", SideBuy, false},
		{"Buy", SideBuy, false},
		{" SELL ", SideSell, false},
		{"hold", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSide(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSide) {
					t.Errorf("ParseSide(%q) error = %v, want ErrInvalidSide", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSide(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSide(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"default form value", "0.001", "0.001", false},
		{"surrounding spaces", "  2.5 ", "2.5", false},
		{"integer", "3", "3", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"text", "lots", "", true},
		{"zero", "0", "", true},
		{"negative", "-1", "", true},
		{"comma decimal", "0,5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVolume(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidVolume) {
					t.Errorf("ParseVolume(%q) error = %v, want ErrInvalidVolume", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVolume(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseVolume(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestOrderAckSummary(t *testing.T) {
	ack := OrderAck{Side: SideBuy, Symbol: "BT", Volume: decimal.RequireFromString("0.001")}
	if got, want := ack.Summary(), "Buy order placed for 0.001 BT"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	ack.Validated = true
	ack.Side = SideSell
	if got, want := ack.Summary(), "Sell order validated for 0.001 BT"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
