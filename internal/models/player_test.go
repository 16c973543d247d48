package models

import (
	"testing"
)

func TestPlayer_BeforeSave(t *testing.T) {
	sessionID := uint(12)

	tests := []struct {
		name    string
		player  Player
		wantErr bool
	}{
		{
			name:    "Normal mode",
			player:  Player{DisplayName: "Aoki", StatusMode: StatusModeNormal},
			wantErr: false,
		},
		{
			name:    "Special mode",
			player:  Player{DisplayName: "Aoki", StatusMode: StatusModeSpecial},
			wantErr: false,
		},
		{
			name:    "Deduction mode",
			player:  Player{DisplayName: "Aoki", StatusMode: StatusModeDeduction},
			wantErr: false,
		},
		{
			name:    "Invalid mode",
			player:  Player{DisplayName: "Aoki", StatusMode: "vip"},
			wantErr: true,
		},
		{
			name:    "Empty mode",
			player:  Player{DisplayName: "Aoki", StatusMode: ""},
			wantErr: true,
		},
		{
			name:    "Empty display name",
			player:  Player{DisplayName: "", StatusMode: StatusModeNormal},
			wantErr: true,
		},
		{
			name: "Playing with session",
			player: Player{
				DisplayName:      "Aoki",
				StatusMode:       StatusModeNormal,
				IsPlaying:        true,
				CurrentSessionID: &sessionID,
			},
			wantErr: false,
		},
		{
			name: "Not playing but session still set",
			player: Player{
				DisplayName:      "Aoki",
				StatusMode:       StatusModeNormal,
				IsPlaying:        false,
				CurrentSessionID: &sessionID,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.player.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidStatusMode(t *testing.T) {
	for _, mode := range []string{StatusModeNormal, StatusModeSpecial, StatusModeDeduction} {
		if !ValidStatusMode(mode) {
			t.Errorf("ValidStatusMode(%q) = false, want true", mode)
		}
	}
	for _, mode := range []string{"", "vip", "NORMAL"} {
		if ValidStatusMode(mode) {
			t.Errorf("ValidStatusMode(%q) = true, want false", mode)
		}
	}
}

func TestTableNames(t *testing.T) {
	if got := (Player{}).TableName(); got != "players" {
		t.Errorf("Player.TableName() = %q, want %q", got, "players")
	}
	if got := (Transaction{}).TableName(); got != "transactions" {
		t.Errorf("Transaction.TableName() = %q, want %q", got, "transactions")
	}
	if got := (Session{}).TableName(); got != "sessions" {
		t.Errorf("Session.TableName() = %q, want %q", got, "sessions")
	}
	if got := (SessionOutcome{}).TableName(); got != "session_outcomes" {
		t.Errorf("SessionOutcome.TableName() = %q, want %q", got, "session_outcomes")
	}
}
