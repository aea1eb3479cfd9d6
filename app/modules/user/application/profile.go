package profileservice

import (
	"context"
	"encoding/json"
	"time"

	"github.com/uptrace/bun"

	userdb "github.com/pocket-friend-club/companion-bot/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/pocket-friend-club/companion-bot/app/shared/types"
)

// Profile is a user row with its JSON documents decoded. Malformed stored
// JSON decodes to empty values rather than failing the read; the command
// layer overwrote it as opaque text historically.
type Profile struct {
	User            *userdb.User
	Preferences     map[string]any
	Codewords       []string
	PersonaSettings map[string]any
}

func decodeProfile(user *userdb.User) *Profile {
	p := &Profile{User: user, Codewords: []string{}}
	if len(user.Preferences) > 0 {
		_ = json.Unmarshal(user.Preferences, &p.Preferences)
	}
	if len(user.Codewords) > 0 {
		_ = json.Unmarshal(user.Codewords, &p.Codewords)
	}
	if len(user.PersonaSettings) > 0 {
		_ = json.Unmarshal(user.PersonaSettings, &p.PersonaSettings)
	}
	return p
}

// GetProfile returns the user's profile, creating the row lazily on first
// reference.
func (s *ProfileService) GetProfile(ctx context.Context, discordUserID sharedtypes.DiscordUserID) (*Profile, error) {
	var profile *Profile
	err := s.withTelemetry(ctx, "GetProfile", func(ctx context.Context) error {
		user, opErr := s.repo.EnsureUser(ctx, discordUserID)
		if opErr != nil {
			return opErr
		}
		profile = decodeProfile(user)
		return nil
	})
	return profile, err
}

// UpsertPreferences replaces the user's free-form preferences.
func (s *ProfileService) UpsertPreferences(ctx context.Context, discordUserID sharedtypes.DiscordUserID, preferences map[string]any) error {
	return s.withTelemetry(ctx, "UpsertPreferences", func(ctx context.Context) error {
		if _, err := s.repo.EnsureUser(ctx, discordUserID); err != nil {
			return err
		}
		if preferences == nil {
			preferences = map[string]any{}
		}
		raw, err := json.Marshal(preferences)
		if err != nil {
			return err
		}
		return s.repo.UpdatePreferences(ctx, discordUserID, raw)
	})
}

// UpsertCodewords replaces the user's codeword list.
func (s *ProfileService) UpsertCodewords(ctx context.Context, discordUserID sharedtypes.DiscordUserID, codewords []string) error {
	return s.withTelemetry(ctx, "UpsertCodewords", func(ctx context.Context) error {
		if _, err := s.repo.EnsureUser(ctx, discordUserID); err != nil {
			return err
		}
		if codewords == nil {
			codewords = []string{}
		}
		raw, err := json.Marshal(codewords)
		if err != nil {
			return err
		}
		return s.repo.UpdateCodewords(ctx, discordUserID, raw)
	})
}

// SetPersona replaces the user's persona settings document.
func (s *ProfileService) SetPersona(ctx context.Context, discordUserID sharedtypes.DiscordUserID, settings map[string]any) error {
	return s.withTelemetry(ctx, "SetPersona", func(ctx context.Context) error {
		if _, err := s.repo.EnsureUser(ctx, discordUserID); err != nil {
			return err
		}
		raw, err := json.Marshal(settings)
		if err != nil {
			return err
		}
		return s.repo.UpdatePersonaSettings(ctx, discordUserID, raw)
	})
}

// SetBirthday records the user's birthday.
func (s *ProfileService) SetBirthday(ctx context.Context, discordUserID sharedtypes.DiscordUserID, birthday time.Time) error {
	return s.withTelemetry(ctx, "SetBirthday", func(ctx context.Context) error {
		if _, err := s.repo.EnsureUser(ctx, discordUserID); err != nil {
			return err
		}
		return s.repo.SetBirthday(ctx, discordUserID, bun.NullTime{Time: birthday})
	})
}

// SetDisplayName sets the user's display name.
func (s *ProfileService) SetDisplayName(ctx context.Context, discordUserID sharedtypes.DiscordUserID, name string) error {
	return s.withTelemetry(ctx, "SetDisplayName", func(ctx context.Context) error {
		if _, err := s.repo.EnsureUser(ctx, discordUserID); err != nil {
			return err
		}
		return s.repo.SetDisplayName(ctx, discordUserID, name)
	})
}

// SetAbout sets the user's about text.
func (s *ProfileService) SetAbout(ctx context.Context, discordUserID sharedtypes.DiscordUserID, about string) error {
	return s.withTelemetry(ctx, "SetAbout", func(ctx context.Context) error {
		if _, err := s.repo.EnsureUser(ctx, discordUserID); err != nil {
			return err
		}
		return s.repo.SetAbout(ctx, discordUserID, about)
	})
}
