package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// resolveSettings loads the profile named by profileName and applies the
// -s overrides. Without -pr a missing default profile is not an error;
// the settings then come from -s alone. Returns the profile path used,
// or "" when none was read.
func resolveSettings(cc *CommandContext, profileName string, assignments []string) (values.Settings, string, error) {
	overrides, err := values.ParseSettings(assignments)
	if err != nil {
		return nil, "", err
	}

	path := cc.Container.SystemConfig().ProfilePath(profileName)
	if profileName == "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			cc.Logger.Debug("default profile not found, using -s settings only", "path", path)
			return entities.NewProfile(nil).SettingsWith(overrides), "", nil
		}
	}

	profile, err := cc.Container.ProfileLoader().LoadProfile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load profile: %w", err)
	}
	cc.Logger.Debug("profile loaded", "path", path, "settings", len(profile.Settings))

	return profile.SettingsWith(overrides), path, nil
}
